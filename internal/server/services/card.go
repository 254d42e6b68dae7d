// Package services contains the server-side business logic: card creation
// with image offloading, card loading with view accounting, and image
// rendering for the creation flow.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/unbox-app/unbox/internal/common"
	"github.com/unbox-app/unbox/internal/logging"
	"github.com/unbox-app/unbox/internal/models"
	"github.com/unbox-app/unbox/internal/server/repositories/cards"
)

// ObjectUploader stores inline image payloads and returns hosted URLs.
// Non-data-URL strings pass through unchanged.
type ObjectUploader interface {
	UploadDataURL(ctx context.Context, dataURL string) (string, error)
}

// CardService implements card creation, loading and deletion on top of a
// cards.Repository and an ObjectUploader.
type CardService struct {
	repo     cards.Repository
	uploader ObjectUploader
	logger   logging.Logger
}

// NewCardService wires a CardService.
func NewCardService(repo cards.Repository, uploader ObjectUploader, logger logging.Logger) *CardService {
	return &CardService{
		repo:     repo,
		uploader: uploader,
		logger:   logger.With("component", "card_service"),
	}
}

// Create validates and normalizes the input, offloads inline images to
// object storage and persists the card.
//
// Image offloading degrades per slot: a failed upload empties that slot and
// is logged, it never fails the card.
func (s *CardService) Create(ctx context.Context, in *models.CreateCardInput) (*models.GreetingCard, error) {
	if strings.TrimSpace(in.SenderName) == "" {
		return nil, fmt.Errorf("%w: senderName is required", common.ErrValidation)
	}
	if strings.TrimSpace(in.ReceiverName) == "" {
		return nil, fmt.Errorf("%w: receiverName is required", common.ErrValidation)
	}
	if strings.TrimSpace(in.TemplateID) == "" {
		return nil, fmt.Errorf("%w: templateId is required", common.ErrValidation)
	}
	if in.Passcode != "" && in.PasscodeHint == "" {
		return nil, fmt.Errorf("%w: passcodeHint is required when passcode is set", common.ErrValidation)
	}

	in.Normalize()
	s.offloadImages(ctx, in.Images)
	s.offloadImages(ctx, in.EventImages)

	card, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}
	s.logger.Info(ctx, "card created", "id", card.ID, "template", card.TemplateID)
	return card, nil
}

// offloadImages replaces each slot with its hosted URL, uploading slots in
// parallel. Slots holding plain URLs or "" come back unchanged from the
// uploader.
func (s *CardService) offloadImages(ctx context.Context, slots []string) {
	var wg sync.WaitGroup
	for i := range slots {
		if slots[i] == "" {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url, err := s.uploader.UploadDataURL(ctx, slots[i])
			if err != nil {
				s.logger.Error(ctx, "image upload failed, dropping slot", "slot", i, "error", err)
				slots[i] = ""
				return
			}
			slots[i] = url
		}(i)
	}
	wg.Wait()
}

// Load returns the card and bumps its view counter in the background. A
// failed bump is logged and otherwise ignored.
func (s *CardService) Load(ctx context.Context, id string) (*models.GreetingCard, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find card: %w", err)
	}
	if card == nil {
		return nil, common.ErrNotFound
	}

	go func() {
		ctx := context.Background()
		if err := s.repo.IncrementViewCount(ctx, id); err != nil {
			s.logger.Warn(ctx, "view count increment failed", "id", id, "error", err)
		}
	}()

	return card, nil
}

// Get returns the card without touching its view counter. Used by surfaces
// that are not a recipient view, like QR rendering.
func (s *CardService) Get(ctx context.Context, id string) (*models.GreetingCard, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find card: %w", err)
	}
	if card == nil {
		return nil, common.ErrNotFound
	}
	return card, nil
}

// Delete removes a card. Missing cards surface as common.ErrNotFound.
func (s *CardService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "card deleted", "id", id)
	return nil
}

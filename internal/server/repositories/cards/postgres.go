package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/unbox-app/unbox/internal/common"
	"github.com/unbox-app/unbox/internal/dbx"
	"github.com/unbox-app/unbox/internal/models"
)

// PostgresRepository implements card storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new card row and returns the stored entity.
func (r *PostgresRepository) Create(ctx context.Context, in *models.CreateCardInput) (*models.GreetingCard, error) {
	card := newCardFromInput(in)

	images, err := marshalSlots(card.Images)
	if err != nil {
		return nil, fmt.Errorf("marshal images: %w", err)
	}
	eventImages, err := marshalSlots(card.EventImages)
	if err != nil {
		return nil, fmt.Errorf("marshal event images: %w", err)
	}
	captions, err := marshalSlots(card.ImageCaptions)
	if err != nil {
		return nil, fmt.Errorf("marshal captions: %w", err)
	}
	descriptions, err := marshalSlots(card.EventDescriptions)
	if err != nil {
		return nil, fmt.Errorf("marshal descriptions: %w", err)
	}

	query := `
		INSERT INTO cards (id, sender_name, receiver_name, template_id, custom_message,
			passcode, passcode_hint, passcode_message, youtube_url,
			images, event_images, image_captions, event_descriptions,
			created_at, view_count, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = r.db.ExecContext(ctx, query,
		card.ID, card.SenderName, card.ReceiverName, card.TemplateID, card.CustomMessage,
		card.Passcode, card.PasscodeHint, card.PasscodeMessage, card.YoutubeURL,
		images, eventImages, captions, descriptions,
		card.CreatedAt, card.ViewCount, card.IsPublic,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return card, nil
}

// FindByID loads a card by id. Absence is (nil, nil), not an error.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.GreetingCard, error) {
	query := `
		SELECT id, sender_name, receiver_name, template_id, custom_message,
			passcode, passcode_hint, passcode_message, youtube_url,
			images, event_images, image_captions, event_descriptions,
			created_at, view_count, is_public
		FROM cards WHERE id = $1;
	`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanCard(row)
}

// IncrementViewCount bumps view_count atomically in the database, so
// concurrent loads never lose an increment.
func (r *PostgresRepository) IncrementViewCount(ctx context.Context, id string) error {
	query := `UPDATE cards SET view_count = view_count + 1 WHERE id = $1;`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes a card row by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.GreetingCard, error) {
	var (
		card                                        models.GreetingCard
		images, eventImages, captions, descriptions string
	)
	err := row.Scan(
		&card.ID, &card.SenderName, &card.ReceiverName, &card.TemplateID, &card.CustomMessage,
		&card.Passcode, &card.PasscodeHint, &card.PasscodeMessage, &card.YoutubeURL,
		&images, &eventImages, &captions, &descriptions,
		&card.CreatedAt, &card.ViewCount, &card.IsPublic,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if card.Images, err = unmarshalSlots(images); err != nil {
		return nil, fmt.Errorf("unmarshal images: %w", err)
	}
	if card.EventImages, err = unmarshalSlots(eventImages); err != nil {
		return nil, fmt.Errorf("unmarshal event images: %w", err)
	}
	if card.ImageCaptions, err = unmarshalSlots(captions); err != nil {
		return nil, fmt.Errorf("unmarshal captions: %w", err)
	}
	if card.EventDescriptions, err = unmarshalSlots(descriptions); err != nil {
		return nil, fmt.Errorf("unmarshal descriptions: %w", err)
	}
	return &card, nil
}

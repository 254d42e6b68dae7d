package cards

import (
	"context"
	"fmt"

	"github.com/unbox-app/unbox/internal/common"
	"github.com/unbox-app/unbox/internal/dbx"
	"github.com/unbox-app/unbox/internal/models"
)

// SQLiteRepository implements card storage over a SQLite connection. It
// mirrors PostgresRepository with ? placeholders.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository constructs a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new card row and returns the stored entity.
func (r *SQLiteRepository) Create(ctx context.Context, in *models.CreateCardInput) (*models.GreetingCard, error) {
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
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
func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*models.GreetingCard, error) {
	query := `
		SELECT id, sender_name, receiver_name, template_id, custom_message,
			passcode, passcode_hint, passcode_message, youtube_url,
			images, event_images, image_captions, event_descriptions,
			created_at, view_count, is_public
		FROM cards WHERE id = ?;
	`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanCard(row)
}

// IncrementViewCount bumps view_count atomically in the database.
func (r *SQLiteRepository) IncrementViewCount(ctx context.Context, id string) error {
	query := `UPDATE cards SET view_count = view_count + 1 WHERE id = ?;`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes a card row by id.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?;`, id)
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

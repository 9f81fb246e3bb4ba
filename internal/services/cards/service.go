package cards

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"diary/internal/model"
	"diary/internal/storage"
)

// PageSize is the fixed number of cards per page
const PageSize = 4

// Service handles card creation, lookup and pagination
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new card Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Create validates and persists a new card, returning it with its
// assigned id. Duplicate title, subtitle or text yields
// model.ErrDuplicate.
func (s *Service) Create(ctx context.Context, title, subtitle, text string) (*model.Card, error) {
	card := &model.Card{
		Title:    strings.TrimSpace(title),
		Subtitle: strings.TrimSpace(subtitle),
		Text:     strings.TrimSpace(text),
	}

	if err := validate(card); err != nil {
		return nil, err
	}

	if err := s.storage.CreateCard(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Info("card created", slog.Int64("card_id", card.ID), slog.String("title", card.Title))
	return card, nil
}

// Get returns the card with the given id, or model.ErrCardNotFound
func (s *Service) Get(ctx context.Context, id int64) (*model.Card, error) {
	return s.storage.GetCard(ctx, id)
}

func validate(card *model.Card) error {
	switch {
	case card.Title == "":
		return fmt.Errorf("%w: title is required", model.ErrValidation)
	case len(card.Title) > model.MaxCardTitleLen:
		return fmt.Errorf("%w: title must be at most %d characters", model.ErrValidation, model.MaxCardTitleLen)
	case card.Subtitle == "":
		return fmt.Errorf("%w: subtitle is required", model.ErrValidation)
	case len(card.Subtitle) > model.MaxCardSubtitleLen:
		return fmt.Errorf("%w: subtitle must be at most %d characters", model.ErrValidation, model.MaxCardSubtitleLen)
	case card.Text == "":
		return fmt.Errorf("%w: text is required", model.ErrValidation)
	case len(card.Text) > model.MaxCardTextLen:
		return fmt.Errorf("%w: text must be at most %d characters", model.ErrValidation, model.MaxCardTextLen)
	}
	return nil
}

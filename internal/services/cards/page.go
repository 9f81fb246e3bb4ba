package cards

import (
	"context"

	"diary/internal/model"
)

// Page is one pagination page of cards plus its metadata.
// It carries only real cards; whether to render a create affordance on
// the last page is the view layer's decision.
type Page struct {
	Cards      []model.Card
	Number     int
	TotalPages int
	TotalCards int
	HasPrev    bool
	HasNext    bool
}

// Page returns the given page of cards. Page numbers below 1 are
// treated as 1; numbers past the last page yield an empty page rather
// than an error.
func (s *Service) Page(ctx context.Context, number int) (*Page, error) {
	if number < 1 {
		number = 1
	}

	total, err := s.storage.CountCards(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := (total + PageSize - 1) / PageSize

	offset := (number - 1) * PageSize
	items, err := s.storage.ListCards(ctx, offset, PageSize)
	if err != nil {
		return nil, err
	}

	return &Page{
		Cards:      items,
		Number:     number,
		TotalPages: totalPages,
		TotalCards: total,
		HasPrev:    number > 1 && number <= totalPages,
		HasNext:    number < totalPages,
	}, nil
}

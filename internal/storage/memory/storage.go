package memory

import (
	"context"
	"sync"

	"diary/internal/model"
	"diary/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[int64]*model.User
	usernameIndex map[string]int64
	nextUserID    int64

	cards         map[int64]*model.Card
	cardOrder     []int64
	titleIndex    map[string]int64
	subtitleIndex map[string]int64
	textIndex     map[string]int64
	nextCardID    int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[int64]*model.User),
		usernameIndex: make(map[string]int64),
		nextUserID:    1,
		cards:         make(map[int64]*model.Card),
		titleIndex:    make(map[string]int64),
		subtitleIndex: make(map[string]int64),
		textIndex:     make(map[string]int64),
		nextCardID:    1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernameIndex[user.Username]; exists {
		return model.ErrDuplicate
	}

	user.ID = s.nextUserID
	s.nextUserID++

	u := *user
	s.users[u.ID] = &u
	s.usernameIndex[u.Username] = u.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Card operations

func (s *Storage) CreateCard(ctx context.Context, card *model.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// All three text fields are globally unique; the whole check-and-insert
	// happens under the write lock so two concurrent inserts cannot both win.
	if _, exists := s.titleIndex[card.Title]; exists {
		return model.ErrDuplicate
	}
	if _, exists := s.subtitleIndex[card.Subtitle]; exists {
		return model.ErrDuplicate
	}
	if _, exists := s.textIndex[card.Text]; exists {
		return model.ErrDuplicate
	}

	card.ID = s.nextCardID
	s.nextCardID++

	c := *card
	s.cards[c.ID] = &c
	s.cardOrder = append(s.cardOrder, c.ID)
	s.titleIndex[c.Title] = c.ID
	s.subtitleIndex[c.Subtitle] = c.ID
	s.textIndex[c.Text] = c.ID
	return nil
}

func (s *Storage) GetCard(ctx context.Context, id int64) (*model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, model.ErrCardNotFound
	}
	c := *card
	return &c, nil
}

func (s *Storage) CountCards(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cardOrder), nil
}

func (s *Storage) ListCards(ctx context.Context, offset, limit int) ([]model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.cardOrder) || limit <= 0 {
		return []model.Card{}, nil
	}

	end := offset + limit
	if end > len(s.cardOrder) {
		end = len(s.cardOrder)
	}

	cards := make([]model.Card, 0, end-offset)
	for _, id := range s.cardOrder[offset:end] {
		cards = append(cards, *s.cards[id])
	}
	return cards, nil
}

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}

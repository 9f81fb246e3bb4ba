// Package sqlite provides the SQLite-backed implementation of the
// storage interface, using Bun over the pure Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"diary/internal/model"
	"diary/internal/storage"
)

// Schema applied once at startup. The hash column is sized for bcrypt
// output (60 bytes).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username VARCHAR(64) NOT NULL UNIQUE,
		password_hash VARCHAR(60) NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(64) NOT NULL UNIQUE,
		subtitle VARCHAR(100) NOT NULL UNIQUE,
		text VARCHAR(220) NOT NULL UNIQUE
	)`,
}

// userModel maps the `users` table for Bun queries.
type userModel struct {
	bun.BaseModel `bun:"table:users"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username"`
	PasswordHash string    `bun:"password_hash"`
	CreatedAt    time.Time `bun:"created_at"`
}

// cardModel maps the `cards` table for Bun queries.
type cardModel struct {
	bun.BaseModel `bun:"table:cards"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Title    string `bun:"title"`
	Subtitle string `bun:"subtitle"`
	Text     string `bun:"text"`
}

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db  *sql.DB
	bun *bun.DB
}

// Open opens (or creates) the database at the given DSN and applies the
// schema. Use ":memory:" for an ephemeral database in tests.
func Open(dsn string) (*Storage, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// modernc sqlite allows a single writer; serialising connections keeps
	// check-and-insert on unique columns atomic without busy retries.
	sqlDB.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqlDB, sqlitedialect.New())

	for _, ddl := range schema {
		if _, err := bdb.Exec(ddl); err != nil {
			_ = bdb.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return &Storage{db: sqlDB, bun: bdb}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Close closes the database connection
func (s *Storage) Close() error {
	return s.bun.Close()
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	m := &userModel{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}

	res, err := s.bun.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		return mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var m userModel
	err := s.bun.NewSelect().Model(&m).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return userModelToModel(m), nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var m userModel
	err := s.bun.NewSelect().Model(&m).Where("username = ?", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return userModelToModel(m), nil
}

// Card operations

func (s *Storage) CreateCard(ctx context.Context, card *model.Card) error {
	m := &cardModel{
		Title:    card.Title,
		Subtitle: card.Subtitle,
		Text:     card.Text,
	}

	res, err := s.bun.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		return mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	card.ID = id
	return nil
}

func (s *Storage) GetCard(ctx context.Context, id int64) (*model.Card, error) {
	var m cardModel
	err := s.bun.NewSelect().Model(&m).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCardNotFound
		}
		return nil, err
	}
	return cardModelToModel(m), nil
}

func (s *Storage) CountCards(ctx context.Context) (int, error) {
	return s.bun.NewSelect().Model((*cardModel)(nil)).Count(ctx)
}

func (s *Storage) ListCards(ctx context.Context, offset, limit int) ([]model.Card, error) {
	if limit <= 0 {
		return []model.Card{}, nil
	}

	var ms []cardModel
	err := s.bun.NewSelect().
		Model(&ms).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]model.Card, 0, len(ms))
	for _, m := range ms {
		cards = append(cards, *cardModelToModel(m))
	}
	return cards, nil
}

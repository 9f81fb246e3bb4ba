package sqlite

import "diary/internal/model"

func userModelToModel(m userModel) *model.User {
	return &model.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func cardModelToModel(m cardModel) *model.Card {
	return &model.Card{
		ID:       m.ID,
		Title:    m.Title,
		Subtitle: m.Subtitle,
		Text:     m.Text,
	}
}

package sqlite

import (
	"github.com/guilherme-santos/famhub/internal"
)

type Session struct {
	UserID  int64 `db:"user_id"`
	Name    string
	Email   string
	Picture string
	Token   string
}

func (s Session) Convert() *internal.Session {
	return &internal.Session{
		User: internal.User{
			ID:      s.UserID,
			Name:    s.Name,
			Email:   s.Email,
			Picture: s.Picture,
		},
		Token: s.Token,
	}
}

type Group struct {
	ID          int64
	Name        string
	Description string
	InviteCode  string `db:"invite_code"`
}

func (g Group) Convert() *internal.Group {
	return &internal.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		InviteCode:  g.InviteCode,
	}
}

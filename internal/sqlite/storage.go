package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/guilherme-santos/famhub/internal"
)

const DriverName = "sqlite3"

// Storage keeps the local session context and the account's known groups
// between runs. It never caches events: the backend stays authoritative for
// those.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sql.DB) *Storage {
	s := &Storage{
		db: sqlx.NewDb(db, DriverName),
	}
	err := s.RunMigrations()
	if err != nil {
		panic(fmt.Sprintf("sqlite: running migrations: %v", err))
	}
	return s
}

// SaveSession stores the session created at login. There is at most one.
func (s Storage) SaveSession(ctx context.Context, sess *internal.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, name, email, picture, token)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id=excluded.user_id,
			name=excluded.name,
			email=excluded.email,
			picture=excluded.picture,
			token=excluded.token;
	`, sess.User.ID, sess.User.Name, sess.User.Email, sess.User.Picture, sess.Token)
	return err
}

// Session returns the stored session, or nil when nobody is logged in.
func (s Storage) Session(ctx context.Context) (*internal.Session, error) {
	var row Session
	err := s.db.GetContext(ctx, &row, `
		SELECT user_id, name, email, picture, token FROM sessions WHERE id = 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Convert(), nil
}

// ClearSession is the logout teardown.
func (s Storage) ClearSession(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions`)
	return err
}

// SaveGroups replaces the stored group list with the one just fetched.
func (s Storage) SaveGroups(ctx context.Context, groups []*internal.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM groups`); err != nil {
		return err
	}
	for _, g := range groups {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO groups (id, name, description, invite_code)
			VALUES (?, ?, ?, ?)
		`, g.ID, g.Name, g.Description, g.InviteCode)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Storage) Groups(ctx context.Context) ([]*internal.Group, error) {
	var rows []Group
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, description, invite_code FROM groups ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	res := make([]*internal.Group, len(rows))
	for i, row := range rows {
		res[i] = row.Convert()
	}
	return res, nil
}

func (s Storage) GroupByName(ctx context.Context, name string) (*internal.Group, error) {
	var row Group
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, description, invite_code FROM groups WHERE name = ?
	`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Convert(), nil
}

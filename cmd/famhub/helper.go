package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/guilherme-santos/famhub/api"
	"github.com/guilherme-santos/famhub/internal"
	"github.com/guilherme-santos/famhub/internal/sqlite"
)

var errNotLoggedIn = errors.New("not logged in, run `famhub login` first")

func openStorage(env Env) (*sqlite.Storage, error) {
	db, err := sql.Open(sqlite.DriverName, env.DBFilename)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStorage(db), nil
}

// newClient restores the stored session and returns a client authorized with
// its token.
func newClient(ctx context.Context, env Env) (*api.Client, *internal.Session, *sqlite.Storage, error) {
	storage, err := openStorage(env)
	if err != nil {
		return nil, nil, nil, err
	}
	sess, err := storage.Session(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if sess == nil {
		return nil, nil, nil, errNotLoggedIn
	}

	client := api.NewClient(env.APIURL)
	client.Verbose = env.Verbose
	client.SetToken(sess.Token)
	return client, sess, storage, nil
}

// storedGroup resolves a group id against the locally stored group list, so
// output can name the group even offline.
func storedGroup(ctx context.Context, storage *sqlite.Storage, groupID int64) *internal.Group {
	groups, err := storage.Groups(ctx)
	if err == nil {
		for _, g := range groups {
			if g.ID == groupID {
				return g
			}
		}
	}
	return &internal.Group{ID: groupID}
}

func formatDateTime(d time.Time) string {
	return d.In(time.Local).Format("02 Jan 06 15:04")
}

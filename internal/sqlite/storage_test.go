package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/famhub/internal"
	"github.com/guilherme-santos/famhub/internal/sqlite"
)

func newStorage(t *testing.T) *sqlite.Storage {
	t.Helper()
	db, err := sql.Open(sqlite.DriverName, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlite.NewStorage(db)
}

func TestSessionRoundTrip(t *testing.T) {
	storage := newStorage(t)
	ctx := context.Background()

	sess, err := storage.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess, "fresh database means nobody is logged in")

	err = storage.SaveSession(ctx, &internal.Session{
		User: internal.User{
			ID:      3,
			Name:    "Alice",
			Email:   "alice@example.com",
			Picture: "https://localhost:7075/uploads/u3.png",
		},
		Token: "jwt-token",
	})
	require.NoError(t, err)

	sess, err = storage.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, int64(3), sess.User.ID)
	assert.Equal(t, "Alice", sess.User.Name)
	assert.Equal(t, "jwt-token", sess.Token)

	// A second login replaces the stored session instead of piling up rows.
	err = storage.SaveSession(ctx, &internal.Session{
		User:  internal.User{ID: 4, Name: "Bob"},
		Token: "other-token",
	})
	require.NoError(t, err)

	sess, err = storage.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sess.User.ID)

	require.NoError(t, storage.ClearSession(ctx))
	sess, err = storage.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSaveGroupsReplacesAll(t *testing.T) {
	storage := newStorage(t)
	ctx := context.Background()

	err := storage.SaveGroups(ctx, []*internal.Group{
		{ID: 1, Name: "Famille", InviteCode: "FAM123"},
		{ID: 2, Name: "Colocation", Description: "appart rue Oberkampf"},
	})
	require.NoError(t, err)

	// The next refresh no longer contains Colocation.
	err = storage.SaveGroups(ctx, []*internal.Group{
		{ID: 1, Name: "Famille", InviteCode: "FAM123"},
		{ID: 5, Name: "Vacances"},
	})
	require.NoError(t, err)

	groups, err := storage.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Famille", groups[0].Name, "groups come back sorted by name")
	assert.Equal(t, "Vacances", groups[1].Name)
	assert.Equal(t, "FAM123", groups[0].InviteCode)
}

func TestGroupByName(t *testing.T) {
	storage := newStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.SaveGroups(ctx, []*internal.Group{
		{ID: 1, Name: "Famille"},
	}))

	g, err := storage.GroupByName(ctx, "Famille")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, int64(1), g.ID)

	g, err = storage.GroupByName(ctx, "Inconnu")
	require.NoError(t, err)
	assert.Nil(t, g)
}

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/famhub/api"
	"github.com/guilherme-santos/famhub/internal"
)

// newBackend is a minimal in-memory stand-in for the organizer backend. It
// answers with PascalCase keys on purpose: the client has to normalize them.
func newBackend(t *testing.T) (*httptest.Server, *backendState) {
	t.Helper()
	state := &backendState{nextID: 42}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/calendar", func(w http.ResponseWriter, r *http.Request) {
		state.authHeader = r.Header.Get("Authorization")

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		payload["Id"] = state.nextID
		state.events = append(state.events, payload)
		json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("GET /api/calendar/unified", func(w http.ResponseWriter, r *http.Request) {
		state.authHeader = r.Header.Get("Authorization")

		out := make([]map[string]any, len(state.events))
		for i, e := range state.events {
			// Serve back with the other casing.
			out[i] = map[string]any{
				"Id":     e["Id"],
				"Title":  e["title"],
				"Start":  e["start"],
				"End":    e["end"],
				"UserId": e["userId"],
			}
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("DELETE /api/calendar/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "événement introuvable"})
	})
	mux.HandleFunc("POST /api/calendar/{id}/tasks", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Title           string   `json:"title"`
			AssignedUserIDs []string `json:"assignedUserIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		state.lastTask = payload.Title
		state.lastAssignees = payload.AssignedUserIDs
		json.NewEncoder(w).Encode(map[string]any{"id": 7, "title": payload.Title})
	})
	mux.HandleFunc("GET /api/calendar/{id}/balance", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"eventId": 42,
			"total": 90,
			"shares": [
				{"userId": 1, "name": "Alice", "paid": 90, "owes": 0},
				{"userId": 2, "name": "Bob", "paid": 0, "owes": 45}
			]
		}`)
	})
	mux.HandleFunc("POST /api/Auth/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"Token": "jwt-token",
			"User": {"Id": 3, "Name": "Alice", "profilePictureUrl": "/uploads/u3.png"}
		}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, state
}

type backendState struct {
	nextID        int64
	events        []map[string]any
	authHeader    string
	lastTask      string
	lastAssignees []string
}

func TestClient_CreateThenUnified(t *testing.T) {
	srv, _ := newBackend(t)
	client := api.NewClient(srv.URL)
	ctx := context.Background()

	created, err := client.CreateEvent(ctx, &internal.Event{
		Title:    "Dîner",
		StartsAt: time.Date(2024, 12, 24, 19, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2024, 12, 24, 22, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)

	events, err := client.UnifiedEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Dîner", events[0].Title)
	assert.Equal(t, int64(42), events[0].ID)
	assert.True(t, events[0].StartsAt.Equal(time.Date(2024, 12, 24, 19, 0, 0, 0, time.UTC)))
}

func TestClient_DeleteNotFound(t *testing.T) {
	srv, _ := newBackend(t)
	client := api.NewClient(srv.URL)

	err := client.DeleteEvent(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.Contains(t, err.Error(), "événement introuvable")
}

func TestClient_AddTask(t *testing.T) {
	srv, state := newBackend(t)
	client := api.NewClient(srv.URL)

	task, err := client.AddTask(context.Background(), 42, "Acheter le gâteau", []string{"7"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), task.ID)
	assert.Equal(t, "Acheter le gâteau", task.Title)
	assert.Equal(t, "Acheter le gâteau", state.lastTask)
	assert.Equal(t, []string{"7"}, state.lastAssignees)
}

func TestClient_ExpenseBalance(t *testing.T) {
	srv, _ := newBackend(t)
	client := api.NewClient(srv.URL)

	balance, err := client.ExpenseBalance(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), balance.EventID)
	assert.Equal(t, 90.0, balance.Total)
	require.Len(t, balance.Shares, 2)
	assert.Equal(t, "Bob", balance.Shares[1].Name)
	assert.Equal(t, 45.0, balance.Shares[1].Owes)
}

func TestClient_LoginAuthorizesFollowingCalls(t *testing.T) {
	srv, state := newBackend(t)
	client := api.NewClient(srv.URL)
	ctx := context.Background()

	sess, err := client.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", sess.Token)
	assert.Equal(t, int64(3), sess.User.ID)
	assert.Equal(t, srv.URL+"/uploads/u3.png", sess.User.Picture)

	_, err = client.UnifiedEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-token", state.authHeader)
}

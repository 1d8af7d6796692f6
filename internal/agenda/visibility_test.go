package agenda_test

import (
	"testing"

	"github.com/guilherme-santos/famhub/internal"
	"github.com/guilherme-santos/famhub/internal/agenda"
)

const (
	viewerID = int64(1)
	otherID  = int64(2)
)

func TestVisible(t *testing.T) {
	tests := []struct {
		name  string
		event internal.Event
		mode  agenda.Mode
		want  bool
	}{
		{
			name:  "public event in summary",
			event: internal.Event{OwnerID: otherID},
			mode:  agenda.Summary,
			want:  true,
		},
		{
			name:  "someone else's private event excluded from summary",
			event: internal.Event{OwnerID: otherID, IsPrivate: true},
			mode:  agenda.Summary,
			want:  false,
		},
		{
			name:  "someone else's private event stays on the grid",
			event: internal.Event{OwnerID: otherID, IsPrivate: true},
			mode:  agenda.Grid,
			want:  true,
		},
		{
			name:  "own private event in summary",
			event: internal.Event{OwnerID: viewerID, IsPrivate: true},
			mode:  agenda.Summary,
			want:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agenda.Visible(&tt.event, viewerID, tt.mode); got != tt.want {
				t.Errorf("Visible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEditable(t *testing.T) {
	own := internal.Event{OwnerID: viewerID, IsPrivate: true}
	if !agenda.Editable(&own, viewerID) {
		t.Error("own private event must stay editable")
	}
	other := internal.Event{OwnerID: otherID, IsPrivate: true}
	if agenda.Editable(&other, viewerID) {
		t.Error("someone else's private event must not be editable")
	}
	public := internal.Event{OwnerID: otherID}
	if !agenda.Editable(&public, viewerID) {
		t.Error("public events are editable")
	}
}

func TestRender_MasksPrivateEvent(t *testing.T) {
	e := &internal.Event{
		ID:          5,
		Title:       "Rendez-vous médical",
		Description: "Dr Martin",
		Color:       "#ff0000",
		Type:        "Perso",
		IsPrivate:   true,
		OwnerID:     otherID,
		OwnerName:   "Bob",
		Tasks:       []internal.Task{{ID: 1, Title: "secret"}},
	}

	got := agenda.Render(e, viewerID)

	if got.Title != internal.MaskedTitle {
		t.Errorf("title = %q, want %q", got.Title, internal.MaskedTitle)
	}
	if got.Description != "" || got.Type != "" || got.Tasks != nil {
		t.Errorf("details leaked through the mask: %+v", got)
	}
	if got.Color != internal.DefaultColor {
		t.Errorf("color = %q, want the neutral %q", got.Color, internal.DefaultColor)
	}
	if got.ID != e.ID || got.OwnerName != "Bob" {
		t.Error("the busy-block must keep its identity and owner")
	}
	if e.Title != "Rendez-vous médical" {
		t.Error("Render must not mutate the original event")
	}
}

func TestRender_OwnPrivateEventUntouched(t *testing.T) {
	e := &internal.Event{Title: "Cadeaux", IsPrivate: true, OwnerID: viewerID}
	if got := agenda.Render(e, viewerID); got.Title != "Cadeaux" {
		t.Errorf("own private event masked: %+v", got)
	}
}

func TestRender_MaskDetailsHidesDescriptionOnly(t *testing.T) {
	e := &internal.Event{
		Title:       "Anniversaire",
		Description: "surprise pour Alice",
		MaskDetails: true,
		OwnerID:     otherID,
	}
	got := agenda.Render(e, viewerID)
	if got.Title != "Anniversaire" {
		t.Errorf("title = %q, maskDetails must keep the title", got.Title)
	}
	if got.Description != "" {
		t.Error("maskDetails must hide the description")
	}
}

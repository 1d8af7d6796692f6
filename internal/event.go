package internal

import (
	"strings"
	"time"
)

// Defaults applied when the backend omits a field, and the color every
// group-scoped event is forced to on save.
const (
	DefaultTitle = "Sans titre"
	DefaultType  = "Disponible"
	DefaultColor = "#3b82f6"

	// PersonalDraftColor is the color a fresh personal draft starts with.
	PersonalDraftColor = "#117ebd"

	// MaskedTitle replaces the title of someone else's private event when it
	// is rendered as an opaque busy-block.
	MaskedTitle = "Occupé"
)

type Event struct {
	ID           int64
	Title        string
	Description  string
	StartsAt     time.Time
	EndsAt       time.Time
	Color        string
	Type         string
	IsPrivate    bool
	MaskDetails  bool
	GroupID      int64 // 0 means personal
	OwnerID      int64
	OwnerName    string
	OwnerPicture string
	Tasks        []Task
}

func (e Event) Persisted() bool {
	return e.ID != 0
}

func (e Event) IsGroupEvent() bool {
	return e.GroupID != 0
}

func (e Event) OwnedBy(userID int64) bool {
	return e.OwnerID == userID
}

// DisplayTitle is the title an event is saved and rendered with: the trimmed
// title, or the event type, or "Sans titre".
func (e Event) DisplayTitle() string {
	if title := strings.TrimSpace(e.Title); title != "" {
		return title
	}
	if e.Type != "" {
		return e.Type
	}
	return DefaultTitle
}

// Task is a checklist item attached to a group event.
type Task struct {
	ID                int64
	Title             string
	IsCompleted       bool
	AssignedUserNames []string
}

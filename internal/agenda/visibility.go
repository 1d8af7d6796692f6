package agenda

import (
	"github.com/guilherme-santos/famhub/internal"
)

// Mode selects which privacy policy applies. The two call sites deliberately
// differ: the upcoming list drops other people's private events, the calendar
// grid keeps them as opaque busy-blocks.
type Mode int

const (
	Summary Mode = iota
	Grid
)

// Visible reports whether the viewer may see the event at all under the given
// mode. The viewer's own private events are always visible.
func Visible(e *Event, viewerID int64, mode Mode) bool {
	if e.IsPrivate && !e.OwnedBy(viewerID) {
		return mode == Grid
	}
	return true
}

// Editable reports whether the viewer may open the event for editing.
// Clicking someone else's private event is a no-op.
func Editable(e *Event, viewerID int64) bool {
	return !e.IsPrivate || e.OwnedBy(viewerID)
}

// Render returns the event as the viewer may see it. Someone else's private
// event keeps its time slot and owner but loses title, description, tasks and
// color. maskDetails hides the description alone.
func Render(e *Event, viewerID int64) *Event {
	if e.OwnedBy(viewerID) {
		return e
	}
	if e.IsPrivate {
		masked := *e
		masked.Title = internal.MaskedTitle
		masked.Description = ""
		masked.Type = ""
		masked.Color = internal.DefaultColor
		masked.Tasks = nil
		return &masked
	}
	if e.MaskDetails {
		masked := *e
		masked.Description = ""
		return &masked
	}
	return e
}

package agenda

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/guilherme-santos/famhub/internal"
)

var (
	// ErrMissingTime blocks a save before any network call is made.
	ErrMissingTime = errors.New("agenda: start and end are required")
	// ErrNotEditable is returned when the clicked event may not be opened.
	ErrNotEditable = errors.New("agenda: event is not editable")
	// ErrNoEvent is returned by operations that need a saved event.
	ErrNoEvent = errors.New("agenda: no saved event selected")
)

type (
	Event   = internal.Event
	Task    = internal.Task
	Member  = internal.Member
	Session = internal.Session
)

// State is the draft lifecycle of the agenda.
type State int

const (
	Idle State = iota
	Creating
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Agenda owns the currently loaded event set and the create/edit draft for
// one calendar scope, either the viewer's unified feed or a single group. It
// never holds authoritative state: every successful mutation is followed by a
// full refetch, not a local patch.
//
// All methods run on the caller's single goroutine; backend calls are plain
// blocking round trips.
type Agenda struct {
	output    io.Writer
	source    internal.EventSource
	directory internal.Directory
	session   *Session
	group     *internal.Group // nil means unified scope

	state   State
	events  []*Event
	members []*Member
	draft   Event
	seq     uint64
}

func New(output io.Writer, source internal.EventSource, directory internal.Directory, session *Session, group *internal.Group) *Agenda {
	if output == nil {
		output = os.Stdout
	}
	return &Agenda{
		output:    output,
		source:    source,
		directory: directory,
		session:   session,
		group:     group,
	}
}

// Reload refetches the full event feed for the current scope. A response from
// a reload that has been superseded by a newer one is discarded, so a slow
// stale answer can never overwrite fresher state. On failure the previous
// event set is left untouched.
func (a *Agenda) Reload(ctx context.Context) error {
	a.seq++
	seq := a.seq

	var (
		events []*Event
		err    error
	)
	if a.group != nil {
		events, err = a.source.GroupEvents(ctx, a.group.ID)
	} else {
		events, err = a.source.UnifiedEvents(ctx)
	}
	if err != nil {
		a.logf("Unable to load events: %v", err)
		return err
	}
	if seq != a.seq {
		return nil
	}
	a.events = events
	return nil
}

// LoadMembers fetches the member list of the scoped group, used to resolve
// task assignee names and render the grid. No-op on the unified scope.
func (a *Agenda) LoadMembers(ctx context.Context) error {
	if a.group == nil {
		return nil
	}
	members, err := a.directory.GroupMembers(ctx, a.group.ID)
	if err != nil {
		a.logf("Unable to load members: %v", err)
		return err
	}
	a.members = members
	return nil
}

// StartCreate opens a fresh draft for the selected time range.
func (a *Agenda) StartCreate(start, end time.Time) {
	draft := Event{
		Type:     internal.DefaultType,
		Color:    internal.PersonalDraftColor,
		StartsAt: start,
		EndsAt:   end,
		OwnerID:  a.session.UserID(),
	}
	if a.group != nil {
		draft.GroupID = a.group.ID
		draft.Color = internal.DefaultColor
	}
	a.draft = draft
	a.state = Creating
}

// StartEdit opens the given event for editing. Someone else's private event
// refuses to open.
func (a *Agenda) StartEdit(id int64) error {
	e := a.event(id)
	if e == nil {
		return ErrNoEvent
	}
	if !Editable(e, a.session.UserID()) {
		return ErrNotEditable
	}
	a.draft = *e
	a.draft.Tasks = append([]Task(nil), e.Tasks...)
	a.state = Editing
	return nil
}

// EditDraft applies form input to the open draft. Outside Creating/Editing
// there is no draft to edit and the call is ignored.
func (a *Agenda) EditDraft(update func(*Event)) {
	if a.state != Creating && a.state != Editing {
		return
	}
	update(&a.draft)
}

// Cancel discards the draft without any network call.
func (a *Agenda) Cancel() {
	a.draft = Event{}
	a.state = Idle
}

// Save validates and persists the draft, then refetches the feed. On failure
// the draft and the prior state are preserved so the user can retry.
func (a *Agenda) Save(ctx context.Context) error {
	if a.state != Creating && a.state != Editing {
		return nil
	}
	if a.draft.StartsAt.IsZero() || a.draft.EndsAt.IsZero() {
		return ErrMissingTime
	}

	prev := a.state
	a.draft.Title = a.draft.DisplayTitle()
	if a.draft.IsGroupEvent() {
		// group events always use the group color, whatever was picked
		a.draft.Color = internal.DefaultColor
	}

	a.state = Submitting
	var err error
	if prev == Editing && a.draft.Persisted() {
		_, err = a.source.UpdateEvent(ctx, a.draft.ID, &a.draft)
	} else {
		_, err = a.source.CreateEvent(ctx, &a.draft)
	}
	if err != nil {
		a.state = prev
		a.logf("Unable to save event: %v", err)
		return err
	}

	reloadErr := a.Reload(ctx)
	a.draft = Event{}
	a.state = Idle
	return reloadErr
}

// Delete removes the event under edit. The editor closes whatever the
// outcome, since the usual failure is the record being gone already, and the
// feed is refetched either way. Without a saved event it is a no-op.
func (a *Agenda) Delete(ctx context.Context) error {
	if !a.draft.Persisted() {
		return nil
	}
	err := a.source.DeleteEvent(ctx, a.draft.ID)
	if err != nil {
		a.logf("Unable to delete event %d: %v", a.draft.ID, err)
	}

	a.draft = Event{}
	a.state = Idle
	if reloadErr := a.Reload(ctx); err == nil {
		err = reloadErr
	}
	return err
}

// AddTask attaches a checklist item to the event under edit and appends the
// created task to the draft right away, with assignee names resolved from the
// loaded member list. This is the one deliberate local patch: it hides the
// gap until the next full reload.
func (a *Agenda) AddTask(ctx context.Context, title string, assignedUserIDs []string) error {
	if !a.draft.Persisted() {
		return ErrNoEvent
	}
	task, err := a.source.AddTask(ctx, a.draft.ID, title, assignedUserIDs)
	if err != nil {
		a.logf("Unable to add task: %v", err)
		return err
	}
	task.AssignedUserNames = a.memberNames(assignedUserIDs)
	a.draft.Tasks = append(a.draft.Tasks, *task)
	return nil
}

func (a *Agenda) memberNames(ids []string) []string {
	var names []string
	for _, id := range ids {
		userID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		for _, m := range a.members {
			if m.UserID == userID {
				names = append(names, m.Name)
				break
			}
		}
	}
	return names
}

const upcomingLimit = 6

// Upcoming is the summary feed: future events the viewer may see, soonest
// first, capped at six. Other people's private events are excluded entirely.
func (a *Agenda) Upcoming(now time.Time) []*Event {
	viewer := a.session.UserID()

	var out []*Event
	for _, e := range a.events {
		if !e.StartsAt.After(now) {
			continue
		}
		if !Visible(e, viewer, Summary) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}

// Grid is the calendar-grid feed: every loaded event, with other people's
// private ones rendered as opaque busy-blocks.
func (a *Agenda) Grid() []*Event {
	viewer := a.session.UserID()

	out := make([]*Event, 0, len(a.events))
	for _, e := range a.events {
		if !Visible(e, viewer, Grid) {
			continue
		}
		out = append(out, Render(e, viewer))
	}
	return out
}

func (a *Agenda) State() State {
	return a.state
}

func (a *Agenda) Draft() Event {
	return a.draft
}

func (a *Agenda) Events() []*Event {
	return a.events
}

func (a *Agenda) Members() []*Member {
	return a.members
}

func (a *Agenda) event(id int64) *Event {
	for _, e := range a.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (a *Agenda) logf(format string, args ...any) {
	internal.Logf(a.output, "", a.group, format, args...)
}

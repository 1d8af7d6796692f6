package internal

import (
	"context"
)

// EventSource is the backend's calendar surface. It holds the authoritative
// state: callers never merge-patch locally, they refetch after every mutation.
type EventSource interface {
	CreateEvent(context.Context, *Event) (*Event, error)
	EventsForUser(_ context.Context, userID int64) ([]*Event, error)
	UnifiedEvents(context.Context) ([]*Event, error)
	GroupEvents(_ context.Context, groupID int64) ([]*Event, error)
	UpdateEvent(_ context.Context, id int64, _ *Event) (*Event, error)
	DeleteEvent(_ context.Context, id int64) error
	ExpenseBalance(_ context.Context, eventID int64) (*Balance, error)
	AddTask(_ context.Context, eventID int64, title string, assignedUserIDs []string) (*Task, error)
}

// Directory is the backend's group membership surface.
type Directory interface {
	MyGroups(context.Context) ([]*Group, error)
	GroupByID(_ context.Context, groupID int64) (*Group, error)
	GroupMembers(_ context.Context, groupID int64) ([]*Member, error)
	GroupMessages(_ context.Context, groupID int64) ([]*Message, error)
	CreateGroup(_ context.Context, name, description string) (*Group, error)
	JoinByCode(_ context.Context, code string) error
	RequestJoin(_ context.Context, groupID int64) error
	DeleteGroup(_ context.Context, groupID int64) error
	TransferAdmin(_ context.Context, groupID, newOwnerID int64) error
	InviteUser(_ context.Context, groupID, userID int64) error
	RemoveMember(_ context.Context, groupID, userID int64) error
	SearchUsersNotInGroup(_ context.Context, groupID int64, query string) ([]*Member, error)
}

// MessageIterator yields inbound chat messages as they arrive.
type MessageIterator interface {
	Next() bool
	Message() *Message
	Err() error
}

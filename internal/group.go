package internal

import (
	"strconv"
	"time"
)

type Group struct {
	ID          int64
	Name        string
	Description string
	InviteCode  string
}

func (g Group) String() string {
	if g.Name != "" {
		return g.Name
	}
	return strconv.FormatInt(g.ID, 10)
}

const RoleAdmin = "Admin"

type Member struct {
	UserID  int64
	Name    string
	Role    string
	Picture string
}

func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// Message is a chat message in a group conversation, either loaded from the
// history endpoint or received live from the hub.
type Message struct {
	SenderName string
	Content    string
	Timestamp  time.Time
}

// Balance is the expense split attached to an event, computed server-side.
type Balance struct {
	EventID int64
	Total   float64
	Shares  []BalanceShare
}

type BalanceShare struct {
	UserID int64
	Name   string
	Paid   float64
	Owes   float64
}

// SantaTarget is the viewer's pairing in a secret-santa draw. The draw itself
// happens server-side; this is only what the backend reveals to the viewer.
type SantaTarget struct {
	IsGiver      bool
	ReceiverName string
	Wishlist     string
}

package api

import (
	"strings"
	"time"

	"github.com/guilherme-santos/famhub/internal"
)

// rawEvent is the loose shape the backend serves. encoding/json matches keys
// case-insensitively, so title/Title land on the same field; only genuinely
// renamed keys need a second slot.
type rawEvent struct {
	ID             *int64    `json:"id"`
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Start          *string   `json:"start"`
	End            *string   `json:"end"`
	Color          *string   `json:"color"`
	Type           *string   `json:"type"`
	IsPrivate      *bool     `json:"isPrivate"`
	IsPrivateEvent *bool     `json:"IsPrivateEvent"`
	MaskDetails    *bool     `json:"maskDetails"`
	GroupID        *int64    `json:"groupId"`
	UserID         *int64    `json:"userId"`
	UserName       *string   `json:"userName"`
	UserPicture    *string   `json:"userPicture"`
	Tasks          []rawTask `json:"tasks"`
}

// convert normalizes a raw record into the canonical event. Absent fields
// degrade to defaults, never to an error, and converting an already-canonical
// record is a no-op.
func (r rawEvent) convert(baseURL string) *internal.Event {
	e := &internal.Event{
		ID:           i64(r.ID),
		Title:        strOr(r.Title, internal.DefaultTitle),
		Description:  str(r.Description),
		StartsAt:     parseWhen(str(r.Start)),
		EndsAt:       parseWhen(str(r.End)),
		Color:        strOr(r.Color, internal.DefaultColor),
		Type:         strOr(r.Type, internal.DefaultType),
		IsPrivate:    truthy(r.IsPrivate) || truthy(r.IsPrivateEvent),
		MaskDetails:  truthy(r.MaskDetails),
		GroupID:      i64(r.GroupID),
		OwnerID:      i64(r.UserID),
		OwnerName:    strOr(r.UserName, "Utilisateur"),
		OwnerPicture: absoluteURL(str(r.UserPicture), baseURL),
	}
	for _, t := range r.Tasks {
		e.Tasks = append(e.Tasks, t.convert())
	}
	return e
}

type rawTask struct {
	ID                *int64   `json:"id"`
	Title             *string  `json:"title"`
	IsCompleted       *bool    `json:"isCompleted"`
	AssignedUserNames []string `json:"assignedUserNames"`
}

func (r rawTask) convert() internal.Task {
	return internal.Task{
		ID:                i64(r.ID),
		Title:             str(r.Title),
		IsCompleted:       truthy(r.IsCompleted),
		AssignedUserNames: r.AssignedUserNames,
	}
}

// wireEvent is what create/update calls send: canonical camelCase, groupId
// null for personal events.
type wireEvent struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Color       string `json:"color"`
	Type        string `json:"type"`
	IsPrivate   bool   `json:"isPrivate"`
	MaskDetails bool   `json:"maskDetails"`
	GroupID     *int64 `json:"groupId"`
	UserID      int64  `json:"userId"`
}

const wireTimeLayout = "2006-01-02T15:04:05"

func newWireEvent(e *internal.Event) wireEvent {
	w := wireEvent{
		ID:          e.ID,
		Title:       e.DisplayTitle(),
		Description: e.Description,
		Start:       e.StartsAt.Format(wireTimeLayout),
		End:         e.EndsAt.Format(wireTimeLayout),
		Color:       e.Color,
		Type:        e.Type,
		IsPrivate:   e.IsPrivate,
		MaskDetails: e.MaskDetails,
		UserID:      e.OwnerID,
	}
	if e.GroupID != 0 {
		gid := e.GroupID
		w.GroupID = &gid
	}
	return w
}

type rawGroup struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	InviteCode  *string `json:"inviteCode"`
}

func (r rawGroup) convert() *internal.Group {
	return &internal.Group{
		ID:          i64(r.ID),
		Name:        str(r.Name),
		Description: str(r.Description),
		InviteCode:  str(r.InviteCode),
	}
}

type rawMember struct {
	UserID  *int64  `json:"userId"`
	Name    *string `json:"name"`
	Role    *string `json:"role"`
	Picture *string `json:"profilePictureUrl"`
}

func (r rawMember) convert(baseURL string) *internal.Member {
	return &internal.Member{
		UserID:  i64(r.UserID),
		Name:    str(r.Name),
		Role:    str(r.Role),
		Picture: absoluteURL(str(r.Picture), baseURL),
	}
}

type rawMessage struct {
	SenderName *string `json:"senderName"`
	Content    *string `json:"content"`
	Timestamp  *string `json:"timestamp"`
}

func (r rawMessage) convert() *internal.Message {
	return &internal.Message{
		SenderName: str(r.SenderName),
		Content:    str(r.Content),
		Timestamp:  parseWhen(str(r.Timestamp)),
	}
}

type rawBalance struct {
	EventID *int64 `json:"eventId"`
	Total   *float64
	Shares  []struct {
		UserID *int64 `json:"userId"`
		Name   *string
		Paid   *float64
		Owes   *float64
	}
}

func (r rawBalance) convert() *internal.Balance {
	b := &internal.Balance{
		EventID: i64(r.EventID),
	}
	if r.Total != nil {
		b.Total = *r.Total
	}
	for _, s := range r.Shares {
		share := internal.BalanceShare{
			UserID: i64(s.UserID),
			Name:   str(s.Name),
		}
		if s.Paid != nil {
			share.Paid = *s.Paid
		}
		if s.Owes != nil {
			share.Owes = *s.Owes
		}
		b.Shares = append(b.Shares, share)
	}
	return b
}

type rawUser struct {
	ID      *int64  `json:"id"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Picture *string `json:"profilePictureUrl"`
}

func (r rawUser) convert(baseURL string) internal.User {
	return internal.User{
		ID:      i64(r.ID),
		Name:    str(r.Name),
		Email:   str(r.Email),
		Picture: absoluteURL(str(r.Picture), baseURL),
	}
}

// loginResponse tolerates the three spellings the backend has used for the
// token field.
type loginResponse struct {
	Token   *string  `json:"token"`
	IDToken *string  `json:"idToken"`
	User    *rawUser `json:"user"`
}

func (r loginResponse) convert(baseURL string) *internal.Session {
	sess := &internal.Session{
		Token: strOr(r.Token, str(r.IDToken)),
	}
	if r.User != nil {
		sess.User = r.User.convert(baseURL)
	}
	return sess
}

type rawSantaTarget struct {
	IsGiver      *bool   `json:"isGiver"`
	ReceiverName *string `json:"receiverName"`
	Wishlist     *string `json:"wishlist"`
}

func (r rawSantaTarget) convert() *internal.SantaTarget {
	return &internal.SantaTarget{
		IsGiver:      truthy(r.IsGiver),
		ReceiverName: str(r.ReceiverName),
		Wishlist:     str(r.Wishlist),
	}
}

var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseWhen(s string) time.Time {
	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func absoluteURL(u, baseURL string) string {
	if u == "" || strings.HasPrefix(u, "http") {
		return u
	}
	return baseURL + u
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// strOr treats both nil and "" as absent: the backend serves empty strings
// and missing keys interchangeably.
func strOr(p *string, fallback string) string {
	if s := str(p); s != "" {
		return s
	}
	return fallback
}

func i64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func truthy(p *bool) bool {
	return p != nil && *p
}

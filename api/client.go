package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"github.com/guilherme-santos/famhub/internal"
)

// Client talks to the family-organizer backend. Every call is a plain
// request/response round trip: no retries, no local caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	output     io.Writer

	Verbose bool
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		output:     os.Stdout,
	}
}

// SetToken authorizes every subsequent call with the session token. Login
// calls it automatically.
func (c *Client) SetToken(token string) {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	c.httpClient = oauth2.NewClient(context.Background(), src)
}

var (
	_ internal.EventSource = (*Client)(nil)
	_ internal.Directory   = (*Client)(nil)
)

func (c *Client) CreateEvent(ctx context.Context, e *internal.Event) (*internal.Event, error) {
	c.logf(nil, "creating event %q on %s", e.DisplayTitle(), e.StartsAt.Format(wireTimeLayout))

	var raw rawEvent
	err := c.do(ctx, http.MethodPost, "/api/calendar", newWireEvent(e), &raw)
	if err != nil {
		return nil, err
	}
	return raw.convert(c.baseURL), nil
}

func (c *Client) EventsForUser(ctx context.Context, userID int64) ([]*internal.Event, error) {
	return c.listEvents(ctx, fmt.Sprintf("/api/calendar/user/%d", userID))
}

func (c *Client) UnifiedEvents(ctx context.Context) ([]*internal.Event, error) {
	return c.listEvents(ctx, "/api/calendar/unified")
}

func (c *Client) GroupEvents(ctx context.Context, groupID int64) ([]*internal.Event, error) {
	return c.listEvents(ctx, fmt.Sprintf("/api/calendar/group/%d", groupID))
}

func (c *Client) listEvents(ctx context.Context, path string) ([]*internal.Event, error) {
	var raws []rawEvent
	err := c.do(ctx, http.MethodGet, path, nil, &raws)
	if err != nil {
		return nil, err
	}
	events := make([]*internal.Event, len(raws))
	for i, raw := range raws {
		events[i] = raw.convert(c.baseURL)
	}
	return events, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, e *internal.Event) (*internal.Event, error) {
	c.logf(nil, "updating event %d: %q", id, e.DisplayTitle())

	var raw rawEvent
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/calendar/%d", id), newWireEvent(e), &raw)
	if err != nil {
		return nil, err
	}
	return raw.convert(c.baseURL), nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	c.logf(nil, "deleting event %d", id)
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/calendar/%d", id), nil, nil)
}

func (c *Client) ExpenseBalance(ctx context.Context, eventID int64) (*internal.Balance, error) {
	var raw rawBalance
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/calendar/%d/balance", eventID), nil, &raw)
	if err != nil {
		return nil, err
	}
	return raw.convert(), nil
}

func (c *Client) AddTask(ctx context.Context, eventID int64, title string, assignedUserIDs []string) (*internal.Task, error) {
	c.logf(nil, "adding task %q to event %d", title, eventID)

	body := struct {
		Title           string   `json:"title"`
		AssignedUserIDs []string `json:"assignedUserIds"`
	}{title, assignedUserIDs}

	var raw rawTask
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/calendar/%d/tasks", eventID), body, &raw)
	if err != nil {
		return nil, err
	}
	task := raw.convert()
	return &task, nil
}

func (c *Client) MyGroups(ctx context.Context) ([]*internal.Group, error) {
	var raws []rawGroup
	err := c.do(ctx, http.MethodGet, "/api/Group/my-groups", nil, &raws)
	if err != nil {
		return nil, err
	}
	groups := make([]*internal.Group, len(raws))
	for i, raw := range raws {
		groups[i] = raw.convert()
	}
	return groups, nil
}

func (c *Client) GroupByID(ctx context.Context, groupID int64) (*internal.Group, error) {
	var raw rawGroup
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/Group/%d", groupID), nil, &raw)
	if err != nil {
		return nil, err
	}
	return raw.convert(), nil
}

func (c *Client) GroupMembers(ctx context.Context, groupID int64) ([]*internal.Member, error) {
	var raws []rawMember
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/Group/%d/members", groupID), nil, &raws)
	if err != nil {
		return nil, err
	}
	members := make([]*internal.Member, len(raws))
	for i, raw := range raws {
		members[i] = raw.convert(c.baseURL)
	}
	return members, nil
}

func (c *Client) GroupMessages(ctx context.Context, groupID int64) ([]*internal.Message, error) {
	var raws []rawMessage
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/Group/%d/messages", groupID), nil, &raws)
	if err != nil {
		return nil, err
	}
	msgs := make([]*internal.Message, len(raws))
	for i, raw := range raws {
		msgs[i] = raw.convert()
	}
	return msgs, nil
}

func (c *Client) CreateGroup(ctx context.Context, name, description string) (*internal.Group, error) {
	body := struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}{name, description}

	var raw rawGroup
	err := c.do(ctx, http.MethodPost, "/api/Group/create", body, &raw)
	if err != nil {
		return nil, err
	}
	return raw.convert(), nil
}

// JoinByCode posts the invite code as a bare JSON string, which is what the
// backend expects on this endpoint.
func (c *Client) JoinByCode(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodPost, "/api/Group/join/code", code, nil)
}

func (c *Client) RequestJoin(ctx context.Context, groupID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/Group/join/request/%d", groupID), nil, nil)
}

func (c *Client) DeleteGroup(ctx context.Context, groupID int64) error {
	c.logf(nil, "deleting group %d", groupID)
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/Group/%d", groupID), nil, nil)
}

func (c *Client) TransferAdmin(ctx context.Context, groupID, newOwnerID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/Group/%d/transfer/%d", groupID, newOwnerID), nil, nil)
}

func (c *Client) InviteUser(ctx context.Context, groupID, userID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/Group/%d/invite/%d", groupID, userID), nil, nil)
}

func (c *Client) RemoveMember(ctx context.Context, groupID, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/Group/%d/members/%d", groupID, userID), nil, nil)
}

func (c *Client) SearchUsersNotInGroup(ctx context.Context, groupID int64, query string) ([]*internal.Member, error) {
	var raws []rawMember
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/Group/%d/search-users?query=%s", groupID, query), nil, &raws)
	if err != nil {
		return nil, err
	}
	members := make([]*internal.Member, len(raws))
	for i, raw := range raws {
		members[i] = raw.convert(c.baseURL)
	}
	return members, nil
}

// Login exchanges credentials for a session and authorizes the client with
// the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*internal.Session, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var res loginResponse
	err := c.do(ctx, http.MethodPost, "/api/Auth/login", body, &res)
	if err != nil {
		return nil, err
	}
	sess := res.convert(c.baseURL)
	if sess.Token == "" {
		return nil, errors.New("api: no token in login response")
	}
	c.SetToken(sess.Token)
	return sess, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{name, email, password}
	return c.do(ctx, http.MethodPost, "/api/Auth/register", body, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{email}
	return c.do(ctx, http.MethodPost, "/api/Auth/forgot-password", body, nil)
}

// Secret-santa surface. The pairing draw happens server-side; these only
// fetch and push what the backend reveals to the viewer.

func (c *Client) MyTarget(ctx context.Context, resultID, userID int64) (*internal.SantaTarget, error) {
	var raw rawSantaTarget
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/Randomizer/my-target/%d/%d", resultID, userID), nil, &raw)
	if err != nil {
		return nil, err
	}
	return raw.convert(), nil
}

func (c *Client) SecretChatHistory(ctx context.Context, resultID, userID int64) ([]*internal.Message, error) {
	var raws []rawMessage
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/Randomizer/chat-history/%d/%d", resultID, userID), nil, &raws)
	if err != nil {
		return nil, err
	}
	msgs := make([]*internal.Message, len(raws))
	for i, raw := range raws {
		msgs[i] = raw.convert()
	}
	return msgs, nil
}

func (c *Client) SendSecretMessage(ctx context.Context, resultID, senderID int64, content string) error {
	body := struct {
		ResultID int64  `json:"resultId"`
		SenderID int64  `json:"senderId"`
		Content  string `json:"content"`
	}{resultID, senderID, content}
	return c.do(ctx, http.MethodPost, "/api/Randomizer/send-secret-message", body, nil)
}

func (c *Client) UpdateWishlist(ctx context.Context, resultID int64, wishlist string) error {
	body := struct {
		Wishlist string `json:"wishlist"`
	}{wishlist}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/Randomizer/update-wishlist/%d", resultID), body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newError(res)
	}
	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return nil
}

func (c *Client) logf(group *internal.Group, format string, a ...any) {
	if c.Verbose {
		internal.Logf(c.output, "api:", group, format, a...)
	}
}

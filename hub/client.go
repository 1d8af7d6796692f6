// Package hub is the real-time chat side of the organizer: a websocket
// client that joins group channels and streams their messages.
package hub

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/guilherme-santos/famhub/internal"
)

// frame mirrors the hub's invocation protocol: a target method name and its
// string arguments.
type frame struct {
	Target    string   `json:"target"`
	Arguments []string `json:"arguments"`
}

const (
	targetJoin    = "JoinGroupHub"
	targetLeave   = "LeaveGroupHub"
	targetSend    = "SendMessageToGroup"
	targetReceive = "ReceiveMessage"
)

// Client is one connection to the chat hub. A view that joins a group must
// leave it on teardown; the pairing is the caller's responsibility.
type Client struct {
	conn *websocket.Conn

	writeMu  sync.Mutex
	readOnce sync.Once
	it       *messageIterator
}

func Dial(ctx context.Context, url, token string) (*Client, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

func (c *Client) JoinGroup(groupID int64) error {
	return c.invoke(targetJoin, strconv.FormatInt(groupID, 10))
}

func (c *Client) LeaveGroup(groupID int64) error {
	return c.invoke(targetLeave, strconv.FormatInt(groupID, 10))
}

func (c *Client) SendToGroup(groupID int64, content string, senderID int64, senderName string) error {
	return c.invoke(targetSend,
		strconv.FormatInt(groupID, 10),
		content,
		strconv.FormatInt(senderID, 10),
		senderName,
	)
}

func (c *Client) invoke(target string, args ...string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(frame{Target: target, Arguments: args})
}

// Messages returns the iterator over inbound chat messages. The read loop
// starts on the first call; the sequence ends when the connection closes.
func (c *Client) Messages() internal.MessageIterator {
	c.readOnce.Do(func() {
		c.it = newMessageIterator()
		go c.readLoop(c.it.msgs)
	})
	return c.it
}

func (c *Client) readLoop(out chan messageOrError) {
	defer close(out)
	for {
		var f frame
		err := c.conn.ReadJSON(&f)
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
				errors.Is(err, net.ErrClosed) {
				// the peer said goodbye, or we hung up ourselves
				return
			}
			out <- messageOrError{err: err}
			return
		}
		if f.Target != targetReceive || len(f.Arguments) < 3 {
			continue
		}
		ts, _ := time.Parse(time.RFC3339, f.Arguments[2])
		out <- messageOrError{m: &internal.Message{
			SenderName: f.Arguments[0],
			Content:    f.Arguments[1],
			Timestamp:  ts,
		}}
	}
}

func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/guilherme-santos/famhub/hub"
)

var ChatCommand = _chatCommand{
	Name:        "chat",
	Description: "Join a group's chat: stream messages, type to send",
}

type _chatCommand struct {
	Name        string
	Description string
}

func (c _chatCommand) Run(ctx context.Context, env Env, args []string) error {
	var groupID int64

	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.Int64Var(&groupID, "group", 0, "group id to chat in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if groupID == 0 {
		return fmt.Errorf("%s: -group is required", c.Name)
	}

	client, sess, _, err := newClient(ctx, env)
	if err != nil {
		return err
	}
	w := flag.CommandLine.Output()

	// Chat history first, then the live stream.
	history, err := client.GroupMessages(ctx, groupID)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	for _, m := range history {
		fmt.Fprintf(w, "[%s] %s: %s\n", m.Timestamp.Format("15:04"), m.SenderName, m.Content)
	}

	conn, err := hub.Dial(ctx, env.HubURL, sess.Token)
	if err != nil {
		return fmt.Errorf("connecting to hub: %w", err)
	}
	if err := conn.JoinGroup(groupID); err != nil {
		conn.Close()
		return err
	}
	// Leaving must pair with the join, or the hub keeps pushing us this
	// group's messages.
	defer func() {
		_ = conn.LeaveGroup(groupID)
		_ = conn.Close()
	}()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			if err := conn.SendToGroup(groupID, text, sess.User.ID, sess.User.Name); err != nil {
				return
			}
		}
	}()

	it := conn.Messages()
	for it.Next() {
		m := it.Message()
		fmt.Fprintf(w, "[%s] %s: %s\n", m.Timestamp.Format("15:04"), m.SenderName, m.Content)
	}
	if err := it.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

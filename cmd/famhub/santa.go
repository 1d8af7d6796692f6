package main

import (
	"context"
	"flag"
	"fmt"
)

var SantaCommand = _santaCommand{
	Name:        "santa",
	Description: "Show your secret-santa pairing, wishlist and chat",
}

type _santaCommand struct {
	Name        string
	Description string
}

func (c _santaCommand) Run(ctx context.Context, env Env, args []string) error {
	var (
		resultID int64
		wishlist string
		send     string
	)

	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.Int64Var(&resultID, "result", 0, "draw result id")
	fs.StringVar(&wishlist, "wishlist", "", "update your wishlist")
	fs.StringVar(&send, "send", "", "send an anonymous message to your pair")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if resultID == 0 {
		return fmt.Errorf("%s: -result is required", c.Name)
	}

	client, sess, _, err := newClient(ctx, env)
	if err != nil {
		return err
	}
	w := flag.CommandLine.Output()

	if wishlist != "" {
		if err := client.UpdateWishlist(ctx, resultID, wishlist); err != nil {
			return fmt.Errorf("updating wishlist: %w", err)
		}
		fmt.Fprintln(w, "Wishlist updated!")
	}
	if send != "" {
		if err := client.SendSecretMessage(ctx, resultID, sess.User.ID, send); err != nil {
			return fmt.Errorf("sending message: %w", err)
		}
	}

	target, err := client.MyTarget(ctx, resultID, sess.User.ID)
	if err != nil {
		return err
	}
	if target.IsGiver {
		fmt.Fprintf(w, "You are giving to: %s\n", target.ReceiverName)
		if target.Wishlist != "" {
			fmt.Fprintf(w, "Their wishlist: %s\n", target.Wishlist)
		}
	} else {
		fmt.Fprintln(w, "Someone drew your name, keep your wishlist up to date!")
	}

	history, err := client.SecretChatHistory(ctx, resultID, sess.User.ID)
	if err != nil {
		return err
	}
	if len(history) > 0 {
		fmt.Fprintln(w)
		for _, m := range history {
			fmt.Fprintf(w, "[%s] %s: %s\n", m.Timestamp.Format("02 Jan 15:04"), m.SenderName, m.Content)
		}
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
)

var GroupsCommand = _groupsCommand{
	Name:        "groups",
	Description: "List, create or join groups",
}

type _groupsCommand struct {
	Name        string
	Description string
}

func (c _groupsCommand) Run(ctx context.Context, env Env, args []string) error {
	var (
		create      string
		description string
		join        string
		members     int64
	)

	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.StringVar(&create, "create", "", "create a group with this name")
	fs.StringVar(&description, "desc", "", "description for -create")
	fs.StringVar(&join, "join", "", "join a group with this invite code")
	fs.Int64Var(&members, "members", 0, "list the members of this group id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, _, storage, err := newClient(ctx, env)
	if err != nil {
		return err
	}
	w := flag.CommandLine.Output()

	switch {
	case create != "":
		group, err := client.CreateGroup(ctx, create, description)
		if err != nil {
			return fmt.Errorf("creating group: %w", err)
		}
		fmt.Fprintf(w, "Group %q created, invite code: %s\n", group.Name, group.InviteCode)

	case join != "":
		if err := client.JoinByCode(ctx, join); err != nil {
			return fmt.Errorf("joining group: %w", err)
		}
		fmt.Fprintln(w, "Joined!")

	case members != 0:
		list, err := client.GroupMembers(ctx, members)
		if err != nil {
			return err
		}
		for _, m := range list {
			fmt.Fprintf(w, "%-20s %s\n", m.Name, m.Role)
		}
		return nil

	default:
		groups, err := client.MyGroups(ctx)
		if err != nil {
			return err
		}
		_ = storage.SaveGroups(ctx, groups)
		for _, g := range groups {
			fmt.Fprintf(w, "%4d  %-20s %s\n", g.ID, g.Name, g.Description)
		}
		return nil
	}

	// Membership changed, refresh the local group list.
	if groups, err := client.MyGroups(ctx); err == nil {
		_ = storage.SaveGroups(ctx, groups)
	}
	return nil
}

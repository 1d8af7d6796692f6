package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/guilherme-santos/famhub/internal/agenda"
)

var AgendaCommand = _agendaCommand{
	Name:        "agenda",
	Description: "Show the next events across all your calendars",
}

type _agendaCommand struct {
	Name        string
	Description string
}

func (c _agendaCommand) Run(ctx context.Context, env Env, args []string) error {
	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, sess, _, err := newClient(ctx, env)
	if err != nil {
		return err
	}

	w := flag.CommandLine.Output()
	ag := agenda.New(w, client, client, sess, nil)
	if err := ag.Reload(ctx); err != nil {
		return err
	}

	upcoming := ag.Upcoming(time.Now())
	if len(upcoming) == 0 {
		fmt.Fprintln(w, "No upcoming events")
		return nil
	}
	for _, e := range upcoming {
		scope := "perso"
		if e.IsGroupEvent() {
			scope = fmt.Sprintf("groupe %d", e.GroupID)
		}
		lock := ""
		if e.IsPrivate {
			lock = " [privé]"
		}
		fmt.Fprintf(w, "%s  %s — %s (%s)%s\n",
			formatDateTime(e.StartsAt), e.Title, e.OwnerName, scope, lock)
	}
	return nil
}

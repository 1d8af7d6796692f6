package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/guilherme-santos/famhub/internal"
	"github.com/guilherme-santos/famhub/internal/agenda"
)

var CalendarCommand = _calendarCommand{
	Name:        "calendar",
	Description: "List the calendar grid, unified or scoped to one group",
}

type _calendarCommand struct {
	Name        string
	Description string
}

func (c _calendarCommand) Run(ctx context.Context, env Env, args []string) error {
	var (
		groupID   int64
		balanceID int64
		from      = internal.Today()
		to        = internal.Today().AddDate(0, 0, 7)
	)

	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.Int64Var(&groupID, "group", 0, "scope to this group id (0 = unified)")
	fs.Var(&from, "from", "first day to list (e.g. 2024-12-24)")
	fs.Var(&to, "to", "day to stop at, exclusive")
	fs.Int64Var(&balanceID, "balance", 0, "also show the expense balance of this event id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, sess, storage, err := newClient(ctx, env)
	if err != nil {
		return err
	}

	var group *internal.Group
	if groupID != 0 {
		group = storedGroup(ctx, storage, groupID)
	}

	w := flag.CommandLine.Output()
	ag := agenda.New(w, client, client, sess, group)
	if err := ag.Reload(ctx); err != nil {
		return err
	}
	if group != nil {
		if err := ag.LoadMembers(ctx); err != nil {
			return err
		}
	}

	for _, e := range ag.Grid() {
		if e.StartsAt.Before(from.Time) || !e.StartsAt.Before(to.Time) {
			continue
		}
		lock := ""
		if e.IsPrivate {
			lock = " [privé]"
		}
		fmt.Fprintf(w, "%s – %s  %s — %s%s\n",
			formatDateTime(e.StartsAt), formatDateTime(e.EndsAt), e.Title, e.OwnerName, lock)
		for _, t := range e.Tasks {
			done := " "
			if t.IsCompleted {
				done = "x"
			}
			fmt.Fprintf(w, "    [%s] %s\n", done, t.Title)
		}
	}

	if balanceID != 0 {
		balance, err := client.ExpenseBalance(ctx, balanceID)
		if err != nil {
			return fmt.Errorf("loading balance: %w", err)
		}
		fmt.Fprintf(w, "\nBalance for event %d (total %.2f):\n", balance.EventID, balance.Total)
		for _, share := range balance.Shares {
			fmt.Fprintf(w, "  %-20s paid %.2f, owes %.2f\n", share.Name, share.Paid, share.Owes)
		}
	}
	return nil
}

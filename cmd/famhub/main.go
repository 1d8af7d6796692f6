package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

// Env is the shared command environment, resolved from flags with .env
// fallbacks.
type Env struct {
	DBFilename string
	APIURL     string
	HubURL     string
	Verbose    bool
}

func main() {
	_ = godotenv.Load()

	var env Env
	flag.StringVar(&env.DBFilename, "db", envOr("FAMHUB_DB", "famhub.db"), "local database file")
	flag.StringVar(&env.APIURL, "api", envOr("FAMHUB_API_URL", "https://localhost:7075"), "backend base URL")
	flag.StringVar(&env.HubURL, "hub", envOr("FAMHUB_HUB_URL", "wss://localhost:7075/chatHub"), "chat hub URL")
	flag.BoolVar(&env.Verbose, "v", false, "verbose output")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		cancel()
	}()

	var err error
	switch args[0] {
	case LoginCommand.Name:
		err = LoginCommand.Run(ctx, env, args[1:])
	case LogoutCommand.Name:
		err = LogoutCommand.Run(ctx, env, args[1:])
	case AgendaCommand.Name:
		err = AgendaCommand.Run(ctx, env, args[1:])
	case CalendarCommand.Name:
		err = CalendarCommand.Run(ctx, env, args[1:])
	case GroupsCommand.Name:
		err = GroupsCommand.Run(ctx, env, args[1:])
	case ChatCommand.Name:
		err = ChatCommand.Run(ctx, env, args[1:])
	case SantaCommand.Name:
		err = SantaCommand.Run(ctx, env, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "Usage: %s [options] <command> [command options]\n", os.Args[0])
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintf(w, "  %-10s %s\n", LoginCommand.Name, LoginCommand.Description)
	fmt.Fprintf(w, "  %-10s %s\n", LogoutCommand.Name, LogoutCommand.Description)
	fmt.Fprintf(w, "  %-10s %s\n", AgendaCommand.Name, AgendaCommand.Description)
	fmt.Fprintf(w, "  %-10s %s\n", CalendarCommand.Name, CalendarCommand.Description)
	fmt.Fprintf(w, "  %-10s %s\n", GroupsCommand.Name, GroupsCommand.Description)
	fmt.Fprintf(w, "  %-10s %s\n", ChatCommand.Name, ChatCommand.Description)
	fmt.Fprintf(w, "  %-10s %s\n", SantaCommand.Name, SantaCommand.Description)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flag.PrintDefaults()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

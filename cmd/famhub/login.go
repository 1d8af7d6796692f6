package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/guilherme-santos/famhub/api"
)

var LoginCommand = _loginCommand{
	Name:        "login",
	Description: "Authenticate against the backend and store the session locally",
}

type _loginCommand struct {
	Name        string
	Description string
}

func (c _loginCommand) Run(ctx context.Context, env Env, args []string) error {
	var email, password string

	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.StringVar(&email, "email", "", "account e-mail")
	fs.StringVar(&password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := flag.CommandLine.Output()
	if email == "" {
		fmt.Fprint(w, "E-mail: ")
		fmt.Scanln(&email)
	}
	if password == "" {
		fmt.Fprint(w, "Password: ")
		fmt.Scanln(&password)
	}

	client := api.NewClient(env.APIURL)
	client.Verbose = env.Verbose

	sess, err := client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	storage, err := openStorage(env)
	if err != nil {
		return err
	}
	if err := storage.SaveSession(ctx, sess); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	// Refresh the locally known groups while we are at it, so group-scoped
	// commands can resolve names.
	groups, err := client.MyGroups(ctx)
	if err == nil {
		_ = storage.SaveGroups(ctx, groups)
	}

	fmt.Fprintf(w, "Logged in as %s\n", sess.User.Name)
	return nil
}

var LogoutCommand = _logoutCommand{
	Name:        "logout",
	Description: "Clear the stored session",
}

type _logoutCommand struct {
	Name        string
	Description string
}

func (c _logoutCommand) Run(ctx context.Context, env Env, args []string) error {
	storage, err := openStorage(env)
	if err != nil {
		return err
	}
	if err := storage.ClearSession(ctx); err != nil {
		return err
	}
	fmt.Fprintln(flag.CommandLine.Output(), "Logged out")
	return nil
}

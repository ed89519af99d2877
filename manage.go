package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"jobboard/config"
	"jobboard/store"

	"github.com/labstack/gommon/log"
)

func usage() {
	fmt.Fprint(os.Stderr, `usage: jobboard [-config file] [command]

commands:
  serve                              run the web server (default)
  approve job|applicant <id>         list a posting publicly
  reject job|applicant <id>          hide a posting again
  position add <name>                add a position to the drop-downs
  position list                      show positions
  notify add|remove <email>          edit the notification list
  notify list                        show the notification list
  smtp-password                      store the SMTP password (read from stdin) in the OS keychain
`)
}

func manage(ctx context.Context, cfg config.Config, lg *log.Logger, args []string) error {
	if args[0] == "smtp-password" {
		pw, err := readLine(os.Stdin)
		if err != nil {
			return err
		}
		return config.SetSMTPPassword(cfg, pw)
	}

	s, err := openStore(cfg, lg)
	if err != nil {
		return err
	}
	defer s.Close()
	return runCommand(ctx, s, os.Stdout, args)
}

var errUsage = errors.New("unknown command, see -h")

func runCommand(ctx context.Context, s *store.Store, out io.Writer, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	cmd, sub, rest := args[0], args[1], args[2:]

	switch cmd {
	case "approve", "reject":
		if len(rest) != 1 {
			return errUsage
		}
		approved := cmd == "approve"
		var err error
		switch sub {
		case "job":
			err = s.SetJobPostApproved(ctx, rest[0], approved)
		case "applicant":
			err = s.SetApplicantPostApproved(ctx, rest[0], approved)
		default:
			return errUsage
		}
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no %s post with id %s", sub, rest[0])
		}
		return err

	case "position":
		switch sub {
		case "add":
			p, err := s.CreatePosition(ctx, strings.Join(rest, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d\t%s\n", p.ID, p.Name)
			return nil
		case "list":
			positions, err := s.ListPositions(ctx)
			if err != nil {
				return err
			}
			for _, p := range positions {
				fmt.Fprintf(out, "%d\t%s\n", p.ID, p.Name)
			}
			return nil
		}

	case "notify":
		switch sub {
		case "add":
			if len(rest) != 1 {
				return errUsage
			}
			_, err := s.AddNotifyEmail(ctx, rest[0])
			return err
		case "remove":
			if len(rest) != 1 {
				return errUsage
			}
			err := s.RemoveNotifyEmail(ctx, rest[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%s is not on the notification list", rest[0])
			}
			return err
		case "list":
			emails, err := s.NotifyEmails(ctx)
			if err != nil {
				return err
			}
			for _, e := range emails {
				fmt.Fprintln(out, e)
			}
			return nil
		}
	}
	return errUsage
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

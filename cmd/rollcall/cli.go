package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/mergington/rollcall/internal/client"
	"github.com/mergington/rollcall/internal/config"
	"github.com/mergington/rollcall/internal/store"
)

var (
	serveFn      = serve
	loadConfigFn = config.Load
	newClientFn  = func(baseURL string) rosterClient { return client.New(baseURL) }
)

type rosterClient interface {
	Activities(ctx context.Context) (map[string]store.Activity, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) (string, error)
}

const (
	cmdHelp        = "help"
	flagHelpShort  = "-h"
	flagHelpLong   = "--help"
	clientTimeout  = 15 * time.Second
	serverFlagHelp = "server base URL (default: http://<configured listen address>)"
)

func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func writeln(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	ctx := commandContext{stdout: stdout, stderr: stderr}

	if len(args) == 0 {
		return serveFn()
	}

	switch args[0] {
	case "-v", "--version", "version":
		writef(stdout, "rollcall version %s\n", currentVersion())
		return 0
	case "serve":
		return runServeCommand(ctx, args[1:])
	case "activities":
		return runActivitiesCommand(ctx, args[1:])
	case "signup":
		return runRosterCommand(ctx, args[1:], "signup")
	case "unregister":
		return runRosterCommand(ctx, args[1:], "unregister")
	case cmdHelp, flagHelpShort, flagHelpLong:
		printRootHelp(stdout)
		return 0
	default:
		// Preserve backward compatibility for future root flags.
		if strings.HasPrefix(args[0], "-") {
			return runServeCommand(ctx, args)
		}
		writef(stderr, "unknown command: %s\n\n", args[0])
		printRootHelp(stderr)
		return 2
	}
}

func runServeCommand(ctx commandContext, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(ctx.stderr)
	help := fs.Bool("help", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		printServeHelp(ctx.stdout)
		return 0
	}
	if fs.NArg() > 0 {
		writef(ctx.stderr, "unexpected argument(s): %s\n", strings.Join(fs.Args(), " "))
		printServeHelp(ctx.stderr)
		return 2
	}
	return serveFn()
}

func runActivitiesCommand(ctx commandContext, args []string) int {
	fs := flag.NewFlagSet("activities", flag.ContinueOnError)
	fs.SetOutput(ctx.stderr)
	server := fs.String("server", "", serverFlagHelp)
	help := fs.Bool("help", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		printActivitiesHelp(ctx.stdout)
		return 0
	}

	c := newClientFn(resolveServerURL(*server))
	reqCtx, cancel := context.WithTimeout(context.Background(), clientTimeout)
	defer cancel()

	activities, err := c.Activities(reqCtx)
	if err != nil {
		printErrorLine(ctx.stderr, err.Error())
		return 1
	}

	names := make([]string, 0, len(activities))
	for name := range activities {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		if i > 0 {
			writeln(ctx.stdout)
		}
		a := activities[name]
		printHeading(ctx.stdout, name)
		rows := []outputRow{
			{Key: "Description", Value: a.Description},
			{Key: "Schedule", Value: a.Schedule},
			{Key: "Signed up", Value: fmt.Sprintf("%d", len(a.Participants))},
		}
		if len(a.Participants) > 0 {
			rows = append(rows, outputRow{Key: "Participants", Value: strings.Join(a.Participants, ", ")})
		}
		printRows(ctx.stdout, rows)
	}
	return 0
}

func runRosterCommand(ctx commandContext, args []string, action string) int {
	fs := flag.NewFlagSet(action, flag.ContinueOnError)
	fs.SetOutput(ctx.stderr)
	server := fs.String("server", "", serverFlagHelp)
	help := fs.Bool("help", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		printRosterHelp(ctx.stdout, action)
		return 0
	}
	if fs.NArg() != 2 {
		writef(ctx.stderr, "expected <activity> and <email> arguments\n\n")
		printRosterHelp(ctx.stderr, action)
		return 2
	}
	activity, email := fs.Arg(0), fs.Arg(1)

	c := newClientFn(resolveServerURL(*server))
	reqCtx, cancel := context.WithTimeout(context.Background(), clientTimeout)
	defer cancel()

	var message string
	var err error
	if action == "signup" {
		message, err = c.Signup(reqCtx, activity, email)
	} else {
		message, err = c.Unregister(reqCtx, activity, email)
	}
	if err != nil {
		printErrorLine(ctx.stderr, err.Error())
		return 1
	}
	printNotice(ctx.stdout, message)
	return 0
}

// resolveServerURL falls back to the configured listen address when no
// -server flag was given.
func resolveServerURL(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	return "http://" + loadConfigFn().ListenAddr
}

func currentVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}

func printRootHelp(w io.Writer) {
	writeln(w, "rollcall — activity signup service for Mergington High School")
	writeln(w)
	writeln(w, "Usage:")
	writeln(w, "  rollcall [serve]                     start the server (default)")
	writeln(w, "  rollcall activities [-server URL]    list activities and rosters")
	writeln(w, "  rollcall signup <activity> <email>   sign a student up")
	writeln(w, "  rollcall unregister <activity> <email>")
	writeln(w, "                                       remove a student from a roster")
	writeln(w, "  rollcall version                     print the version")
	writeln(w, "  rollcall help                        show this help")
	writeln(w)
	writeln(w, "Configuration lives in ~/.rollcall/config.toml; ROLLCALL_* environment")
	writeln(w, "variables override file values.")
}

func printServeHelp(w io.Writer) {
	writeln(w, "Usage: rollcall serve")
	writeln(w)
	writeln(w, "Starts the HTTP server on the configured listen address.")
}

func printActivitiesHelp(w io.Writer) {
	writeln(w, "Usage: rollcall activities [-server URL]")
	writeln(w)
	writeln(w, "Lists every activity with its schedule and current roster.")
}

func printRosterHelp(w io.Writer, action string) {
	writef(w, "Usage: rollcall %s [-server URL] <activity> <email>\n", action)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/straye-as/sales-intelligence/internal/apiclient"
	"github.com/straye-as/sales-intelligence/internal/service"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitAuth    = 2
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	os.Exit(report(err, os.Stderr))
}

// report prints err the way the user should see it and returns the exit code
func report(err error, stderr io.Writer) int {
	var formErr *service.FormError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitFailure
	case errors.As(err, &formErr):
		fmt.Fprintf(stderr, "Error: %s\n", formErr.Message)
		return exitFailure
	case errors.Is(err, service.ErrNotAuthenticated), apiclient.IsAuthError(err):
		fmt.Fprintln(stderr, "session expired, please log in")
		return exitAuth
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	global := pflag.NewFlagSet("salesintel", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.String("api-url", "", "base address of the sales API, e.g. http://localhost:8000/api")
	global.String("log-level", "", "log level: debug, info, warn or error")
	global.String("session", "", "path of the session file or sqlite database")
	global.Usage = func() { usage(stdout, global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		usage(stdout, global)
		return errUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		usage(stdout, global)
		return fmt.Errorf("unknown command %q", rest[0])
	}

	a, err := newApp(ctx, global, stdin, stdout)
	if err != nil {
		return err
	}
	defer a.close()

	return cmd.run(ctx, a, rest[1:])
}

func usage(w io.Writer, global *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage: salesintel [global flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	tw := newTable(w)
	for _, name := range names {
		tw.row("  "+name, commands[name].summary)
	}
	_ = tw.flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	fmt.Fprint(w, global.FlagUsages())
}

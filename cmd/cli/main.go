// Command servicelog is the ServiceLog client: each page of the application
// is a subcommand working against the data store server or a local database.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/and161185/servicelog/internal/app"
	"github.com/and161185/servicelog/internal/config"
	"github.com/and161185/servicelog/internal/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage(w io.Writer) {
	fmt.Fprint(w, `servicelog CLI
Usage:
  servicelog [-addr HOST:PORT] [-cacert file | -insecure | -plaintext] [-local DSN] [-v] <cmd> [args]

Commands:
  version
  login     -email <email> -password <password>
  logout
  whoami
  dashboard
  clients   [list [-q text]] | add -name .. [-email ..] [-phone ..] [-address ..]
            | edit -id .. [-name ..] [-email ..] [-phone ..] [-address ..] | rm -id .. [-yes]
  orders    [list [-tab ALL|OPEN|IN_PROGRESS|COMPLETED|CANCELLED] [-client id]]
            | add -title .. -client .. [-desc ..] | edit -id .. [-title ..] [-desc ..]
            | advance -id .. | status -id .. -to STATUS
  reports   [list] | ready | add -order .. -notes .. [-equipment ..] [-parts 0.00] [-service 0.00] [-photo file]...
            | show -id ..
  time      list [-order id] | add -order .. -min N [-date YYYY-MM-DD] | edit -id .. [-min N] [-date ..] | rm -id ..
  ask       <question>
  chat      (interactive, empty line or EOF ends)

Global flags may also come from -config FILE (YAML) or SERVICELOG_* environment variables.
`)
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// main loads configuration, runs one command and exits non-zero on failure.
func main() {
	cfg, rest, err := config.LoadCLI("servicelog", os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(os.Stdout)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(rest) < 1 {
		usage(os.Stderr)
		os.Exit(2)
	}

	logger := newLogger(cfg.Verbose)
	a := app.New(cfg, logger)
	c := &cli{app: a, in: bufio.NewReader(os.Stdin), out: os.Stdout, errOut: os.Stderr}

	err = c.run(context.Background(), rest)
	_ = a.Close()
	_ = logger.Sync()
	if errors.Is(err, errUsage) {
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
}

// ---- utils ----

func readAll(p string) ([]byte, error) {
	if p == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(p)
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	var ae *session.AuthError
	if errors.As(err, &ae) {
		fmt.Fprintln(os.Stderr, ae.Msg)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

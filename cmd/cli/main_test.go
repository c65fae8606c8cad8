package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/and161185/servicelog/internal/app"
	"github.com/and161185/servicelog/internal/config"
	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/session"
)

func newTestCLI(t *testing.T, input string, tweak ...func(*config.CLIConfig)) (*cli, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultCLI()
	cfg.Local = "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	cfg.SessionDir = t.TempDir()
	for _, f := range tweak {
		f(&cfg)
	}
	a := app.New(cfg, zap.NewNop())
	t.Cleanup(func() { _ = a.Close() })
	var out bytes.Buffer
	return &cli{app: a, in: bufio.NewReader(strings.NewReader(input)), out: &out, errOut: io.Discard}, &out
}

// exec runs one command and returns its trimmed output.
func exec(t *testing.T, c *cli, out *bytes.Buffer, args ...string) string {
	t.Helper()
	out.Reset()
	if err := c.run(context.Background(), args); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return strings.TrimSpace(out.String())
}

func Test_run_version(t *testing.T) {
	c, out := newTestCLI(t, "")
	if got := exec(t, c, out, "version"); !strings.HasPrefix(got, "servicelog dev") {
		t.Fatalf("version output: %q", got)
	}
}

func Test_run_unknownCommand(t *testing.T) {
	c, _ := newTestCLI(t, "")
	if err := c.run(context.Background(), []string{"frobnicate"}); !errors.Is(err, errUsage) {
		t.Fatalf("want errUsage, got %v", err)
	}
}

func Test_pages_requireLogin(t *testing.T) {
	c, _ := newTestCLI(t, "")
	for _, cmd := range []string{"dashboard", "clients", "orders", "reports", "time", "whoami"} {
		if err := c.run(context.Background(), []string{cmd}); !errors.Is(err, errLoginRequired) {
			t.Fatalf("%s: want errLoginRequired, got %v", cmd, err)
		}
	}
}

func Test_login_rejectsWrongPassword(t *testing.T) {
	c, _ := newTestCLI(t, "")
	err := c.run(context.Background(), []string{"login", "-email", session.AdminEmail, "-password", "nope"})
	var ae *session.AuthError
	if !errors.As(err, &ae) || ae.Msg != session.LoginFailedMessage {
		t.Fatalf("want AuthError, got %v", err)
	}
}

func Test_fullFlow(t *testing.T) {
	c, out := newTestCLI(t, "n\n")

	if got := exec(t, c, out, "login", "-email", session.AdminEmail, "-password", session.AdminPassword); !strings.Contains(got, "Jan Kowalski") {
		t.Fatalf("login: %q", got)
	}
	if got := exec(t, c, out, "login", "-email", "x", "-password", "y"); !strings.Contains(got, "already logged in") {
		t.Fatalf("second login: %q", got)
	}
	if got := exec(t, c, out, "whoami"); !strings.Contains(got, "[J] Jan Kowalski (ADMIN)") {
		t.Fatalf("whoami: %q", got)
	}

	clientID := exec(t, c, out, "clients", "add", "-name", "Acme", "-phone", "600100200")
	exec(t, c, out, "clients", "add", "-name", "beta", "-email", "x@ACME.com")
	if got := exec(t, c, out, "clients", "list", "-q", "acme"); !strings.Contains(got, "Acme") || !strings.Contains(got, "beta") {
		t.Fatalf("clients filter: %q", got)
	}
	if got := exec(t, c, out, "clients", "edit", "-id", clientID, "-address", "ul. Prosta 1"); !strings.Contains(got, "ul. Prosta 1") {
		t.Fatalf("clients edit: %q", got)
	}

	orderID := exec(t, c, out, "orders", "add", "-title", "Przegląd kotła", "-client", clientID)
	if got := exec(t, c, out, "orders", "advance", "-id", orderID); got != string(model.StatusInProgress) {
		t.Fatalf("advance: %q", got)
	}
	if got := exec(t, c, out, "reports", "ready"); strings.Contains(got, orderID) {
		t.Fatalf("in-progress order offered for a report: %q", got)
	}
	exec(t, c, out, "orders", "advance", "-id", orderID)
	if got := exec(t, c, out, "orders", "list", "-tab", "COMPLETED"); !strings.Contains(got, "Przegląd kotła") {
		t.Fatalf("completed tab: %q", got)
	}
	if got := exec(t, c, out, "orders", "list", "-tab", "OPEN"); strings.Contains(got, "Przegląd kotła") {
		t.Fatalf("open tab: %q", got)
	}

	photo := filepath.Join(t.TempDir(), "p.jpg")
	if err := os.WriteFile(photo, []byte{0xff, 0xd8, 0xff}, 0o600); err != nil {
		t.Fatal(err)
	}
	reportID := exec(t, c, out, "reports", "add", "-order", orderID, "-notes", "Czyszczenie palnika",
		"-equipment", "Vaillant ecoTEC", "-parts", "10,5", "-service", "120", "-photo", photo)
	if got := exec(t, c, out, "reports", "list"); !strings.Contains(got, "130.50") || !strings.Contains(got, "Acme") {
		t.Fatalf("reports list: %q", got)
	}
	if got := exec(t, c, out, "reports", "show", "-id", reportID); !strings.Contains(got, "PROTOKÓŁ SERWISOWY") || !strings.Contains(got, "ul. Prosta 1") {
		t.Fatalf("reports show: %q", got)
	}

	entryID := exec(t, c, out, "time", "add", "-order", orderID, "-min", "30", "-date", "2026-03-14")
	exec(t, c, out, "time", "add", "-order", orderID, "-min", "15")
	if got := exec(t, c, out, "time", "list", "-order", orderID); !strings.Contains(got, "razem: 45 min") {
		t.Fatalf("time list: %q", got)
	}
	exec(t, c, out, "time", "edit", "-id", entryID, "-min", "20")
	exec(t, c, out, "time", "rm", "-id", entryID)

	var orders []model.WorkOrder
	if err := json.Unmarshal([]byte(exec(t, c, out, "orders", "list", "-json")), &orders); err != nil {
		t.Fatalf("orders json: %v", err)
	}
	if len(orders) != 1 || orders[0].TotalTimeMinutes == nil || *orders[0].TotalTimeMinutes != 15 {
		t.Fatalf("total minutes not refreshed: %+v", orders)
	}

	if got := exec(t, c, out, "dashboard"); !strings.Contains(got, "Klienci: 2") || !strings.Contains(got, "Przychód: 130.50 PLN") {
		t.Fatalf("dashboard: %q", got)
	}

	if got := exec(t, c, out, "clients", "rm", "-id", clientID); !strings.Contains(got, "cancelled") {
		t.Fatalf("rm without confirmation: %q", got)
	}
	err := c.run(context.Background(), []string{"clients", "rm", "-id", clientID, "-yes"})
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("rm client with orders: want ErrConflict, got %v", err)
	}

	exec(t, c, out, "logout")
	if err := c.run(context.Background(), []string{"clients"}); !errors.Is(err, errLoginRequired) {
		t.Fatalf("after logout: %v", err)
	}
}

func Test_ask_usesAssistant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Sprawdź ciśnienie wody."}]}}]}`))
	}))
	defer srv.Close()

	c, out := newTestCLI(t, "", func(cfg *config.CLIConfig) {
		cfg.GeminiKey = "k"
		cfg.GeminiURL = srv.URL
	})
	exec(t, c, out, "login", "-email", session.AdminEmail, "-password", session.AdminPassword)
	if got := exec(t, c, out, "ask", "Kocioł", "pokazuje", "F28"); got != "Sprawdź ciśnienie wody." {
		t.Fatalf("ask: %q", got)
	}
}

func Test_chat_fallsBackWithoutKey(t *testing.T) {
	c, out := newTestCLI(t, "Klima nie chłodzi\n\n")
	exec(t, c, out, "login", "-email", session.AdminEmail, "-password", session.AdminPassword)
	if got := exec(t, c, out, "chat"); !strings.Contains(got, "Błąd połączenia z mózgiem AI") {
		t.Fatalf("chat: %q", got)
	}
}

func Test_sub(t *testing.T) {
	t.Parallel()

	if a, rest := sub(nil, "list"); a != "list" || len(rest) != 0 {
		t.Fatalf("empty: %q %v", a, rest)
	}
	if a, rest := sub([]string{"-q", "x"}, "list"); a != "list" || len(rest) != 2 {
		t.Fatalf("flags only: %q %v", a, rest)
	}
	if a, rest := sub([]string{"add", "-name", "x"}, "list"); a != "add" || len(rest) != 2 {
		t.Fatalf("action: %q %v", a, rest)
	}
}

func Test_readAll_File(t *testing.T) {
	t.Parallel()

	tmp := filepath.Join(t.TempDir(), "f.txt")
	_ = os.WriteFile(tmp, []byte("hello"), 0o600)
	b, err := readAll(tmp)
	if err != nil || string(b) != "hello" {
		t.Fatalf("readAll(file): %q %v", b, err)
	}
}

func Test_printJSON_WritesPretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printJSON(&buf, map[string]any{"a": 1})

	var m map[string]any
	if json.Unmarshal(buf.Bytes(), &m) != nil || m["a"] != float64(1) {
		t.Fatalf("printJSON produced invalid json: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  ")) {
		t.Fatalf("printJSON should indent")
	}
}

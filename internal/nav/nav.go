// Package nav is the route table of the client: which pages exist, which
// need a signed-in user, and the layout header drawn around every page.
package nav

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/and161185/servicelog/internal/model"
)

// Route paths.
const (
	Login          = "/login"
	Dashboard      = "/"
	Clients        = "/clients"
	WorkOrders     = "/work-orders"
	ServiceReports = "/service-reports"
)

// Route describes one page.
type Route struct {
	Path   string
	Public bool
}

var routes = map[string]Route{
	Login:          {Path: Login, Public: true},
	Dashboard:      {Path: Dashboard},
	Clients:        {Path: Clients},
	WorkOrders:     {Path: WorkOrders},
	ServiceReports: {Path: ServiceReports},
}

// Item is a sidebar entry.
type Item struct {
	Label string
	Path  string
}

// Items is the navigation menu in display order.
var Items = []Item{
	{Label: "Pulpit", Path: Dashboard},
	{Label: "Klienci", Path: Clients},
	{Label: "Zlecenia", Path: WorkOrders},
	{Label: "Raporty", Path: ServiceReports},
}

// Resolve returns the route for path, or the path to redirect to.
func Resolve(path string, authed bool) (r Route, redirect string) {
	r, ok := routes[normalize(path)]
	switch {
	case !ok:
		return Route{}, Dashboard
	case !r.Public && !authed:
		return Route{}, Login
	case r.Path == Login && authed:
		return Route{}, Dashboard
	}
	return r, ""
}

// Navigate follows redirects until a route renders.
func Navigate(path string, authed bool) Route {
	for range len(routes) + 1 {
		r, next := Resolve(path, authed)
		if next == "" {
			return r
		}
		path = next
	}
	return routes[Login]
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return Dashboard
	}
	return p
}

// Shell writes the layout header for the active route.
func Shell(w io.Writer, u model.User, active string) error {
	initial := "?"
	if r, _ := utf8.DecodeRuneInString(u.Name); r != utf8.RuneError {
		initial = strings.ToUpper(string(r))
	}
	if _, err := fmt.Fprintf(w, "ServiceLog  [%s] %s (%s)\n", initial, u.Name, u.Role); err != nil {
		return err
	}
	active = normalize(active)
	for _, it := range Items {
		mark := " "
		if it.Path == active {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, " %s %-9s %s\n", mark, it.Label, it.Path); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, strings.Repeat("-", 40))
	return err
}

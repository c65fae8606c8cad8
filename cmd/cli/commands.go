package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/servicelog/internal/app"
	"github.com/and161185/servicelog/internal/controller"
	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/nav"
	"github.com/and161185/servicelog/internal/printout"
)

var (
	errUsage         = errors.New("usage")
	errLoginRequired = errors.New("not logged in, run: servicelog login")
)

const dateLayout = "2006-01-02"

type cli struct {
	app    *app.Context
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	if cmd == "version" {
		fmt.Fprintf(c.out, "servicelog %s (%s)\n", version, buildDate)
		return nil
	}
	if cmd == "help" {
		usage(c.out)
		return nil
	}

	if err := c.app.Start(ctx); err != nil {
		return err
	}
	if cmd == "chat" {
		return c.chat(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, c.app.Config.Timeout)
	defer cancel()

	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		if err := c.app.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "ok")
		return nil
	case "whoami":
		return c.whoami()
	case "dashboard":
		return c.dashboard(ctx)
	case "clients":
		return c.clients(ctx, rest)
	case "orders":
		return c.orders(ctx, rest)
	case "reports":
		return c.reports(ctx, rest)
	case "time":
		return c.timeEntries(ctx, rest)
	case "ask":
		return c.ask(ctx, strings.Join(rest, " "))
	}
	return errUsage
}

// page enforces route gating for a page command.
func (c *cli) page(path string) error {
	r := nav.Navigate(path, c.app.Session.Authenticated())
	switch {
	case r.Path == path:
		return nil
	case r.Path == nav.Login:
		return errLoginRequired
	}
	return fmt.Errorf("redirected to %s", r.Path)
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

func sub(args []string, def string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return def, args
	}
	return args[0], args[1:]
}

func (c *cli) confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [t/N] ", prompt)
	line, _ := c.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "t", "tak", "y", "yes":
		return true
	}
	return false
}

func table(w io.Writer, header string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

// ---- session ----

func (c *cli) login(ctx context.Context, args []string) error {
	fs := c.flags("login")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if r := nav.Navigate(nav.Login, c.app.Session.Authenticated()); r.Path != nav.Login {
		u, _ := c.app.Session.Current()
		fmt.Fprintf(c.out, "already logged in as %s\n", u.Name)
		return nil
	}
	u, _, err := controller.NewLogin(c.app.Session).Submit(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Zalogowano: %s (%s)\n", u.Name, u.Role)
	return nil
}

func (c *cli) whoami() error {
	u, ok := c.app.Session.Current()
	if !ok {
		return errLoginRequired
	}
	if err := nav.Shell(c.out, u, nav.Dashboard); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s <%s> company=%s\n", u.ID, u.Email, u.CompanyID)
	return nil
}

// ---- dashboard ----

func (c *cli) dashboard(ctx context.Context) error {
	if err := c.page(nav.Dashboard); err != nil {
		return err
	}
	u, _ := c.app.Session.Current()
	if err := nav.Shell(c.out, u, nav.Dashboard); err != nil {
		return err
	}
	d := controller.NewDashboard(c.app.Store(), c.app.Log)
	d.Mount(ctx)
	defer d.Dismiss()
	v := d.View()

	fmt.Fprintf(c.out, "Klienci: %d  Otwarte zlecenia: %d  Zakończone: %d  Przychód: %s PLN\n\n",
		v.Stats.ClientsCount, v.Stats.OpenOrders, v.Stats.CompletedTotal, v.Stats.Revenue)

	fmt.Fprintln(c.out, "Ostatnie zlecenia")
	rows := make([][]string, 0, len(v.RecentOrders))
	for _, o := range v.RecentOrders {
		rows = append(rows, []string{o.Title, clientName(o.Client), string(o.Status)})
	}
	table(c.out, "TYTUŁ\tKLIENT\tSTATUS", rows)

	fmt.Fprintln(c.out, "\nOstatnie raporty")
	rows = rows[:0]
	for _, r := range v.RecentReports {
		rows = append(rows, []string{r.ID, r.CompletedAt.Local().Format(dateLayout), r.Total().String()})
	}
	table(c.out, "ID\tDATA\tRAZEM", rows)
	return nil
}

func clientName(cl *model.Client) string {
	if cl == nil {
		return "-"
	}
	return cl.Name
}

// ---- clients ----

func (c *cli) clients(ctx context.Context, args []string) error {
	if err := c.page(nav.Clients); err != nil {
		return err
	}
	p := controller.NewClients(c.app.Store())
	defer p.Dismiss()
	if err := p.Mount(ctx); err != nil {
		return err
	}

	action, args := sub(args, "list")
	switch action {
	case "list":
		fs := c.flags("clients list")
		q := fs.String("q", "", "filter by name, email or phone")
		asJSON := fs.Bool("json", false, "print JSON")
		if err := fs.Parse(args); err != nil {
			return err
		}
		list := p.Filter(*q)
		if *asJSON {
			printJSON(c.out, list)
			return nil
		}
		rows := make([][]string, 0, len(list))
		for _, cl := range list {
			rows = append(rows, []string{cl.ID, cl.Name, cl.Email, cl.Phone, cl.Address})
		}
		table(c.out, "ID\tNAZWA\tEMAIL\tTELEFON\tADRES", rows)
		return nil

	case "add":
		fs := c.flags("clients add")
		var d model.ClientDraft
		fs.StringVar(&d.Name, "name", "", "name")
		fs.StringVar(&d.Email, "email", "", "email")
		fs.StringVar(&d.Phone, "phone", "", "phone")
		fs.StringVar(&d.Address, "address", "", "address")
		if err := fs.Parse(args); err != nil {
			return err
		}
		created, err := p.Create(ctx, d)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, created.ID)
		return nil

	case "edit":
		fs := c.flags("clients edit")
		id := fs.String("id", "", "client id")
		name := fs.String("name", "", "name")
		email := fs.String("email", "", "email")
		phone := fs.String("phone", "", "phone")
		address := fs.String("address", "", "address")
		if err := fs.Parse(args); err != nil {
			return err
		}
		var patch model.ClientPatch
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				patch.Name = name
			case "email":
				patch.Email = email
			case "phone":
				patch.Phone = phone
			case "address":
				patch.Address = address
			}
		})
		updated, err := c.app.Store().Clients().Update(ctx, *id, patch)
		if err != nil {
			return err
		}
		printJSON(c.out, updated)
		return nil

	case "rm":
		fs := c.flags("clients rm")
		id := fs.String("id", "", "client id")
		yes := fs.Bool("yes", false, "do not ask for confirmation")
		if err := fs.Parse(args); err != nil {
			return err
		}
		confirm := c.confirm
		if *yes {
			confirm = func(string) bool { return true }
		}
		issued, err := p.Delete(ctx, *id, confirm)
		if err != nil {
			return err
		}
		if issued {
			fmt.Fprintln(c.out, "ok")
		} else {
			fmt.Fprintln(c.out, "cancelled")
		}
		return nil
	}
	return errUsage
}

// ---- work orders ----

func (c *cli) orders(ctx context.Context, args []string) error {
	if err := c.page(nav.WorkOrders); err != nil {
		return err
	}
	p := controller.NewWorkOrders(c.app.Store())
	defer p.Dismiss()
	if err := p.Mount(ctx); err != nil {
		return err
	}

	action, args := sub(args, "list")
	switch action {
	case "list":
		fs := c.flags("orders list")
		tabName := fs.String("tab", string(controller.TabAll), "ALL or a status")
		clientID := fs.String("client", "", "only orders of this client")
		asJSON := fs.Bool("json", false, "print JSON")
		if err := fs.Parse(args); err != nil {
			return err
		}
		tab, err := controller.ParseTab(*tabName)
		if err != nil {
			return err
		}
		list := p.Tab(tab)
		if *clientID != "" {
			kept := list[:0]
			for _, o := range list {
				if o.ClientID == *clientID {
					kept = append(kept, o)
				}
			}
			list = kept
		}
		if *asJSON {
			printJSON(c.out, list)
			return nil
		}
		rows := make([][]string, 0, len(list))
		for _, o := range list {
			minutes := "-"
			if o.TotalTimeMinutes != nil {
				minutes = fmt.Sprint(*o.TotalTimeMinutes)
			}
			rows = append(rows, []string{o.ID, o.Title, clientName(o.Client), string(o.Status), minutes, o.CreatedAt.Local().Format(dateLayout)})
		}
		table(c.out, "ID\tTYTUŁ\tKLIENT\tSTATUS\tMIN\tUTWORZONO", rows)
		return nil

	case "add":
		fs := c.flags("orders add")
		var d model.WorkOrderDraft
		fs.StringVar(&d.Title, "title", "", "title")
		fs.StringVar(&d.ClientID, "client", "", "client id")
		fs.StringVar(&d.Description, "desc", "", "description")
		if err := fs.Parse(args); err != nil {
			return err
		}
		created, err := p.Create(ctx, d)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, created.ID)
		return nil

	case "edit":
		fs := c.flags("orders edit")
		id := fs.String("id", "", "work order id")
		title := fs.String("title", "", "title")
		desc := fs.String("desc", "", "description")
		if err := fs.Parse(args); err != nil {
			return err
		}
		var patch model.WorkOrderPatch
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "title":
				patch.Title = title
			case "desc":
				patch.Description = desc
			}
		})
		updated, err := c.app.Store().WorkOrders().Update(ctx, *id, patch)
		if err != nil {
			return err
		}
		printJSON(c.out, updated)
		return nil

	case "advance":
		fs := c.flags("orders advance")
		id := fs.String("id", "", "work order id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		next, err := p.Advance(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, next)
		return nil

	case "status":
		fs := c.flags("orders status")
		id := fs.String("id", "", "work order id")
		to := fs.String("to", "", "new status")
		if err := fs.Parse(args); err != nil {
			return err
		}
		s, err := model.ParseStatus(*to)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrValidation, err)
		}
		if err := p.SetStatus(ctx, *id, s); err != nil {
			return err
		}
		fmt.Fprintln(c.out, s)
		return nil
	}
	return errUsage
}

// ---- service reports ----

type fileList []string

func (f *fileList) String() string     { return strings.Join(*f, ",") }
func (f *fileList) Set(v string) error { *f = append(*f, v); return nil }

func (c *cli) reports(ctx context.Context, args []string) error {
	if err := c.page(nav.ServiceReports); err != nil {
		return err
	}
	p := controller.NewServiceReports(c.app.Store())
	defer p.Dismiss()
	if err := p.Mount(ctx); err != nil {
		return err
	}

	action, args := sub(args, "list")
	switch action {
	case "list":
		fs := c.flags("reports list")
		asJSON := fs.Bool("json", false, "print JSON")
		if err := fs.Parse(args); err != nil {
			return err
		}
		rowsIn := p.Rows()
		if *asJSON {
			printJSON(c.out, p.View().Reports)
			return nil
		}
		rows := make([][]string, 0, len(rowsIn))
		for _, r := range rowsIn {
			title := "-"
			if r.Order != nil {
				title = r.Order.Title
			}
			rows = append(rows, []string{
				r.Report.ID, r.Report.CompletedAt.Local().Format(dateLayout), title, clientName(r.Client), r.TotalText,
			})
		}
		table(c.out, "ID\tDATA\tZLECENIE\tKLIENT\tRAZEM", rows)
		return nil

	case "ready":
		list := p.CompletedOrders()
		rows := make([][]string, 0, len(list))
		for _, o := range list {
			rows = append(rows, []string{o.ID, o.Title, clientName(o.Client)})
		}
		table(c.out, "ID\tTYTUŁ\tKLIENT", rows)
		return nil

	case "add":
		fs := c.flags("reports add")
		var (
			f      controller.ReportForm
			photos fileList
		)
		fs.StringVar(&f.WorkOrderID, "order", "", "completed work order id")
		fs.StringVar(&f.Notes, "notes", "", "work performed ('-' reads stdin)")
		fs.StringVar(&f.Equipment, "equipment", "", "equipment")
		fs.StringVar(&f.PartsCost, "parts", "0", "parts cost")
		fs.StringVar(&f.ServiceCost, "service", "0", "service cost")
		fs.Var(&photos, "photo", "photo file (repeatable)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if f.Notes == "-" {
			b, err := io.ReadAll(c.in)
			if err != nil {
				return err
			}
			f.Notes = strings.TrimSpace(string(b))
		}
		for _, path := range photos {
			b, err := readAll(path)
			if err != nil {
				return err
			}
			f.Photos = append(f.Photos, b)
		}
		created, err := p.Create(ctx, f)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, created.ID)
		return nil

	case "show":
		fs := c.flags("reports show")
		id := fs.String("id", "", "report id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		row, err := p.Select(*id)
		if err != nil {
			return err
		}
		return printout.Render(c.out, row.Report, row.Order)
	}
	return errUsage
}

// ---- work time ----

func (c *cli) timeEntries(ctx context.Context, args []string) error {
	if err := c.page(nav.WorkOrders); err != nil {
		return err
	}
	svc := c.app.Store().TimeEntries()

	action, args := sub(args, "list")
	switch action {
	case "list":
		fs := c.flags("time list")
		order := fs.String("order", "", "work order id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		list, err := svc.List(ctx, model.TimeEntryFilter{WorkOrderID: *order})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(list))
		total := 0
		for _, e := range list {
			total += e.DurationMin
			rows = append(rows, []string{e.ID, e.WorkOrderID, e.Date.Local().Format(dateLayout), fmt.Sprint(e.DurationMin)})
		}
		table(c.out, "ID\tZLECENIE\tDATA\tMIN", rows)
		fmt.Fprintf(c.out, "razem: %d min\n", total)
		return nil

	case "add":
		fs := c.flags("time add")
		var (
			d    model.TimeEntryDraft
			date string
		)
		fs.StringVar(&d.WorkOrderID, "order", "", "work order id")
		fs.IntVar(&d.DurationMin, "min", 0, "minutes")
		fs.StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if date != "" {
			t, err := time.ParseInLocation(dateLayout, date, time.Local)
			if err != nil {
				return fmt.Errorf("%w: bad date %q", errs.ErrValidation, date)
			}
			d.Date = t
		}
		e, err := svc.Create(ctx, d)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, e.ID)
		return nil

	case "edit":
		fs := c.flags("time edit")
		id := fs.String("id", "", "entry id")
		minutes := fs.Int("min", 0, "minutes")
		date := fs.String("date", "", "date YYYY-MM-DD")
		if err := fs.Parse(args); err != nil {
			return err
		}
		var patch model.TimeEntryPatch
		var visitErr error
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "min":
				patch.DurationMin = minutes
			case "date":
				t, err := time.ParseInLocation(dateLayout, *date, time.Local)
				if err != nil {
					visitErr = fmt.Errorf("%w: bad date %q", errs.ErrValidation, *date)
					return
				}
				patch.Date = &t
			}
		})
		if visitErr != nil {
			return visitErr
		}
		e, err := svc.Update(ctx, *id, patch)
		if err != nil {
			return err
		}
		printJSON(c.out, e)
		return nil

	case "rm":
		fs := c.flags("time rm")
		id := fs.String("id", "", "entry id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := svc.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "ok")
		return nil
	}
	return errUsage
}

// ---- assistant ----

func (c *cli) ask(ctx context.Context, prompt string) error {
	if err := c.page(nav.Dashboard); err != nil {
		return err
	}
	reply, err := c.app.Assistant().Ask(ctx, prompt)
	if reply != "" {
		fmt.Fprintln(c.out, reply)
	}
	if err != nil {
		c.app.Log.Debug("assistant", zap.Error(err))
	}
	return nil
}

func (c *cli) chat(ctx context.Context) error {
	if err := c.page(nav.Dashboard); err != nil {
		return err
	}
	chat := c.app.Assistant()
	fmt.Fprintln(c.out, "Asystent serwisowy. Pusta linia kończy rozmowę.")
	for {
		fmt.Fprint(c.out, "> ")
		line, readErr := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		actx, cancel := context.WithTimeout(ctx, c.app.Config.Timeout)
		reply, err := chat.Ask(actx, line)
		cancel()
		fmt.Fprintln(c.out, reply)
		if err != nil {
			c.app.Log.Debug("assistant", zap.Error(err))
		}
		if readErr != nil {
			return nil
		}
	}
}

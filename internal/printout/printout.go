// Package printout renders the printable service report document.
package printout

import (
	"io"
	"text/template"
	"time"

	"github.com/and161185/servicelog/internal/model"
)

const layout = `ServiceLog                                    PROTOKÓŁ SERWISOWY
System Zarządzania Serwisem                   Data: {{ date .Report.CompletedAt }}
Protokół: {{ .Report.ID }}
================================================================
ZLECENIODAWCA
  {{ .Client.Name }}
{{- with .Client.Address }}
  {{ . }}{{ end }}
  Tel: {{ .Client.Phone }}

URZĄDZENIE
  {{ .Report.Equipment }}
  ID Zlecenia: {{ .Report.WorkOrderID }}
{{- with .Order.Title }}
  Zlecenie: {{ . }}{{ end }}

WYKONANE CZYNNOŚCI
{{ .Report.Notes }}

PODSUMOWANIE KOSZTÓW
  Części zamienne i materiały   {{ printf "%12s" .Report.PartsCost.String }} PLN
  Usługa serwisowa / Robocizna  {{ printf "%12s" .Report.ServiceCost.String }} PLN
  ----------------------------------------------------
  RAZEM DO ZAPŁATY              {{ printf "%12s" .Total.String }} PLN


  ______________________          ____________________________
  Podpis Klienta                  Pieczęć i Podpis Serwisanta
`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Local().Format("02.01.2006") },
}).Parse(layout))

type document struct {
	Report model.ServiceReport
	Order  model.WorkOrder
	Client model.Client
	Total  model.Money
}

// Render writes the report. order may be nil; the report's own joined order
// is used then.
func Render(w io.Writer, r model.ServiceReport, order *model.WorkOrder) error {
	if order == nil {
		order = r.WorkOrder
	}
	d := document{Report: r, Total: r.Total()}
	if order != nil {
		d.Order = *order
		if order.Client != nil {
			d.Client = *order.Client
		}
	}
	return tmpl.Execute(w, d)
}

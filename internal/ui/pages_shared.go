package ui

import (
	"net/http"
	"strconv"
	"time"

	"quetzal-gate/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const displayTimeLayout = "02/01/2006 15:04"

type navItem struct {
	Label     string
	Href      string
	Key       string
	AdminOnly bool
}

var navItems = []navItem{
	{Label: "Portaria", Href: "/", Key: "home"},
	{Label: "Administração", Href: "/admin", Key: "admin", AdminOnly: true},
	{Label: "Convite", Href: "/invite", Key: "invite"},
}

func documentHead(title string) Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		TitleEl(Text(title+" | Casa Quetzal")),
		Link(Rel("icon"), Href("data:,")),
		Link(Rel("stylesheet"), Href("/static/app.css")),
	)
}

func appPage(r *http.Request, title, active string, viewer domain.Identity, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		if item.AdminOnly && !viewer.IsAdmin() {
			continue
		}
		className := "app-nav-link"
		if item.Key == active {
			className += " active"
		}
		nav = append(nav, A(Href(item.Href), Class(className), Text(item.Label)))
	}

	return Doctype(HTML(
		Lang("pt-BR"),
		documentHead(title),
		Body(
			Header(Class("topbar"),
				Strong(Class("brand"), Text("Casa Quetzal")),
				Nav(Class("app-nav"), Group(nav)),
				Div(Class("session"),
					Span(Text(viewer.Name+" ("+string(viewer.Role)+")")),
					Form(
						Method("post"),
						Action("/logout"),
						csrfField(r),
						Button(Type("submit"), Class("btn btn-sm"), Text("Sair")),
					),
				),
			),
			Main(Class("content"),
				H1(Class("page-title"), Text(title)),
				Group(body),
			),
		),
	))
}

func errorPage(title, message string) Node {
	return Doctype(HTML(
		Lang("pt-BR"),
		documentHead(title),
		Body(
			Main(Class("content narrow"),
				H1(Text(title)),
				P(Text(message)),
				A(Href("/"), Class("btn"), Text("Voltar")),
			),
		),
	))
}

func notice(message string) Node {
	if message == "" {
		return nil
	}
	return P(Class("flash flash-error"), Text(message))
}

func statsSummary(stats domain.RecordStats) Node {
	card := func(label string, n int64) Node {
		return Div(Class("stat"),
			Span(Class("stat-value"), Text(strconv.FormatInt(n, 10))),
			Span(Class("stat-label"), Text(label)),
		)
	}
	return Section(Class("stats"),
		card("Registros", stats.Total),
		card("Entradas", stats.Entries),
		card("Saídas", stats.Exits),
	)
}

func directionLabel(d domain.Direction) string {
	if d == domain.DirectionEntry {
		return "Entrada"
	}
	return "Saída"
}

func formatTime(t time.Time) string {
	return t.In(time.Local).Format(displayTimeLayout)
}

// recordTable lists records newest first. With withDelete set each row
// carries a delete form.
func recordTable(r *http.Request, records []domain.Record, withDelete bool) Node {
	if len(records) == 0 {
		return P(Class("empty"), Text("Nenhum registro ainda."))
	}

	head := []Node{Th(Text("Placa")), Th(Text("Motorista")), Th(Text("Tipo")), Th(Text("Data/Hora")), Th(Text("Registrado por"))}
	if withDelete {
		head = append(head, Th())
	}

	rows := make([]Node, 0, len(records))
	for _, rec := range records {
		driver := "-"
		if rec.Driver != nil {
			driver = *rec.Driver
		}
		cells := []Node{
			Td(Class("plate"), Text(rec.Plate)),
			Td(Text(driver)),
			Td(Class("direction-"+string(rec.Direction)), Text(directionLabel(rec.Direction))),
			Td(Text(formatTime(rec.EventAt))),
			Td(Text(rec.AuthorName)),
		}
		if withDelete {
			cells = append(cells, Td(
				Form(
					Method("post"),
					Action("/admin/records/"+strconv.FormatInt(rec.ID, 10)+"/delete"),
					csrfField(r),
					Button(Type("submit"), Class("btn btn-sm btn-danger"), Text("Excluir")),
				),
			))
		}
		rows = append(rows, Tr(Group(cells)))
	}

	return Table(Class("records"),
		THead(Tr(Group(head))),
		TBody(Group(rows)),
	)
}

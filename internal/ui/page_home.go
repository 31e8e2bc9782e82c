package ui

import (
	"net/http"

	"quetzal-gate/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func homePage(r *http.Request, viewer domain.Identity, stats domain.RecordStats, records []domain.Record, errMsg string) Node {
	return appPage(r, "Portaria", "home", viewer,
		notice(errMsg),
		statsSummary(stats),
		Section(Class("panel"),
			H2(Text("Novo registro")),
			recordForm(r),
		),
		Section(Class("panel"),
			H2(Text("Registros recentes")),
			recordTable(r, records, false),
		),
	)
}

func recordForm(r *http.Request) Node {
	return Form(
		Method("post"),
		Action("/records"),
		Class("record-form"),
		csrfField(r),
		Label(For("plate"), Text("Placa")),
		Input(ID("plate"), Type("text"), Name("plate"), Required(), Placeholder("ABC1D23"), AutoComplete("off")),
		Label(For("driver"), Text("Motorista")),
		Input(ID("driver"), Type("text"), Name("driver"), Placeholder("Opcional")),
		Label(For("direction"), Text("Tipo")),
		Select(ID("direction"), Name("direction"),
			Option(Value(string(domain.DirectionEntry)), Text("Entrada")),
			Option(Value(string(domain.DirectionExit)), Text("Saída")),
		),
		Label(For("timestamp"), Text("Data/Hora")),
		Input(ID("timestamp"), Type("datetime-local"), Name("timestamp")),
		Button(Type("submit"), Class("btn btn-primary"), Text("Registrar")),
	)
}

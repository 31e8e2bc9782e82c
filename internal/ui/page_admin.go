package ui

import (
	"net/http"
	"strconv"

	"quetzal-gate/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type adminView struct {
	Accounts []domain.Account
	Records  []domain.Record
	Stats    domain.RecordStats
	Notice   string
}

func adminPage(r *http.Request, viewer domain.Identity, v adminView) Node {
	return appPage(r, "Administração", "admin", viewer,
		notice(v.Notice),
		statsSummary(v.Stats),
		Section(Class("panel"),
			H2(Text("Usuários")),
			accountTable(r, v.Accounts, viewer),
			H2(Text("Novo usuário")),
			accountForm(r),
		),
		Section(Class("panel"),
			H2(Text("Registros")),
			recordTable(r, v.Records, true),
		),
	)
}

func accountTable(r *http.Request, accounts []domain.Account, viewer domain.Identity) Node {
	rows := make([]Node, 0, len(accounts))
	for _, a := range accounts {
		status := "Ativo"
		if !a.Active {
			status = "Inativo"
		}
		var action Node
		if a.Active && a.ID != viewer.UserID {
			action = Form(
				Method("post"),
				Action("/admin/users/"+strconv.FormatInt(a.ID, 10)+"/deactivate"),
				csrfField(r),
				Button(Type("submit"), Class("btn btn-sm btn-danger"), Text("Desativar")),
			)
		}
		rows = append(rows, Tr(
			Td(Text(a.Name)),
			Td(Text(a.Email)),
			Td(Text(string(a.Role))),
			Td(Text(status)),
			Td(Text(formatTime(a.CreatedAt))),
			Td(action),
		))
	}
	return Table(Class("accounts"),
		THead(Tr(Th(Text("Nome")), Th(Text("Email")), Th(Text("Perfil")), Th(Text("Status")), Th(Text("Criado em")), Th())),
		TBody(Group(rows)),
	)
}

func accountForm(r *http.Request) Node {
	return Form(
		Method("post"),
		Action("/admin/users"),
		Class("account-form"),
		csrfField(r),
		Label(For("new-nome"), Text("Nome")),
		Input(ID("new-nome"), Type("text"), Name("nome"), Required()),
		Label(For("new-email"), Text("Email")),
		Input(ID("new-email"), Type("email"), Name("email"), Required()),
		Label(For("new-password"), Text("Senha")),
		Input(ID("new-password"), Type("password"), Name("password"), Required(), AutoComplete("new-password")),
		Label(For("new-role"), Text("Perfil")),
		Select(ID("new-role"), Name("role"),
			Option(Value(string(domain.RoleFieldAgent)), Text("Vigia")),
			Option(Value(string(domain.RoleAdmin)), Text("Administrador")),
		),
		Button(Type("submit"), Class("btn btn-primary"), Text("Criar usuário")),
	)
}

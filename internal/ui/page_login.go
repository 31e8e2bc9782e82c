package ui

import (
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func loginPage(r *http.Request, errMsg string) Node {
	return Doctype(HTML(
		Lang("pt-BR"),
		documentHead("Entrar"),
		Body(
			Class("login-body"),
			Main(Class("login-wrap"),
				H1(Text("Casa Quetzal")),
				P(Class("muted"), Text("Controle de entrada e saída de veículos")),
				notice(errMsg),
				Form(
					Method("post"),
					Action("/login"),
					Class("login-form"),
					csrfField(r),
					Label(For("email"), Text("Email")),
					Input(ID("email"), Type("email"), Name("email"), Required(), AutoComplete("username")),
					Label(For("password"), Text("Senha")),
					Input(ID("password"), Type("password"), Name("password"), Required(), AutoComplete("current-password")),
					Button(Type("submit"), Class("btn btn-primary"), Text("Entrar")),
				),
			),
		),
	))
}

package ui

import (
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func invitePage(siteURL string) Node {
	return Doctype(HTML(
		Lang("pt-BR"),
		documentHead("Convite"),
		Body(
			Class("invite-body"),
			Main(Class("invite-card"),
				Div(Class("invite-title"),
					P(Text("NYE")),
					H1(Text("2026")),
					H2(Text("Casa Quetzal")),
					P(Class("muted"), Text("VIP Access")),
				),
				Img(
					Class("invite-qr"),
					Src("/invite/qr"),
					Alt("QR code para "+siteURL),
					Width(strconv.Itoa(qrSize)),
					Height(strconv.Itoa(qrSize)),
				),
				P(Class("invite-url"), Text(siteURL)),
				P(Class("muted"), Text("Escaneie o QR Code para acessar o sistema")),
			),
		),
	))
}

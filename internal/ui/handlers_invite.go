package ui

import (
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// InvitePage shows the site address and its QR code.
func (h *Handler) InvitePage(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, invitePage(h.siteURL(r)))
}

// InviteQR serves the QR code PNG for the site address.
func (h *Handler) InviteQR(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(h.siteURL(r), qrcode.Highest, qrSize)
	if err != nil {
		h.fail(w, r, "/invite", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// siteURL is PUBLIC_BASE_URL when configured, else the origin the request
// arrived on.
func (h *Handler) siteURL(r *http.Request) string {
	if base := strings.TrimRight(strings.TrimSpace(h.PublicBaseURL), "/"); base != "" {
		return base
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd == "https" || fwd == "http" {
		scheme = fwd
	}
	return scheme + "://" + r.Host
}

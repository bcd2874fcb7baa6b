package resolver

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest derives the base URL of the site serving r.
//
// The scheme is https when the request arrived over TLS or on local port 443,
// http otherwise. The host comes from the Host header with surrounding
// slashes removed. The result always ends with a slash.
func FromRequest(r *http.Request) string {
	scheme := "http://"
	if isSecure(r) {
		scheme = "https://"
	}

	return scheme + strings.Trim(r.Host, "/") + "/"
}

func isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	return localPort(r) == "443"
}

// localPort returns the port of the local end of the connection, if the server recorded it
func localPort(r *http.Request) string {
	addr, ok := r.Context().Value(http.LocalAddrContextKey).(net.Addr)
	if !ok || addr == nil {
		return ""
	}

	_, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return ""
	}
	return port
}

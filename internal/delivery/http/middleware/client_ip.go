package middleware

import (
	"net"
	"net/http"
	"strings"
)

// remoteIP is the peer address without its port.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// forwardedIP returns the left-most X-Forwarded-For entry, falling back to
// the peer address when the header is missing or empty.
func forwardedIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return remoteIP(r)
	}
	first, _, _ := strings.Cut(xff, ",")
	if ip := strings.TrimSpace(first); ip != "" {
		return ip
	}
	return remoteIP(r)
}

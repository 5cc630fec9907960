package web

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// reverseLookupTimeout bounds the hostname lookup made for the audit log.
const reverseLookupTimeout = 2 * time.Second

const unknownHost = "Unknown"

// clientIP returns the address of the directly connected peer.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// lookupHostname resolves ip to a hostname, returning "Unknown" when the
// lookup fails or takes too long.
func (h *Handler) lookupHostname(ctx context.Context, ip string) string {
	ctx, cancel := context.WithTimeout(ctx, reverseLookupTimeout)
	defer cancel()

	names, err := h.lookupAddr(ctx, ip)
	if err != nil || len(names) == 0 {
		return unknownHost
	}
	return strings.TrimSuffix(names[0], ".")
}

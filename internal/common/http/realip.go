package http

import (
	"net/http"
	"net/netip"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// TrustedRealIPMiddleware hands the request to chi's RealIP only when the
// socket peer is one of the trusted proxies. Forwarding headers from anyone
// else are ignored, so rate limits stay keyed on the real connection.
func TrustedRealIPMiddleware(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(trusted) == 0 {
			return next
		}
		viaProxy := chimiddleware.RealIP(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isTrustedPeer(r.RemoteAddr, trusted) {
				viaProxy.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isTrustedPeer(remoteAddr string, trusted []netip.Prefix) bool {
	var addr netip.Addr
	if addrPort, err := netip.ParseAddrPort(remoteAddr); err == nil {
		addr = addrPort.Addr()
	} else if parsed, err := netip.ParseAddr(remoteAddr); err == nil {
		addr = parsed
	} else {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

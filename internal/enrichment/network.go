package enrichment

import "net"

const (
	ScopeInvalid  = "invalid"
	ScopeLoopback = "loopback"
	ScopePrivate  = "private"
	ScopePublic   = "public"
)

// NetworkScope reports where an address sits relative to the server.
func NetworkScope(ipAddress string) string {
	ip := net.ParseIP(ipAddress)
	switch {
	case ip == nil:
		return ScopeInvalid
	case ip.IsLoopback():
		return ScopeLoopback
	case ip.IsPrivate(), ip.IsLinkLocalUnicast():
		return ScopePrivate
	default:
		return ScopePublic
	}
}

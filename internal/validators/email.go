package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the address's domain is likely to
// accept mail: it must carry MX records, or at least resolve to an IP.
// This catches typos at registration time; it is not a deliverability
// guarantee.
func IsEmailDomainValid(email string) bool {
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" {
		return false
	}
	// addresses like "a@b@c" keep everything after the last @
	if i := strings.LastIndex(domain, "@"); i >= 0 {
		domain = domain[i+1:]
		if domain == "" {
			return false
		}
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}

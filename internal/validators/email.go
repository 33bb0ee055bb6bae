package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"time"
)

// Resolver is the part of net.Resolver used for domain checks.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

const lookupTimeout = 3 * time.Second

// IsEmailDomainValid reports whether the address parses and its domain
// publishes an MX record or at least resolves.
func IsEmailDomainValid(email string) bool {
	return EmailDomainAccepts(context.Background(), net.DefaultResolver, email)
}

func EmailDomainAccepts(ctx context.Context, r Resolver, email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if hosts, err := r.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return true
	}

	return false
}

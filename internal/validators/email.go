package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
)

// Resolver é satisfeito por *net.Resolver.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// IsEmailSyntaxValid aceita só o endereço puro, sem nome ("Ana <a@b>").
func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	return strings.Contains(emailDomain(email), ".")
}

// EmailDomainChecker confere se o domínio do e-mail tem MX ou ao menos um A/AAAA.
type EmailDomainChecker struct {
	Resolver Resolver
}

func NewEmailDomainChecker() *EmailDomainChecker {
	return &EmailDomainChecker{Resolver: net.DefaultResolver}
}

func (c *EmailDomainChecker) Valid(ctx context.Context, email string) bool {
	domain := emailDomain(email)
	if domain == "" {
		return false
	}

	if mx, err := c.Resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := c.Resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}

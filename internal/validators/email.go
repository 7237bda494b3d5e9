package validators

import (
	"net/mail"
	"strings"
)

// IsEmail accepts a bare address with a dotted domain. Display names
// ("Ann <ann@x.io>") are rejected.
func IsEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}

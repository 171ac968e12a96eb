package blogplatform

import (
	"strings"
)

// EmailLocalPart returns the part of an address before the '@', or "" when
// the string is not an address.
func EmailLocalPart(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return ""
	}
	return email[:at]
}

// DisplayNameFallback resolves a display name from identity claims: the
// explicit name claim first, then the local part of the email, then the
// subject id.
func DisplayNameFallback(name, email, subject string) string {
	if name != "" {
		return name
	}
	if local := EmailLocalPart(email); local != "" {
		return local
	}
	return subject
}

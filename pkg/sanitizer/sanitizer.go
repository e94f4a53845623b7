// Package sanitizer normalizes user-supplied identifiers before validation
// and storage. All functions are idempotent.
package sanitizer

import "strings"

// NormalizeEmail trims whitespace and lowercases the address so the same
// requester always maps to the same stored identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

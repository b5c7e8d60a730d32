package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// fileIDRE matches Google Drive file IDs, which spreadsheet IDs are.
var fileIDRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)

// FileID validates that id is a safe Drive file ID.
func FileID(id string) error {
	if !fileIDRE.MatchString(id) {
		return fmt.Errorf("invalid spreadsheet ID %q: expected letters, digits, hyphens and underscores", id)
	}
	return nil
}

// emailRE matches basic email format: local@domain with at least one dot in domain.
var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validates that the given string looks like a valid email address.
func Email(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email address too long (max 254 characters)")
	}
	if !emailRE.MatchString(email) {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}

var queryEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// QueryLiteral escapes s for use inside a single-quoted Drive query string.
func QueryLiteral(s string) string {
	return queryEscaper.Replace(s)
}

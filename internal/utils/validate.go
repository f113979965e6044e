package utils

import "regexp"

var emailRe = regexp.MustCompile(`^[\w.\-+]+@[\w\-]+(\.[\w\-]+)+$`)

// ValidEmail reports whether s looks like an email address.  This is a
// sanity check only; deliverability is decided by the mail relay.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// ValidPassword enforces the minimum password length.
func ValidPassword(s string) bool { return len(s) >= 6 }

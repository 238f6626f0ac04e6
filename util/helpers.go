// Package util provides small helpers shared across the CMS: blank
// checks for request validation and storage key construction for
// rendered portfolio pages.
package util

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// IsEmpty checks if a string is empty or contains only whitespace
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// IsNotEmpty checks if a string is not empty
func IsNotEmpty(s string) bool {
	return !IsEmpty(s)
}

// StorageFilename builds the storage filename for a rendered page:
// "{timestampMillis}_{name with whitespace collapsed to underscores}.html".
// The timestamp prefix makes filenames unique by construction.
func StorageFilename(timestampMillis int64, name string) string {
	safe := whitespaceRe.ReplaceAllString(name, "_")
	return fmt.Sprintf("%d_%s.html", timestampMillis, safe)
}

package track

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether s is a well-formed http or https URL.
// The core never rejects bad user input itself; surfacing the result
// is the presentation layer's job.
func IsValidURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

package fetch

import "net/url"

// IsValid reports whether raw parses as a URL with both a scheme and a host.
func IsValid(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

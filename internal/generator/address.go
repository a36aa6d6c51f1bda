package generator

import "strings"

// BareAddress strips a trailing "/prefixLength" from an address. Anything
// after the first slash is dropped; the result is trimmed.
func BareAddress(addr string) string {
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		addr = addr[:i]
	}
	return strings.TrimSpace(addr)
}

// SplitRoutes turns the free-text internal networks field into one prefix
// per non-blank line, trimmed, in original order. Duplicates are kept.
func SplitRoutes(text string) []string {
	var routes []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		routes = append(routes, line)
	}
	return routes
}

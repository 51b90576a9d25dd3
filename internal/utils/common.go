// Package utils holds small string helpers shared by the todo model, the
// store and the CLI.
package utils

import (
	"strconv"
	"strings"
)

// SplitAndTrim splits s on sep, trims each piece and drops empty ones.
// Tag lists such as "work, urgent,,home" go through here.
func SplitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JSONPointerToPath renders an RFC 6901 pointer as a dotted field path, so
// "/tags/1" becomes "tags[1]". A leading "#" is ignored.
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	unescape := strings.NewReplacer("~1", "/", "~0", "~")

	var b strings.Builder
	for _, seg := range strings.Split(ptr, "/") {
		seg = unescape.Replace(seg)
		switch {
		case seg == "":
		case isIndex(seg):
			b.WriteString("[" + seg + "]")
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

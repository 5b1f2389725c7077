// Package lines splits game text files into lines the way Valve's tools
// write them: "\n" terminated, optionally with a trailing "\r", and with no
// empty element for a final terminator.
package lines

import "strings"

// Split breaks s into lines. A trailing "\r" is stripped from each line and
// a terminator at the very end of s does not produce an empty last line, so
// "a\nb\n" and "a\r\nb" both yield ["a", "b"]. The empty string yields nil.
func Split(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// Last returns the final line of s and its 1-based line number.
// ok is false when s has no lines.
func Last(s string) (line string, number int, ok bool) {
	all := Split(s)
	if len(all) == 0 {
		return "", 0, false
	}
	return all[len(all)-1], len(all), true
}

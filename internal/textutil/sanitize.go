package textutil

import "strings"

// SanitizeFileName makes a string safe to use as a filename. Reserved
// characters and control characters become underscores, runs of
// whitespace collapse to a single space, and trailing separator junk is
// trimmed.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, name)
	collapsed := strings.Join(strings.Fields(mapped), " ")
	return strings.TrimRight(collapsed, "._- ")
}

// CollapseSeparators normalizes mixed separators (spaces, tabs, hyphens,
// underscores, dots) to single spaces. Disc labels commonly arrive as
// "STAR_TREK-DS9.S1D2".
func CollapseSeparators(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '_', '.':
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

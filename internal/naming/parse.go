// Package naming turns classification decisions into canonical library
// filenames and parses series/season/disc information out of disc labels.
package naming

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reelsort/internal/textutil"
)

// ParsedTitle is the decomposition of a display name like
// "Blade Runner (1982) [Final Cut]".
type ParsedTitle struct {
	Name    string
	Year    string
	Edition string
}

var (
	editionPattern = regexp.MustCompile(`\s*\[(.+?)\]\s*`)
	yearPattern    = regexp.MustCompile(`\s*\((\d{4})\)\s*`)

	seasonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bS(\d{1,2})D\d{1,2}\b`),
		regexp.MustCompile(`(?i)\bStaffel\s*(\d{1,2})\b`),
		regexp.MustCompile(`(?i)\bSeason\s*(\d{1,2})\b`),
		regexp.MustCompile(`(?i)\bS(?:eason)?\s*[_\-.\s]?(\d{1,2})\b`),
	}

	discPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bS\d{1,2}D(\d{1,2})\b`),
		regexp.MustCompile(`(?i)\bDisc\s*(\d{1,2})\b`),
		regexp.MustCompile(`(?i)\bDisk\s*(\d{1,2})\b`),
		regexp.MustCompile(`(?i)\bDVD\s*(\d{1,2})\b`),
		regexp.MustCompile(`(?i)\bD\s*(\d{1,2})\b`),
		regexp.MustCompile(`(?i)\bD(\d{1,2})\b`),
		regexp.MustCompile(`(?i)\bCD\s*(\d{1,2})\b`),
	}

	seriesTokenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bS\d{1,2}D\d{1,2}\b`),
		regexp.MustCompile(`(?i)\bStaffel\s*\d{1,2}\b`),
		regexp.MustCompile(`(?i)\bSeason\s*\d{1,2}\b`),
		regexp.MustCompile(`(?i)\bS(?:eason)?\s*[_\-.\s]?\d{1,2}\b`),
		regexp.MustCompile(`(?i)\bDisc\s*\d{1,2}\b`),
		regexp.MustCompile(`(?i)\bDisk\s*\d{1,2}\b`),
		regexp.MustCompile(`(?i)\bDVD\s*\d{1,2}\b`),
		regexp.MustCompile(`(?i)\bD\s*\d{1,2}\b`),
		regexp.MustCompile(`(?i)\bD\d{1,2}\b`),
	}
)

// ParseTitle splits "Title (1999) [Version]" into its parts. Brackets are
// stripped and the remaining title sanitized for filesystem use.
func ParseTitle(base string) ParsedTitle {
	name := base
	parsed := ParsedTitle{}

	if m := editionPattern.FindStringSubmatch(name); m != nil {
		parsed.Edition = strings.TrimSpace(m[1])
		name = strings.TrimSpace(editionPattern.ReplaceAllString(name, " "))
	}
	if m := yearPattern.FindStringSubmatch(name); m != nil {
		parsed.Year = m[1]
		name = strings.TrimSpace(yearPattern.ReplaceAllString(name, " "))
	}
	parsed.Name = textutil.SanitizeFileName(name)
	return parsed
}

// ExtractSeason pulls a season number out of a label. Recognizes
// "Staffel 1", "Season 02", "S01", "s1", "S1D2".
func ExtractSeason(s string) (int, bool) {
	s = strings.ReplaceAll(s, "_", " ")
	for _, pattern := range seasonPatterns {
		if m := pattern.FindStringSubmatch(s); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// ExtractDiscNumber pulls a disc number out of a label. Recognizes
// "Disc 1", "Disk 2", "DVD 3", "D5", "S1D2", "CD 1".
func ExtractDiscNumber(s string) (int, bool) {
	s = strings.ReplaceAll(s, "_", " ")
	for _, pattern := range discPatterns {
		if m := pattern.FindStringSubmatch(s); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// SeriesKey strips season and disc tokens from a display name so discs of
// one season group under the same key.
func SeriesKey(display string) string {
	s := display
	for _, pattern := range seriesTokenPatterns {
		s = pattern.ReplaceAllString(s, "")
	}
	return textutil.SanitizeFileName(textutil.CollapseSeparators(s))
}

var titleCaser = cases.Title(language.Und)

// DisplayTitle converts a raw disc label such as "STAR_TREK_DS9_S1D2"
// into a presentable title. All-caps labels are title-cased; labels that
// already use mixed case keep their casing.
func DisplayTitle(label string) string {
	cleaned := textutil.SanitizeFileName(textutil.CollapseSeparators(label))
	if cleaned == "" {
		return ""
	}
	if cleaned == strings.ToUpper(cleaned) {
		return titleCaser.String(strings.ToLower(cleaned))
	}
	return cleaned
}

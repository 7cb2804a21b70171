package logrec

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TimestampLayout is the filename prefix format: YYYY-MM-DD_HHMMSS.
const TimestampLayout = "2006-01-02_150405"

var nameRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}_\d{6})_([a-z0-9][a-z0-9-]*)\.md$`)

// ParseName parses a workflow log filename (no directory part) into its
// timestamp and slug.
func ParseName(name string) (time.Time, string, error) {
	m := nameRe.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, "", fmt.Errorf("filename %q does not match YYYY-MM-DD_HHMMSS_<slug>.md", name)
	}
	ts, err := time.Parse(TimestampLayout, m[1])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("filename %q: invalid timestamp: %w", name, err)
	}
	return ts, m[2], nil
}

// FormatName builds a workflow log filename from a timestamp and slug.
func FormatName(ts time.Time, slug string) string {
	return fmt.Sprintf("%s_%s.md", ts.Format(TimestampLayout), slug)
}

// ValidSlug checks slug charset, shape, and length.
func ValidSlug(slug string, maxLen int) error {
	if slug == "" {
		return fmt.Errorf("slug is empty")
	}
	if len(slug) > maxLen {
		return fmt.Errorf("slug %q exceeds %d characters", slug, maxLen)
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug %q must not start or end with a hyphen", slug)
	}
	if strings.Contains(slug, "--") {
		return fmt.Errorf("slug %q must not contain doubled hyphens", slug)
	}
	for _, c := range slug {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return fmt.Errorf("slug %q contains invalid character %q", slug, c)
		}
	}
	return nil
}

// Slugify converts free text into a valid slug, truncated to maxLen.
func Slugify(s string, maxLen int) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, c := range strings.ToLower(s) {
		switch {
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			b.WriteRune(c)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > maxLen {
		slug = strings.TrimRight(slug[:maxLen], "-")
	}
	return slug
}

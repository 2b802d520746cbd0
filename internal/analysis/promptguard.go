package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Deny-list of patterns that indicate an attempt to override the analysis
// instructions. Checked case-insensitively against the whole text.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?previous\s+instructions?`),
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?above`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?previous`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?previous`),
	regexp.MustCompile(`(?i)you\s+are\s+now`),
	regexp.MustCompile(`(?i)new\s+instructions?`),
	regexp.MustCompile(`(?i)system\s*:\s*`),
	regexp.MustCompile(`(?i)(reveal|show|print)\s+(your\s+|the\s+)?system\s+prompt`),
	regexp.MustCompile(`(?i)<\|im_start\|>`),
	regexp.MustCompile(`(?i)<\|im_end\|>`),
	regexp.MustCompile(`(?i)###\s*instruction`),
	regexp.MustCompile(`(?i)ENDOFINPUT`),
	regexp.MustCompile(`(?i)roleplay\s+as`),
	regexp.MustCompile(`(?i)pretend\s+(you\s+are|to\s+be)`),
	regexp.MustCompile(`(?i)act\s+as\s+(if|though)`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

const auditExcerptChars = 200

// Normalize sanitizes raw document text before it is shown to the model.
// It rejects inputs matching the injection deny-list, silently truncates to
// maxChars (reporting the truncation via the second return), and collapses
// whitespace runs. It never calls the provider.
func Normalize(raw string, maxChars int) (string, bool, error) {
	if strings.TrimSpace(raw) == "" {
		return "", false, ErrEmptyInput
	}

	if pattern := matchInjection(raw); pattern != "" {
		return "", false, fmt.Errorf("%w (pattern %s)", ErrInjectionDetected, pattern)
	}

	truncated := false
	if maxChars > 0 && len(raw) > maxChars {
		raw = truncateUTF8(raw, maxChars)
		truncated = true
	}

	clean := strings.TrimSpace(whitespaceRun.ReplaceAllString(raw, " "))
	return clean, truncated, nil
}

// matchInjection returns the source of the first matching deny-list pattern,
// or the empty string when the text is clean.
func matchInjection(text string) string {
	for _, pattern := range injectionPatterns {
		if pattern.MatchString(text) {
			return pattern.String()
		}
	}
	return ""
}

// AuditExcerpt returns a bounded excerpt of the offending text suitable for
// audit logs. The full payload is never logged.
func AuditExcerpt(text string) string {
	return truncateUTF8(strings.TrimSpace(text), auditExcerptChars)
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune.
func truncateUTF8(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

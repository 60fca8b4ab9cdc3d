package extraction

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// chrome is the closed set of navigation and button labels found in pasted pages.
var chrome = map[string]struct{}{
	"Previous": {}, "Next": {}, "Message": {}, "Connect": {}, "Follow": {}, "Following": {},
	"Pending": {}, "Show more": {}, "Show less": {}, "Show all": {}, "See all": {},
	"Load more": {}, "…see more": {}, "...see more": {}, "More": {}, "Save": {}, "Saved": {},
	"Easy Apply": {}, "Promoted": {}, "Status is online": {}, "Status is offline": {},
	"Status is reachable": {}, "Open to work": {}, "Remove connection": {},
	"Privacy & Terms": {}, "Privacy Policy": {}, "User Agreement": {}, "Cookie Policy": {},
	"Ad Choices": {}, "Advertising": {}, "About": {}, "Accessibility": {}, "Help Center": {},
	"Business Services": {}, "Get the LinkedIn app": {}, "Home": {}, "My Network": {},
	"Jobs": {}, "Messaging": {}, "Notifications": {}, "Me": {}, "For Business": {},
	"Filters": {}, "Reset": {}, "Clear": {}, "Search": {}, "People": {},
	"Sort by: Recently added": {}, "Select language": {},
}

// chromePrefixes drops footer lines whose tail varies (year, locale).
var chromePrefixes = []string{
	"LinkedIn Corporation ©",
	"Sort by:",
}

// NoiseFilter drops UI chrome and empty lines from raw text.
type NoiseFilter struct{}

// Name returns the stage name.
func (NoiseFilter) Name() string { return "noise" }

// Process fills the batch lines from its raw text.
func (NoiseFilter) Process(_ context.Context, b *Batch) error {
	b.Lines = FilterLines(b.Raw, b.Profile)
	return nil
}

// FilterLines returns the normalised, non-noise lines of raw.
// Lines equal to one of the profile's anchor literals are always kept.
func FilterLines(raw string, profile *domain.LayoutProfile) []string {
	if raw == "" {
		return []string{}
	}

	keep := make(map[string]struct{})
	extra := make(map[string]struct{})
	keepNumeric := false
	if profile != nil {
		for _, lit := range profile.AnchorLiterals() {
			keep[strings.TrimSpace(lit)] = struct{}{}
		}
		for _, n := range profile.Noise {
			extra[strings.TrimSpace(n)] = struct{}{}
		}
		keepNumeric = profile.KeepNumeric
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	out := make([]string, 0, strings.Count(raw, "\n")+1)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(norm.NFKC.String(line))
		if line == "" {
			continue
		}
		if _, ok := keep[line]; ok {
			out = append(out, line)
			continue
		}
		if isNoise(line, extra, keepNumeric) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isNoise(line string, extra map[string]struct{}, keepNumeric bool) bool {
	if _, ok := chrome[line]; ok {
		return true
	}
	if _, ok := extra[line]; ok {
		return true
	}
	if !keepNumeric && isNumeric(line) {
		return true
	}
	for _, p := range chromePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return isPageIndicator(line) || isProfileLink(line)
}

// isNumeric reports whether line holds only digits, separators and spaces.
func isNumeric(line string) bool {
	digits := 0
	for _, r := range line {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ',' || r == '.' || r == ' ' || r == '…':
		default:
			return false
		}
	}
	return digits > 0
}

// isPageIndicator matches "Page 2 of 10".
func isPageIndicator(line string) bool {
	f := strings.Fields(line)
	return len(f) == 4 && f[0] == "Page" && f[2] == "of" && isNumeric(f[1]) && isNumeric(f[3])
}

// isProfileLink matches the accessibility text "View Jane Doe’s profile".
func isProfileLink(line string) bool {
	if !strings.HasPrefix(line, "View ") {
		return false
	}
	return strings.HasSuffix(line, "’s profile") || strings.HasSuffix(line, "'s profile") ||
		strings.HasSuffix(line, "s’ profile")
}

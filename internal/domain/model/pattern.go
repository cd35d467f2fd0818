package model

import (
	"regexp"
	"strconv"
	"strings"

	"telegram-appointment-monitor/internal/domain"
)

// Separator joins the country and city segments of a canonical pattern.
const Separator = " · "

// Pattern is an operator-defined "Country · City" filter. Raw is the
// case-sensitive registry key; matching is case-insensitive and always
// literal, so punctuation an operator types is never interpreted as a
// regular expression.
type Pattern struct {
	Raw string

	rule *regexp.Regexp
}

// NewPattern trims surrounding whitespace, rejects empty text and rewrites
// the single "Country, City" comma form to the canonical middle-dot form.
// Everything else is kept verbatim.
func NewPattern(raw string) (Pattern, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Pattern{}, domain.ErrInvalidArgument
	}
	raw = canonicalize(raw)
	return Pattern{Raw: raw, rule: compileRule(raw)}, nil
}

// MustPattern is a test/default-list helper that panics on invalid input.
func MustPattern(raw string) Pattern {
	p, err := NewPattern(raw)
	if err != nil {
		panic("model: invalid pattern " + strconv.Quote(raw))
	}
	return p
}

// Matches reports whether text contains the pattern's literal text,
// ignoring case, anywhere in its body.
func (p Pattern) Matches(text string) bool {
	rule := p.rule
	if rule == nil {
		rule = compileRule(p.Raw)
	}
	return rule.MatchString(text)
}

func (p Pattern) IsZero() bool { return p.Raw == "" }

func (p Pattern) String() string { return p.Raw }

// compileRule escapes every metacharacter in the pattern text so the rule
// matches it literally, then compiles the result case-insensitively.
func compileRule(raw string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(raw))
}

// canonicalize turns "Country, City" into "Country · City". Input already
// carrying a middle dot, or without a comma, is returned unchanged.
func canonicalize(raw string) string {
	if strings.Contains(raw, "·") || !strings.Contains(raw, ",") {
		return raw
	}
	parts := strings.SplitN(raw, ",", 2)
	country := strings.TrimSpace(parts[0])
	city := strings.TrimSpace(parts[1])
	if country == "" || city == "" {
		return raw
	}
	return country + Separator + city
}

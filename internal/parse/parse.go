// Package parse holds the pure string-to-domain-value parsers used by the
// load pipeline's mapping specs.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/mapper"
)

// PresenceFlag interprets flag columns where any mark (commonly "x") means
// true: non-blank after trimming is true.
func PresenceFlag(input string) bool {
	return strings.TrimSpace(input) != ""
}

// CommaSeparated splits on commas, trims entries, and drops empty ones,
// preserving order and duplicates.
func CommaSeparated(input string) []string {
	var items []string
	for _, item := range strings.Split(input, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9 ]`)
	slugSpaceRun = regexp.MustCompile(`\s+`)
)

// Slug derives a stable identifier from a display name: lowercase, strip
// everything outside [a-z0-9 ], collapse whitespace runs to hyphens.
func Slug(input string) string {
	s := strings.ToLower(input)
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return slugSpaceRun.ReplaceAllString(s, "-")
}

// DisplayNameAndID pairs a display name with its slug.
func DisplayNameAndID(input string) domain.Individual {
	return domain.Individual{
		DisplayName: input,
		ID:          Slug(input),
	}
}

// Matcher is one enumeration matching rule: an exact string, a list of
// alternatives, a regular expression, or the catch-all Any.
type Matcher interface {
	matches(input string) bool
}

type exactMatcher string

func (m exactMatcher) matches(input string) bool { return input == string(m) }

type anyOfMatcher []string

func (m anyOfMatcher) matches(input string) bool {
	for _, candidate := range m {
		if input == candidate {
			return true
		}
	}
	return false
}

type patternMatcher struct{ re *regexp.Regexp }

func (m patternMatcher) matches(input string) bool { return m.re.MatchString(input) }

type anyMatcher struct{}

func (anyMatcher) matches(string) bool { return true }

func Exact(s string) Matcher          { return exactMatcher(s) }
func AnyOf(ss ...string) Matcher      { return anyOfMatcher(ss) }
func MatchPattern(expr string) Matcher { return patternMatcher{re: regexp.MustCompile(expr)} }
func Any() Matcher                    { return anyMatcher{} }

// Mapping is one (matcher, output) pair of an enumeration.
type Mapping[T any] struct {
	Matcher Matcher
	Output  T
}

// MapInput builds an enumeration parser: the first matching pair in list
// order wins; no match is an UnmappedValue error.
func MapInput[T any](mappings []Mapping[T]) func(input string) (T, error) {
	return func(input string) (T, error) {
		for _, m := range mappings {
			if m.Matcher.matches(input) {
				return m.Output, nil
			}
		}
		var zero T
		return zero, &domain.UnmappedValueError{Value: input}
	}
}

// StringTransform adapts a string parser into a mapper pipeline stage.
func StringTransform(f func(string) (any, error)) mapper.Transform {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("parse: transform expects string input, got %T", value)
		}
		return f(s)
	}
}

// FlagTransform is the presence-flag parser as a pipeline stage.
func FlagTransform() mapper.Transform {
	return StringTransform(func(s string) (any, error) {
		return PresenceFlag(s), nil
	})
}

// ListTransform is the comma-separated-list parser as a pipeline stage.
func ListTransform() mapper.Transform {
	return StringTransform(func(s string) (any, error) {
		return CommaSeparated(s), nil
	})
}

// IndividualsTransform maps a parsed name list to display-name/slug pairs.
func IndividualsTransform() mapper.Transform {
	return func(value any) (any, error) {
		names, ok := value.([]string)
		if !ok {
			return nil, fmt.Errorf("parse: individuals transform expects []string, got %T", value)
		}
		individuals := make([]domain.Individual, 0, len(names))
		for _, name := range names {
			individuals = append(individuals, DisplayNameAndID(name))
		}
		return individuals, nil
	}
}

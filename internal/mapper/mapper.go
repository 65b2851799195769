// Package mapper projects loosely-typed spreadsheet rows into shaped
// records by interpreting a declarative mapping specification. A spec is a
// tree of tagged variants: Column and Pattern select a cell, Pipeline
// chains transforms onto a selection, FromRow escapes to row-wide logic,
// Object nests, and Computed derives fields from the output record after
// all base fields exist.
package mapper

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/doublemix/msche-team-visit/internal/domain"
)

// Row is one labeled spreadsheet row: column header to cell text. Missing
// and blank cells are both represented as "".
type Row map[string]string

// Record is the output of evaluating an Object spec.
type Record map[string]any

// SpliceKeyPrefix marks an Object key whose sub-record's fields are merged
// into the parent record instead of nesting under the key.
const SpliceKeyPrefix = "$"

// Spec is a node of a mapping specification.
type Spec interface {
	isSpec()
}

// Column selects a cell by exact header match.
type Column string

// Pattern selects a cell whose header matches a regular expression. Zero
// matches is a FieldNotFound error; more than one is AmbiguousField, so a
// pattern is never resolved arbitrarily.
type Pattern struct {
	re *regexp.Regexp
}

// Match compiles a header pattern. The expression is part of the spec, so
// a bad expression is a programming error.
func Match(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(expr)}
}

// Transform is a pipeline stage applied to the running value.
type Transform func(value any) (any, error)

// FromRow computes a value from the whole row, for fields that need
// sibling columns.
type FromRow func(row Row) (any, error)

// Pipeline evaluates its first element against the row, then threads the
// result through the remaining stages left to right.
type Pipeline []Spec

// Object maps output field names to sub-specs.
type Object map[string]Spec

// Computed derives a field from the record built so far. Computed fields
// are evaluated after all base fields, in field-name order.
type Computed func(rec Record) (any, error)

func (Column) isSpec()    {}
func (Pattern) isSpec()   {}
func (Transform) isSpec() {}
func (FromRow) isSpec()   {}
func (Pipeline) isSpec()  {}
func (Object) isSpec()    {}
func (Computed) isSpec()  {}

// Field resolves a column selector against a row, returning the trimmed
// cell text.
func Field(row Row, key string) (string, error) {
	value, ok := row[key]
	if !ok {
		return "", &domain.FieldNotFoundError{Selector: key}
	}
	return strings.TrimSpace(value), nil
}

// FieldByPattern resolves a header pattern against a row. Exactly one
// header must match.
func FieldByPattern(row Row, re *regexp.Regexp) (string, error) {
	var matches []string
	for key := range row {
		if re.MatchString(key) {
			matches = append(matches, key)
		}
	}
	switch len(matches) {
	case 0:
		return "", &domain.FieldNotFoundError{Selector: re.String()}
	case 1:
		return Field(row, matches[0])
	default:
		sort.Strings(matches)
		return "", &domain.AmbiguousFieldError{Selector: re.String(), Matches: matches}
	}
}

// Eval evaluates a single spec node against a row.
func Eval(row Row, spec Spec) (any, error) {
	switch s := spec.(type) {
	case Column:
		return Field(row, string(s))
	case Pattern:
		return FieldByPattern(row, s.re)
	case FromRow:
		return s(row)
	case Pipeline:
		return evalPipeline(row, s)
	case Object:
		return evalObject(row, s)
	case Transform, Computed:
		return nil, fmt.Errorf("mapper: %T is only valid inside a Pipeline or Object", spec)
	default:
		return nil, fmt.Errorf("mapper: unknown spec node %T", spec)
	}
}

func evalPipeline(row Row, stages Pipeline) (any, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("mapper: empty pipeline")
	}
	value, err := Eval(row, stages[0])
	if err != nil {
		return nil, err
	}
	for _, stage := range stages[1:] {
		switch s := stage.(type) {
		case Transform:
			value, err = s(value)
			if err != nil {
				return nil, err
			}
		case Column:
			// A selector stage re-selects from the running value, which
			// must itself be row-shaped.
			inner, ok := value.(Row)
			if !ok {
				return nil, fmt.Errorf("mapper: selector stage %q applied to %T", string(s), value)
			}
			value, err = Field(inner, string(s))
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("mapper: invalid pipeline stage %T", stage)
		}
	}
	return value, nil
}

func evalObject(row Row, spec Object) (Record, error) {
	rec := make(Record, len(spec))

	// Deterministic evaluation order: base fields first, computed after,
	// each in field-name order.
	keys := make([]string, 0, len(spec))
	for key := range spec {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var computed []string
	for _, key := range keys {
		if _, ok := spec[key].(Computed); ok {
			computed = append(computed, key)
			continue
		}
		value, err := Eval(row, spec[key])
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(key, SpliceKeyPrefix) {
			sub, ok := value.(Record)
			if !ok {
				return nil, fmt.Errorf("mapper: splice key %q produced %T, want Record", key, value)
			}
			for subKey, subValue := range sub {
				if _, exists := rec[subKey]; exists {
					return nil, fmt.Errorf("mapper: splice key %q collides on field %q", key, subKey)
				}
				rec[subKey] = subValue
			}
			continue
		}
		rec[key] = value
	}

	for _, key := range computed {
		value, err := spec[key].(Computed)(rec)
		if err != nil {
			return nil, err
		}
		rec[key] = value
	}

	return rec, nil
}

// MapRows maps every row through the spec. Any failure aborts the whole
// batch, wrapped with the row's position; partial results are never
// returned.
func MapRows(rows []Row, spec Object) ([]Record, error) {
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec, err := evalObject(row, spec)
		if err != nil {
			return nil, &domain.MappingError{Field: fieldOf(err), Row: i, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

func fieldOf(err error) string {
	var notFound *domain.FieldNotFoundError
	if errors.As(err, &notFound) {
		return notFound.Selector
	}
	var ambiguous *domain.AmbiguousFieldError
	if errors.As(err, &ambiguous) {
		return ambiguous.Selector
	}
	return ""
}

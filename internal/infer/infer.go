// Package infer classifies CSV cell values by the kind of data they hold.
package infer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DataType is the inferred kind of a cell value.
type DataType int

const (
	Text DataType = iota
	Int
	Float
	Boolean
	Date
	Empty
)

func (t DataType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case Date:
		return "date"
	case Empty:
		return "empty"
	default:
		return "text"
	}
}

// DefaultDateLayouts match YYYY-MM-DD, DD/MM/YYYY and DD-MM-YYYY.
var DefaultDateLayouts = []string{
	`^\d{4}-\d{2}-\d{2}$`,
	`^\d{2}/\d{2}/\d{4}$`,
	`^\d{2}-\d{2}-\d{4}$`,
}

// Patterns is an immutable set of compiled date expressions.
type Patterns struct {
	date []*regexp.Regexp
}

// NewPatterns compiles the given date expressions.
func NewPatterns(exprs ...string) (*Patterns, error) {
	p := &Patterns{date: make([]*regexp.Regexp, 0, len(exprs))}
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compile date pattern %q", expr)
		}
		p.date = append(p.date, re)
	}
	return p, nil
}

// DefaultPatterns compiles DefaultDateLayouts.
func DefaultPatterns() *Patterns {
	p, err := NewPatterns(DefaultDateLayouts...)
	if err != nil {
		panic(err)
	}
	return p
}

// IsDate reports whether s matches any date expression.
func (p *Patterns) IsDate(s string) bool {
	if p == nil {
		return false
	}
	for _, re := range p.date {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Detect classifies val. Checks run in order: empty, boolean, int, float,
// date, falling back to text. A nil Patterns never reports dates.
func Detect(val string, p *Patterns) DataType {
	s := strings.TrimSpace(val)
	if s == "" {
		return Empty
	}

	switch strings.ToLower(s) {
	case "true", "false", "yes", "no", "y", "n":
		return Boolean
	}

	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return Float
	}
	if p.IsDate(s) {
		return Date
	}
	return Text
}

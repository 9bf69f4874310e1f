// Package query compiles user-supplied conference filters into a validated
// query plan. The plan enforces the single-inequality-field rule and carries
// the ordering contract the storage layer must honor: when an inequality
// field exists it is the primary sort key (ascending) with name second,
// otherwise results are ordered by name alone.
package query

import (
	"errors"
	"fmt"
	"strconv"
)

// Errors returned by Compile.
var (
	ErrInvalidFilter            = errors.New("filter contains invalid field, operator, or value")
	ErrMultipleInequalityFields = errors.New("inequality filter is allowed on only one field")
)

// Canonical field names.
const (
	FieldCity         = "city"
	FieldTopics       = "topics"
	FieldMonth        = "month"
	FieldMaxAttendees = "maxAttendees"
)

// fields maps request aliases to canonical field names.
var fields = map[string]string{
	"CITY":          FieldCity,
	"TOPIC":         FieldTopics,
	"MONTH":         FieldMonth,
	"MAX_ATTENDEES": FieldMaxAttendees,
}

// operators maps request aliases to comparison operators.
var operators = map[string]string{
	"EQ":   "=",
	"GT":   ">",
	"GTEQ": ">=",
	"LT":   "<",
	"LTEQ": "<=",
	"NE":   "!=",
}

// numericFields are coerced to integers during compilation.
var numericFields = map[string]struct{}{
	FieldMonth:        {},
	FieldMaxAttendees: {},
}

// Filter is one user-supplied (field, operator, value) triple, using the
// request aliases (e.g. field "CITY", operator "EQ").
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Predicate is one compiled filter: canonical field, comparison operator,
// and the value coerced to its field type (string or int).
type Predicate struct {
	Field    string
	Operator string
	Value    any
}

// Plan is a validated, ordered list of predicates plus the field (if any)
// carrying an inequality.
type Plan struct {
	Predicates      []Predicate
	InequalityField string
}

// OrderFields returns the result ordering the executing engine must apply:
// the inequality field first (when present), then name.
func (p *Plan) OrderFields() []string {
	if p.InequalityField == "" {
		return []string{"name"}
	}
	return []string{p.InequalityField, "name"}
}

// Compile validates and translates the filters into a Plan. Every operator
// other than "=" counts as an inequality; a second distinct inequality field
// fails with ErrMultipleInequalityFields.
func Compile(filters []Filter) (*Plan, error) {
	plan := &Plan{Predicates: make([]Predicate, 0, len(filters))}

	for _, f := range filters {
		field, ok := fields[f.Field]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, f.Field)
		}
		op, ok := operators[f.Operator]
		if !ok {
			return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidFilter, f.Operator)
		}

		var value any = f.Value
		if _, numeric := numericFields[field]; numeric {
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q requires an integer value, got %q", ErrInvalidFilter, field, f.Value)
			}
			value = n
		}

		if op != "=" {
			if plan.InequalityField != "" && plan.InequalityField != field {
				return nil, ErrMultipleInequalityFields
			}
			plan.InequalityField = field
		}

		plan.Predicates = append(plan.Predicates, Predicate{Field: field, Operator: op, Value: value})
	}

	return plan, nil
}

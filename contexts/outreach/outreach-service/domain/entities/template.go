package entities

import (
	"encoding/json"
	"regexp"
	"strings"
)

type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "not_equals"
	OperatorContains    Operator = "contains"
	OperatorNotContains Operator = "not_contains"
	OperatorEmpty       Operator = "empty"
	OperatorNotEmpty    Operator = "not_empty"
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorEquals, OperatorNotEquals, OperatorContains, OperatorNotContains, OperatorEmpty, OperatorNotEmpty:
		return true
	default:
		return false
	}
}

type Condition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// Matches compares case-insensitively after trimming both sides.
func (c Condition) Matches(candidate Candidate) bool {
	actual := strings.ToLower(strings.TrimSpace(candidate.Field(c.Field)))
	expected := strings.ToLower(strings.TrimSpace(c.Value))
	switch c.Operator {
	case OperatorEquals:
		return actual == expected
	case OperatorNotEquals:
		return actual != expected
	case OperatorContains:
		return strings.Contains(actual, expected)
	case OperatorNotContains:
		return !strings.Contains(actual, expected)
	case OperatorEmpty:
		return actual == ""
	case OperatorNotEmpty:
		return actual != ""
	default:
		return false
	}
}

type Template struct {
	ID         string
	Name       string
	Conditions []Condition
	Subject    string
	Body       string
}

// Matches reports whether every condition holds. No conditions match everyone.
func (t Template) Matches(candidate Candidate) bool {
	for _, condition := range t.Conditions {
		if !condition.Matches(candidate) {
			return false
		}
	}
	return true
}

type Rendered struct {
	Subject string
	Body    string
}

func (t Template) Render(fields map[string]string) Rendered {
	return Rendered{
		Subject: Render(t.Subject, fields),
		Body:    Render(t.Body, fields),
	}
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Render substitutes {{field}} placeholders. Unknown fields render empty.
func Render(text string, fields map[string]string) string {
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		return fields[name]
	})
}

// ParseConditions decodes the conditions column. Malformed input yields no
// conditions and ok=false.
func ParseConditions(raw string) ([]Condition, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Condition{}, true
	}
	var conditions []Condition
	if err := json.Unmarshal([]byte(raw), &conditions); err != nil {
		return []Condition{}, false
	}
	for i := range conditions {
		conditions[i].Field = strings.TrimSpace(conditions[i].Field)
		conditions[i].Operator = Operator(strings.ToLower(strings.TrimSpace(string(conditions[i].Operator))))
	}
	return conditions, true
}

func EncodeConditions(conditions []Condition) (string, error) {
	if conditions == nil {
		conditions = []Condition{}
	}
	encoded, err := json.Marshal(conditions)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

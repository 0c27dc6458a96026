package gmail

import (
	"strings"
)

// QueryFilters are the structured search criteria a tool call may carry.
// When Raw is set it is used verbatim and every other filter is ignored;
// raw queries take precedence, they are never merged.
type QueryFilters struct {
	Raw        string
	From       string
	To         string
	Subject    string
	Label      string
	Unread     bool
	Starred    bool
	HasWords   string
	After      string // date bound, YYYY/MM/DD
	Before     string // date bound, YYYY/MM/DD
	Attachment bool
}

// BuildQuery translates structured filters into Gmail's search syntax.
// Terms are space-joined; Gmail treats that as AND.
func BuildQuery(f QueryFilters) string {
	if f.Raw != "" {
		return f.Raw
	}

	var terms []string
	if f.From != "" {
		terms = append(terms, "from:"+quoteTerm(f.From))
	}
	if f.To != "" {
		terms = append(terms, "to:"+quoteTerm(f.To))
	}
	if f.Subject != "" {
		terms = append(terms, "subject:"+quoteTerm(f.Subject))
	}
	if f.Label != "" {
		terms = append(terms, "label:"+quoteTerm(f.Label))
	}
	if f.Unread {
		terms = append(terms, "is:unread")
	}
	if f.Starred {
		terms = append(terms, "is:starred")
	}
	if f.Attachment {
		terms = append(terms, "has:attachment")
	}
	if f.After != "" {
		terms = append(terms, "after:"+f.After)
	}
	if f.Before != "" {
		terms = append(terms, "before:"+f.Before)
	}
	if f.HasWords != "" {
		terms = append(terms, f.HasWords)
	}

	return strings.Join(terms, " ")
}

// quoteTerm wraps a value containing whitespace in double quotes so Gmail
// treats it as a single operator argument.
func quoteTerm(v string) string {
	if strings.ContainsAny(v, " \t") && !strings.HasPrefix(v, `"`) {
		return `"` + v + `"`
	}
	return v
}

package manifest

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/km-arc/go-injector/framework/injector"
)

// ── Types ────────────────────────────────────────────────────────────────────

// ValidationError holds every problem found in a document, keyed by the
// path of the offending field, e.g. "children[0].bindings[1].type".
type ValidationError struct {
	Bag map[string][]string
}

func (e *ValidationError) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *ValidationError) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *ValidationError) First(field string) string {
	if msgs := e.Bag[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("manifest: invalid document")
	keys := make([]string, 0, len(e.Bag))
	for k := range e.Bag {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, field := range keys {
		for _, msg := range e.Bag[field] {
			sb.WriteString("; ")
			sb.WriteString(msg)
		}
	}
	return sb.String()
}

// ── Rules ────────────────────────────────────────────────────────────────────

// rules is a map of field → pipe-separated rule string.
type rules map[string]string

var (
	unnamedBindingRules = rules{
		"type": "required|no_whitespace|not_in:" + injector.SelfType,
	}
	namedBindingRules = rules{
		"type": "required|no_whitespace",
		"name": "no_quote",
	}
)

// Validate checks every binding in d and its children. Type keys must be
// usable in an inject marker, names must not contain a double quote, and the
// unnamed self-mapping may not be rebound.
func (d *Document) Validate() error {
	errs := &ValidationError{}
	d.validate("", errs)
	if errs.Has() {
		return errs
	}
	return nil
}

func (d *Document) validate(prefix string, errs *ValidationError) {
	for i, b := range d.Bindings {
		path := fmt.Sprintf("%sbindings[%d]", prefix, i)
		data := map[string]string{"type": b.Type}
		rs := unnamedBindingRules
		if b.Name != nil {
			data["name"] = *b.Name
			rs = namedBindingRules
		}
		check(path, data, rs, errs)
	}
	for i := range d.Children {
		d.Children[i].validate(fmt.Sprintf("%schildren[%d].", prefix, i), errs)
	}
}

func check(path string, data map[string]string, rs rules, errs *ValidationError) {
	keys := make([]string, 0, len(rs))
	for k := range rs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, field := range keys {
		value := data[field]
		for _, rule := range strings.Split(rs[field], "|") {
			name, param, _ := strings.Cut(rule, ":")
			if msg, ok := applyRule(value, name, param); !ok {
				key := path + "." + field
				errs.add(key, fmt.Sprintf("%s %s", key, msg))
				break
			}
		}
	}
}

// applyRule returns a message and false if the rule fails.
func applyRule(value, rule, param string) (string, bool) {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			return "is required", false
		}

	case "no_whitespace":
		if strings.ContainsFunc(value, unicode.IsSpace) {
			return "may not contain whitespace", false
		}

	case "no_quote":
		if strings.Contains(value, `"`) {
			return `may not contain '"'`, false
		}

	case "not_in":
		if slices.Contains(strings.Split(param, ","), value) {
			return fmt.Sprintf("may not be %q", value), false
		}
	}
	return "", true
}

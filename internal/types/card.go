package types

import (
	"fmt"
	"sort"
	"strings"
)

// CardRecord is one credit card's attribute set as returned by the catalog API.
// Field values are strings, string arrays, or one level of nested object; the
// catalog owns the shape, we read it opaquely.
type CardRecord map[string]any

func (c CardRecord) Name() string {
	return c.StringField("card_name", "name")
}

func (c CardRecord) Bank() string {
	return c.StringField("bank_name", "bank")
}

func (c CardRecord) ID() string {
	return c.StringField("id", "card_id")
}

// StringField returns the first non-empty field among names, stringified.
func (c CardRecord) StringField(names ...string) string {
	for _, n := range names {
		if v, ok := c[n]; ok {
			s := Stringify(v)
			if strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

// StringsField returns a field as a string list, splitting scalars on commas.
func (c CardRecord) StringsField(name string) []string {
	v, ok := c[name]
	if !ok {
		return nil
	}
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s := strings.TrimSpace(Stringify(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		s := strings.TrimSpace(Stringify(v))
		if s == "" {
			return nil
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
}

// Stringify flattens a catalog field value into searchable text.
func Stringify(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case []string:
		return strings.Join(vv, ", ")
	case []any:
		parts := make([]string, 0, len(vv))
		for _, item := range vv {
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, Stringify(vv[k])))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", vv)
	}
}

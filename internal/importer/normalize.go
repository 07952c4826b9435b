package importer

import "strings"

// CanonicalKey lowercases a header name and strips everything that is
// not a letter, so "Condition_Cover" and "condition cover" both become
// "conditioncover". Underscores are stripped like any other
// non-letter.
func CanonicalKey(name string) string {
	var b strings.Builder
	for _, ch := range strings.ToLower(strings.TrimSpace(name)) {
		if ch >= 'a' && ch <= 'z' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// Row maps canonical column keys to raw field values for one data
// line. Missing trailing fields read as "".
type Row map[string]string

func buildRow(keys []string, values []string) Row {
	row := make(Row, len(keys))
	for i, k := range keys {
		if i < len(values) {
			row[k] = values[i]
		} else {
			row[k] = ""
		}
	}
	return row
}

// First returns the first non-empty value among the given canonical
// keys. Columns may be supplied under an English or Spanish header;
// the English alias is tried first.
func (r Row) First(keys ...string) string {
	for _, k := range keys {
		if v := r[k]; v != "" {
			return v
		}
	}
	return ""
}

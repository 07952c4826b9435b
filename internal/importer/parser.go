package importer

import "strings"

// Lines splits raw CSV text into its non-blank lines. Blank lines are
// dropped before numbering, so "Row N" in error messages counts
// non-blank lines only, header included as line 1.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// SplitFields splits one line on commas, honoring double quotes: a
// quote toggles quoted mode and commas inside quotes are literal.
// There is no doubling escape for embedded quotes and no multi-line
// quoted field support; the parser is strictly line-by-line.
// Fields are trimmed after splitting.
func SplitFields(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

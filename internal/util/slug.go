package util

import "strings"

// Slugify reduces a free-form name to a lowercase ascii slug: letters
// and digits kept, runs of ascii whitespace/hyphens/underscores
// collapsed to a single hyphen. Empty input slugs to "value".
func Slugify(raw string) string {
	var b strings.Builder

	for _, ch := range raw {
		switch {
		case ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch >= 'A' && ch <= 'Z':
			b.WriteRune(ch + ('a' - 'A'))
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\f' || ch == '\r' || ch == '-' || ch == '_':
			if s := b.String(); s != "" && !strings.HasSuffix(s, "-") {
				b.WriteByte('-')
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "value"
	}
	return out
}

// HumanizeCategoryID turns a raw category id into a display name:
// hyphens and underscores become spaces, each word is capitalized with
// the rest lowercased. Empty input becomes "Category".
func HumanizeCategoryID(raw string) string {
	clean := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(raw))
	fields := strings.Fields(clean)
	if len(fields) == 0 {
		return "Category"
	}

	for i, word := range fields {
		lower := strings.ToLower(word)
		fields[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(fields, " ")
}

package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedPayload indicates text that is not a payload produced by Encode.
var ErrMalformedPayload = errors.New("contact: malformed payload")

// ParsePayload reads a payload produced by Encode back into a Record.
// The title is recovered from the FN line when FN carries a prefix in front
// of the first and last name.
func ParsePayload(p Payload) (Record, error) {
	lines := p.Lines()
	if len(lines) < 4 {
		return Record{}, fmt.Errorf("%w: %d lines", ErrMalformedPayload, len(lines))
	}
	if lines[0] != HeaderLine || lines[1] != VersionLine || lines[len(lines)-1] != FooterLine {
		return Record{}, fmt.Errorf("%w: missing header or footer", ErrMalformedPayload)
	}

	var r Record
	var fullName string
	byName := make(map[string]property, len(optionalProperties))
	for _, prop := range optionalProperties {
		byName[prop.name] = prop
	}

	for i, line := range lines[2 : len(lines)-1] {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return Record{}, fmt.Errorf("%w: line %d has no value separator", ErrMalformedPayload, i+3)
		}
		switch name {
		case "FN":
			fullName = unescapeText(value)
		case "N":
			parts := splitUnescaped(value, ';')
			if len(parts) < 2 {
				return Record{}, fmt.Errorf("%w: N needs family and given name", ErrMalformedPayload)
			}
			r.LastName = unescapeText(parts[0])
			r.FirstName = unescapeText(parts[1])
		default:
			prop, known := byName[name]
			if !known {
				return Record{}, fmt.Errorf("%w: unknown property %q", ErrMalformedPayload, name)
			}
			r.Set(prop.field, unescapeText(value))
		}
	}

	r.Title = titleFrom(fullName, r.FirstName, r.LastName)
	return r, nil
}

// titleFrom strips the "first last" suffix from a full name and returns what
// precedes it.
func titleFrom(fullName, first, last string) string {
	names := strings.TrimSpace(first + " " + last)
	if names == "" {
		return strings.TrimSpace(fullName)
	}
	prefix, ok := strings.CutSuffix(fullName, names)
	if !ok {
		return ""
	}
	return strings.TrimSpace(prefix)
}

// splitUnescaped splits s on sep, ignoring separators preceded by a backslash.
func splitUnescaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// unescapeText reverses escapeText.
func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

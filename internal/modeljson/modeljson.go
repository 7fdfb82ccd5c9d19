// Package modeljson recovers JSON documents from language-model output.
// Model replies are free text that may wrap the document in markdown code
// fences, prefix it with a language tag, or carry minor escaping damage.
// The fallback order is fixed: strip wrapping, parse as-is, cut the
// outermost balanced span, repair escapes, parse again.
package modeljson

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrNoJSON is returned when no parseable JSON document could be
// recovered from the model output.
var ErrNoJSON = errors.New("no JSON document found in model output")

// Strip removes a markdown code fence and a leading "json" language tag.
func Strip(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, "```") {
		parts := strings.Split(s, "```")
		if len(parts) > 1 {
			s = strings.TrimSpace(parts[1])
		}
	}
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = strings.TrimSpace(s[4:])
	}
	return s
}

// Extract returns the JSON document embedded in raw, applying each
// fallback tier in order.
func Extract(raw string) (string, error) {
	s := Strip(raw)
	if json.Valid([]byte(s)) {
		return s, nil
	}
	if sp, ok := span(s); ok {
		if json.Valid([]byte(sp)) {
			return sp, nil
		}
		if fixed := repair(sp); json.Valid([]byte(fixed)) {
			return fixed, nil
		}
	}
	if fixed := repair(s); json.Valid([]byte(fixed)) {
		return fixed, nil
	}
	return "", ErrNoJSON
}

// Unmarshal extracts the JSON document in raw and decodes it into v.
func Unmarshal(raw string, v any) error {
	doc, err := Extract(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(doc), v)
}

// span cuts the outermost {...} or [...] region, whichever opens first.
func span(s string) (string, bool) {
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')

	start, closer := objStart, byte('}')
	if objStart < 0 || (arrStart >= 0 && arrStart < objStart) {
		start, closer = arrStart, ']'
	}
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// repair fixes the escaping damage models commonly produce inside string
// literals: raw control characters and backslashes that start no valid
// escape sequence.
func repair(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !inString {
			if ch == '"' {
				inString = true
			}
			b.WriteByte(ch)
			continue
		}
		switch ch {
		case '"':
			inString = false
			b.WriteByte(ch)
		case '\\':
			if i+1 < len(s) && strings.IndexByte(`"\/bfnrtu`, s[i+1]) >= 0 {
				b.WriteByte(ch)
				b.WriteByte(s[i+1])
				i++
			} else {
				b.WriteString(`\\`)
			}
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// Truncate bounds raw model text before it is embedded in an error
// detail, so upstream output cannot flood responses or logs. The cut
// lands on a rune boundary to keep the result valid UTF-8.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

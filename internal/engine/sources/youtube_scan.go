package sources

import "strings"

// ScanObject finds the first '{' at or after from and returns the balanced
// object literal starting there, plus the offset just past its closing brace.
//
// Braces inside quoted strings ('"' or '\'') are ignored, and a backslash in a
// string escapes exactly one following byte. ok is false when no '{' exists or
// the document ends before depth returns to zero.
func ScanObject(doc string, from int) (obj string, end int, ok bool) {
	if from < 0 {
		from = 0
	}
	if from >= len(doc) {
		return "", -1, false
	}
	rel := strings.IndexByte(doc[from:], '{')
	if rel < 0 {
		return "", -1, false
	}
	start := from + rel

	depth := 0
	var quote byte
	escaped := false
	for i := start; i < len(doc); i++ {
		c := doc[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return doc[start : i+1], i + 1, true
			}
		}
	}
	return "", -1, false
}

package engine

import (
	"strconv"
	"strings"
)

// preprocessSource rewrites part-script syntax that the zygomys reader does
// not accept into plain zygomys. Outside string literals:
//
//   - :name becomes the string "__kw_name", which parseArgs recognises;
//   - a hyphen joining two words becomes an underscore, so at-holes calls
//     at_holes rather than subtracting;
//   - a ; comment, however many semicolons open it, becomes a // comment.
//
// Keyword names keep their hyphens: :skip-rows becomes "__kw_skip-rows".
func preprocessSource(src string) string {
	var out strings.Builder
	out.Grow(len(src) + len(src)/4)
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"' || c == '`':
			end := literalEnd(src, i)
			out.WriteString(src[i:end])
			i = end
		case c == ';':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src) - i
			}
			out.WriteString("//")
			out.WriteString(strings.TrimLeft(src[i:i+end], ";"))
			i += end
		case c == ':' && i+1 < len(src) && isLetter(src[i+1]):
			end := i + 1
			for end < len(src) && isKeywordByte(src[end]) {
				end++
			}
			out.WriteString(strconv.Quote(kwPrefix + src[i+1:end]))
			i = end
		case c == '-' && joinsWords(src, i):
			out.WriteByte('_')
			i++
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// literalEnd returns the index just past the string literal opening at
// src[start]. Double-quoted literals honour backslash escapes; raw
// backtick literals do not. An unterminated literal runs to the end.
func literalEnd(src string, start int) int {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch {
		case src[i] == '\\' && quote == '"':
			i++
		case src[i] == quote:
			return i + 1
		}
	}
	return len(src)
}

// joinsWords reports whether the hyphen at src[i] sits between a word
// character and a letter, as in plate-with-holes but not x -1 or (- 4 1).
func joinsWords(src string, i int) bool {
	return i > 0 && i+1 < len(src) && isWordByte(src[i-1]) && isLetter(src[i+1])
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isWordByte(c byte) bool {
	return isLetter(c) || '0' <= c && c <= '9' || c == '_'
}

func isKeywordByte(c byte) bool {
	return isWordByte(c) || c == '-'
}

package pattern

import (
	"fmt"
	"unicode"
)

// ParseShape splits a textual shape such as "., ., c, *, **" into raw
// tokens. Commas and whitespace both separate tokens, so ". . c" and
// ".,.,c" read the same. A blank input yields no tokens.
//
// Unlike Compile, which skips malformed tokens, ParseShape rejects them:
// it is the surface behind config files and CLI flags, where a typo
// should surface as an error instead of a shape that matches nothing.
func ParseShape(input string) ([]string, error) {
	var tokens []string
	pos := 0
	for pos < len(input) {
		switch c := input[pos]; {
		case c == ',' || isWhitespace(c):
			pos++

		case c == '.':
			tokens = append(tokens, ".")
			pos++

		case c == '*':
			// "**" must be matched before "*"
			if pos+1 < len(input) && input[pos+1] == '*' {
				tokens = append(tokens, "**")
				pos += 2
			} else {
				tokens = append(tokens, "*")
				pos++
			}

		default:
			start := pos
			for pos < len(input) && !isWhitespace(input[pos]) && input[pos] != ',' {
				pos++
			}
			word := input[start:pos]
			if !isIdentifier(word) {
				return nil, fmt.Errorf("invalid shape token %q at position %d", word, start)
			}
			tokens = append(tokens, word)
		}
	}
	return tokens, nil
}

// isWhitespace checks if the given byte is a space, tab, newline, etc.
func isWhitespace(c byte) bool {
	return unicode.IsSpace(rune(c))
}

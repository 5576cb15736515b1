package pattern

import "unicode"

// Kind classifies one raw shape token.
type Kind int

const (
	KindDot        Kind = iota // '.' - required positional parameter
	KindStar                   // '*' - pack of surplus positional arguments
	KindDoubleStar             // '**' - pack of surplus named arguments
	KindName                   // identifier - named parameter with a default
	KindInvalid                // anything else, ignored during compilation
)

func (k Kind) String() string {
	switch k {
	case KindDot:
		return "positional"
	case KindStar:
		return "var-positional"
	case KindDoubleStar:
		return "var-named"
	case KindName:
		return "named"
	default:
		return "invalid"
	}
}

// Classify returns the kind of a single raw token.
func Classify(tok string) Kind {
	switch tok {
	case ".":
		return KindDot
	case "*":
		return KindStar
	case "**":
		return KindDoubleStar
	}
	if isIdentifier(tok) {
		return KindName
	}
	return KindInvalid
}

// Compiled is the precomputed form of a token sequence. It is built once
// and never mutated afterwards, so it can be read concurrently.
type Compiled struct {
	HasVarPositional bool
	HasVarNamed      bool
	PositionalCount  int
	// NamedCount counts every identifier token, duplicates included,
	// while Names holds the deduplicated set. A repeated name therefore
	// raises the required count without adding a second name to check.
	NamedCount int
	Names      map[string]struct{}
}

// Compile folds a token sequence into its Compiled form. Tokens that fall
// in no category are silently skipped.
func Compile(tokens []string) Compiled {
	c := Compiled{Names: make(map[string]struct{})}
	for _, tok := range tokens {
		switch Classify(tok) {
		case KindDot:
			c.PositionalCount++
		case KindStar:
			c.HasVarPositional = true
		case KindDoubleStar:
			c.HasVarNamed = true
		case KindName:
			c.NamedCount++
			c.Names[tok] = struct{}{}
		}
	}
	return c
}

// isIdentifier reports whether s is a valid parameter name: an underscore
// or letter first, then underscores, letters, or digits.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

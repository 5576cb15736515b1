// Package sigmatch checks that a callable's parameter list conforms to a
// compact expected shape. A Matcher is compiled once from shape tokens
// and then applied to any number of candidates, which makes it a cheap
// contract check in front of duck-typed callback registries.
//
// Four token forms describe a shape:
//
//	"."    a required positional parameter
//	"name" a parameter with a default value, matched by name
//	"*"    a pack of surplus positional arguments
//	"**"   a pack of surplus named arguments
//
// So New(".", ".", "c", "*", "**") describes a callable taking two
// required positional parameters, a defaulted parameter named c, and
// both argument packs. Tokens of any other form are ignored.
package sigmatch

import "github.com/gnoverse/sigmatch/internal/pattern"

// Matcher holds one compiled signature shape. It is immutable after New
// and safe for concurrent use; every call against it only reads the
// compiled shape and a private, per-call parameter list.
type Matcher struct {
	shape pattern.Compiled
}

// New compiles the given shape tokens into a reusable Matcher.
func New(tokens ...string) *Matcher {
	return &Matcher{shape: pattern.Compile(tokens)}
}

// Parse compiles a textual shape such as "., ., c, *, **". Unlike New it
// rejects malformed tokens, which makes it the right entry point for
// shapes read from flags or config files.
func Parse(shape string) (*Matcher, error) {
	tokens, err := pattern.ParseShape(shape)
	if err != nil {
		return nil, err
	}
	return New(tokens...), nil
}

// Match reports whether the candidate's signature conforms to the shape.
// It never returns an error: a value without an inspectable signature
// simply does not match.
func (m *Matcher) Match(v any) bool {
	sig, err := SignatureOf(v)
	if err != nil {
		return false
	}
	return len(m.failedChecks(sig)) == 0
}

// Check is the reporting form of Match. It returns nil on a match, a
// *NotCallableError when the candidate has no inspectable signature, and
// a *MismatchError naming the failed checks otherwise.
func (m *Matcher) Check(v any) error {
	sig, err := SignatureOf(v)
	if err != nil {
		return err
	}
	if failed := m.failedChecks(sig); len(failed) > 0 {
		return &MismatchError{Failed: failed}
	}
	return nil
}

// Names of the five checks, as reported by MismatchError.
const (
	CheckVarPositional   = "var-positional"
	CheckVarNamed        = "var-named"
	CheckPositionalCount = "positional-count"
	CheckNamedCount      = "named-count"
	CheckNamedNames      = "named-names"
)

// failedChecks runs the five checks and collects the names of those that
// failed. The checks are independent: all of them run even after one
// fails, so a caller sees every divergence at once.
func (m *Matcher) failedChecks(sig Signature) []string {
	var failed []string
	if !m.proveVarPositional(sig) {
		failed = append(failed, CheckVarPositional)
	}
	if !m.proveVarNamed(sig) {
		failed = append(failed, CheckVarNamed)
	}
	if !m.provePositionalCount(sig) {
		failed = append(failed, CheckPositionalCount)
	}
	if !m.proveNamedCount(sig) {
		failed = append(failed, CheckNamedCount)
	}
	if !m.proveNamedNames(sig) {
		failed = append(failed, CheckNamedNames)
	}
	return failed
}

// proveVarPositional: the shape carries '*' iff exactly one parameter
// packs surplus positional arguments.
func (m *Matcher) proveVarPositional(sig Signature) bool {
	n := 0
	for _, p := range sig {
		if p.Kind == KindVarPositional {
			n++
		}
	}
	return m.shape.HasVarPositional == (n == 1)
}

// proveVarNamed: the shape carries '**' iff exactly one parameter packs
// surplus named arguments.
func (m *Matcher) proveVarNamed(sig Signature) bool {
	n := 0
	for _, p := range sig {
		if p.Kind == KindVarNamed {
			n++
		}
	}
	return m.shape.HasVarNamed == (n == 1)
}

// provePositionalCount: the number of required positional parameters
// equals the number of '.' tokens.
func (m *Matcher) provePositionalCount(sig Signature) bool {
	n := 0
	for _, p := range sig {
		if (p.Kind == KindPositional || p.Kind == KindPositionalOrNamed) && !p.HasDefault {
			n++
		}
	}
	return n == m.shape.PositionalCount
}

// proveNamedCount: the number of defaulted parameters equals the number
// of name tokens, duplicates included.
func (m *Matcher) proveNamedCount(sig Signature) bool {
	return len(defaultedNames(sig)) == m.shape.NamedCount
}

// proveNamedNames: every name token appears among the candidate's
// defaulted parameters. Extra defaulted parameters the shape never
// names are fine; only missing names fail.
func (m *Matcher) proveNamedNames(sig Signature) bool {
	names := make(map[string]struct{})
	for _, name := range defaultedNames(sig) {
		names[name] = struct{}{}
	}
	for name := range m.shape.Names {
		if _, ok := names[name]; !ok {
			return false
		}
	}
	return true
}

// defaultedNames collects the names of parameters that fill by name and
// carry a default, in declaration order.
func defaultedNames(sig Signature) []string {
	var names []string
	for _, p := range sig {
		if (p.Kind == KindNamedOnly || p.Kind == KindPositionalOrNamed) && p.HasDefault {
			names = append(names, p.Name)
		}
	}
	return names
}

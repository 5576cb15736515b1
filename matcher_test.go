package sigmatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFunctions(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		candidate any
		expected  bool
	}{
		{
			name:      "empty shape matches zero-parameter func",
			tokens:    nil,
			candidate: func() {},
			expected:  true,
		},
		{
			name:      "single dot matches one required parameter",
			tokens:    []string{"."},
			candidate: func(arg int) {},
			expected:  true,
		},
		{
			name:      "two dots match two required parameters",
			tokens:    []string{".", "."},
			candidate: func(a, b string) {},
			expected:  true,
		},
		{
			name:      "three dots match three required parameters",
			tokens:    []string{".", ".", "."},
			candidate: func(a, b, c int) {},
			expected:  true,
		},
		{
			name:      "star matches variadic func",
			tokens:    []string{".", "*"},
			candidate: func(a int, rest ...string) {},
			expected:  true,
		},
		{
			name:      "empty shape rejects required parameter",
			tokens:    nil,
			candidate: func(arg int) {},
			expected:  false,
		},
		{
			name:      "single dot rejects zero-parameter func",
			tokens:    []string{"."},
			candidate: func() {},
			expected:  false,
		},
		{
			name:      "two dots reject three required parameters",
			tokens:    []string{".", "."},
			candidate: func(a, b, c int) {},
			expected:  false,
		},
		{
			name:      "missing star rejects variadic func",
			tokens:    []string{"."},
			candidate: func(a int, rest ...string) {},
			expected:  false,
		},
		{
			name:      "star without variadic is rejected",
			tokens:    []string{".", "*"},
			candidate: func(a int) {},
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.tokens...)
			assert.Equal(t, tt.expected, m.Match(tt.candidate))
		})
	}
}

func TestMatchSignatureDescriptors(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		candidate Signature
		expected  bool
	}{
		{
			name:      "double star matches named pack",
			tokens:    []string{"**"},
			candidate: Signature{VarNamed("kwargs")},
			expected:  true,
		},
		{
			name:      "both packs",
			tokens:    []string{"*", "**"},
			candidate: Signature{VarPositional("args"), VarNamed("kwargs")},
			expected:  true,
		},
		{
			name:      "two required and one defaulted",
			tokens:    []string{".", ".", "c"},
			candidate: Signature{Positional("a"), Positional("b"), Defaulted("c")},
			expected:  true,
		},
		{
			name:      "extra positional pack breaks the match",
			tokens:    []string{".", ".", "c"},
			candidate: Signature{Positional("a"), Positional("b"), Defaulted("c"), VarPositional("d")},
			expected:  false,
		},
		{
			name:   "full shape",
			tokens: []string{".", ".", "c", "*", "**"},
			candidate: Signature{
				Positional("a"), Positional("b"), Defaulted("c"),
				VarPositional("d"), VarNamed("e"),
			},
			expected: true,
		},
		{
			name:      "two defaulted parameters by name",
			tokens:    []string{"c", "c2"},
			candidate: Signature{Defaulted("c"), Defaulted("c2")},
			expected:  true,
		},
		{
			name:      "missing second defaulted name",
			tokens:    []string{"c", "c2"},
			candidate: Signature{Defaulted("c")},
			expected:  false,
		},
		{
			name:      "wrong defaulted name",
			tokens:    []string{".", ".", "c2"},
			candidate: Signature{Positional("a"), Positional("b"), Defaulted("c")},
			expected:  false,
		},
		{
			name:      "named-only parameter with default counts as named",
			tokens:    []string{"c"},
			candidate: Signature{NamedOnly("c")},
			expected:  true,
		},
		{
			name:      "defaulted parameter is not required positional",
			tokens:    []string{".", "."},
			candidate: Signature{Positional("a"), Positional("b"), Defaulted("c")},
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.tokens...)
			assert.Equal(t, tt.expected, m.Match(tt.candidate))
		})
	}
}

// A repeated name token raises the required count of defaulted
// parameters but the name itself is only checked once.
func TestDuplicateNameTokens(t *testing.T) {
	m := New("c", "c")

	assert.False(t, m.Match(Signature{Defaulted("c")}))
	assert.True(t, m.Match(Signature{Defaulted("c"), Defaulted("c2")}))
	assert.True(t, m.Match(Signature{Defaulted("c"), Defaulted("anything")}))
}

func TestExtraDefaultedNamesAllowed(t *testing.T) {
	// the name check only requires the shape's names to be present;
	// the count check still has to agree.
	m := New("c", "c2")

	assert.True(t, m.Match(Signature{Defaulted("c2"), Defaulted("c")}))
	assert.False(t, m.Match(Signature{Defaulted("c"), Defaulted("c2"), Defaulted("c3")}))
}

func TestMalformedTokensIgnored(t *testing.T) {
	m := New("not an identifier!", "123abc", "...")
	assert.True(t, m.Match(func() {}))
	assert.False(t, m.Match(func(a int) {}))
}

func TestMatchMethodValue(t *testing.T) {
	var c counter
	m := New(".")

	assert.True(t, m.Match(c.Add))
	assert.False(t, New().Match(c.Add))
}

type counter struct{ n int }

func (c *counter) Add(delta int) { c.n += delta }

type describedHandler struct{}

func (describedHandler) Signature() Signature {
	return Signature{Positional("event"), Defaulted("retries")}
}

func (describedHandler) Handle(event string) {}

func TestMatchCallableImplementor(t *testing.T) {
	m := New(".", "retries")
	assert.True(t, m.Match(describedHandler{}))
	assert.False(t, New(".").Match(describedHandler{}))
}

func TestMatchIdempotent(t *testing.T) {
	m := New(".", "c")
	candidate := Signature{Positional("a"), Defaulted("c")}

	first := m.Match(candidate)
	second := m.Match(candidate)
	assert.Equal(t, first, second)
	assert.True(t, first)

	// the matcher stays usable after a failed call too
	assert.False(t, m.Match(42))
	assert.True(t, m.Match(candidate))
}

func TestCheckNotCallable(t *testing.T) {
	m := New(".")

	err := m.Check(42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotCallable)

	var notCallable *NotCallableError
	require.ErrorAs(t, err, &notCallable)
	assert.Contains(t, notCallable.Error(), "int")

	err = m.Check(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotCallable)

	// the boolean form degrades to false without an error
	assert.False(t, m.Match(42))
	assert.False(t, m.Match(nil))
}

func TestCheckMismatch(t *testing.T) {
	m := New(".", ".", "c")

	err := m.Check(func() {})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMismatch)

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Contains(t, mismatch.Failed, CheckPositionalCount)
	assert.Contains(t, mismatch.Failed, CheckNamedCount)
	assert.Contains(t, mismatch.Failed, CheckNamedNames)

	require.NoError(t, m.Check(Signature{Positional("a"), Positional("b"), Defaulted("c")}))
}

func TestCheckReportsEveryFailedCheck(t *testing.T) {
	m := New("*")

	err := m.Check(Signature{Positional("a"), VarNamed("kw")})
	require.Error(t, err)

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.ElementsMatch(t,
		[]string{CheckVarPositional, CheckVarNamed, CheckPositionalCount},
		mismatch.Failed)
}

func TestVarPackExactlyOnce(t *testing.T) {
	// two packs of the same kind never satisfy the presence check
	m := New("*")
	assert.False(t, m.Match(Signature{VarPositional("a"), VarPositional("b")}))
	assert.True(t, m.Match(Signature{VarPositional("a")}))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		shape   string
		wantErr bool
	}{
		{name: "comma separated", shape: "., ., c"},
		{name: "space separated", shape: ". . c * **"},
		{name: "blank", shape: ""},
		{name: "invalid token", shape: ". foo! .", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.shape)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}

func TestParseEquivalentToNew(t *testing.T) {
	parsed, err := Parse("., ., c, *, **")
	require.NoError(t, err)

	built := New(".", ".", "c", "*", "**")
	candidate := Signature{
		Positional("a"), Positional("b"), Defaulted("c"),
		VarPositional("d"), VarNamed("e"),
	}
	assert.Equal(t, built.Match(candidate), parsed.Match(candidate))
	assert.True(t, parsed.Match(candidate))
}

func TestErrorsUnwrap(t *testing.T) {
	assert.True(t, errors.Is(&NotCallableError{}, ErrNotCallable))
	assert.True(t, errors.Is(&MismatchError{}, ErrMismatch))
	assert.False(t, errors.Is(&MismatchError{}, ErrNotCallable))
}

package sigmatch

import "reflect"

// ParamKind classifies a single parameter of an invocable.
type ParamKind int

const (
	KindPositional        ParamKind = iota // filled by position only
	KindPositionalOrNamed                  // filled by position or by name
	KindVarPositional                      // packs surplus positional arguments
	KindNamedOnly                          // filled by name only
	KindVarNamed                           // packs surplus named arguments
)

func (k ParamKind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindPositionalOrNamed:
		return "positional-or-named"
	case KindVarPositional:
		return "var-positional"
	case KindNamedOnly:
		return "named-only"
	case KindVarNamed:
		return "var-named"
	default:
		return "unknown"
	}
}

// Param describes one parameter of an invocable.
type Param struct {
	Name       string
	Kind       ParamKind
	HasDefault bool
}

// Signature is the ordered parameter list of an invocable.
type Signature []Param

// Positional returns a required positional-only parameter.
func Positional(name string) Param {
	return Param{Name: name, Kind: KindPositional}
}

// Defaulted returns a parameter that fills by position or name and
// carries a default value.
func Defaulted(name string) Param {
	return Param{Name: name, Kind: KindPositionalOrNamed, HasDefault: true}
}

// NamedOnly returns a parameter that fills by name only and carries a
// default value.
func NamedOnly(name string) Param {
	return Param{Name: name, Kind: KindNamedOnly, HasDefault: true}
}

// VarPositional returns a parameter packing surplus positional arguments.
func VarPositional(name string) Param {
	return Param{Name: name, Kind: KindVarPositional}
}

// VarNamed returns a parameter packing surplus named arguments.
func VarNamed(name string) Param {
	return Param{Name: name, Kind: KindVarNamed}
}

// Callable is implemented by values that declare their own parameter
// shape. Handler objects whose calling convention carries named or
// defaulted parameters describe themselves through it, since plain Go
// function types cannot express those kinds.
type Callable interface {
	Signature() Signature
}

// SignatureOf extracts the ordered parameter list of v. It accepts a
// Signature directly, any Callable implementor, or a Go func value.
// The result is rebuilt on every call; nothing is cached.
//
// For a plain Go func every fixed input is a required positional-only
// parameter and a variadic final input is a var-positional one. Go
// reflection exposes neither parameter names nor defaults, so those only
// appear on descriptor-built signatures.
func SignatureOf(v any) (Signature, error) {
	switch c := v.(type) {
	case nil:
		return nil, &NotCallableError{}
	case Signature:
		return c, nil
	case Callable:
		return c.Signature(), nil
	}

	rt := reflect.TypeOf(v)
	if rt.Kind() != reflect.Func {
		return nil, &NotCallableError{Type: rt}
	}

	numIn := rt.NumIn()
	sig := make(Signature, 0, numIn)
	for i := 0; i < numIn; i++ {
		if rt.IsVariadic() && i == numIn-1 {
			sig = append(sig, Param{Kind: KindVarPositional})
			continue
		}
		sig = append(sig, Param{Kind: KindPositional})
	}
	return sig, nil
}

package engine

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"
)

// preprocessSource converts traditional Lisp ; line comments to the //
// form zygomys expects, respecting string literal boundaries. Parameter
// names are quoted strings, so no identifier rewriting is needed.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source))
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

// toFloat64 extracts a numeric value from a Sexp. Booleans map to 1/0 so
// toggles like split-shell read naturally in scripts.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	case *zygo.SexpBool:
		if v.Val {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// registerBuiltins installs the override vocabulary into a fresh
// environment. Overrides accumulate into the provided map; a name set
// twice keeps the later value, matching sequential script reading.
func registerBuiltins(env *zygo.Zlisp, overrides map[string]float64) {

	// -----------------------------------------------------------------------
	// (param "wall-thickness" 2.5)
	// -----------------------------------------------------------------------
	env.AddFunction("param", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("param requires a name and a value, got %d arguments", len(args))
		}
		pname, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("param name: %w", err)
		}
		val, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("param %q value: %w", pname, err)
		}
		overrides[pname] = val
		return zygo.SexpNull, nil
	})
}

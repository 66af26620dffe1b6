package paramtype

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// dateLayout is the canonical raw form of the date type.
const dateLayout = "2006-01-02"

// builtinNames lists builtin types in installation order.
var builtinNames = []string{"int", "bool", "string", "date"}

// Builtin returns a fresh instance of the named builtin type.
// It is available regardless of registry state.
func Builtin(name string) (*Type, bool) {
	def, ok := builtinDef(name)
	if !ok {
		return nil, false
	}
	return New(name, def), true
}

func builtinDef(name string) (Type, bool) {
	switch name {
	case "int":
		return intType(), true
	case "bool":
		return boolType(), true
	case "string":
		return stringType(), true
	case "date":
		return dateType(), true
	}
	return Type{}, false
}

func intType() Type {
	decode := func(raw string) (any, error) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrDecode, raw)
		}
		return n, nil
	}
	return Type{
		Pattern: regexp.MustCompile(`\d+`),
		Decode:  decode,
		Encode:  func(v any) string { return fmt.Sprint(v) },
		Is: func(v any) bool {
			if v == nil {
				return false
			}
			d, err := decode(fmt.Sprint(v))
			return err == nil && d == v
		},
	}
}

func boolType() Type {
	return Type{
		Pattern: regexp.MustCompile(`0|1`),
		Decode: func(raw string) (any, error) {
			n, err := strconv.Atoi(raw)
			return err != nil || n != 0, nil
		},
		Encode: func(v any) string {
			if b, ok := v.(bool); ok && b {
				return "1"
			}
			return "0"
		},
		Is: func(v any) bool {
			_, ok := v.(bool)
			return ok
		},
	}
}

func stringType() Type {
	return Type{
		Pattern: regexp.MustCompile(`[^/]*`),
	}
}

func dateType() Type {
	return Type{
		Pattern: regexp.MustCompile(`[0-9]{4}-(?:0[1-9]|1[0-2])-(?:0[1-9]|[1-2][0-9]|3[0-1])`),
		Decode: func(raw string) (any, error) {
			t, err := time.ParseInLocation(dateLayout, raw, time.Local)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a date: %s", ErrDecode, raw, err)
			}
			return t, nil
		},
		Encode: func(v any) string {
			t, ok := v.(time.Time)
			if !ok {
				return fmt.Sprint(v)
			}
			return t.Local().Format(dateLayout)
		},
		Is: func(v any) bool {
			_, ok := v.(time.Time)
			return ok
		},
		Equals: func(a, b any) bool {
			ta, ok := a.(time.Time)
			if !ok {
				return false
			}
			tb, ok := b.(time.Time)
			if !ok {
				return false
			}
			return ta.UTC().Format(time.RFC3339Nano) == tb.UTC().Format(time.RFC3339Nano)
		},
	}
}

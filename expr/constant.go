package expr

import (
	"fmt"
	"reflect"
	"strconv"
)

const nilTag = "nil"

// constantTag returns the canonical type tag of a literal, keyed by the
// underlying kind so named types tag like their base type.
func constantTag(v any) (string, bool) {
	if v == nil {
		return nilTag, true
	}
	switch k := reflect.TypeOf(v).Kind(); k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return k.String(), true
	default:
		return "", false
	}
}

// constantText returns the canonical textual form of a supported literal.
// Strings are Go-quoted so the text is ASCII-safe for every codec.
func constantText(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return strconv.Quote(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatConstant renders a literal the way it would be written in Go.
func formatConstant(v any) string {
	if v == nil {
		return nilTag
	}
	return constantText(v)
}

// parseConstant rebuilds a literal from its tag and canonical text.
func parseConstant(tag, text string) (any, error) {
	var (
		v   any
		err error
	)
	switch tag {
	case nilTag:
		return nil, nil
	case "bool":
		v, err = strconv.ParseBool(text)
	case "string":
		v, err = strconv.Unquote(text)
	case "int":
		var i int64
		i, err = strconv.ParseInt(text, 10, strconv.IntSize)
		v = int(i)
	case "int8":
		var i int64
		i, err = strconv.ParseInt(text, 10, 8)
		v = int8(i)
	case "int16":
		var i int64
		i, err = strconv.ParseInt(text, 10, 16)
		v = int16(i)
	case "int32":
		var i int64
		i, err = strconv.ParseInt(text, 10, 32)
		v = int32(i)
	case "int64":
		v, err = strconv.ParseInt(text, 10, 64)
	case "uint":
		var u uint64
		u, err = strconv.ParseUint(text, 10, strconv.IntSize)
		v = uint(u)
	case "uint8":
		var u uint64
		u, err = strconv.ParseUint(text, 10, 8)
		v = uint8(u)
	case "uint16":
		var u uint64
		u, err = strconv.ParseUint(text, 10, 16)
		v = uint16(u)
	case "uint32":
		var u uint64
		u, err = strconv.ParseUint(text, 10, 32)
		v = uint32(u)
	case "uint64":
		v, err = strconv.ParseUint(text, 10, 64)
	case "float32":
		var f float64
		f, err = strconv.ParseFloat(text, 32)
		v = float32(f)
	case "float64":
		v, err = strconv.ParseFloat(text, 64)
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnsupportedConstant, tag)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", ErrMalformed, tag, text, err)
	}
	return v, nil
}

package c

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"sharpc/internal/decl"
)

var errNonFinite = errors.New("non-finite float literal")

// literal spells a folded constant as a C expression of type t.
func literal(k *decl.Constant, t decl.Typing) (string, error) {
	switch k.Kind {
	case decl.ConstInt:
		if k.Int == math.MinInt64 {
			return "INT64_MIN", nil
		}
		s := strconv.FormatInt(k.Int, 10)
		if k.Int > math.MaxInt32 || k.Int < math.MinInt32 {
			s += "LL"
		}
		return s, nil
	case decl.ConstUint:
		s := strconv.FormatUint(k.Uint, 10) + "U"
		if k.Uint > math.MaxUint32 {
			s += "LL"
		}
		return s, nil
	case decl.ConstFloat:
		if math.IsInf(k.Float, 0) || math.IsNaN(k.Float) {
			return "", errNonFinite
		}
		s := strconv.FormatFloat(k.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		if name, ok := builtinName(t); ok && name == "float" {
			s += "f"
		}
		return s, nil
	case decl.ConstBool:
		if k.Bool {
			return "true", nil
		}
		return "false", nil
	case decl.ConstChar:
		if k.Char >= 0x20 && k.Char < 0x7f && k.Char != '\'' && k.Char != '\\' {
			return "'" + string(k.Char) + "'", nil
		}
		return strconv.FormatInt(int64(k.Char), 10), nil
	case decl.ConstString:
		return quote(k.Str), nil
	case decl.ConstNull:
		return "NULL", nil
	default:
		return "", errors.New("constant of kind " + k.Kind.String())
	}
}

// quote renders s as a C string literal. Non-printable bytes use three-digit
// octal escapes, which never merge with a following character.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '"' || b == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(b)
		case b == '\n':
			sb.WriteString(`\n`)
		case b == '\r':
			sb.WriteString(`\r`)
		case b == '\t':
			sb.WriteString(`\t`)
		case b < 0x20 || b >= 0x7f:
			sb.WriteByte('\\')
			sb.WriteByte('0' + ((b >> 6) & 7))
			sb.WriteByte('0' + ((b >> 3) & 7))
			sb.WriteByte('0' + (b & 7))
		default:
			sb.WriteByte(b)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

package traits

import (
	"fmt"
	"strings"

	"github.com/ante-lang/infercore/internal/types"
)

var primByName = map[string]types.PrimTag{
	"i8": types.I8, "i16": types.I16, "i32": types.I32, "i64": types.I64, "isz": types.Isz,
	"u8": types.U8, "u16": types.U16, "u32": types.U32, "u64": types.U64, "usz": types.Usz,
	"c8": types.C8, "c32": types.C32,
	"f16": types.F16, "f32": types.F32, "f64": types.F64,
	"bool": types.Bool, "unit": types.Unit,
}

// parseTypeExpr reads the small type-expression grammar the builtin table's
// YAML fixture uses: a bare primitive name ("bool", "i64", ...), or a
// "ptr:<inner>" / "array:<inner>" wrapper, recursively. There is no surface
// syntax in scope for this core (spec Non-goals), so this parser exists
// solely to let builtins.yaml describe fixed instance patterns as plain
// strings instead of hand-built Go literals.
func parseTypeExpr(s string) (types.Type, error) {
	s = strings.TrimSpace(s)
	if rest, ok := cutPrefix(s, "ptr:"); ok {
		inner, err := parseTypeExpr(rest)
		if err != nil {
			return nil, err
		}
		return &types.Ptr{Inner: inner}, nil
	}
	if rest, ok := cutPrefix(s, "array:"); ok {
		inner, err := parseTypeExpr(rest)
		if err != nil {
			return nil, err
		}
		return &types.Array{Inner: inner}, nil
	}
	if tag, ok := primByName[s]; ok {
		return &types.Primitive{Tag: tag}, nil
	}
	return nil, fmt.Errorf("traits: unrecognized type expression %q", s)
}

func cutPrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return "", false
}

package types

// Equals implements the spec 3 equality rule: "Equality on non-generic
// types reduces to handle equality; equality on generic types is
// structural." Since Context.intern only hash-conses non-generic types,
// pointer equality is a valid fast path for them; generic types always fall
// through to the structural comparison.
func Equals(a, b Type) bool {
	if a == b {
		return true
	}
	if !a.Generic() && !b.Generic() {
		return false // distinct interned handles for non-generic types can never be equal
	}
	return structuralEquals(a, b)
}

func structuralEquals(a, b Type) bool {
	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Tag == b.Tag
	case *Ptr:
		b, ok := b.(*Ptr)
		return ok && structuralEquals(a.Inner, b.Inner)
	case *Array:
		b, ok := b.(*Array)
		if !ok {
			return false
		}
		return structuralEquals(a.Inner, b.Inner)
	case *TypeVar:
		b, ok := b.(*TypeVar)
		return ok && a.ID == b.ID && a.IsRow == b.IsRow
	case *Modifier:
		b, ok := b.(*Modifier)
		return ok && a.Flag == b.Flag && structuralEquals(a.Inner, b.Inner)
	case *Data:
		b, ok := b.(*Data)
		if !ok || a.Name != b.Name || len(a.TypeArgs) != len(b.TypeArgs) {
			return false
		}
		for i := range a.TypeArgs {
			if !structuralEquals(a.TypeArgs[i], b.TypeArgs[i]) {
				return false
			}
		}
		return true
	case *Function:
		b, ok := b.(*Function)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !structuralEquals(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return structuralEquals(a.Ret, b.Ret)
	case *Tuple:
		b, ok := b.(*Tuple)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if !structuralEquals(a.Fields[i], b.Fields[i]) {
				return false
			}
		}
		if (a.RowVar == nil) != (b.RowVar == nil) {
			return false
		}
		if a.RowVar != nil && a.RowVar.ID != b.RowVar.ID {
			return false
		}
		return true
	case *TaggedUnion:
		b, ok := b.(*TaggedUnion)
		return ok && a.Name == b.Name
	case *MetaFunction:
		b, ok := b.(*MetaFunction)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !structuralEquals(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return structuralEquals(a.Ret, b.Ret)
	case *FunctionList:
		b, ok := b.(*FunctionList)
		return ok && len(a.Overloads) == len(b.Overloads)
	case *KindType:
		_, ok := b.(*KindType)
		return ok
	case *VoidType:
		_, ok := b.(*VoidType)
		return ok
	default:
		return false
	}
}

// ApproxEq compares tag and shape modulo modifier flags (spec 4.4 case 3:
// "ApproxEq compares tag and shape modulo modifier flags"). It is only
// called on two types that are both already known to be non-generic.
func ApproxEq(a, b Type) bool {
	if m, ok := a.(*Modifier); ok {
		return ApproxEq(m.Inner, b)
	}
	if m, ok := b.(*Modifier); ok {
		return ApproxEq(a, m.Inner)
	}
	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Tag == b.Tag
	case *Ptr:
		b, ok := b.(*Ptr)
		return ok && ApproxEq(a.Inner, b.Inner)
	case *Array:
		b, ok := b.(*Array)
		return ok && ApproxEq(a.Inner, b.Inner)
	case *Data:
		b, ok := b.(*Data)
		if !ok || a.Name != b.Name || len(a.TypeArgs) != len(b.TypeArgs) {
			return false
		}
		for i := range a.TypeArgs {
			if !ApproxEq(a.TypeArgs[i], b.TypeArgs[i]) {
				return false
			}
		}
		return true
	case *Function:
		b, ok := b.(*Function)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !ApproxEq(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return ApproxEq(a.Ret, b.Ret)
	case *Tuple:
		b, ok := b.(*Tuple)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if !ApproxEq(a.Fields[i], b.Fields[i]) {
				return false
			}
		}
		return true
	case *TaggedUnion:
		b, ok := b.(*TaggedUnion)
		return ok && a.Name == b.Name
	case *KindType:
		_, ok := b.(*KindType)
		return ok
	case *VoidType:
		_, ok := b.(*VoidType)
		return ok
	default:
		return structuralEquals(a, b)
	}
}

// Occurs walks only the generic subterms of t (spec 4.4: "The occurs check
// walks only generic subterms"), returning whether the variable v appears
// inside t. An identical-pointer comparison of t to v itself short-circuits
// to false (spec: "identical-pointer short-circuit returns false when
// comparing a variable to itself") since `'1 occurs in '1` is a reflexive
// binding, not a cycle — the caller (unify_one case 1) binds v directly to
// t in that situation rather than raising.
func Occurs(v *TypeVar, t Type) bool {
	if asVar, ok := t.(*TypeVar); ok && asVar == v {
		return false
	}
	return occursHelper(v, t)
}

func occursHelper(v *TypeVar, t Type) bool {
	if !t.Generic() {
		return false
	}
	switch t := t.(type) {
	case *Modifier:
		return occursHelper(v, t.Inner)
	case *Ptr:
		return occursHelper(v, t.Inner)
	case *Array:
		return occursHelper(v, t.Inner)
	case *TypeVar:
		return t.ID == v.ID
	case *Data:
		for _, a := range t.TypeArgs {
			if occursHelper(v, a) {
				return true
			}
		}
		return false
	case *Function:
		for _, p := range t.Params {
			if occursHelper(v, p) {
				return true
			}
		}
		if occursHelper(v, t.Ret) {
			return true
		}
		for _, c := range t.TraitConstraints {
			for _, a := range c.TypeArgs {
				if occursHelper(v, a) {
					return true
				}
			}
		}
		return false
	case *Tuple:
		for _, f := range t.Fields {
			if occursHelper(v, f) {
				return true
			}
		}
		if t.RowVar != nil && t.RowVar.ID == v.ID {
			return true
		}
		return false
	case *TaggedUnion:
		for _, a := range t.TypeArgs {
			if occursHelper(v, a) {
				return true
			}
		}
		for _, variant := range t.Variants {
			for _, f := range variant.Fields {
				if occursHelper(v, f) {
					return true
				}
			}
		}
		return false
	case *MetaFunction:
		for _, p := range t.Params {
			if occursHelper(v, p) {
				return true
			}
		}
		return occursHelper(v, t.Ret)
	case *FunctionList:
		for _, f := range t.Overloads {
			if occursHelper(v, f) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

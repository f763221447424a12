package unify

// maxRecursionDepth bounds unify's own recursion (distinct from, but the
// same cap as, the substitution recursion cap in internal/types): spec 5
// requires both "unification may nest unify_recursive calls" and
// substitution to bound recursion depth at 10,000 and raise a well-labeled
// internal error above the cap.
const maxRecursionDepth = 10000

func depthExceeded(depth int, t1, t2 Type, loc ErrorContext) *TypeError {
	return &TypeError{Kind: InternalRecursion, T1: t1, T2: t2, Loc: loc.Loc, Template: loc.Template}
}

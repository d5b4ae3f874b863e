package semantics

import (
	"loom/compiler-go/pkg/ast"
	"loom/compiler-go/pkg/types"
)

// cover describes how completely a pattern covers one member type of the
// subject. A literal covers its type only partially: the clause can fire
// for that member but does not exhaust it.
type cover int

const (
	coverNone cover = iota
	coverPartial
	coverFull
)

// clauseFacts carries the per-clause coverage sets derived during one match
// analysis. The sets are rebuilt from scratch on every run.
type clauseFacts struct {
	clause     *ast.MatchClause
	structured bool
	dropped    bool
	direct     []types.Type
	indirect   []types.Type
	fullCovers int
}

// MatchResult is the per-statement verdict of the pattern analyzer.
type MatchResult struct {
	// Exhaustive is true when every member type of the subject is fully
	// covered, either by a default clause or by structural covers.
	Exhaustive bool
}

// AnalyzeMatch runs the pattern analyzer over a single match statement in
// isolation and returns its diagnostics alongside the verdict. AnalyzeModule
// performs the same analysis in place as part of the full pass.
func (a *Analyzer) AnalyzeMatch(m *ast.MatchStatement) ([]Diagnostic, MatchResult) {
	sink := &ListSink{}
	prev := a.sink
	a.sink = sink
	exhaustive := a.analyzeMatchPatterns(m)
	a.sink = prev
	return sink.Diagnostics, MatchResult{Exhaustive: exhaustive}
}

// analyzeMatchStatement validates one match statement and reports whether
// control cannot flow past it, which holds when the clause set is
// exhaustive and every reachable clause body returns.
func (a *Analyzer) analyzeMatchStatement(c *analysisContext, m *ast.MatchStatement) bool {
	a.analyzeExpr(c, m.Subject, false)

	exhaustive := a.analyzeMatchPatterns(m)

	returnsAll := len(m.Clauses) > 0
	for _, cl := range m.Clauses {
		if cl.Guard != nil {
			a.analyzeExpr(c, cl.Guard, false)
		}
		bodyReturns := a.analyzeBlock(c, cl.Body, false)
		if cl.Reachable && !bodyReturns {
			returnsAll = false
		}
	}
	return exhaustive && returnsAll
}

// analyzeMatchPatterns computes coverage, defaults, unreachable clauses and
// exhaustiveness, writing the reachability and default verdicts back onto
// the clause nodes. It returns the exhaustiveness verdict.
func (a *Analyzer) analyzeMatchPatterns(m *ast.MatchStatement) bool {
	facts := make([]*clauseFacts, len(m.Clauses))
	for i, cl := range m.Clauses {
		cl.Reachable = true
		cl.IsLastPattern = false
		facts[i] = &clauseFacts{clause: cl, structured: cl.Binding != nil}
	}

	subject := exprType(m.Subject)
	if types.IsInvalid(subject) {
		// Upstream already reported; avoid cascading.
		return true
	}

	a.dropSubsumedClauses(facts)
	hasDefault := a.markDefaults(m)

	members := types.Members(subject)
	allFull := true
	for _, member := range members {
		var first *clauseFacts
		full := false
		indirect := false
		for _, f := range facts {
			if f.dropped {
				continue
			}
			cov := a.clauseCover(f, member)
			switch {
			case cov != coverNone:
				if first == nil {
					first = f
					f.direct = append(f.direct, member)
				}
				if cov == coverFull {
					full = true
					f.fullCovers++
				}
			case indirectApplies(f, member):
				indirect = true
				f.indirect = append(f.indirect, member)
			}
		}
		if !full {
			allFull = false
		}
		if hasDefault {
			continue
		}
		if first == nil && !indirect {
			a.errorf(CodeNoMatchingPattern, m,
				"semantics: no pattern matches values of type %s", member.Name())
		} else if !full {
			a.errorf(CodeNoMatchingPattern, m,
				"semantics: patterns do not cover all values of type %s", member.Name())
		}
	}

	live := liveClauses(facts)
	if len(live) == 1 && live[0].fullCovers == len(members) && len(members) > 0 {
		a.warnf(CodePatternAlwaysMatches, live[0].clause,
			"semantics: pattern always matches; the match statement is redundant")
	}

	return hasDefault || allFull
}

func liveClauses(facts []*clauseFacts) []*clauseFacts {
	var live []*clauseFacts
	for _, f := range facts {
		if !f.dropped {
			live = append(live, f)
		}
	}
	return live
}

// markDefaults finds the exhaustive default of each clause group: the last
// reachable bare-identifier pattern among static clauses and the last
// reachable unguarded plain variable binding among structured clauses.
// Having one of each is an error. It runs after subsumption dropping so a
// dropped clause can never carry the default marker.
func (a *Analyzer) markDefaults(m *ast.MatchStatement) bool {
	var staticDefault, structuredDefault *ast.MatchClause
	for _, cl := range m.Clauses {
		if !cl.Reachable {
			continue
		}
		if cl.Binding == nil {
			if _, ok := cl.Pattern.(*ast.Identifier); ok && cl.Guard == nil {
				staticDefault = cl
			}
			continue
		}
		if v, ok := cl.Binding.(*ast.VarBindingPattern); ok && v.DeclaredType == nil && cl.Guard == nil {
			structuredDefault = cl
		}
	}
	if staticDefault != nil {
		staticDefault.IsLastPattern = true
	}
	if structuredDefault != nil {
		structuredDefault.IsLastPattern = true
	}
	if staticDefault != nil && structuredDefault != nil {
		later := structuredDefault
		for _, cl := range m.Clauses {
			if cl == staticDefault || cl == structuredDefault {
				later = cl
			}
		}
		a.errorf(CodeDuplicateDefaultPattern, later,
			"semantics: match statement has more than one default pattern")
	}
	return staticDefault != nil || structuredDefault != nil
}

// dropSubsumedClauses reports and drops every clause whose pattern is
// exactly subsumed by an earlier clause of the same group.
func (a *Analyzer) dropSubsumedClauses(facts []*clauseFacts) {
	for i, earlier := range facts {
		if earlier.dropped {
			continue
		}
		for _, later := range facts[i+1:] {
			if later.dropped || earlier.structured != later.structured {
				continue
			}
			if !clauseSubsumes(earlier.clause, later.clause) {
				continue
			}
			a.errorf(CodeUnreachableMatchPattern, later.clause,
				"semantics: pattern is unreachable; an earlier pattern already matches these values")
			later.dropped = true
			later.clause.Reachable = false
		}
	}
}

func clauseSubsumes(earlier, later *ast.MatchClause) bool {
	if earlier.Binding != nil {
		if !bindingSubsumes(earlier.Binding, later.Binding) {
			return false
		}
		if earlier.Guard == nil {
			return true
		}
		return later.Guard != nil && exprEqual(earlier.Guard, later.Guard)
	}
	if earlier.Guard != nil && (later.Guard == nil || !exprEqual(earlier.Guard, later.Guard)) {
		return false
	}
	return staticSubsumes(earlier.Pattern, later.Pattern)
}

// staticSubsumes reports whether every value matched by the later static
// pattern is also matched by the earlier one.
func staticSubsumes(earlier, later ast.Expression) bool {
	switch e := earlier.(type) {
	case *ast.Identifier:
		return true
	case *ast.NilLiteral:
		_, ok := later.(*ast.NilLiteral)
		return ok
	case *ast.IntegerLiteral:
		l, ok := later.(*ast.IntegerLiteral)
		return ok && e.Value == l.Value
	case *ast.FloatLiteral:
		l, ok := later.(*ast.FloatLiteral)
		return ok && e.Value == l.Value
	case *ast.BooleanLiteral:
		l, ok := later.(*ast.BooleanLiteral)
		return ok && e.Value == l.Value
	case *ast.StringLiteral:
		l, ok := later.(*ast.StringLiteral)
		return ok && e.Value == l.Value
	case *ast.ListLiteral:
		l, ok := later.(*ast.ListLiteral)
		if !ok || len(e.Elements) != len(l.Elements) {
			return false
		}
		for i := range e.Elements {
			if !staticSubsumes(e.Elements[i], l.Elements[i]) {
				return false
			}
		}
		return true
	case *ast.RecordLiteral:
		l, ok := later.(*ast.RecordLiteral)
		if !ok || len(e.Fields) != len(l.Fields) {
			return false
		}
		laterFields := make(map[string]ast.Expression, len(l.Fields))
		for _, f := range l.Fields {
			laterFields[f.Key] = f.Value
		}
		for _, f := range e.Fields {
			sub, ok := laterFields[f.Key]
			if !ok || !staticSubsumes(f.Value, sub) {
				return false
			}
		}
		return true
	}
	return false
}

// bindingSubsumes reports whether every value matched by the later binding
// pattern is also matched by the earlier one.
func bindingSubsumes(earlier, later ast.BindingPattern) bool {
	switch e := earlier.(type) {
	case *ast.VarBindingPattern:
		if e.DeclaredType == nil {
			return true
		}
		l, ok := later.(*ast.VarBindingPattern)
		return ok && l.DeclaredType != nil && types.Assignable(l.DeclaredType, e.DeclaredType)
	case *ast.ListBindingPattern:
		l, ok := later.(*ast.ListBindingPattern)
		if !ok || len(e.Elements) != len(l.Elements) {
			return false
		}
		for i := range e.Elements {
			if !bindingSubsumes(e.Elements[i], l.Elements[i]) {
				return false
			}
		}
		return true
	case *ast.RecordBindingPattern:
		l, ok := later.(*ast.RecordBindingPattern)
		if !ok {
			return false
		}
		laterFields := make(map[string]ast.BindingPattern, len(l.Fields))
		for _, f := range l.Fields {
			laterFields[f.FieldName] = f.Pattern
		}
		for _, f := range e.Fields {
			sub, ok := laterFields[f.FieldName]
			if !ok || !bindingSubsumes(f.Pattern, sub) {
				return false
			}
		}
		// An earlier closed pattern only subsumes when the shapes agree.
		return e.Rest || len(e.Fields) == len(l.Fields)
	}
	return false
}

// clauseCover computes how completely one clause covers a member type.
func (a *Analyzer) clauseCover(f *clauseFacts, t types.Type) cover {
	if f.structured {
		c := bindingCover(f.clause.Binding, t)
		if c == coverFull && f.clause.Guard != nil {
			return coverPartial
		}
		return c
	}
	if f.clause.Guard != nil {
		c := staticCover(f.clause.Pattern, t)
		if c == coverFull {
			return coverPartial
		}
		return c
	}
	return staticCover(f.clause.Pattern, t)
}

func staticCover(p ast.Expression, t types.Type) cover {
	switch pat := p.(type) {
	case *ast.Identifier:
		return coverFull
	case *ast.NilLiteral:
		if types.IsNil(t) {
			return coverFull
		}
		return coverNone
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.BooleanLiteral, *ast.StringLiteral:
		lt := exprType(p)
		if types.IsValueType(t) && (types.Assignable(lt, t) || types.Assignable(t, lt)) {
			return coverPartial
		}
		return coverNone
	case *ast.ListLiteral:
		tuple, ok := t.(types.TupleType)
		if !ok || len(tuple.Elements) != len(pat.Elements) {
			return coverNone
		}
		result := coverFull
		for i, el := range pat.Elements {
			switch staticCover(el, tuple.Elements[i]) {
			case coverNone:
				return coverNone
			case coverPartial:
				result = coverPartial
			}
		}
		return result
	case *ast.RecordLiteral:
		return recordPatternCover(pat, t)
	}
	return coverNone
}

func recordPatternCover(pat *ast.RecordLiteral, t types.Type) cover {
	rec, ok := t.(types.RecordType)
	if !ok {
		if m, ok := t.(types.MapType); ok {
			result := coverFull
			for _, f := range pat.Fields {
				switch staticCover(f.Value, m.Value) {
				case coverNone:
					return coverNone
				case coverPartial:
					result = coverPartial
				}
			}
			return result
		}
		return coverNone
	}
	result := coverFull
	for _, f := range pat.Fields {
		ft, declared := rec.Fields[f.Key]
		if !declared {
			if rec.Sealed || rec.Rest == nil {
				return coverNone
			}
			ft = rec.Rest
		}
		switch staticCover(f.Value, ft) {
		case coverNone:
			return coverNone
		case coverPartial:
			result = coverPartial
		}
	}
	return result
}

func bindingCover(b ast.BindingPattern, t types.Type) cover {
	switch pat := b.(type) {
	case *ast.VarBindingPattern:
		if pat.DeclaredType == nil || types.Assignable(t, pat.DeclaredType) {
			return coverFull
		}
		return coverNone
	case *ast.ListBindingPattern:
		tuple, ok := t.(types.TupleType)
		if !ok || len(tuple.Elements) != len(pat.Elements) {
			return coverNone
		}
		result := coverFull
		for i, el := range pat.Elements {
			switch bindingCover(el, tuple.Elements[i]) {
			case coverNone:
				return coverNone
			case coverPartial:
				result = coverPartial
			}
		}
		return result
	case *ast.RecordBindingPattern:
		rec, ok := t.(types.RecordType)
		if !ok {
			return coverNone
		}
		result := coverFull
		for _, f := range pat.Fields {
			ft, declared := rec.Fields[f.FieldName]
			if !declared {
				if rec.Sealed || rec.Rest == nil {
					return coverNone
				}
				ft = rec.Rest
			}
			switch bindingCover(f.Pattern, ft) {
			case coverNone:
				return coverNone
			case coverPartial:
				result = coverPartial
			}
		}
		return result
	}
	return coverNone
}

// indirectApplies reports whether a clause that covers nothing exactly could
// still apply to the member type through a containment relation.
func indirectApplies(f *clauseFacts, t types.Type) bool {
	switch t.(type) {
	case types.AnyType, types.AnyDataType, types.JSONType:
		return true
	}
	if f.structured {
		if v, ok := f.clause.Binding.(*ast.VarBindingPattern); ok && v.DeclaredType != nil {
			return types.Assignable(v.DeclaredType, t) || types.Assignable(t, v.DeclaredType)
		}
		if _, ok := f.clause.Binding.(*ast.RecordBindingPattern); ok {
			_, isMap := t.(types.MapType)
			return isMap
		}
		return false
	}
	switch f.clause.Pattern.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.BooleanLiteral, *ast.StringLiteral:
		lt := exprType(f.clause.Pattern)
		return types.Assignable(lt, t) || types.Assignable(t, lt)
	case *ast.ListLiteral:
		_, isList := t.(types.ListType)
		return isList
	case *ast.RecordLiteral:
		_, isMap := t.(types.MapType)
		return isMap
	}
	return false
}

// exprEqual compares two guard expressions structurally.
func exprEqual(a, b ast.Expression) bool {
	switch x := a.(type) {
	case *ast.Identifier:
		y, ok := b.(*ast.Identifier)
		return ok && x.Name == y.Name
	case *ast.IntegerLiteral:
		y, ok := b.(*ast.IntegerLiteral)
		return ok && x.Value == y.Value
	case *ast.FloatLiteral:
		y, ok := b.(*ast.FloatLiteral)
		return ok && x.Value == y.Value
	case *ast.BooleanLiteral:
		y, ok := b.(*ast.BooleanLiteral)
		return ok && x.Value == y.Value
	case *ast.StringLiteral:
		y, ok := b.(*ast.StringLiteral)
		return ok && x.Value == y.Value
	case *ast.NilLiteral:
		_, ok := b.(*ast.NilLiteral)
		return ok
	case *ast.FunctionCall:
		y, ok := b.(*ast.FunctionCall)
		if !ok || !exprEqual(x.Callee, y.Callee) || len(x.Arguments) != len(y.Arguments) {
			return false
		}
		for i := range x.Arguments {
			if !exprEqual(x.Arguments[i], y.Arguments[i]) {
				return false
			}
		}
		return true
	case *ast.FieldAccess:
		y, ok := b.(*ast.FieldAccess)
		return ok && exprEqual(x.Target, y.Target) && x.Field.Name == y.Field.Name
	case *ast.IndexExpression:
		y, ok := b.(*ast.IndexExpression)
		return ok && exprEqual(x.Target, y.Target) && exprEqual(x.Index, y.Index)
	}
	return false
}

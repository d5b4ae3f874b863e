package ast

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// ZeroSpan returns an empty span value.
func ZeroSpan() Span {
	return Span{}
}

// At stamps a single-position span onto a node and returns it; test fixtures
// use it to anchor diagnostics at known positions.
func At(node Node, line, column int) Node {
	SetSpan(node, Span{Start: Position{Line: line, Column: column}, End: Position{Line: line, Column: column}})
	return node
}

// StmtAt is At specialised to statements so builders stay chainable.
func StmtAt(stmt Statement, line, column int) Statement {
	At(stmt, line, column)
	return stmt
}

package semantics

import (
	"fmt"
	"strings"

	"loom/compiler-go/pkg/ast"
	"loom/compiler-go/pkg/types"
)

// defaultWorkerName names the implicit machine formed by the statements of
// the enclosing invokable itself.
const defaultWorkerName = "function"

type actionKind int

const (
	actionSend actionKind = iota
	actionSyncSend
	actionReceive
)

func (k actionKind) String() string {
	switch k {
	case actionSend:
		return "->"
	case actionSyncSend:
		return "->>"
	case actionReceive:
		return "<-"
	}
	return "?"
}

// workerAction is one send or receive recorded in source order on a machine.
type workerAction struct {
	kind actionKind
	// peer is the target worker for sends and the source worker for
	// receives.
	peer string
	// valueType is the static type of the sent value; nil for receives.
	valueType types.Type
	// expected is the declared type at a receive site, nil otherwise.
	expected types.Type
	node     ast.Node
	// errs snapshots the error types accumulated on the sending body up
	// to this action, folded into the delivered message type.
	errs []types.Type
}

func (act *workerAction) String() string {
	return fmt.Sprintf("%s %s", act.kind, act.peer)
}

// workerMachine is the ordered action sequence of one worker (or of the
// enclosing invokable itself, under the default name).
type workerMachine struct {
	name    string
	node    ast.Node
	actions []*workerAction
	cursor  int
	// erroneous machines carry an immediate-check failure and are
	// excluded from pairing.
	erroneous bool
}

func (m *workerMachine) finished() bool { return m.cursor >= len(m.actions) }

func (m *workerMachine) current() *workerAction { return m.actions[m.cursor] }

// pendingString renders the not-yet-paired suffix of the action sequence.
func (m *workerMachine) pendingString() string {
	parts := make([]string, 0, len(m.actions)-m.cursor)
	for _, act := range m.actions[m.cursor:] {
		parts = append(parts, act.String())
	}
	return fmt.Sprintf("%s: [%s]", m.name, strings.Join(parts, ", "))
}

// hasSendBefore reports whether any send action recorded so far targets the
// given worker, or any worker at all when target is empty.
func (m *workerMachine) hasSendBefore(target string) bool {
	for _, act := range m.actions {
		if act.kind == actionReceive {
			continue
		}
		if target == "" || act.peer == target {
			return true
		}
	}
	return false
}

// workerActionSystem owns every machine of one invokable, in declaration
// order with the default machine first.
type workerActionSystem struct {
	machines []*workerMachine
	// channels collects the "from->to" edges established during pairing,
	// annotated back onto the owning invokable.
	channels []string
}

func newWorkerActionSystem(owner ast.Node) *workerActionSystem {
	return &workerActionSystem{
		machines: []*workerMachine{{name: defaultWorkerName, node: owner}},
	}
}

func (s *workerActionSystem) declare(name string, node ast.Node) *workerMachine {
	m := &workerMachine{name: name, node: node}
	s.machines = append(s.machines, m)
	return m
}

func (s *workerActionSystem) machine(name string) *workerMachine {
	for _, m := range s.machines {
		if m.name == name {
			return m
		}
	}
	return nil
}

func (s *workerActionSystem) defaultMachine() *workerMachine { return s.machines[0] }

// recordSend runs the immediate checks for an async or sync send and, when
// they pass, appends the action to the current machine.
func (a *Analyzer) recordSend(c *analysisContext, kind actionKind, target string, valueType types.Type, node ast.Node, topLevel bool) {
	m := c.machine
	if m == nil {
		// The enclosing invokable declares no workers, so no target can
		// exist.
		a.errorf(CodeUndefinedWorker, node, "semantics: undefined worker %q", target)
		return
	}
	if c.system.machine(target) == nil {
		a.errorf(CodeUndefinedWorker, node, "semantics: undefined worker %q", target)
		m.erroneous = true
		return
	}
	if !topLevel {
		a.errorf(CodeInvalidWorkerSendPosition, node,
			"semantics: worker send is only allowed at the top level of a worker body")
		m.erroneous = true
		return
	}
	if c.sawReturn {
		a.errorf(CodeWorkerSendAfterReturn, node,
			"semantics: worker send cannot follow a return statement")
		m.erroneous = true
		return
	}
	m.actions = append(m.actions, &workerAction{
		kind:      kind,
		peer:      target,
		valueType: valueType,
		node:      node,
		errs:      append([]types.Type(nil), c.returnedErrors...),
	})
}

// recordReceive runs the immediate checks for a receive and, when they pass,
// appends the action to the current machine.
func (a *Analyzer) recordReceive(c *analysisContext, source string, expected types.Type, node ast.Node, topLevel bool) {
	m := c.machine
	if m == nil {
		a.errorf(CodeUndefinedWorker, node, "semantics: undefined worker %q", source)
		return
	}
	if c.system.machine(source) == nil {
		a.errorf(CodeUndefinedWorker, node, "semantics: undefined worker %q", source)
		m.erroneous = true
		return
	}
	if !topLevel {
		a.errorf(CodeInvalidWorkerReceivePosition, node,
			"semantics: worker receive is only allowed at the top level of a worker body")
		m.erroneous = true
		return
	}
	if c.sawReturn {
		a.errorf(CodeWorkerReceiveAfterReturn, node,
			"semantics: worker receive cannot follow a return statement")
		m.erroneous = true
		return
	}
	m.actions = append(m.actions, &workerAction{
		kind:     actionReceive,
		peer:     source,
		expected: expected,
		node:     node,
	})
}

// checkFlush validates a flush expression against the sends recorded so far
// on the current machine.
func (a *Analyzer) checkFlush(c *analysisContext, flush *ast.FlushExpression) {
	m := c.machine
	if m == nil {
		a.errorf(CodeInvalidWorkerFlush, flush,
			"semantics: flush requires at least one preceding worker send")
		return
	}
	target := ""
	if flush.Target != nil {
		target = flush.Target.Name
	}
	if target != "" && c.system.machine(target) == nil {
		a.errorf(CodeUndefinedWorker, flush, "semantics: undefined worker %q", target)
		return
	}
	if !m.hasSendBefore(target) {
		if target == "" {
			a.errorf(CodeInvalidWorkerFlush, flush,
				"semantics: flush requires at least one preceding worker send")
		} else {
			a.errorf(CodeInvalidWorkerFlush, flush,
				"semantics: flush requires a preceding send to worker %q", target)
		}
	}
}

// validateWorkerSystem runs the deterministic fixpoint pairing over every
// machine of the system. Each round scans machines in declaration order and
// pairs a front send with the matching front receive of its target; a round
// with no pairing ends the loop. Machines left with pending actions form an
// invalid interaction.
func (a *Analyzer) validateWorkerSystem(sys *workerActionSystem) {
	for {
		progress := false
		for _, m := range sys.machines {
			if m.erroneous || m.finished() {
				continue
			}
			act := m.current()
			if act.kind == actionReceive {
				continue
			}
			peer := sys.machine(act.peer)
			if peer == nil || peer.erroneous || peer.finished() {
				continue
			}
			peerAct := peer.current()
			if peerAct.kind != actionReceive || peerAct.peer != m.name {
				continue
			}
			a.pairActions(sys, m, act, peer, peerAct)
			m.cursor++
			peer.cursor++
			progress = true
		}
		if !progress {
			break
		}
	}

	var unfinished []*workerMachine
	for _, m := range sys.machines {
		if !m.erroneous && !m.finished() {
			unfinished = append(unfinished, m)
		}
	}
	if len(unfinished) == 0 {
		return
	}
	parts := make([]string, 0, len(unfinished))
	for _, m := range unfinished {
		parts = append(parts, m.pendingString())
	}
	a.errorf(CodeInvalidWorkerInteraction, unfinished[0].node,
		"semantics: invalid worker interaction; pending actions %s", strings.Join(parts, "; "))
}

// pairActions matches one send with one receive: it checks the value type
// against the declared receive type, records the channel edge, and writes
// the message result types back onto the send and receive nodes.
func (a *Analyzer) pairActions(sys *workerActionSystem, from *workerMachine, send *workerAction, to *workerMachine, recv *workerAction) {
	if send.valueType != nil && recv.expected != nil &&
		!types.IsInvalid(send.valueType) && !types.IsInvalid(recv.expected) &&
		!types.Assignable(send.valueType, recv.expected) {
		a.errorf(CodeWorkerMessageTypeMismatch, recv.node,
			"semantics: worker %q sends %s but worker %q expects %s",
			from.name, send.valueType.Name(), to.name, recv.expected.Name())
	}

	sys.channels = append(sys.channels, from.name+"->"+to.name)

	// The delivered type folds the sender's accumulated error types into
	// the message value. A sync send additionally resolves to nil on the
	// sender side when delivery succeeds.
	delivered := send.valueType
	if len(send.errs) > 0 {
		members := append([]types.Type{send.valueType}, send.errs...)
		delivered = types.MakeUnion(members...)
	}
	setResultType(recv.node, delivered)

	if send.kind == actionSyncSend {
		members := append([]types.Type{types.Nil}, send.errs...)
		setResultType(send.node, types.MakeUnion(members...))
	} else {
		setResultType(send.node, delivered)
	}
}

func setResultType(node ast.Node, t types.Type) {
	switch n := node.(type) {
	case *ast.ReceiveExpression:
		n.ResultType = t
	case *ast.SyncSendExpression:
		n.ResultType = t
	case *ast.SendStatement:
		n.ResultType = t
	}
}

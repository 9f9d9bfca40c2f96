package domain

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	m "github.com/mouse-blink/smartcache/internal/model"
)

// DefaultPureOperations are the call names treated as side-effect free
// whatever they are called on.
var DefaultPureOperations = []string{"append", "sum"}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithPureOperations adds names to the pure-operation set.
func WithPureOperations(names ...string) ClassifierOption {
	return func(c *Classifier) {
		for _, name := range names {
			if name != "" {
				c.pure[name] = struct{}{}
			}
		}
	}
}

// WithIdentReturns makes `return x` acceptable when x is a bare identifier.
func WithIdentReturns(allow bool) ClassifierOption {
	return func(c *Classifier) {
		c.allowIdentReturn = allow
	}
}

// Classifier decides whether a routine is functional: every statement of its
// body must be one of the recognised side-effect-free shapes. Anything it
// does not recognise counts against the routine, so an unknown construct can
// only cost a caching opportunity, never correctness.
type Classifier struct {
	pure             map[string]struct{}
	allowIdentReturn bool
}

// NewClassifier returns a classifier seeded with DefaultPureOperations.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{pure: make(map[string]struct{}, len(DefaultPureOperations))}
	WithPureOperations(DefaultPureOperations...)(c)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Call reports whether call targets a member of the pure-operation set. Only
// the terminal name of the callee is checked; arguments are not inspected.
func (c *Classifier) Call(call *ast.CallExpr) bool {
	_, ok := c.pure[calleeName(call)]
	return ok
}

// Function reports whether fn is functional. A nil fn, as produced by a
// failed routine lookup, is not.
func (c *Classifier) Function(fn *ast.FuncDecl, routines map[string]*ast.FuncDecl) bool {
	return c.Explain(nil, fn, routines).Functional
}

// Explain classifies fn and records every disqualifying statement. fset may
// be nil, in which case reasons carry no line numbers.
func (c *Classifier) Explain(fset *token.FileSet, fn *ast.FuncDecl, routines map[string]*ast.FuncDecl) m.Verdict {
	if fn == nil {
		return m.Verdict{Reasons: []m.Reason{{Kind: m.StatementOther, Message: "routine not found"}}}
	}

	j := &judgement{classifier: c, fset: fset, routines: routines}
	verdict := m.Verdict{Routine: routineOf(fset, fn)}

	switch directiveOf(fn) {
	case directiveIgnore:
		j.reject(fn, m.StatementOther, "disabled by //%s", directiveIgnore)
		verdict.Reasons = j.reasons

		return verdict
	case directiveFunctional:
		verdict.Functional = true
		return verdict
	}

	if fn.Body == nil {
		j.reject(fn, m.StatementOther, "declaration has no body")
		verdict.Reasons = j.reasons

		return verdict
	}

	verdict.Functional = j.block(fn.Body.List)
	verdict.Reasons = j.reasons

	return verdict
}

// judgement carries the state of one Explain call.
type judgement struct {
	classifier *Classifier
	fset       *token.FileSet
	routines   map[string]*ast.FuncDecl
	reasons    []m.Reason
}

// block scans every statement; the result is their conjunction.
func (j *judgement) block(stmts []ast.Stmt) bool {
	functional := true

	for _, stmt := range stmts {
		if !j.statement(stmt) {
			functional = false
		}
	}

	return functional
}

func (j *judgement) statement(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		for _, rhs := range s.Rhs {
			if !isSequenceLiteral(rhs) {
				j.reject(s, m.StatementAssign, "assigns %s, not a literal sequence", types.ExprString(rhs))
				return false
			}
		}

		return true
	case *ast.ForStmt:
		return j.loop(s, s.Body)
	case *ast.RangeStmt:
		return j.loop(s, s.Body)
	case *ast.ExprStmt:
		return j.values(s, m.StatementExpr, []ast.Expr{s.X})
	case *ast.ReturnStmt:
		if len(s.Results) == 0 {
			j.reject(s, m.StatementReturn, "returns without a value")
			return false
		}

		return j.values(s, m.StatementReturn, s.Results)
	default:
		j.reject(s, m.StatementOther, "unrecognized statement %s", statementName(s))
		return false
	}
}

func (j *judgement) loop(stmt ast.Stmt, body *ast.BlockStmt) bool {
	if body == nil || j.block(body.List) {
		return true
	}

	j.reject(stmt, m.StatementLoop, "loop body is not functional")

	return false
}

func (j *judgement) values(stmt ast.Stmt, kind m.StatementKind, values []ast.Expr) bool {
	for _, value := range values {
		switch v := value.(type) {
		case *ast.CallExpr:
			if j.classifier.Call(v) {
				continue
			}

			name := calleeName(v)
			if _, ok := j.routines[name]; ok {
				j.reject(stmt, kind, "calls routine %s; routines are not resolved transitively", name)
			} else {
				j.reject(stmt, kind, "calls %s, which is not a pure operation", types.ExprString(v.Fun))
			}

			return false
		case *ast.Ident:
			if kind == m.StatementReturn && j.classifier.allowIdentReturn {
				continue
			}
		}

		j.reject(stmt, kind, "value %s is not a call", types.ExprString(value))

		return false
	}

	return true
}

func (j *judgement) reject(node ast.Node, kind m.StatementKind, format string, args ...any) {
	j.reasons = append(j.reasons, m.Reason{
		Line:    lineOf(j.fset, node.Pos()),
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// isSequenceLiteral matches slice and array literals such as []int{1, 2}.
func isSequenceLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return false
	}

	_, ok = lit.Type.(*ast.ArrayType)

	return ok
}

// calleeName returns the terminal name of a bare or selector callee.
func calleeName(call *ast.CallExpr) string {
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		return fun.Name
	case *ast.SelectorExpr:
		return fun.Sel.Name
	default:
		return ""
	}
}

func statementName(stmt ast.Stmt) string {
	switch s := stmt.(type) {
	case *ast.IfStmt:
		return "if"
	case *ast.SwitchStmt, *ast.TypeSwitchStmt:
		return "switch"
	case *ast.SelectStmt:
		return "select"
	case *ast.DeclStmt:
		return "declaration"
	case *ast.IncDecStmt:
		return s.Tok.String()
	case *ast.GoStmt:
		return "go"
	case *ast.DeferStmt:
		return "defer"
	case *ast.SendStmt:
		return "send"
	case *ast.BranchStmt:
		return s.Tok.String()
	case *ast.BlockStmt:
		return "block"
	case *ast.LabeledStmt:
		return "label " + s.Label.Name
	default:
		return fmt.Sprintf("%T", stmt)
	}
}

func lineOf(fset *token.FileSet, pos token.Pos) int {
	if fset == nil || !pos.IsValid() {
		return 0
	}

	return fset.Position(pos).Line
}

package model

// StatementKind names the statement shapes the purity classifier recognises.
type StatementKind string

const (
	// StatementAssign covers =, := and op-assign statements.
	StatementAssign StatementKind = "assignment"
	// StatementExpr is a bare expression statement.
	StatementExpr StatementKind = "expression"
	// StatementReturn is a return statement.
	StatementReturn StatementKind = "return"
	// StatementLoop covers for and range loops.
	StatementLoop StatementKind = "loop"
	// StatementOther is any shape the classifier does not recognise.
	StatementOther StatementKind = "unrecognized"
)

// Routine is a named top-level function without receiver or type parameters.
type Routine struct {
	Name    string
	Line    int
	Params  int
	Results int
}

// Invocable reports whether the routine can be executed without arguments.
func (r Routine) Invocable() bool {
	return r.Params == 0 && r.Results <= 1
}

// Reason describes one statement that disqualified a routine.
type Reason struct {
	Line    int           `yaml:"line"`
	Kind    StatementKind `yaml:"kind"`
	Message string        `yaml:"message"`
}

// Verdict is the classifier's answer for one routine.
type Verdict struct {
	Routine    Routine
	Functional bool
	Reasons    []Reason
}

// CallSite records a call examined by the rewriter.
type CallSite struct {
	Caller  string `yaml:"caller"`
	Callee  string `yaml:"callee"`
	Line    int    `yaml:"line"`
	Wrapped bool   `yaml:"wrapped"`
	Skipped string `yaml:"skipped,omitempty"` // why a functional callee was left untouched
}

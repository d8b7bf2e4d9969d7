package decl

import "sharpc/internal/source"

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	// StmtReturn represents return with an optional value.
	StmtReturn StmtKind = iota + 1
	// StmtAssign represents simple and compound assignment.
	StmtAssign
	// StmtIf represents if/else.
	StmtIf
	// StmtLoop represents while, do-while and classic for loops.
	StmtLoop
	// StmtExpr represents an expression statement.
	StmtExpr
	// StmtBlock represents a nested block.
	StmtBlock
	// StmtLocal represents a local variable declaration.
	StmtLocal
	StmtBreak
	StmtContinue
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtReturn:
		return "Return"
	case StmtAssign:
		return "Assign"
	case StmtIf:
		return "If"
	case StmtLoop:
		return "Loop"
	case StmtExpr:
		return "Expr"
	case StmtBlock:
		return "Block"
	case StmtLocal:
		return "Local"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	default:
		return "Unknown"
	}
}

// Stmt represents a lowered statement.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData // Kind-specific payload
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

// ReturnData holds data for StmtReturn.
type ReturnData struct {
	Value *Expr // nil for bare return
}

func (ReturnData) stmtData() {}

// AssignData holds data for StmtAssign.
type AssignData struct {
	Op     string // "=", "+=", ...
	Target *Expr
	Value  *Expr
}

func (AssignData) stmtData() {}

// IfData holds data for StmtIf.
type IfData struct {
	Cond *Expr
	Then *Stmt
	Else *Stmt // nil if no else branch
}

func (IfData) stmtData() {}

// LoopKind distinguishes loop variants.
type LoopKind uint8

const (
	LoopWhile LoopKind = iota + 1
	LoopDo
	LoopFor
)

// String returns the source keyword of the loop kind.
func (k LoopKind) String() string {
	switch k {
	case LoopWhile:
		return "while"
	case LoopDo:
		return "do"
	case LoopFor:
		return "for"
	default:
		return "loop"
	}
}

// LoopData holds data for StmtLoop.
type LoopData struct {
	Kind LoopKind
	Init []*Stmt // for only
	Cond *Expr   // nil means forever
	Post []*Expr // for only
	Body *Stmt
}

func (LoopData) stmtData() {}

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	Expr *Expr
}

func (ExprStmtData) stmtData() {}

// BlockData holds data for StmtBlock.
type BlockData struct {
	Stmts []*Stmt
}

func (BlockData) stmtData() {}

// LocalData holds data for StmtLocal.
type LocalData struct {
	Name   string
	Typing Typing
	Value  *Expr // nil if uninitialized
}

func (LocalData) stmtData() {}

// BreakData holds data for StmtBreak.
type BreakData struct{}

func (BreakData) stmtData() {}

// ContinueData holds data for StmtContinue.
type ContinueData struct{}

func (ContinueData) stmtData() {}

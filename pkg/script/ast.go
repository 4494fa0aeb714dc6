package script

// Position locates a node in the source script.
type Position struct {
	Line int32
	Col  int32
}

// Node is any statement or expression in a parsed script.
type Node interface {
	Pos() Position
}

// Stmt is a single pseudocode statement.
type Stmt interface {
	Node
	stmt()
}

// Expr is a single pseudocode expression.
type Expr interface {
	Node
	expr()
}

// Param is one parameter of a function definition.
type Param struct {
	Name     string
	Default  Expr // optional
	Star     bool // *args
	StarStar bool // **kwargs
}

// FuncDef represents a def statement.
type FuncDef struct {
	Name   string
	Params []Param
	Body   []Stmt
	At     Position
}

func (*FuncDef) stmt()           {}
func (s *FuncDef) Pos() Position { return s.At }

// ElifClause is one elif branch of an If statement.
type ElifClause struct {
	Cond Expr
	Body []Stmt
}

// If represents an if statement with its elif chain and optional else.
// A nested single if in the else arm is flattened into Elifs during
// parsing, mirroring how the surface syntax writes elif.
type If struct {
	Cond  Expr
	Then  []Stmt
	Elifs []ElifClause
	Else  []Stmt
	At    Position
}

func (*If) stmt()           {}
func (s *If) Pos() Position { return s.At }

// For represents a for loop over an iterable.
type For struct {
	Vars []Expr
	Iter Expr
	Body []Stmt
	At   Position
}

func (*For) stmt()           {}
func (s *For) Pos() Position { return s.At }

// While represents a while loop.
type While struct {
	Cond Expr
	Body []Stmt
	At   Position
}

func (*While) stmt()           {}
func (s *While) Pos() Position { return s.At }

// Assign represents an assignment. Augmented assignments (x += 1) are
// expanded at parse time, so Value already carries the full right side.
type Assign struct {
	Targets []Expr
	Value   Expr
	At      Position
}

func (*Assign) stmt()           {}
func (s *Assign) Pos() Position { return s.At }

// Return represents a return statement; Value may be nil.
type Return struct {
	Value Expr
	At    Position
}

func (*Return) stmt()           {}
func (s *Return) Pos() Position { return s.At }

// ExprStmt is an expression used as a statement: a call, or the raw
// LaTeX string idiom.
type ExprStmt struct {
	X  Expr
	At Position
}

func (*ExprStmt) stmt()           {}
func (s *ExprStmt) Pos() Position { return s.At }

// Pass is a structurally required statement with no pseudocode meaning.
type Pass struct{ At Position }

func (*Pass) stmt()           {}
func (s *Pass) Pos() Position { return s.At }

// Break exits the innermost loop.
type Break struct{ At Position }

func (*Break) stmt()           {}
func (s *Break) Pos() Position { return s.At }

// Continue resumes the innermost loop.
type Continue struct{ At Position }

func (*Continue) stmt()           {}
func (s *Continue) Pos() Position { return s.At }

// Unsupported is a statement the translator has no rule for. It is
// kept in the tree so that material truncated by the visibility filter
// can never fail a run; reaching one during generation is an error.
type Unsupported struct {
	Kind string
	At   Position
}

func (*Unsupported) stmt()           {}
func (s *Unsupported) Pos() Position { return s.At }

// Op identifies a binary, unary, comparison or boolean operator.
type Op int

const (
	OpInvalid Op = iota

	// arithmetic and bitwise
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr

	// comparison
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpIn
	OpNotIn

	// boolean
	OpAnd
	OpOr

	// unary
	OpNot
	OpNeg
	OpPos
	OpInvert
)

var opNames = map[Op]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	OpFloorDiv: "//", OpMod: "%", OpPow: "**",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^", OpShl: "<<", OpShr: ">>",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpGt: ">", OpLe: "<=", OpGe: ">=",
	OpIn: "in", OpNotIn: "not in",
	OpAnd: "and", OpOr: "or",
	OpNot: "not", OpNeg: "-", OpPos: "+", OpInvert: "~",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "?"
}

// Name is an identifier reference.
type Name struct {
	Ident string
	At    Position
}

func (*Name) expr()           {}
func (e *Name) Pos() Position { return e.At }

// Num is a numeric literal; Text preserves the source spelling.
type Num struct {
	Text string
	At   Position
}

func (*Num) expr()           {}
func (e *Num) Pos() Position { return e.At }

// Str is a string literal. Every string in a script is a raw LaTeX
// literal: its text is emitted verbatim wherever it appears.
type Str struct {
	Text string
	At   Position
}

func (*Str) expr()           {}
func (e *Str) Pos() Position { return e.At }

// Binary is an arithmetic or bitwise infix expression.
type Binary struct {
	Op   Op
	X, Y Expr
	At   Position
}

func (*Binary) expr()           {}
func (e *Binary) Pos() Position { return e.At }

// Unary is a prefix expression.
type Unary struct {
	Op Op
	X  Expr
	At Position
}

func (*Unary) expr()           {}
func (e *Unary) Pos() Position { return e.At }

// Compare is a single binary comparison.
type Compare struct {
	Op   Op
	X, Y Expr
	At   Position
}

func (*Compare) expr()           {}
func (e *Compare) Pos() Position { return e.At }

// BoolOp is an and/or chain. Runs of the same operator are folded into
// one node with the operand list in source order.
type BoolOp struct {
	Op       Op
	Operands []Expr
	At       Position
}

func (*BoolOp) expr()           {}
func (e *BoolOp) Pos() Position { return e.At }

// Arg is one call argument, keyword if Name is non-empty.
type Arg struct {
	Name  string
	Value Expr
}

// Call is a call expression. When Fn is a Str the call is a template
// application: the argument renderings are substituted into the
// snippet text.
type Call struct {
	Fn   Expr
	Args []Arg
	At   Position
}

func (*Call) expr()           {}
func (e *Call) Pos() Position { return e.At }

// Subscript is an index expression: A[i].
type Subscript struct {
	X     Expr
	Index Expr
	At    Position
}

func (*Subscript) expr()           {}
func (e *Subscript) Pos() Position { return e.At }

// Slice is a range subscript: A[lo:hi] or A[lo:hi:step]. Any of the
// three parts may be nil.
type Slice struct {
	X, Lo, Hi, Step Expr
	At              Position
}

func (*Slice) expr()           {}
func (e *Slice) Pos() Position { return e.At }

// Attr is an attribute access: x.name.
type Attr struct {
	X    Expr
	Name string
	At   Position
}

func (*Attr) expr()           {}
func (e *Attr) Pos() Position { return e.At }

// Tuple is a parenthesized element list.
type Tuple struct {
	Elems []Expr
	At    Position
}

func (*Tuple) expr()           {}
func (e *Tuple) Pos() Position { return e.At }

// List is a bracketed element list.
type List struct {
	Elems []Expr
	At    Position
}

func (*List) expr()           {}
func (e *List) Pos() Position { return e.At }

// DictEntry is one key/value pair of a Dict.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// Dict is a brace-delimited mapping literal.
type Dict struct {
	Entries []DictEntry
	At      Position
}

func (*Dict) expr()           {}
func (e *Dict) Pos() Position { return e.At }

// CompClause is one clause of a SetBuilder. A clause with Vars set is
// a for clause (Vars in Iter); otherwise Cond holds a filter.
type CompClause struct {
	Vars []Expr
	Iter Expr
	Cond Expr
}

// SetBuilder is a comprehension, rendered in set-builder notation.
type SetBuilder struct {
	Body    Expr
	Clauses []CompClause
	At      Position
}

func (*SetBuilder) expr()           {}
func (e *SetBuilder) Pos() Position { return e.At }

// UnsupportedExpr is an expression the translator has no rule for.
// Like Unsupported it only fails a run if the renderer reaches it.
type UnsupportedExpr struct {
	Kind string
	At   Position
}

func (*UnsupportedExpr) expr()           {}
func (e *UnsupportedExpr) Pos() Position { return e.At }

var (
	_ Stmt = (*FuncDef)(nil)
	_ Stmt = (*If)(nil)
	_ Stmt = (*For)(nil)
	_ Stmt = (*While)(nil)
	_ Stmt = (*Assign)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*Pass)(nil)
	_ Stmt = (*Break)(nil)
	_ Stmt = (*Continue)(nil)
	_ Stmt = (*Unsupported)(nil)

	_ Expr = (*Name)(nil)
	_ Expr = (*Num)(nil)
	_ Expr = (*Str)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Compare)(nil)
	_ Expr = (*BoolOp)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Subscript)(nil)
	_ Expr = (*Slice)(nil)
	_ Expr = (*Attr)(nil)
	_ Expr = (*Tuple)(nil)
	_ Expr = (*List)(nil)
	_ Expr = (*Dict)(nil)
	_ Expr = (*SetBuilder)(nil)
	_ Expr = (*UnsupportedExpr)(nil)
)

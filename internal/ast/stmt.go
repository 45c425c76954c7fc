package ast

import (
	"github.com/google/closure-templates-sub001/internal/source"
)

// RawTextStmt is literal output text between commands.
type RawTextStmt struct {
	Text string
	source.Location
}

func (r *RawTextStmt) INode()                {} // Implements Node interface
func (r *RawTextStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (r *RawTextStmt) Loc() *source.Location { return &r.Location }

// PrintStmt is {$expr} or {print $expr}.
type PrintStmt struct {
	Value Expression
	source.Location
}

func (p *PrintStmt) INode()                {} // Implements Node interface
func (p *PrintStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (p *PrintStmt) Loc() *source.Location { return &p.Location }

// IfCond is one {if}/{elseif} arm.
type IfCond struct {
	Cond Expression
	Body []Statement
	source.Location
}

// IfStmt is an {if}...{elseif}...{else}...{/if} chain. Conds holds the if
// arm followed by the elseif arms in order; Else is nil when absent.
type IfStmt struct {
	Conds []*IfCond
	Else  []Statement
	source.Location
}

func (i *IfStmt) INode()                {} // Implements Node interface
func (i *IfStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (i *IfStmt) Loc() *source.Location { return &i.Location }

// SwitchCase is one {case} arm; Soy allows a comma-separated expression list.
type SwitchCase struct {
	Exprs []Expression
	Body  []Statement
	source.Location
}

// SwitchStmt is {switch $expr}{case ...}{default}{/switch}.
type SwitchStmt struct {
	Value   Expression
	Cases   []*SwitchCase
	Default []Statement // nil when there is no {default}
	source.Location
}

func (s *SwitchStmt) INode()                {} // Implements Node interface
func (s *SwitchStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (s *SwitchStmt) Loc() *source.Location { return &s.Location }

// ForStmt is {for $item in $list}...{ifempty}...{/for}. The loop variable is
// visible in Body only; the IfEmpty branch runs when the list is empty and
// does not see it.
type ForStmt struct {
	Var     *VarDefn
	Range   Expression
	Body    []Statement
	IfEmpty []Statement
	source.Location
}

func (f *ForStmt) INode()                {} // Implements Node interface
func (f *ForStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (f *ForStmt) Loc() *source.Location { return &f.Location }

// LetStmt binds a name for the rest of the enclosing block. Exactly one of
// Value (a {let $x: expr /}) or Body (a {let $x kind="..."}...{/let} content
// block) is set.
type LetStmt struct {
	Var         *VarDefn
	Value       Expression
	Body        []Statement
	ContentKind string // "html", "text", ... for content lets
	source.Location
}

func (l *LetStmt) INode()                {} // Implements Node interface
func (l *LetStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (l *LetStmt) Loc() *source.Location { return &l.Location }

// CallParam is one {param} child of a call. Value params carry an
// expression; content params carry a statement body.
type CallParam struct {
	Name        string
	Value       Expression
	Body        []Statement
	ContentKind string
	source.Location
}

// CallStmt is {call ns.tmpl}/{delcall ...}. DataAll forwards the caller's
// whole data record; DataExpr passes an explicit record.
type CallStmt struct {
	Callee   string // fully qualified callee name
	DelCall  bool
	DataAll  bool
	DataExpr Expression
	Params   []*CallParam
	source.Location
}

func (c *CallStmt) INode()                {} // Implements Node interface
func (c *CallStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (c *CallStmt) Loc() *source.Location { return &c.Location }

// MsgStmt is a {msg desc="..."} translation block.
type MsgStmt struct {
	Desc string
	Body []Statement
	source.Location
}

func (m *MsgStmt) INode()                {} // Implements Node interface
func (m *MsgStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (m *MsgStmt) Loc() *source.Location { return &m.Location }

// PluralCase is one {case <n>} arm of a plural block.
type PluralCase struct {
	Value int64
	Body  []Statement
	source.Location
}

// PluralStmt is a {plural $count}...{/plural} block inside a msg. The
// scrutinee must be numeric; Default is the {default} arm.
type PluralStmt struct {
	Value   Expression
	Cases   []*PluralCase
	Default []Statement
	source.Location
}

func (p *PluralStmt) INode()                {} // Implements Node interface
func (p *PluralStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (p *PluralStmt) Loc() *source.Location { return &p.Location }

// SelectCase is one {case '<value>'} arm of a select block.
type SelectCase struct {
	Value string
	Body  []Statement
	source.Location
}

// SelectStmt is a {select $gender}...{/select} block inside a msg. The
// scrutinee must be a string.
type SelectStmt struct {
	Value   Expression
	Cases   []*SelectCase
	Default []Statement
	source.Location
}

func (s *SelectStmt) INode()                {} // Implements Node interface
func (s *SelectStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (s *SelectStmt) Loc() *source.Location { return &s.Location }

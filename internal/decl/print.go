package decl

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps the declaration model as indented text.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new declaration printer.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes every declaration to w in the given order.
func Dump(w io.Writer, decls []*TypeDecl) error {
	p := NewPrinter(w)
	for i, d := range decls {
		if i > 0 {
			p.printf("\n")
		}
		p.PrintDecl(d)
	}
	return p.err
}

// PrintDecl prints one declaration with its members and bodies.
func (p *Printer) PrintDecl(d *TypeDecl) {
	p.printIndent()
	p.printf("%s %s (%s)", d.Category(), d.FullName, d.FlatName)
	if mods := d.Modifiers.String(); mods != "" {
		p.printf(" [%s]", mods)
	}
	if d.IsGeneric {
		p.printf(" generic")
	}
	p.printf("\n")
	p.indent++
	for i := range d.Members {
		p.printMember(&d.Members[i])
	}
	p.indent--
}

func (p *Printer) printMember(m *Member) {
	p.printIndent()
	switch data := m.Data.(type) {
	case *FieldData:
		p.printf("field %s: %s (%s)", data.Name, typingStr(data.Typing), data.FlatName)
		if data.Init != nil {
			p.printf(" = %s", data.Init)
		}
		p.printf("\n")
	case *PropertyData:
		p.printf("property %s: %s (%s)", data.Name, typingStr(data.Typing), data.FlatName)
		if data.HasGet {
			p.printf(" get")
		}
		if data.HasSet {
			p.printf(" set")
		}
		p.printf("\n")
		p.indent++
		p.printBody("get", data.Get)
		p.printBody("set", data.Set)
		p.indent--
	case *MethodData:
		params := make([]string, 0, len(data.Params))
		for _, prm := range data.Params {
			params = append(params, prm.Name+": "+typingStr(prm.Typing))
		}
		p.printf("method %s(%s): %s (%s)\n", data.Name, strings.Join(params, ", "), typingStr(data.Result), data.FlatName)
		p.indent++
		p.printBody("body", data.Body)
		p.indent--
	default:
		p.printf("<member %s>\n", m.Kind)
	}
}

func (p *Printer) printBody(label string, b *Body) {
	if b == nil {
		return
	}
	p.printIndent()
	p.printf("%s:\n", label)
	p.indent++
	for _, s := range b.Stmts {
		p.printStmt(s)
	}
	p.indent--
}

func (p *Printer) printStmt(s *Stmt) {
	if s == nil {
		return
	}
	p.printIndent()
	switch data := s.Data.(type) {
	case ReturnData:
		if data.Value == nil {
			p.printf("return\n")
			return
		}
		p.printf("return %s\n", ExprString(data.Value))
	case AssignData:
		p.printf("%s %s %s\n", ExprString(data.Target), data.Op, ExprString(data.Value))
	case IfData:
		p.printf("if %s\n", ExprString(data.Cond))
		p.nested(data.Then)
		if data.Else != nil {
			p.printIndent()
			p.printf("else\n")
			p.nested(data.Else)
		}
	case LoopData:
		p.printf("%s", data.Kind)
		if data.Cond != nil {
			p.printf(" %s", ExprString(data.Cond))
		}
		p.printf("\n")
		p.indent++
		for _, init := range data.Init {
			p.printStmt(init)
		}
		p.indent--
		p.nested(data.Body)
	case ExprStmtData:
		p.printf("%s\n", ExprString(data.Expr))
	case BlockData:
		p.printf("{\n")
		p.indent++
		for _, inner := range data.Stmts {
			p.printStmt(inner)
		}
		p.indent--
		p.printIndent()
		p.printf("}\n")
	case LocalData:
		p.printf("local %s: %s", data.Name, typingStr(data.Typing))
		if data.Value != nil {
			p.printf(" = %s", ExprString(data.Value))
		}
		p.printf("\n")
	case BreakData:
		p.printf("break\n")
	case ContinueData:
		p.printf("continue\n")
	default:
		p.printf("<stmt %s>\n", s.Kind)
	}
}

func (p *Printer) nested(s *Stmt) {
	p.indent++
	p.printStmt(s)
	p.indent--
}

func (p *Printer) printIndent() {
	p.printf("%s", strings.Repeat("  ", p.indent))
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func typingStr(t Typing) string {
	name := t.TypeFullName
	if name == "" {
		name = t.TypeName
	}
	if name == "" {
		name = "void"
	}
	if t.IsArray {
		name += "[]"
	}
	return name
}

// ExprString renders an expression on one line.
func ExprString(e *Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch data := e.Data.(type) {
	case LiteralData:
		return data.Value.String()
	case NameData:
		return data.Name
	case ThisData:
		return "this"
	case MemberAccessData:
		return ExprString(data.Target) + "." + data.Member
	case InvokeData:
		args := make([]string, 0, len(data.Args))
		for _, a := range data.Args {
			args = append(args, ExprString(a))
		}
		return ExprString(data.Callee) + "(" + strings.Join(args, ", ") + ")"
	case BinaryData:
		return "(" + ExprString(data.Left) + " " + data.Op + " " + ExprString(data.Right) + ")"
	case UnaryData:
		if data.Postfix {
			return ExprString(data.Operand) + data.Op
		}
		return data.Op + ExprString(data.Operand)
	case CastData:
		return "(" + typingStr(e.Type) + ")" + ExprString(data.Value)
	case NewData:
		args := make([]string, 0, len(data.Args))
		for _, a := range data.Args {
			args = append(args, ExprString(a))
		}
		return "new " + typingStr(e.Type) + "(" + strings.Join(args, ", ") + ")"
	case IndexData:
		return ExprString(data.Target) + "[" + ExprString(data.Index) + "]"
	case ConditionalData:
		return ExprString(data.Cond) + " ? " + ExprString(data.Then) + " : " + ExprString(data.Else)
	default:
		return "<expr " + e.Kind.String() + ">"
	}
}

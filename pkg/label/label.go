// Package label implements the opaque label values attached to host-graph
// nodes and edges.
//
// A label is a mark (a small closed enumeration) plus a list of atoms. The
// engine never evaluates atoms - arithmetic and string evaluation belong to
// the surrounding rule engine. The engine only needs three things from a
// label: a derived equivalence class for index bucketing, a deep copy for
// snapshots, and a textual form for the dump format.
//
// Classification is a pure function of list shape. Two labels with different
// classes can never be matched by the same index bucket.
package label

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/graphmorph/hostgraph/pkg/errors"
)

// MaxListLength is the maximum number of atoms in a fixed-length label list.
const MaxListLength = 5

// Mark is the color mark carried by a label.
type Mark uint8

// Mark values. MarkAny is a rule-side wildcard; host labels normally carry
// one of the concrete marks.
const (
	MarkNone Mark = iota
	MarkRed
	MarkGreen
	MarkBlue
	MarkGrey
	MarkDashed
	MarkAny
)

var markNames = [...]string{"none", "red", "green", "blue", "grey", "dashed", "any"}

// String returns the lowercase mark name used by the dump format.
func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("mark(%d)", uint8(m))
}

// ParseMark converts a dump-format mark name back to a Mark.
func ParseMark(s string) (Mark, error) {
	for i, name := range markNames {
		if s == name {
			return Mark(i), nil
		}
	}
	return MarkNone, errors.New(errors.ErrCodeParse, "unknown mark %q", s)
}

// Class is the equivalence class derived from a label's list shape.
// The class set is small and closed, so index structures can use it as a
// direct array subscript.
type Class uint8

// Label classes.
const (
	ClassEmpty Class = iota // empty list
	ClassInt                // single integer-valued atom
	ClassString             // single string-valued atom
	ClassVar                // single untyped variable
	ClassList2              // fixed-length list of 2 atoms
	ClassList3
	ClassList4
	ClassList5
	ClassListVar // contains a list variable (unbounded/symbolic)

	// NumClasses is the size of the closed class enumeration.
	NumClasses = int(ClassListVar) + 1
)

var classNames = [...]string{
	"empty", "int", "string", "var", "list2", "list3", "list4", "list5", "listvar",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// Label is an opaque, classifiable, deep-copyable value. Labels are treated
// as immutable once attached to a node or edge; the engine replaces them
// wholesale through relabel operations.
type Label struct {
	mark    Mark
	atoms   []Atom
	listVar bool
}

// Blank returns the empty label: no mark, empty list. It classifies as
// ClassEmpty and prints as "empty" in the dump format.
func Blank() Label {
	return Label{}
}

// New constructs a label from a mark and a list of atoms. Lists longer than
// MaxListLength are rejected, matching the host language's list maximum.
func New(mark Mark, atoms ...Atom) (Label, error) {
	if len(atoms) > MaxListLength {
		return Label{}, errors.New(errors.ErrCodeInvalidLabel,
			"list length %d exceeds the maximum of %d", len(atoms), MaxListLength)
	}
	return Label{mark: mark, atoms: atoms}, nil
}

// NewListVar constructs a label whose list contains a list variable, making
// its length symbolic. Such labels classify as ClassListVar regardless of the
// number of concrete atoms, so no length cap applies.
func NewListVar(mark Mark, atoms ...Atom) Label {
	return Label{mark: mark, atoms: atoms, listVar: true}
}

// Mark returns the label's mark.
func (l Label) Mark() Mark { return l.mark }

// Len returns the number of atoms in the label's list.
func (l Label) Len() int { return len(l.atoms) }

// Atoms returns the label's atom list. The returned slice is a fresh copy of
// the backing array; the atoms themselves are immutable values.
func (l Label) Atoms() []Atom {
	if l.atoms == nil {
		return nil
	}
	out := make([]Atom, len(l.atoms))
	copy(out, l.atoms)
	return out
}

// HasListVariable reports whether the label's list contains a list variable.
func (l Label) HasListVariable() bool { return l.listVar }

// Class computes the label's equivalence class from its list shape:
// a list variable dominates everything, then the list length decides, and a
// one-atom list classifies by the value kind of its atom. Unevaluated
// arithmetic atoms classify as integers and concatenations as strings since
// that is the type their evaluation must produce.
func (l Label) Class() Class {
	if l.listVar {
		return ClassListVar
	}
	switch n := len(l.atoms); {
	case n == 0:
		return ClassEmpty
	case n >= 2 && n <= MaxListLength:
		return ClassList2 + Class(n-2)
	case n > MaxListLength:
		// Unreachable through New; classify conservatively.
		return ClassListVar
	}
	switch a := l.atoms[0].(type) {
	case Variable:
		return ClassVar
	case Integer, Neg:
		return ClassInt
	case String:
		return ClassString
	case BinOp:
		if a.Op == OpConcat {
			return ClassString
		}
		return ClassInt
	}
	return ClassListVar
}

// Copy returns a deep copy of the label. Copies share no structure with the
// original: every atom, including nested expression atoms, is cloned.
func (l Label) Copy() Label {
	if l.atoms == nil {
		return Label{mark: l.mark, listVar: l.listVar}
	}
	atoms := make([]Atom, len(l.atoms))
	for i, a := range l.atoms {
		atoms[i] = a.Copy()
	}
	return Label{mark: l.mark, atoms: atoms, listVar: l.listVar}
}

// Equal reports structural equality of two labels: same mark, same list
// variable flag, and pairwise-equal atoms.
func (l Label) Equal(o Label) bool {
	if l.mark != o.mark || l.listVar != o.listVar || len(l.atoms) != len(o.atoms) {
		return false
	}
	for i := range l.atoms {
		if !equalAtoms(l.atoms[i], o.atoms[i]) {
			return false
		}
	}
	return true
}

// String renders the label's list in dump syntax: atoms separated by " : ",
// or "empty" for a blank list. The mark is not included; dump writers emit
// it separately as a " # <mark>" suffix.
func (l Label) String() string {
	if len(l.atoms) == 0 {
		return "empty"
	}
	parts := make([]string, len(l.atoms))
	for i, a := range l.atoms {
		parts[i] = a.String()
	}
	return strings.Join(parts, " : ")
}

func equalAtoms(a, b Atom) bool {
	switch x := a.(type) {
	case Variable:
		y, ok := b.(Variable)
		return ok && x == y
	case Integer:
		y, ok := b.(Integer)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Neg:
		y, ok := b.(Neg)
		return ok && equalAtoms(x.Expr, y.Expr)
	case BinOp:
		y, ok := b.(BinOp)
		return ok && x.Op == y.Op && equalAtoms(x.Left, y.Left) && equalAtoms(x.Right, y.Right)
	}
	return false
}

// Atom is one element of a label list. The concrete kinds form a closed set:
// variables, integer and string constants, and the unevaluated expression
// forms the rule engine attaches to rule labels.
type Atom interface {
	// Copy returns a structurally independent clone of the atom.
	Copy() Atom
	// String renders the atom in dump syntax.
	String() string

	isAtom()
}

// Variable is a named, untyped rule variable.
type Variable string

func (v Variable) isAtom()        {}
func (v Variable) Copy() Atom     { return v }
func (v Variable) String() string { return string(v) }

// Integer is an integer constant.
type Integer int

func (i Integer) isAtom()        {}
func (i Integer) Copy() Atom     { return i }
func (i Integer) String() string { return strconv.Itoa(int(i)) }

// String is a string constant.
type String string

func (s String) isAtom()        {}
func (s String) Copy() Atom     { return s }
func (s String) String() string { return strconv.Quote(string(s)) }

// Neg is the unary negation of an integer-valued expression.
type Neg struct {
	Expr Atom
}

func (n Neg) isAtom() {}

func (n Neg) Copy() Atom { return Neg{Expr: n.Expr.Copy()} }

func (n Neg) String() string { return "- " + n.Expr.String() }

// Op identifies a binary operator in an unevaluated expression atom.
type Op uint8

// Binary operators. The arithmetic operators produce integers; OpConcat
// produces a string.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpConcat
)

var opSymbols = [...]string{"+", "-", "*", "/", "."}

// BinOp is an unevaluated binary expression over two atoms.
type BinOp struct {
	Op          Op
	Left, Right Atom
}

func (b BinOp) isAtom() {}

func (b BinOp) Copy() Atom {
	return BinOp{Op: b.Op, Left: b.Left.Copy(), Right: b.Right.Copy()}
}

func (b BinOp) String() string {
	sym := "?"
	if int(b.Op) < len(opSymbols) {
		sym = opSymbols[b.Op]
	}
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), sym, b.Right.String())
}

package hostgraph

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/graphmorph/hostgraph/pkg/config"
	"github.com/graphmorph/hostgraph/pkg/errors"
	"github.com/graphmorph/hostgraph/pkg/label"
)

// Grammar for the textual host-graph format. The grammar mirrors what Dump
// emits, so Dump output always parses back. Parsing builds a fresh graph:
// entity ids are reassigned in listed order and arena holes in the source
// graph are not reproduced.

type dumpFile struct {
	Nodes []dumpNode `parser:"'[' @@*"`
	Edges []dumpEdge `parser:"'|' @@* ']'"`
}

type dumpNode struct {
	ID    string    `parser:"'(' @Ident"`
	Root  bool      `parser:"@('(' 'R' ')')?"`
	Label dumpLabel `parser:"',' @@ ')'"`
}

type dumpEdge struct {
	ID     string    `parser:"'(' @Ident"`
	Bidi   bool      `parser:"@('(' 'B' ')')?"`
	Source string    `parser:"',' @Ident"`
	Target string    `parser:"',' @Ident"`
	Label  dumpLabel `parser:"',' @@ ')'"`
}

type dumpLabel struct {
	Empty bool       `parser:"( @'empty'"`
	Atoms []dumpAtom `parser:"  | @@ (':' @@)* )"`
	Mark  *string    `parser:"('#' @Ident)?"`
}

type dumpAtom struct {
	Str  *string   `parser:"  @String"`
	Neg  *dumpAtom `parser:"| '-' @@"`
	Int  *int      `parser:"| @Int"`
	Expr *dumpExpr `parser:"| '(' @@ ')'"`
	Var  *string   `parser:"| @Ident"`
}

type dumpExpr struct {
	Left  dumpAtom `parser:"@@"`
	Op    string   `parser:"@('+' | '-' | '*' | '/' | '.')"`
	Right dumpAtom `parser:"@@"`
}

var dumpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[\[\]()|,#:*+/.-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var dumpParser = participle.MustBuild[dumpFile](
	participle.Lexer(dumpLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseDump parses a textual host graph into a fresh graph with default
// capacities.
func ParseDump(src string) (*Graph, error) {
	return ParseDumpWithConfig(config.Default(), src)
}

// ParseDumpWithConfig parses a textual host graph into a fresh graph sized
// by cfg. Node ids printed in the source ("n0", "n3", ...) are treated as
// names: each listed node receives the next free slot, and edge endpoints
// resolve through the name. Unknown endpoint names, duplicate node names,
// and malformed labels are PARSE_ERROR.
func ParseDumpWithConfig(cfg config.Config, src string) (*Graph, error) {
	f, err := dumpParser.ParseString("", src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed host graph")
	}

	g := NewWithConfig(cfg)
	ids := make(map[string]int, len(f.Nodes))
	for _, n := range f.Nodes {
		if _, dup := ids[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeParse, "duplicate node %q", n.ID)
		}
		l, err := n.Label.build()
		if err != nil {
			return nil, err
		}
		ids[n.ID] = g.AddNode(l, n.Root)
	}
	for _, e := range f.Edges {
		src, ok := ids[e.Source]
		if !ok {
			return nil, errors.New(errors.ErrCodeParse, "edge %q references unknown node %q", e.ID, e.Source)
		}
		tgt, ok := ids[e.Target]
		if !ok {
			return nil, errors.New(errors.ErrCodeParse, "edge %q references unknown node %q", e.ID, e.Target)
		}
		l, err := e.Label.build()
		if err != nil {
			return nil, err
		}
		if _, err := g.AddEdge(l, e.Bidi, src, tgt); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "edge %q", e.ID)
		}
	}
	return g, nil
}

func (d dumpLabel) build() (label.Label, error) {
	mark := label.MarkNone
	if d.Mark != nil {
		m, err := label.ParseMark(*d.Mark)
		if err != nil {
			return label.Label{}, err
		}
		mark = m
	}
	if d.Empty {
		return label.New(mark)
	}
	atoms := make([]label.Atom, len(d.Atoms))
	for i, a := range d.Atoms {
		atom, err := a.atom()
		if err != nil {
			return label.Label{}, err
		}
		atoms[i] = atom
	}
	l, err := label.New(mark, atoms...)
	if err != nil {
		return label.Label{}, errors.Wrap(errors.ErrCodeParse, err, "invalid label")
	}
	return l, nil
}

func (d dumpAtom) atom() (label.Atom, error) {
	switch {
	case d.Str != nil:
		s, err := strconv.Unquote(*d.Str)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid string atom %s", *d.Str)
		}
		return label.String(s), nil
	case d.Neg != nil:
		inner, err := d.Neg.atom()
		if err != nil {
			return nil, err
		}
		return label.Neg{Expr: inner}, nil
	case d.Int != nil:
		return label.Integer(*d.Int), nil
	case d.Expr != nil:
		return d.Expr.atom()
	case d.Var != nil:
		return label.Variable(*d.Var), nil
	}
	return nil, errors.New(errors.ErrCodeParse, "empty atom")
}

var dumpOps = map[string]label.Op{
	"+": label.OpAdd,
	"-": label.OpSub,
	"*": label.OpMul,
	"/": label.OpDiv,
	".": label.OpConcat,
}

func (d dumpExpr) atom() (label.Atom, error) {
	op, ok := dumpOps[d.Op]
	if !ok {
		return nil, errors.New(errors.ErrCodeParse, "unknown operator %q", d.Op)
	}
	left, err := d.Left.atom()
	if err != nil {
		return nil, err
	}
	right, err := d.Right.atom()
	if err != nil {
		return nil, err
	}
	return label.BinOp{Op: op, Left: left, Right: right}, nil
}

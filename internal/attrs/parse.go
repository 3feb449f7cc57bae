package attrs

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/fatih/structtag"

	"github.com/ecordell/pipelinegen/internal/diagnostic"
	"github.com/ecordell/pipelinegen/pipeline"
)

// ParseDirective parses the text following the derive directive. An empty
// text yields the default Set; otherwise it must be a parenthesized list.
// pos is the position of text[0] in fset.
func ParseDirective(fset *token.FileSet, pos token.Pos, text string) (Set, error) {
	p, err := newParser(fset, text, func(off int) token.Pos { return pos + token.Pos(off) })
	if err != nil {
		return Set{}, err
	}

	if p.atEnd() {
		return Set{}, nil
	}
	if p.tok != token.LPAREN {
		return Set{}, p.errorf("expected '(' after %s, found %s", Directive, p.describe())
	}
	p.next()

	pairs, err := p.parseList(token.RPAREN)
	if err != nil {
		return Set{}, err
	}
	p.next()

	if !p.atEnd() {
		return Set{}, p.errorf("unexpected %s after attribute list", p.describe())
	}

	return build(fset, pairs)
}

// ParseTag parses the pipeline key of a raw struct tag, such as
// `pipeline:"skip,timeout=500"`. It reports false if the tag has no pipeline
// key. Diagnostics are anchored at pos, the position of the tag literal.
func ParseTag(fset *token.FileSet, pos token.Pos, tag string) (Set, bool, error) {
	tags, err := structtag.Parse(tag)
	if err != nil {
		return Set{}, false, diagnostic.Errorf(fset, pos, "invalid struct tag: %v", err)
	}
	t, err := tags.Get(TagKey)
	if err != nil {
		return Set{}, false, nil
	}

	text := strings.Join(append([]string{t.Name}, t.Options...), ",")
	p, err := newParser(fset, text, func(int) token.Pos { return pos })
	if err != nil {
		return Set{}, true, err
	}

	pairs, err := p.parseList(token.EOF)
	if err != nil {
		return Set{}, true, err
	}

	set, err := build(fset, pairs)
	return set, true, err
}

// build interprets the recognized keys of pairs.
func build(fset *token.FileSet, pairs []Pair) (Set, error) {
	var set Set
	for _, pair := range pairs {
		switch pair.Key {
		case KeySkip:
			if pair.Value == nil {
				set.Skip = true
				continue
			}
			ident, ok := pair.Value.(*ast.Ident)
			if !ok || (ident.Name != "true" && ident.Name != "false") {
				return Set{}, diagnostic.Errorf(fset, pair.ValuePos, "expected boolean literal for '%s'", KeySkip)
			}
			set.Skip = ident.Name == "true"

		case KeyTimeout:
			if pair.Value == nil {
				return Set{}, diagnostic.Errorf(fset, pair.Pos, "'%s' attribute requires an integer value, e.g. timeout = 1000", KeyTimeout)
			}
			lit, ok := pair.Value.(*ast.BasicLit)
			if !ok || lit.Kind != token.INT {
				return Set{}, diagnostic.Errorf(fset, pair.ValuePos, "expected integer literal for '%s'", KeyTimeout)
			}
			ms, err := strconv.ParseUint(lit.Value, 0, 64)
			if err != nil {
				return Set{}, diagnostic.Errorf(fset, pair.ValuePos, "invalid integer literal for '%s': %s", KeyTimeout, lit.Value)
			}
			set.Timeout = pipeline.Some(ms)

		default:
			set.Others = append(set.Others, pair)
		}
	}
	return set, nil
}

type item struct {
	tok token.Token
	lit string
	off int
}

func (it item) end() int {
	if it.lit != "" {
		return it.off + len(it.lit)
	}
	return it.off + len(it.tok.String())
}

// listParser is a recursive-descent parser over the tokens of an attribute list.
type listParser struct {
	fset  *token.FileSet
	src   string
	posAt func(off int) token.Pos

	items []item
	idx   int

	// current token
	tok token.Token
	lit string
	off int
}

func newParser(fset *token.FileSet, src string, posAt func(off int) token.Pos) (*listParser, error) {
	p := &listParser{fset: fset, src: src, posAt: posAt}

	file := token.NewFileSet().AddFile("", -1, len(src))
	var scanErr error
	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		if scanErr == nil {
			scanErr = diagnostic.Errorf(fset, posAt(pos.Offset), "invalid attribute syntax: %s", msg)
		}
	}, 0)

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF || (tok == token.SEMICOLON && lit == "\n") {
			p.items = append(p.items, item{tok: token.EOF, off: len(src)})
			break
		}
		p.items = append(p.items, item{tok: tok, lit: lit, off: file.Offset(pos)})
	}
	if scanErr != nil {
		return nil, scanErr
	}

	p.idx = -1
	p.next()
	return p, nil
}

func (p *listParser) next() {
	if p.idx < len(p.items)-1 {
		p.idx++
	}
	it := p.items[p.idx]
	p.tok, p.lit, p.off = it.tok, it.lit, it.off
}

func (p *listParser) atEnd() bool { return p.tok == token.EOF }

func (p *listParser) describe() string {
	switch {
	case p.tok == token.EOF:
		return "end of attributes"
	case p.lit != "":
		return "'" + p.lit + "'"
	default:
		return "'" + p.tok.String() + "'"
	}
}

func (p *listParser) errorf(format string, args ...any) error {
	return diagnostic.Errorf(p.fset, p.posAt(p.off), format, args...)
}

// parseList parses pairs separated by commas up to, but not past, closing.
func (p *listParser) parseList(closing token.Token) ([]Pair, error) {
	var pairs []Pair
	for p.tok != closing {
		if p.atEnd() {
			return nil, p.errorf("missing ')' to close attribute list")
		}

		pair, err := p.parsePair(closing)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)

		switch p.tok {
		case token.COMMA:
			p.next()
		case closing:
		default:
			if closing == token.EOF {
				return nil, p.errorf("expected ',' after attribute '%s', found %s", pair.Key, p.describe())
			}
			return nil, p.errorf("expected ',' or ')' after attribute '%s', found %s", pair.Key, p.describe())
		}
	}
	return pairs, nil
}

// parsePair parses `key` or `key = value`.
func (p *listParser) parsePair(closing token.Token) (Pair, error) {
	if p.tok != token.IDENT {
		return Pair{}, p.errorf("expected attribute name, found %s", p.describe())
	}
	pair := Pair{Key: p.lit, Pos: p.posAt(p.off)}
	p.next()

	if p.tok != token.ASSIGN {
		return pair, nil
	}
	assignOff := p.off
	p.next()

	start := p.idx
	depth := 0
	for {
		if p.atEnd() {
			if depth > 0 {
				return Pair{}, p.errorf("unbalanced brackets in value of '%s'", pair.Key)
			}
			break
		}
		if depth == 0 && (p.tok == token.COMMA || p.tok == closing) {
			break
		}
		switch p.tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
			if depth < 0 {
				return Pair{}, p.errorf("unbalanced brackets in value of '%s'", pair.Key)
			}
		}
		p.next()
	}

	if p.idx == start {
		return Pair{}, diagnostic.Errorf(p.fset, p.posAt(assignOff), "expected value after '=' for '%s'", pair.Key)
	}

	first, last := p.items[start], p.items[p.idx-1]
	raw := p.src[first.off:last.end()]
	expr, err := parser.ParseExpr(raw)
	if err != nil {
		return Pair{}, diagnostic.Errorf(p.fset, p.posAt(first.off), "invalid value for '%s': %s", pair.Key, raw)
	}

	pair.Value = expr
	pair.Raw = raw
	pair.ValuePos = p.posAt(first.off)
	return pair, nil
}

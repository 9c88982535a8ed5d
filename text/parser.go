package text

import (
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/tundralabs/plankton/wire"
)

// A Parser reads tton source and drives a wire.Visitor with it, the text
// syntax's equivalent of wire.Decoder. Because it targets the same
// Visitor contract the binary decoder does, object.Builder reconstructs
// values from tton without any changes.
type Parser struct {
	lex  *Lexer
	tok  Token
	refs map[string]int
}

// NewParser returns a Parser over src.
func NewParser(src string) (*Parser, error) {
	p := &Parser{lex: NewLexer(src), refs: make(map[string]int)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) expect(kind TokenKind, reason string) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, SyntaxError{Token: p.tok.Text, Offset: p.tok.Offset, Reason: reason}
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// ParseValue parses exactly one value and drives visitor with it.
// Trailing input is permitted, matching the binary decoder's contract.
func (p *Parser) ParseValue(visitor wire.Visitor) error {
	switch p.tok.Kind {
	case TokInt:
		n := new(big.Int)
		if _, ok := n.SetString(strings.ReplaceAll(p.tok.Text, "_", ""), 10); !ok {
			return SyntaxError{Token: p.tok.Text, Offset: p.tok.Offset, Reason: "malformed integer"}
		}
		if err := p.advance(); err != nil {
			return err
		}
		return visitor.OnInt(n)
	case TokFloat:
		f, err := strconv.ParseFloat(p.tok.Text, 64)
		if err != nil {
			return SyntaxError{Token: p.tok.Text, Offset: p.tok.Offset, Reason: "malformed float"}
		}
		if err := p.advance(); err != nil {
			return err
		}
		return visitor.OnFloat(f)
	case TokNull:
		if err := p.advance(); err != nil {
			return err
		}
		return visitor.OnSingleton(nil)
	case TokTrue:
		if err := p.advance(); err != nil {
			return err
		}
		return visitor.OnSingleton(true)
	case TokFalse:
		if err := p.advance(); err != nil {
			return err
		}
		return visitor.OnSingleton(false)
	case TokString:
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return err
		}
		return visitor.OnString([]byte(text), "")
	case TokBlobHex:
		data, err := hex.DecodeString(p.tok.Text)
		if err != nil {
			return SyntaxError{Token: p.tok.Text, Offset: p.tok.Offset, Reason: "malformed hex blob"}
		}
		if err := p.advance(); err != nil {
			return err
		}
		return visitor.OnBlob(data)
	case TokBlobBase64:
		data, err := base64.StdEncoding.DecodeString(p.tok.Text)
		if err != nil {
			return SyntaxError{Token: p.tok.Text, Offset: p.tok.Offset, Reason: "malformed base64 blob"}
		}
		if err := p.advance(); err != nil {
			return err
		}
		return visitor.OnBlob(data)
	case TokID:
		return p.parseID(visitor)
	case TokLBracket:
		return p.parseArray(visitor)
	case TokLBrace:
		return p.parseMap(visitor)
	case TokAt:
		return p.parseSeed(visitor)
	case TokStructTag:
		return p.parseStruct(visitor)
	case TokDollar:
		return p.parseReference(visitor)
	default:
		return SyntaxError{Token: p.tok.Text, Offset: p.tok.Offset, Reason: "expected a value"}
	}
}

func (p *Parser) parseID(visitor wire.Visitor) error {
	hexText := p.tok.Text
	if len(hexText)%2 == 1 {
		hexText = "0" + hexText
	}
	data, err := hex.DecodeString(hexText)
	if err != nil || len(data) > 16 {
		return SyntaxError{Token: p.tok.Text, Offset: p.tok.Offset, Reason: "malformed id"}
	}
	if err := p.advance(); err != nil {
		return err
	}
	return visitor.OnID(wire.PadID(data))
}

func (p *Parser) parseArray(visitor wire.Visitor) error {
	if err := p.advance(); err != nil {
		return err
	}
	return p.parseSequence(visitor, TokRBracket, func() error {
		return p.ParseValue(visitor)
	}, func(n int) error { return visitor.OnBeginArray(n) })
}

func (p *Parser) parseMap(visitor wire.Visitor) error {
	if err := p.advance(); err != nil {
		return err
	}
	return p.parseSequence(visitor, TokRBrace, func() error {
		if err := p.ParseValue(visitor); err != nil {
			return err
		}
		if _, err := p.expect(TokColon, "expected ':' after map key"); err != nil {
			return err
		}
		return p.ParseValue(visitor)
	}, func(n int) error { return visitor.OnBeginMap(n) })
}

// parseSequence parses a comma-separated series of elements up to close,
// first counting them with a lookahead scan (scanGroupCount) so begin
// can report a length before any element is parsed. Trailing commas are
// not permitted: they would make the lookahead count and the parse
// loop's element count diverge.
func (p *Parser) parseSequence(visitor wire.Visitor, close TokenKind, parseOne func() error, begin func(int) error) error {
	n, err := scanGroupCount(p.lex.src, p.lex.pos, p.tok, close)
	if err != nil {
		return err
	}
	if err := begin(n); err != nil {
		return err
	}
	first := true
	for p.tok.Kind != close {
		if !first {
			if _, err := p.expect(TokComma, "expected ','"); err != nil {
				return err
			}
		}
		first = false
		if err := parseOne(); err != nil {
			return err
		}
	}
	_, err = p.expect(close, "expected closing delimiter")
	return err
}

// scanGroupCount scans, on a private clone of the lexer positioned at
// (src, pos) with lookahead token tok, how many top-level
// comma-separated groups precede close. It disturbs nothing in the real
// parser; this lookahead is what lets the text syntax, which has no
// length prefixes of its own, still drive a Visitor contract whose
// OnBeginArray/OnBeginMap/OnBeginSeed calls need a count up front. Map
// entries ("k: v") are one comma-separated group, so they count as a
// single element; the colon inside never changes bracket depth.
func scanGroupCount(src []rune, pos int, tok Token, close TokenKind) (int, error) {
	clone := &Lexer{src: src, pos: pos}
	depth := 0
	commas := 0
	sawAny := false
	for tok.Kind != TokEOF {
		if depth == 0 && tok.Kind == close {
			break
		}
		switch tok.Kind {
		case TokLBracket, TokLBrace, TokLParen:
			depth++
			sawAny = true
		case TokRBracket, TokRBrace, TokRParen:
			depth--
		case TokComma:
			if depth == 0 {
				commas++
			} else {
				sawAny = true
			}
		default:
			sawAny = true
		}
		next, err := clone.Next()
		if err != nil {
			return 0, err
		}
		tok = next
	}
	if tok.Kind != close {
		return 0, SyntaxError{Offset: tok.Offset, Reason: "unexpected end of input"}
	}
	if !sawAny {
		return 0, nil
	}
	return commas + 1, nil
}

// skipValue advances clone past exactly one syntactic value starting at
// tok, performing no semantic work and calling no visitor, and returns
// the token immediately following it. parseSeed uses this to find the
// field-list's opening '(' past a header of unknown shape, without
// duplicating ParseValue's full grammar as a counting pass.
func skipValue(clone *Lexer, tok Token) (Token, error) {
	switch tok.Kind {
	case TokInt, TokFloat, TokNull, TokTrue, TokFalse, TokString, TokBlobHex, TokBlobBase64, TokID:
		return clone.Next()

	case TokLBracket:
		tok, err := clone.Next()
		if err != nil {
			return Token{}, err
		}
		for tok.Kind != TokRBracket {
			if tok, err = skipValue(clone, tok); err != nil {
				return Token{}, err
			}
			if tok.Kind == TokComma {
				if tok, err = clone.Next(); err != nil {
					return Token{}, err
				}
			}
		}
		return clone.Next()

	case TokLBrace:
		tok, err := clone.Next()
		if err != nil {
			return Token{}, err
		}
		for tok.Kind != TokRBrace {
			if tok, err = skipValue(clone, tok); err != nil { // key
				return Token{}, err
			}
			if tok.Kind != TokColon {
				return Token{}, SyntaxError{Token: tok.Text, Offset: tok.Offset, Reason: "expected ':' after map key"}
			}
			if tok, err = clone.Next(); err != nil {
				return Token{}, err
			}
			if tok, err = skipValue(clone, tok); err != nil { // value
				return Token{}, err
			}
			if tok.Kind == TokComma {
				if tok, err = clone.Next(); err != nil {
					return Token{}, err
				}
			}
		}
		return clone.Next()

	case TokAt:
		tok, err := clone.Next()
		if err != nil {
			return Token{}, err
		}
		if tok, err = skipValue(clone, tok); err != nil { // header
			return Token{}, err
		}
		if tok.Kind != TokLParen {
			return Token{}, SyntaxError{Token: tok.Text, Offset: tok.Offset, Reason: "expected '(' after seed header"}
		}
		if tok, err = clone.Next(); err != nil {
			return Token{}, err
		}
		for tok.Kind != TokRParen {
			if tok, err = skipValue(clone, tok); err != nil { // field key
				return Token{}, err
			}
			if tok.Kind != TokColon {
				return Token{}, SyntaxError{Token: tok.Text, Offset: tok.Offset, Reason: "expected ':' after seed field key"}
			}
			if tok, err = clone.Next(); err != nil {
				return Token{}, err
			}
			if tok, err = skipValue(clone, tok); err != nil { // field value
				return Token{}, err
			}
			if tok.Kind == TokComma {
				if tok, err = clone.Next(); err != nil {
					return Token{}, err
				}
			}
		}
		return clone.Next()

	case TokStructTag:
		tok, err := clone.Next()
		if err != nil {
			return Token{}, err
		}
		if tok.Kind != TokLBracket {
			return Token{}, SyntaxError{Token: tok.Text, Offset: tok.Offset, Reason: "expected '[' after %s"}
		}
		if tok, err = clone.Next(); err != nil {
			return Token{}, err
		}
		for tok.Kind != TokRBracket {
			if tok.Kind != TokInt {
				return Token{}, SyntaxError{Token: tok.Text, Offset: tok.Offset, Reason: "expected a tag number"}
			}
			if tok, err = clone.Next(); err != nil {
				return Token{}, err
			}
			if tok.Kind == TokComma {
				if tok, err = clone.Next(); err != nil {
					return Token{}, err
				}
			}
		}
		if tok, err = clone.Next(); err != nil { // consume ']'
			return Token{}, err
		}
		if tok.Kind != TokLParen {
			return Token{}, SyntaxError{Token: tok.Text, Offset: tok.Offset, Reason: "expected '(' after struct tags"}
		}
		if tok, err = clone.Next(); err != nil {
			return Token{}, err
		}
		for tok.Kind != TokRParen {
			if tok, err = skipValue(clone, tok); err != nil {
				return Token{}, err
			}
			if tok.Kind == TokComma {
				if tok, err = clone.Next(); err != nil {
					return Token{}, err
				}
			}
		}
		return clone.Next()

	case TokDollar:
		// As in ParseValue/parseReference, tok itself (TokDollar) already
		// carries the reference name in its Text; only a trailing ':value'
		// (the definition form) extends past it.
		tok, err := clone.Next()
		if err != nil {
			return Token{}, err
		}
		if tok.Kind != TokColon {
			return tok, nil
		}
		if tok, err = clone.Next(); err != nil {
			return Token{}, err
		}
		return skipValue(clone, tok)

	default:
		return Token{}, SyntaxError{Token: tok.Text, Offset: tok.Offset, Reason: "expected a value"}
	}
}

func (p *Parser) parseSeed(visitor wire.Visitor) error {
	if err := p.advance(); err != nil { // consume '@'
		return err
	}
	clone := &Lexer{src: p.lex.src, pos: p.lex.pos}
	afterHeader, err := skipValue(clone, p.tok)
	if err != nil {
		return err
	}
	if afterHeader.Kind != TokLParen {
		return SyntaxError{Token: afterHeader.Text, Offset: afterHeader.Offset, Reason: "expected '(' after seed header"}
	}
	firstFieldTok, err := clone.Next()
	if err != nil {
		return err
	}
	n, err := scanGroupCount(clone.src, clone.pos, firstFieldTok, TokRParen)
	if err != nil {
		return err
	}

	if err := visitor.OnBeginSeed(n); err != nil {
		return err
	}
	if err := p.ParseValue(visitor); err != nil { // header
		return err
	}
	if _, err := p.expect(TokLParen, "expected '(' after seed header"); err != nil {
		return err
	}
	first := true
	for p.tok.Kind != TokRParen {
		if !first {
			if _, err := p.expect(TokComma, "expected ','"); err != nil {
				return err
			}
		}
		first = false
		if err := p.ParseValue(visitor); err != nil { // field key
			return err
		}
		if _, err := p.expect(TokColon, "expected ':' after seed field key"); err != nil {
			return err
		}
		if err := p.ParseValue(visitor); err != nil { // field value
			return err
		}
	}
	_, err = p.expect(TokRParen, "expected ')'")
	return err
}

func (p *Parser) parseStruct(visitor wire.Visitor) error {
	if err := p.advance(); err != nil { // consume struct-tag marker
		return err
	}
	if _, err := p.expect(TokLBracket, "expected '[' after %s"); err != nil {
		return err
	}
	var tags []uint32
	first := true
	for p.tok.Kind != TokRBracket {
		if !first {
			if _, err := p.expect(TokComma, "expected ','"); err != nil {
				return err
			}
		}
		first = false
		tok, err := p.expect(TokInt, "expected a tag number")
		if err != nil {
			return err
		}
		n, convErr := strconv.ParseUint(tok.Text, 10, 32)
		if convErr != nil {
			return SyntaxError{Token: tok.Text, Offset: tok.Offset, Reason: "tag out of range"}
		}
		tags = append(tags, uint32(n))
	}
	if _, err := p.expect(TokRBracket, "expected ']'"); err != nil {
		return err
	}
	if err := visitor.OnBeginStruct(tags); err != nil {
		return err
	}
	if _, err := p.expect(TokLParen, "expected '(' after struct tags"); err != nil {
		return err
	}
	first = true
	for p.tok.Kind != TokRParen {
		if !first {
			if _, err := p.expect(TokComma, "expected ','"); err != nil {
				return err
			}
		}
		first = false
		if err := p.ParseValue(visitor); err != nil {
			return err
		}
	}
	_, err := p.expect(TokRParen, "expected ')'")
	return err
}

func (p *Parser) parseReference(visitor wire.Visitor) error {
	// The lexer folds '$' and the name that follows it into a single
	// TokDollar token (Text holds the name); there is no separate name
	// token to expect here.
	nameTok := p.tok
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.Kind == TokColon {
		if err := p.advance(); err != nil {
			return err
		}
		slot := len(p.refs)
		p.refs[nameTok.Text] = slot
		if err := visitor.OnAddRef(slot); err != nil {
			return err
		}
		return p.ParseValue(visitor)
	}
	slot, ok := p.refs[nameTok.Text]
	if !ok {
		return SyntaxError{Token: nameTok.Text, Offset: nameTok.Offset, Reason: "reference to undefined name"}
	}
	return visitor.OnGetRef(slot)
}

package plankton

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tundralabs/plankton/object"
	"github.com/tundralabs/plankton/text"
	"github.com/tundralabs/plankton/wire"
)

const debugCodec = false

func debugf(msg string, args ...any) {
	if !debugCodec {
		return
	}
	fmt.Printf("plankton: "+msg+"\n", args...)
}

// EncodeBinary renders v as a single bton value. v is walked with a
// [object.TreeTraverser] first, which is cheap but rejects any value whose
// graph shares a composite by identity more than once; when that happens
// EncodeBinary transparently retries with a [object.GraphTraverser], which
// spends ADD_REF/GET_REF instructions to describe the sharing (and DAG
// cycles) instead of failing. Callers never see
// object.SharedStructureDetected. Each attempt gets its own Writer: the
// tree attempt may have emitted a prefix of bytes before it discovered the
// sharing deep in the value, and those bytes must not leak into the
// graph-encoded result.
func EncodeBinary(v any, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	var w wire.Writer
	if err := walk(v, cfg, func() wire.Visitor {
		w = wire.Writer{}
		return wire.NewEncoder(&w)
	}); err != nil {
		return nil, InvalidValueError{Value: v, Reason: err}
	}
	return w.Out, nil
}

// DecodeBinary reads exactly one bton value from input and returns the
// application value the configured value.DataFactory built for it.
// Trailing bytes after that value are permitted and ignored.
func DecodeBinary(input []byte, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	b := object.NewBuilder(cfg.factory)
	if err := wire.Decode(bytes.NewReader(input), b); err != nil {
		return nil, DecodeError{Syntax: "binary", Reason: err}
	}
	return b.Result(), nil
}

// EncodeText renders v as a single tton value. See EncodeBinary for why
// the graph-traversal retry needs a fresh Encoder rather than reusing the
// one the failed tree attempt partially wrote into.
func EncodeText(v any, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	var enc *text.Encoder
	if err := walk(v, cfg, func() wire.Visitor {
		enc = text.NewEncoder()
		return enc
	}); err != nil {
		return "", InvalidValueError{Value: v, Reason: err}
	}
	return enc.String(), nil
}

// DecodeText parses exactly one tton value out of input. As with
// DecodeBinary, any input after that value is neither parsed nor checked.
func DecodeText(input string, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	p, err := text.NewParser(input)
	if err != nil {
		return nil, DecodeError{Syntax: "text", Reason: err}
	}
	b := object.NewBuilder(cfg.factory)
	if err := p.ParseValue(b); err != nil {
		return nil, DecodeError{Syntax: "text", Reason: err}
	}
	if !b.HasResult() {
		return nil, DecodeError{Syntax: "text", Reason: errors.New("no value parsed")}
	}
	return b.Result(), nil
}

// walk drives a fresh visitor (obtained from newVisitor) from v, falling
// back from a TreeTraverser to a GraphTraverser the moment the tree
// traversal finds a composite reachable two different ways. newVisitor is
// called once per attempt so a partially-written failed attempt never
// contaminates the retry's output.
func walk(v any, cfg *config, newVisitor func() wire.Visitor) error {
	tree := object.NewTreeTraverser(cfg.classifier)
	err := tree.Walk(v, newVisitor())
	var shared object.SharedStructureDetected
	if !errors.As(err, &shared) {
		return err
	}
	debugf("shared structure at %s, retrying with graph traverser", shared.Path)
	graph := object.NewGraphTraverser(cfg.classifier)
	return graph.Walk(v, newVisitor())
}

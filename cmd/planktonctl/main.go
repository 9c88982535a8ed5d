// Command planktonctl inspects and converts plankton values between their
// binary (bton) and text (tton) syntaxes.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/kr/pretty"

	"github.com/tundralabs/plankton"
	"github.com/tundralabs/plankton/schema"
	"github.com/tundralabs/plankton/value"
)

var globalArgs struct {
	Input    string `flag:"in,Input file ('-' or empty for stdin)"`
	Register string `flag:"register,Comma-separated headerText=name pairs for seed header annotation"`
}

func registry() *schema.Registry {
	reg := schema.NewRegistry()
	if globalArgs.Register == "" {
		return reg
	}
	for _, pair := range strings.Split(globalArgs.Register, ",") {
		header, name, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		reg.Register(header, name)
	}
	return reg
}

func readInput() ([]byte, error) {
	if globalArgs.Input == "" || globalArgs.Input == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(globalArgs.Input)
}

func main() {
	root := &command.C{
		Name:     "planktonctl",
		Usage:    "command args...",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "encode",
				Usage: "encode",
				Help:  "Read a tton value and write its bton encoding to stdout.",
				Run:   command.Adapt(runEncode),
			},
			{
				Name:  "decode",
				Usage: "decode",
				Help:  "Read a bton value and write its tton encoding to stdout.",
				Run:   command.Adapt(runDecode),
			},
			{
				Name:  "dump",
				Usage: "dump",
				Help:  "Decode a bton or tton value and pretty-print its Go representation.",
				Run:   command.Adapt(runDump),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	env := root.NewEnv(nil).SetContext(context.Background())
	command.RunOrFail(env, os.Args[1:])
}

func runEncode(env *command.Env) error {
	src, err := readInput()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	v, err := plankton.DecodeText(string(src))
	if err != nil {
		return err
	}
	out, err := plankton.EncodeBinary(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runDecode(env *command.Env) error {
	src, err := readInput()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	v, err := plankton.DecodeBinary(src)
	if err != nil {
		return err
	}
	out, err := plankton.EncodeText(v)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runDump(env *command.Env) error {
	src, err := readInput()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	reg := registry()

	v, textErr := plankton.DecodeText(string(src), plankton.WithSchema(reg))
	if textErr != nil {
		var binErr error
		v, binErr = plankton.DecodeBinary(src, plankton.WithSchema(reg))
		if binErr != nil {
			return fmt.Errorf("not valid tton (%v) or bton (%w)", textErr, binErr)
		}
	}
	for _, line := range annotateSeeds(v, reg, map[uintptr]bool{}) {
		fmt.Println(line)
	}
	fmt.Printf("%# v\n", pretty.Formatter(v))
	return nil
}

// annotateSeeds walks v looking for *value.Seed nodes whose header, once
// rendered as tton, matches a name registered with --register. It reports
// one "header X is registered as Y" line per match found; the registry
// never affects decoding itself, only this diagnostic.
func annotateSeeds(v any, reg *schema.Registry, seen map[uintptr]bool) []string {
	switch t := v.(type) {
	case *value.Seed:
		id := reflect.ValueOf(t).Pointer()
		if seen[id] {
			return nil
		}
		seen[id] = true
		var lines []string
		if headerText, err := plankton.EncodeText(t.Header); err == nil {
			if name, ok := reg.Lookup(headerText); ok {
				lines = append(lines, fmt.Sprintf("seed header %s is registered as %s", headerText, name))
			}
		}
		for _, f := range t.Fields {
			lines = append(lines, annotateSeeds(f, reg, seen)...)
		}
		return lines
	case []any:
		if len(t) == 0 {
			return nil
		}
		id := reflect.ValueOf(t).Pointer()
		if seen[id] {
			return nil
		}
		seen[id] = true
		var lines []string
		for _, e := range t {
			lines = append(lines, annotateSeeds(e, reg, seen)...)
		}
		return lines
	case *value.OrderedMap:
		id := reflect.ValueOf(t).Pointer()
		if seen[id] {
			return nil
		}
		seen[id] = true
		var lines []string
		t.Range(func(k, val any) bool {
			lines = append(lines, annotateSeeds(val, reg, seen)...)
			return true
		})
		return lines
	case *value.Struct:
		id := reflect.ValueOf(t).Pointer()
		if seen[id] {
			return nil
		}
		seen[id] = true
		var lines []string
		for _, f := range t.Fields {
			lines = append(lines, annotateSeeds(f, reg, seen)...)
		}
		return lines
	default:
		return nil
	}
}

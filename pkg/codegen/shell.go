package codegen

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/nomagicln/genx/pkg/corpus"
)

// ShellGenerator generates a genx command line that redraws a sample.
type ShellGenerator struct {
	opts Options
}

// NewShellGenerator creates a new shell code generator.
func NewShellGenerator(opts Options) *ShellGenerator {
	return &ShellGenerator{opts: opts.withDefaults()}
}

// Generate produces a commented genx invocation. The recorded value is the
// last one it prints.
func (g *ShellGenerator) Generate(rec corpus.Record) (string, error) {
	words, err := commandWords(rec.Generator)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("# ")
	buf.WriteString(header(rec))
	buf.WriteString("\n")

	buf.WriteString(g.opts.Binary)
	for _, w := range words {
		buf.WriteString(" ")
		buf.WriteString(shellQuote(w))
	}
	g.writeArgs(&buf, rec.Args)
	g.writeFlags(&buf, rec)
	buf.WriteString("\n")

	return buf.String(), nil
}

// writeArgs writes the generator arguments, quoted where needed.
func (g *ShellGenerator) writeArgs(buf *bytes.Buffer, args []string) {
	for _, arg := range args {
		buf.WriteString(" ")
		buf.WriteString(shellQuote(arg))
	}
}

// writeFlags writes the seed and count that reach the recorded draw.
func (g *ShellGenerator) writeFlags(buf *bytes.Buffer, rec corpus.Record) {
	buf.WriteString(" --seed ")
	buf.WriteString(strconv.FormatInt(rec.Seed, 10))
	buf.WriteString(" --count ")
	buf.WriteString(strconv.Itoa(rec.Index + 1))
}

// shellQuote single-quotes s unless it only holds characters the shell
// passes through unchanged.
func shellQuote(s string) string {
	if s != "" && strings.Trim(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_.,/:=+") == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

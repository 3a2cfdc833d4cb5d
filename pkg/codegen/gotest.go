package codegen

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nomagicln/genx/pkg/corpus"
)

const modulePath = "github.com/nomagicln/genx"

// charFuncs and strFuncs map CLI class names to generator constructors.
var (
	charFuncs = map[string]string{
		"num":      "NumChar",
		"upper":    "AlphaUpperChar",
		"lower":    "AlphaLowerChar",
		"alpha":    "AlphaChar",
		"alphanum": "AlphaNumChar",
	}
	strFuncs = map[string]string{
		"alpha":    "AlphaStr",
		"num":      "NumStr",
		"alphanum": "AlphaNumStr",
	}
)

// GoGenerator generates a Go test that redraws a sample with gopter.
type GoGenerator struct {
	opts Options
}

// NewGoGenerator creates a new Go code generator.
func NewGoGenerator(opts Options) *GoGenerator {
	return &GoGenerator{opts: opts.withDefaults()}
}

// Generate produces a Go test file for the sample.
func (g *GoGenerator) Generate(rec corpus.Record) (string, error) {
	expr, pkgs, err := generatorExpr(rec)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	buf.WriteString("package ")
	buf.WriteString(g.opts.Package)
	buf.WriteString("\n\n")
	g.writeImports(&buf, append(pkgs, "config", "typed"))

	buf.WriteString("// Replays ")
	buf.WriteString(header(rec))
	buf.WriteString("\n")
	buf.WriteString("func TestReplay_")
	buf.WriteString(rec.ID.String()[:8])
	buf.WriteString("(t *testing.T) {\n")

	fmt.Fprintf(&buf, "\tparams := config.Default().WithSeed(%d).GenParameters()\n", rec.Seed)
	fmt.Fprintf(&buf, "\tvalues, err := typed.From[any](%s).Take(params, %d)\n", expr, rec.Index+1)
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString("\t\tt.Fatal(err)\n")
	buf.WriteString("\t}\n")
	fmt.Fprintf(&buf, "\tt.Logf(\"replayed %%v, recorded %%s\", values[%d], %s)\n", rec.Index, strconv.Quote(rec.Value))
	buf.WriteString("}\n")

	return buf.String(), nil
}

// writeImports writes the import block for the given genx packages.
func (g *GoGenerator) writeImports(buf *bytes.Buffer, pkgs []string) {
	sort.Strings(pkgs)

	buf.WriteString("import (\n")
	buf.WriteString("\t\"testing\"\n\n")
	for _, pkg := range pkgs {
		fmt.Fprintf(buf, "\t%q\n", modulePath+"/pkg/"+pkg)
	}
	buf.WriteString(")\n\n")
}

// generatorExpr returns the Go expression that builds the recorded generator
// and the genx packages it needs.
func generatorExpr(rec corpus.Record) (string, []string, error) {
	words, err := commandWords(rec.Generator)
	if err != nil {
		return "", nil, err
	}

	switch {
	case len(words) == 1 && words[0] == "pick":
		if len(rec.Args) == 0 {
			return "", nil, fmt.Errorf("pick sample %s has no sample size", rec.ID)
		}
		n, err := strconv.Atoi(rec.Args[0])
		if err != nil {
			return "", nil, fmt.Errorf("pick sample %s has an invalid sample size '%s'", rec.ID, rec.Args[0])
		}
		return fmt.Sprintf("pick.MustValues(%d, %s)", n, stringSlice(rec.Args[1:])), []string{"pick"}, nil
	case len(words) == 1 && words[0] == "someof":
		return fmt.Sprintf("pick.SomeOfValues(%s)", stringSlice(rec.Args)), []string{"pick"}, nil
	case len(words) == 1 && words[0] == "uuid":
		return "uuidgen.V4String()", []string{"uuidgen"}, nil
	case len(words) == 2 && words[0] == "char":
		if fn, ok := charFuncs[words[1]]; ok {
			return "chars." + fn + "()", []string{"chars"}, nil
		}
	case len(words) == 2 && words[0] == "str":
		if fn, ok := strFuncs[words[1]]; ok {
			return "chars." + fn + "()", []string{"chars"}, nil
		}
	}
	return "", nil, fmt.Errorf("no Go equivalent for generator '%s'", rec.Generator)
}

// stringSlice renders a []string composite literal.
func stringSlice(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

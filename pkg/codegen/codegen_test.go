package codegen

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nomagicln/genx/pkg/corpus"
)

var testID = uuid.MustParse("0b8e4c4a-1f5e-4b3c-9d2e-7a6b5c4d3e2f")

func testRecord(generator string, args ...string) corpus.Record {
	return corpus.Record{
		ID:        testID,
		Generator: generator,
		Args:      args,
		Seed:      42,
		Index:     2,
		Value:     `["B","D"]`,
	}
}

func TestNewGenerator_ValidFormats(t *testing.T) {
	for _, format := range []OutputFormat{FormatShell, FormatGo} {
		t.Run(string(format), func(t *testing.T) {
			gen, err := NewGenerator(format, Options{})
			if err != nil {
				t.Fatalf("NewGenerator(%s) failed: %v", format, err)
			}
			if gen == nil {
				t.Fatalf("NewGenerator(%s) returned nil generator", format)
			}
		})
	}
}

func TestNewGenerator_InvalidFormat(t *testing.T) {
	gen, err := NewGenerator(OutputFormat("curl"), Options{})

	if err == nil {
		t.Fatal("NewGenerator(curl) should return error")
	}
	if gen != nil {
		t.Fatal("NewGenerator(curl) should return nil generator")
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format string
		valid  bool
	}{
		{"shell", true},
		{"go", true},
		{"python", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := ValidateFormat(tt.format); got != tt.valid {
				t.Fatalf("ValidateFormat(%q) = %v, want %v", tt.format, got, tt.valid)
			}
		})
	}
}

func TestListFormats(t *testing.T) {
	formats := ListFormats()
	if !slices.Equal(formats, []string{"go", "shell"}) {
		t.Fatalf("ListFormats() = %v", formats)
	}
}

func TestShellGenerator(t *testing.T) {
	tests := []struct {
		name string
		rec  corpus.Record
		want string
	}{
		{
			name: "pick",
			rec:  testRecord("pick", "2", "A", "B", "C", "D", "E"),
			want: "genx pick 2 A B C D E --seed 42 --count 3\n",
		},
		{
			name: "class",
			rec:  testRecord("char.alpha"),
			want: "genx char alpha --seed 42 --count 3\n",
		},
		{
			name: "quoted",
			rec:  testRecord("someof", "it's", "two words", ""),
			want: `genx someof 'it'\''s' 'two words' '' --seed 42 --count 3` + "\n",
		},
	}

	gen := NewShellGenerator(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := gen.Generate(tt.rec)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			lines := strings.SplitN(code, "\n", 2)
			if !strings.HasPrefix(lines[0], "# sample "+testID.String()) {
				t.Errorf("missing header, got %q", lines[0])
			}
			if lines[1] != tt.want {
				t.Errorf("command = %q, want %q", lines[1], tt.want)
			}
		})
	}
}

func TestShellGenerator_Binary(t *testing.T) {
	code, err := NewShellGenerator(Options{Binary: "./bin/genx"}).Generate(testRecord("uuid"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(code, "\n./bin/genx uuid --seed 42") {
		t.Errorf("binary not used: %s", code)
	}
}

func TestShellGenerator_NoGenerator(t *testing.T) {
	if _, err := NewShellGenerator(Options{}).Generate(testRecord("")); err == nil {
		t.Fatal("expected error for a record without generator")
	}
}

func TestGoGenerator(t *testing.T) {
	tests := []struct {
		name    string
		rec     corpus.Record
		expr    string
		imports []string
	}{
		{
			name:    "pick",
			rec:     testRecord("pick", "2", "A", "B", "C"),
			expr:    `typed.From[any](pick.MustValues(2, []string{"A", "B", "C"})).Take(params, 3)`,
			imports: []string{"pkg/config", "pkg/pick", "pkg/typed"},
		},
		{
			name:    "someof",
			rec:     testRecord("someof", "x", "y"),
			expr:    `pick.SomeOfValues([]string{"x", "y"})`,
			imports: []string{"pkg/pick"},
		},
		{
			name:    "char",
			rec:     testRecord("char.upper"),
			expr:    "chars.AlphaUpperChar()",
			imports: []string{"pkg/chars"},
		},
		{
			name:    "str",
			rec:     testRecord("str.alphanum"),
			expr:    "chars.AlphaNumStr()",
			imports: []string{"pkg/chars"},
		},
		{
			name:    "uuid",
			rec:     testRecord("uuid"),
			expr:    "uuidgen.V4String()",
			imports: []string{"pkg/uuidgen"},
		},
	}

	gen := NewGoGenerator(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := gen.Generate(tt.rec)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			mustContain := []string{
				"package replay_test\n",
				"func TestReplay_0b8e4c4a(t *testing.T) {",
				"config.Default().WithSeed(42).GenParameters()",
				tt.expr,
				"values[2]",
				`"[\"B\",\"D\"]"`,
			}
			for _, imp := range tt.imports {
				mustContain = append(mustContain, `"github.com/nomagicln/genx/`+imp+`"`)
			}
			for _, s := range mustContain {
				if !strings.Contains(code, s) {
					t.Errorf("generated code missing %q:\n%s", s, code)
				}
			}
		})
	}
}

func TestGoGenerator_Package(t *testing.T) {
	code, err := NewGoGenerator(Options{Package: "props"}).Generate(testRecord("uuid"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.HasPrefix(code, "package props\n") {
		t.Errorf("package clause not used:\n%s", code)
	}
}

func TestGoGenerator_Errors(t *testing.T) {
	tests := []struct {
		name string
		rec  corpus.Record
	}{
		{"missing size", testRecord("pick")},
		{"bad size", testRecord("pick", "two", "A")},
		{"unknown class", testRecord("char.hex")},
		{"unknown generator", testRecord("bytes")},
		{"empty generator", testRecord("")},
	}

	gen := NewGoGenerator(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := gen.Generate(tt.rec); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

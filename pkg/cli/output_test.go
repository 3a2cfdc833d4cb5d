package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nomagicln/genx/pkg/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func testSet() SampleSet {
	return SampleSet{
		Generator: "pick",
		Seed:      42,
		Values:    []any{[]string{"B", "D"}, []string{"A", "C"}},
	}
}

func TestRenderer_SamplesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatTable).Samples(testSet()))

	out := buf.String()
	assert.Contains(t, out, "pick (seed 42)")
	assert.Contains(t, out, `["B","D"]`)
	assert.NotContains(t, out, "\x1b[", "non-terminal output must not be styled")
}

func TestRenderer_SamplesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatJSON).Samples(testSet()))

	var decoded struct {
		Generator string
		Seed      int64
		Values    [][]string
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "pick", decoded.Generator)
	assert.Equal(t, [][]string{{"B", "D"}, {"A", "C"}}, decoded.Values)
}

func TestRenderer_SamplesYAML(t *testing.T) {
	var buf bytes.Buffer
	set := SampleSet{Generator: "uuid", Seed: 1, Values: []any{uuid.MustParse("7d444840-9dc0-4a5e-8d2f-3b1c6f0e9a11")}}
	require.NoError(t, NewRenderer(&buf, FormatYAML).Samples(set))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "uuid", decoded["generator"])
	assert.Equal(t, []any{"7d444840-9dc0-4a5e-8d2f-3b1c6f0e9a11"}, decoded["values"])
}

func TestRenderer_Records(t *testing.T) {
	rec := corpus.Record{
		ID:        uuid.MustParse("7d444840-9dc0-4a5e-8d2f-3b1c6f0e9a11"),
		Generator: "str.alpha",
		Seed:      3,
		Value:     `"abc"`,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatTable).Records([]corpus.Record{rec}))
	assert.Contains(t, buf.String(), "str.alpha")
	assert.Contains(t, buf.String(), "2024-01-02T03:04:05Z")

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatTable).Records(nil))
	assert.Equal(t, "No samples recorded.", strings.TrimSpace(buf.String()))

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatJSON).Records([]corpus.Record{rec}))
	assert.Contains(t, buf.String(), `"generator": "str.alpha"`)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "abc", display("abc"))
	assert.Equal(t, "[1,2]", display([]int{1, 2}))
	assert.Equal(t, "7d444840-9dc0-4a5e-8d2f-3b1c6f0e9a11", display(uuid.MustParse("7d444840-9dc0-4a5e-8d2f-3b1c6f0e9a11")))
}

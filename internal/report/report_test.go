package report

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/eztable/internal/table"
)

const doc = `# Title

| name | qty |
|:-----|----:|
| 全角 | 1 |
| b | 22 |

text

| x |
|:---:|
| y |
`

func TestBuild(t *testing.T) {
	data, err := Build("notes.md", doc)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if !gjson.ValidBytes(data) {
		t.Fatalf("Build produced invalid JSON: %s", data)
	}

	checks := []struct {
		path string
		want string
	}{
		{"path", `"notes.md"`},
		{"count", "2"},
		{"tables.0.start", "2"},
		{"tables.0.end", "6"},
		{"tables.0.columns", "2"},
		{"tables.0.rows", "2"},
		{"tables.0.widths", "[4,3]"},
		{"tables.0.alignments", `["left","right"]`},
		{"tables.0.header", `["name","qty"]`},
		{"tables.0.formatted", "false"},
		{"tables.1.start", "9"},
		{"tables.1.alignments", `["center"]`},
		{"tables.#.columns", "[2,1]"},
	}
	for _, c := range checks {
		if got := Query(data, c.path); got != c.want {
			t.Errorf("Query(%q) = %s, want %s", c.path, got, c.want)
		}
	}
	if got := Query(data, "tables.5"); got != "" {
		t.Errorf("Query(missing) = %q, want empty", got)
	}
}

func TestBuildFormattedFlag(t *testing.T) {
	formatted := table.FormatDocument(doc)
	data, err := Build("", formatted)
	if err != nil {
		t.Fatal(err)
	}
	if got := Query(data, "tables.#.formatted"); got != "[true,true]" {
		t.Errorf("formatted = %s, want [true,true]", got)
	}

	data, err = Build("", formatted, table.WithAlignMode(table.AlignLegacy))
	if err != nil {
		t.Fatal(err)
	}
	if got := Query(data, "tables.0.formatted"); got != "false" {
		t.Errorf("legacy formatted = %s, want false", got)
	}
}

func TestBuildNoTables(t *testing.T) {
	data, err := Build("empty.md", "just text\n")
	if err != nil {
		t.Fatal(err)
	}
	tables, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("len(tables) = %d, want 0", len(tables))
	}
	if got := Query(data, "count"); got != "0" {
		t.Errorf("count = %s, want 0", got)
	}
}

func TestParse(t *testing.T) {
	data, err := Build("notes.md", doc)
	if err != nil {
		t.Fatal(err)
	}
	tables, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []Table{
		{Start: 2, End: 6, Columns: 2, Rows: 2, Widths: []int{4, 3},
			Alignments: []string{"left", "right"}, Header: []string{"name", "qty"}},
		{Start: 9, End: 12, Columns: 1, Rows: 1, Widths: []int{1},
			Alignments: []string{"center"}, Header: []string{"x"}},
	}
	if !reflect.DeepEqual(tables, want) {
		t.Errorf("Parse() = %+v, want %+v", tables, want)
	}

	if _, err := Parse([]byte("{")); !errors.Is(err, ErrInvalidReport) {
		t.Errorf("Parse(bad) = %v, want ErrInvalidReport", err)
	}
	if _, err := Parse([]byte(`{"x":1}`)); !errors.Is(err, ErrInvalidReport) {
		t.Errorf("Parse(no tables) = %v, want ErrInvalidReport", err)
	}
}

func TestPretty(t *testing.T) {
	data, err := Build("a.md", "| a |\n|---|\n| b |\n")
	if err != nil {
		t.Fatal(err)
	}
	out := string(Pretty(data))
	if !strings.Contains(out, "\n  \"tables\": [") {
		t.Errorf("Pretty output not indented:\n%s", out)
	}
}

package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Extension   string `json:"extension" yaml:"extension" toml:"extension"`
	ContentType string `json:"content_type" yaml:"content_type" toml:"content_type"`
}

type entryList []entry

func (l entryList) Headers() []string { return []string{"Extension", "Content Type"} }

func (l entryList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, e := range l {
		rows = append(rows, []string{e.Extension, e.ContentType})
	}
	return rows
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "table", want: FormatTable},
		{input: "", want: FormatTable},
		{input: "JSON", want: FormatJSON},
		{input: "yml", want: FormatYAML},
		{input: " toml ", want: FormatTOML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinterFormats(t *testing.T) {
	data := entryList{{".css", "text/css"}, {".html", "text/html"}}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable, false).Print(data))
		out := buf.String()
		assert.Contains(t, out, "EXTENSION")
		assert.Contains(t, out, "CONTENT TYPE")
		assert.Contains(t, out, ".html")
		assert.Contains(t, out, "text/css")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatJSON, false).Print(data))
		assert.JSONEq(t, `[{"extension":".css","content_type":"text/css"},{"extension":".html","content_type":"text/html"}]`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatYAML, false).Print(data))
		assert.Contains(t, buf.String(), "- extension: .css\n  content_type: text/css\n")
	})

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		wrapped := struct {
			Types []entry `toml:"types"`
		}{Types: data}
		require.NoError(t, NewPrinter(&buf, FormatTOML, false).Print(wrapped))
		assert.Contains(t, buf.String(), "[[types]]")
		assert.Contains(t, buf.String(), `extension = ".css"`)
	})

	t.Run("table falls back to yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable, false).Print(map[string]int{"port": 8888}))
		assert.Equal(t, "port: 8888\n", buf.String())
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, NewPrinter(&bytes.Buffer{}, Format("xml"), false).Print(data))
	})
}

func TestPrinterMessages(t *testing.T) {
	var plain bytes.Buffer
	p := NewPrinter(&plain, FormatTable, false)
	p.Success("done")
	p.Warning("careful")
	p.Error("failed")
	assert.Equal(t, "done\ncareful\nfailed\n", plain.String())

	var colored bytes.Buffer
	p = NewPrinter(&colored, FormatTable, true)
	assert.True(t, p.ColorEnabled())
	p.Success("done")
	assert.Contains(t, colored.String(), "\x1b[32m")
	assert.Contains(t, colored.String(), "done")
}

func TestSimpleTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SimpleTable(&buf, [][2]string{
		{"Port", "8888"},
		{"Root", "/srv/site"},
	}))

	out := buf.String()
	assert.Contains(t, out, "Port")
	assert.Contains(t, out, "8888")
	assert.Contains(t, out, "/srv/site")
}

func TestTableData(t *testing.T) {
	table := NewTableData("Name", "Value")
	assert.Empty(t, table.Rows())

	table.AddRow("a", "1")
	assert.Equal(t, [][]string{{"a", "1"}}, table.Rows())
	assert.Equal(t, []string{"Name", "Value"}, table.Headers())
}

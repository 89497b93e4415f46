package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbtsync/pkg/client"
)

func TestNewRendererResolvesAutoForNonTTY(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.Mode())
}

func TestTableText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeText)

	err := r.Table([]string{"line", "code", "description"}, [][]any{
		{float64(3), "L010", "keywords should be upper case"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "LINE")
	assert.Contains(t, out, "L010")
	assert.Contains(t, out, "(1 rows)")
}

func TestTableTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeText)

	require.NoError(t, r.Table([]string{"line"}, nil))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestTableMarkdown(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeMarkdown)

	err := r.Table([]string{"line", "code"}, [][]any{
		{float64(1), "L001"},
		{float64(2), "L002"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "| line | code |")
	assert.Contains(t, out, "| --- | --- |")
	assert.Contains(t, out, "| 1 | L001 |")
}

func TestTableJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)

	err := r.Table([]string{"line"}, [][]any{{float64(7)}})
	require.NoError(t, err)

	var decoded struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"line"}, decoded.Columns)
	require.Len(t, decoded.Rows, 1)
}

func TestFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Failure(&client.ErrorContainer{Error: client.ErrorDetails{
		Code:    client.FailedToReachServer,
		Message: "Query failed to reach dbt sync server",
		Data:    map[string]string{"error": "Is the dbt sync server running at http://localhost:8581?"},
	}})

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "failed_to_reach_server")
	assert.Contains(t, errOut.String(), "localhost:8581")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "NULL", formatValue(nil))
	assert.Equal(t, "42", formatValue(float64(42)))
	assert.Equal(t, "1.5", formatValue(1.5))
	assert.Equal(t, "abc", formatValue("abc"))
}

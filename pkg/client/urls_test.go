package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func fixedEndpoint(host string, port int) Endpoint {
	return func() (string, int) { return host, port }
}

func TestRequestURL(t *testing.T) {
	tests := []struct {
		name    string
		sql     *string
		sqlPath string
		extra   string
		op      string
		want    string
	}{
		{
			name: "sql text mode omits sql_path",
			sql:  strptr("select 1"),
			op:   "lint",
			want: "http://localhost:8581/lint?",
		},
		{
			name:  "sql text mode with extra config keeps the bare ?&",
			sql:   strptr("select 1"),
			extra: "cfg.yml",
			op:    "lint",
			want:  "http://localhost:8581/lint?&extra_config_path=cfg.yml",
		},
		{
			name:    "path mode without extra config has no trailing ampersand",
			sqlPath: "models/a.sql",
			op:      "lint",
			want:    "http://localhost:8581/lint?sql_path=models/a.sql",
		},
		{
			name:    "path mode with extra config",
			sqlPath: "models/a.sql",
			extra:   "cfg.yml",
			op:      "format",
			want:    "http://localhost:8581/format?sql_path=models/a.sql&extra_config_path=cfg.yml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{
				SQL:             tt.sql,
				SQLPath:         tt.sqlPath,
				ExtraConfigPath: tt.extra,
				Endpoint:        fixedEndpoint("localhost", 8581),
			})
			assert.Equal(t, tt.want, c.requestURL(tt.op))
		})
	}
}

func TestLintURLSuffix(t *testing.T) {
	c := New(Options{
		SQL:             strptr("select 1"),
		ExtraConfigPath: "cfg.yml",
		Endpoint:        fixedEndpoint("localhost", 8581),
	})
	assert.True(t, strings.HasSuffix(c.LintURL(), "/lint?&extra_config_path=cfg.yml"))
}

func TestFormatURL(t *testing.T) {
	c := New(Options{
		SQLPath:  "models/a.sql",
		Endpoint: fixedEndpoint("127.0.0.1", 9),
	})
	assert.Equal(t, "http://127.0.0.1:9/format?sql_path=models/a.sql", c.FormatURL())
}

func TestHealthURL(t *testing.T) {
	c := New(Options{Endpoint: fixedEndpoint("127.0.0.1", 9)})
	assert.Equal(t, "http://127.0.0.1:9/health", c.healthURL())
}

// The endpoint lookup must run on every URL build so config changes are
// picked up between calls.
func TestEndpointResolvedPerBuild(t *testing.T) {
	calls := 0
	c := New(Options{
		SQL: strptr("select 1"),
		Endpoint: func() (string, int) {
			calls++
			return "localhost", 8000 + calls
		},
	})

	first := c.LintURL()
	second := c.LintURL()

	assert.Equal(t, 2, calls)
	assert.NotEqual(t, first, second)
}

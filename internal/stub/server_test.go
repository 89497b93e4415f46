package stub

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbtsync/internal/testutil"
	"github.com/leapstack-labs/dbtsync/pkg/client"
)

func newStubClient(t *testing.T, sql *string, sqlPath string) *client.Client {
	t.Helper()

	srv := httptest.NewServer(NewServer(Config{Logger: testutil.NewTestLogger(t)}).Handler())
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	return client.New(client.Options{
		SQL:      sql,
		SQLPath:  sqlPath,
		Endpoint: func() (string, int) { return u.Hostname(), port },
	})
}

func sqlptr(s string) *string { return &s }

func TestStubHealth(t *testing.T) {
	c := newStubClient(t, sqlptr("select 1"), "")
	assert.True(t, c.HealthCheck(context.Background()))
}

func TestStubLintEndToEnd(t *testing.T) {
	c := newStubClient(t, sqlptr("select * from orders"), "")

	res, errc := client.Lint[client.RunResult](context.Background(), c)
	require.Nil(t, errc)

	assert.Equal(t, []string{"line", "line_pos", "code", "description"}, res.ColumnNames)
	assert.NotEmpty(t, res.Rows)
	assert.Equal(t, "select * from orders", res.RawSQL)
}

func TestStubLintCleanSQL(t *testing.T) {
	c := newStubClient(t, sqlptr("SELECT id FROM orders"), "")

	res, errc := client.Lint[client.RunResult](context.Background(), c)
	require.Nil(t, errc)
	assert.Empty(t, res.Rows)
}

func TestStubFormatEndToEnd(t *testing.T) {
	c := newStubClient(t, sqlptr("  select 1  "), "")

	res, errc := client.Format[client.CompileResult](context.Background(), c)
	require.Nil(t, errc)
	assert.Equal(t, "select 1\n", res.Result)
}

func TestStubPathMode(t *testing.T) {
	c := newStubClient(t, nil, "models/orders.sql")

	res, errc := client.Lint[client.RunResult](context.Background(), c)
	require.Nil(t, errc)
	assert.Contains(t, res.RawSQL, "models/orders.sql")
}

func TestStubCompileAndReset(t *testing.T) {
	c := newStubClient(t, sqlptr("select 1"), "")

	compiled, errc := c.Compile(context.Background())
	require.Nil(t, errc)
	assert.Equal(t, "select 1", compiled.Result)

	reset, errc := c.Reset(context.Background())
	require.Nil(t, errc)
	assert.Equal(t, "project re-parsed", reset.Result)
}

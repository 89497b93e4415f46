package client

import (
	"fmt"
	"strings"
)

// baseURL resolves the server address. The endpoint lookup runs on every
// build so a server restart on a different port is picked up without
// recreating the client.
func (c *Client) baseURL() string {
	host, port := c.endpoint()
	return fmt.Sprintf("http://%s:%d", host, port)
}

func (c *Client) healthURL() string {
	return c.baseURL() + "/health"
}

// requestURL builds the URL for one of the POST endpoints. Parameters are
// appended verbatim, not escaped: sql_path keeps its slashes, and SQL-text
// mode combined with an extra config produces the bare "?&extra_config_path="
// prefix the server has accepted since the first release. Changing either
// changes the request shape on the wire.
func (c *Client) requestURL(op string) string {
	var b strings.Builder
	b.WriteString(c.baseURL())
	b.WriteString("/")
	b.WriteString(op)
	b.WriteString("?")
	if c.sql == nil {
		b.WriteString("sql_path=")
		b.WriteString(c.sqlPath)
	}
	if c.extraConfigPath != "" {
		b.WriteString("&extra_config_path=")
		b.WriteString(c.extraConfigPath)
	}
	return b.String()
}

// LintURL returns the URL a Lint call would POST to.
func (c *Client) LintURL() string { return c.requestURL("lint") }

// FormatURL returns the URL a Format call would POST to.
func (c *Client) FormatURL() string { return c.requestURL("format") }

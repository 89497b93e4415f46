package client

// RunResult is the tabular response returned by the sync server's lint
// endpoint: one row per finding, plus the raw and compiled SQL the server
// worked from. Values inside Rows are opaque to this client.
type RunResult struct {
	ColumnNames []string `json:"column_names"`
	Rows        [][]any  `json:"rows"`
	RawSQL      string   `json:"raw_sql"`
	CompiledSQL string   `json:"compiled_sql"`
}

// CompileResult carries the single-string body returned by the format and
// compile endpoints (the rewritten SQL text).
type CompileResult struct {
	Result string `json:"result"`
}

// ResetResult carries the single-string body returned by the reset endpoint.
type ResetResult struct {
	Result string `json:"result"`
}

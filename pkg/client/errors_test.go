package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectNotRegisteredError(t *testing.T) {
	e := projectNotRegisteredError()

	assert.Equal(t, CompileFailure, e.Error.Code)
	assert.NotEmpty(t, e.Error.Message)
	assert.Equal(t, "", e.Error.Data["error"])
}

func TestFailedToReachServerError(t *testing.T) {
	e := failedToReachServerError("localhost", 8581)

	assert.Equal(t, FailedToReachServer, e.Error.Code)
	assert.Equal(t, "Query failed to reach dbt sync server", e.Error.Message)
	assert.Contains(t, e.Error.Data["error"], "localhost:8581")
}

// Payload constructors return fresh values; mutating one call's payload
// must not leak into the next.
func TestErrorPayloadsAreFresh(t *testing.T) {
	a := projectNotRegisteredError()
	a.Error.Data["error"] = "mutated"

	b := projectNotRegisteredError()
	assert.Equal(t, "", b.Error.Data["error"])
}

func TestErrorContainerRoundsTripServerShape(t *testing.T) {
	raw := `{"error":{"code":"project_parse_failure","message":"bad yaml","data":{"path":"dbt_project.yml"}}}`

	var e ErrorContainer
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, ProjectParseFailure, e.Error.Code)
	assert.Equal(t, "dbt_project.yml", e.Error.Data["path"])
}

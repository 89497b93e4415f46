package client

import "fmt"

// ErrorCode identifies the failure class inside an ErrorContainer.
type ErrorCode string

// FailedToReachServer and CompileFailure are the only codes this client
// constructs itself. The remaining codes arrive inside server response
// bodies and are passed through undecoded.
const (
	FailedToReachServer ErrorCode = "failed_to_reach_server"
	CompileFailure      ErrorCode = "compile_failure"
	ExecuteFailure      ErrorCode = "execute_failure"
	ProjectParseFailure ErrorCode = "project_parse_failure"
	UnfixableLint       ErrorCode = "unfixable_lint"
)

// ErrorContainer is the error envelope shared by this client and the sync
// server: a code, a human-readable message, and a free-form detail map.
type ErrorContainer struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails is the payload inside an ErrorContainer.
type ErrorDetails struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

// projectNotRegisteredError is returned when the health probe fails before
// the main request is attempted. The code is CompileFailure to match what
// the server reports for an unregistered project.
func projectNotRegisteredError() *ErrorContainer {
	return &ErrorContainer{Error: ErrorDetails{
		Code:    CompileFailure,
		Message: "Project not registered with the dbt sync server. Open or save a file from the dbt project to register it.",
		Data:    map[string]string{"error": ""},
	}}
}

// failedToReachServerError is returned when the POST itself fails, either a
// transport error or a timeout abort.
func failedToReachServerError(host string, port int) *ErrorContainer {
	return &ErrorContainer{Error: ErrorDetails{
		Code:    FailedToReachServer,
		Message: "Query failed to reach dbt sync server",
		Data: map[string]string{
			"error": fmt.Sprintf("Is the dbt sync server running at http://%s:%d?", host, port),
		},
	}}
}

package model

type ErrorResponse struct {
	Error string `json:"error"`
	Data  any    `json:"data,omitempty"`
}

// InvokeResponse is returned to direct (non-HTTP) callers of the purchase intake.
// Body carries the same JSON document an HTTP caller receives.
type InvokeResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

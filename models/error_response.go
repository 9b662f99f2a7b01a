// models/error_response.go
package models

// Error codes carried in ErrorResponse.Code so clients can tell failure
// classes apart without parsing messages.
const (
	ErrorCodeValidation           = "validation"
	ErrorCodeConfig               = "config"
	ErrorCodeUpstream             = "upstream"
	ErrorCodeUpstreamUnauthorized = "upstream_unauthorized"
	ErrorCodeUpstreamRateLimited  = "upstream_rate_limited"
	ErrorCodeRateLimited          = "rate_limited"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

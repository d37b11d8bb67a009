package services

// ServiceError is a typed error with an HTTP status code. Every business-rule
// failure maps to a stable code plus a human-readable message; store and
// gateway internals never reach the caller.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

func notFound(msg string) *ServiceError      { return &ServiceError{StatusCode: 404, Message: msg} }
func badRequest(msg string) *ServiceError    { return &ServiceError{StatusCode: 400, Message: msg} }
func conflict(msg string) *ServiceError      { return &ServiceError{StatusCode: 409, Message: msg} }
func upstreamError(msg string) *ServiceError { return &ServiceError{StatusCode: 502, Message: msg} }
func internalError(msg string) *ServiceError { return &ServiceError{StatusCode: 500, Message: msg} }

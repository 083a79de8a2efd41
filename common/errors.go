package common

import "fmt"

//
// Base Types
//

type BaseError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"cause"`
	Details map[string]interface{} `json:"details"`
}

func (e *BaseError) Unwrap() error {
	return e.Cause
}

func (e *BaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type ErrorWithStatusCode interface {
	ErrorStatusCode() int
}

//
// Common Errors
//

type ErrUpstreamRequest struct{ BaseError }

var NewErrUpstreamRequest = func(cause error, method string) error {
	return &ErrUpstreamRequest{
		BaseError{
			Code:    "ErrUpstreamRequest",
			Message: "failed to forward request to upstream",
			Cause:   cause,
			Details: map[string]interface{}{
				"method": method,
			},
		},
	}
}

func (e *ErrUpstreamRequest) ErrorStatusCode() int { return 502 }

package types

import "fmt"

// AppError is a machine-readable error carried up to the global error handler.
// Type identifies the failing rule or subsystem, e.g. "community.upvote.duplicate".
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

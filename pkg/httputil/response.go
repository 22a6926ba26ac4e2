package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    errors.Code   `json:"code"`
	Reason  errors.Reason `json:"reason,omitempty"`
	Message string        `json:"message"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError converts an error into the response envelope. AppError
// codes pick the HTTP status; anything else is reported generically.
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	respErr := &Error{
		Code:    errors.CodeStorage,
		Message: "internal server error",
	}

	if appErr, ok := asAppError(err); ok {
		status = appErr.HTTPStatus()
		respErr.Code = appErr.Code
		respErr.Reason = appErr.Reason
		respErr.Message = appErr.Message
	}

	_ = c.Error(err)
	c.JSON(status, Response{
		Success: false,
		Error:   respErr,
	})
}

func asAppError(err error) (*errors.AppError, bool) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomdesk/meeting-room-backend/internal/pkg/apperror"
)

// ErrorResponse is the JSON body for request failures. Title is a single
// user-facing message; Errors is present only for validation failures and
// maps each offending field to its messages.
type ErrorResponse struct {
	Title  string              `json:"title"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// Error sends a JSON error response. AppError values determine their own
// status code; anything else is an infrastructure failure reported as an
// opaque 500 so internals never leak to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Title: appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Title: "internal server error"})
}

// ValidationFailed sends the per-field validation payload the form renders
// inline.
func ValidationFailed(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Title:  "One or more validation errors occurred.",
		Errors: fields,
	})
}

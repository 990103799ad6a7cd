package middleware

import (
	"errors"
	"net/http"

	"ats-backend/internal/delivery/http/response"
	"ats-backend/pkg/apperror"
	"ats-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Never expose internal error details to clients. Log the
				// actual error server-side, send a generic message out.
				logger.Log.Error("Internal server error", "error", err, "path", c.Request.URL.Path)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors appended to the gin context into the shared
// response envelope. Internal errors are logged server-side and never leak
// their details to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code == http.StatusInternalServerError {
					slog.Error("internal server error",
						"path", c.FullPath(),
						"error", appErr.Err,
					)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				slog.Error("unhandled error", "path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}

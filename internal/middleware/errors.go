package middleware

import (
	"errors"
	"net/http"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

var internalError = &domain.Error{Kind: domain.KindInternal, Code: "INTERNAL", Message: "Internal server error"}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindPaymentDeclined:
		return http.StatusPaymentRequired
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders the last error attached to the context. Errors that are not
// domain errors are logged and reported as a generic internal error.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *domain.Error
		if !errors.As(err, &appErr) || appErr.Kind == domain.KindInternal {
			logger.FromContext(c.Request.Context(), log).Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			appErr = internalError
		}

		status := StatusOf(appErr.Kind)
		c.AbortWithStatusJSON(status, errorResponse{Error: errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Status:  status,
		}})
	}
}

// Fail attaches err to the context and stops the handler chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

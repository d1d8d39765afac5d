package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptolens/internal/domain/dto"
)

// AbortWithError stops the handler chain and writes a dto.ErrorResponse
// tagged with the request id.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err).WithRequestID(RequestIDFrom(c)))
}

// ErrorHandler turns errors attached with c.Error into a 500 response when the
// handler chain finished without writing one.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse("internal server error", c.Errors.Last().Err).WithRequestID(RequestIDFrom(c)))
}

package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/amanisrajpoot/youandonly-sub000/internal/http/respond"
	"github.com/amanisrajpoot/youandonly-sub000/internal/shared/apperr"
)

// Fail records an error on the context and aborts; ErrorHandler turns it into
// the JSON envelope after the chain unwinds. No error crosses the HTTP
// boundary unformatted.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		publicMsg := apperr.PublicMessage(err)
		rid := GetRequestID(c)

		l.LogAttrs(c.Request.Context(), slog.LevelError, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
			respond.ErrorFields(c, status, publicMsg, ae.Fields)
			return
		}
		respond.Error(c, status, publicMsg)
	}
}

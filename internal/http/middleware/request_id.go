package middleware

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxKeyRequestID = "request_id"
)

// RequestID tags every request with an id and echoes it in the response
// header. An id supplied by the caller or a fronting proxy is kept so a
// trace can span hops.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = generateRequestID()
		}

		c.Set(CtxKeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)

		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "" outside the chain.
func GetRequestID(c *gin.Context) string {
	v, ok := c.Get(CtxKeyRequestID)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

func generateRequestID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b[:])
}

// Package respond writes the API's uniform JSON envelope:
// {success: bool, data?: {...}, message?: string, error?: string}.
package respond

import (
	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func OKMessage(c *gin.Context, status int, data any, msg string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: msg})
}

func Error(c *gin.Context, status int, errMsg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: errMsg})
}

func ErrorFields(c *gin.Context, status int, errMsg string, fields map[string]string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: errMsg, Fields: fields})
}

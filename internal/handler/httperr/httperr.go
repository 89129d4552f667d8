// Package httperr carries error responses through gin's error stack so the
// ErrorHandler middleware writes them last. Every failure path of this API
// emits the same flat envelope the handlers write inline:
//
//	{"error": "Slot is full, closed, or expired"}
package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	// Status routes the write; it never serializes.
	Status int    `json:"-"`
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

// AbortWithError records the cause on the context for logging and queues
// the public envelope for the ErrorHandler middleware to emit.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg, Detail: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Package middleware provides the gin middleware chain of the HTTP API:
// request correlation, structured logging, prometheus metrics, panic
// recovery and CORS.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
)

// HeaderRequestID is the correlation header honored and echoed by the API.
const HeaderRequestID = "X-Request-ID"

const ginKeyRequestID = "request_id"

// RequestID assigns every request a correlation ID: the caller's
// X-Request-ID when present, a fresh uuid otherwise. The ID is echoed in
// the response header and stored in both the gin and request contexts.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ginKeyRequestID, id)
		ctx := context.WithValue(c.Request.Context(), common.ContextKeyRequestID, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the correlation ID assigned by RequestID, empty
// when the middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ginKeyRequestID)
}

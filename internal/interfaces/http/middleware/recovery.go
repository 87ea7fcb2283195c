package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
)

// Recovery converts panics into a 500 response with the standard error
// envelope instead of tearing down the connection.
func Recovery(logger logging.Logger, metrics *prometheus.AppMetrics) gin.HandlerFunc {
	logger = logger.Named("http")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("handler panicked",
					logging.Any("panic", r),
					logging.String("path", c.Request.URL.Path),
					logging.String("request_id", GetRequestID(c)))
				if metrics != nil {
					metrics.RecordError("http", string(errors.ErrCodeInternal))
				}
				resp := common.NewErrorResponse(string(errors.ErrCodeInternal), "internal server error")
				resp.RequestID = GetRequestID(c)
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}

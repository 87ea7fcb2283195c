// Package handlers contains the gin handlers of the descriptor API. Every
// response uses the APIResponse envelope; AppError codes map to HTTP
// statuses through the shared code table.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ChemDesc-Engine/internal/interfaces/http/middleware"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
)

// bindJSON decodes the request body. Decode failures are bad requests, not
// validation errors: the payload never reached the domain layer.
func bindJSON(c *gin.Context, target interface{}) error {
	if err := c.ShouldBindJSON(target); err != nil {
		return errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body")
	}
	return nil
}

// respondData writes a success envelope carrying data.
func respondData(c *gin.Context, status int, data interface{}) {
	resp := common.NewSuccessResponse(data)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(status, resp)
}

// respondError writes an error envelope, the status derived from the
// error's code. Non-AppError values become an opaque 500.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	message := err.Error()
	if status >= http.StatusInternalServerError && code == errors.CodeUnknown {
		message = "internal server error"
	}
	resp := common.NewErrorResponse(string(code), message)
	resp.RequestID = middleware.GetRequestID(c)
	c.AbortWithStatusJSON(status, resp)
}

// itemError converts one failed batch item into the wire shape.
func itemError(index int, err error) common.BatchItemError {
	return common.BatchItemError{
		Index: index,
		Error: common.ErrorDetail{
			Code:    string(errors.GetCode(err)),
			Message: err.Error(),
		},
	}
}

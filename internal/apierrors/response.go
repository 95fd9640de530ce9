package apierrors

import (
	"affiliate-ledger/internal/observability"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var logger = observability.NewLogger()

// ErrorResponse is the JSON structure returned to API clients for errors
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondWithError maps err and sends the sanitized response. Processors have
// already logged the detailed error; this entry carries the request id for
// correlation.
//
//	if err != nil {
//	    apierrors.RespondWithError(c, err)
//	    return
//	}
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()
	apiErr := MapError(err)

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: apiErr.StatusCode},
		observability.Field{Key: "error_code", Value: apiErr.Code},
		observability.Field{Key: "error_message", Value: apiErr.Message},
	)
	if apiErr.StatusCode >= http.StatusInternalServerError && apiErr.Err != nil {
		logger.Error(ctx, "API error response", apiErr.Err)
	} else {
		logger.Info(ctx, "API error response")
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, ErrorResponse{
		Error: apiErr.Message,
		Code:  apiErr.Code,
	})
}

// RespondWithValidationError handles binding failures from c.ShouldBindJSON
func RespondWithValidationError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		apiErr := ValidationError(err)
		logger.Info(ctx, "validation failed", observability.Field{Key: "error_message", Value: apiErr.Message})
		c.AbortWithStatusJSON(apiErr.StatusCode, ErrorResponse{
			Error: apiErr.Message,
			Code:  apiErr.Code,
		})
		return
	}

	// JSON syntax or type errors
	logger.Info(ctx, "request binding failed", observability.Field{Key: "error_message", Value: err.Error()})
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: "Invalid request format. Please check your JSON syntax.",
		Code:  CodeInvalidInput,
	})
}

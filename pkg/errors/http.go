package custom_error

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Abort writes the JSON error response for err with the status from StatusCode.
func Abort(c *gin.Context, message string, err error) {
	body := gin.H{"error": message, "details": err.Error()}

	var (
		validation *ValidationError
		capacity   *CapacityError
	)
	switch {
	case errors.As(err, &validation):
		body["property"] = validation.Property
	case errors.As(err, &capacity):
		body["requested"] = capacity.Requested
		body["available"] = capacity.Available
	}

	c.AbortWithStatusJSON(StatusCode(err), body)
}

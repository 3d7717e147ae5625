package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// bindJSON decodes the body; failures abort with 422 {domain}_VALIDATION_ERROR.
func bindJSON(c *gin.Context, domain string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.Abort(c, httperr.Validation(domain, describeBindError(err)))
		return false
	}
	return true
}

func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		return strings.Join(parts, "; ")
	}
	return "Malformed request body."
}

// pathID reads a positive integer path parameter.
func pathID(c *gin.Context, name, domain string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.Abort(c, httperr.Validation(domain, fmt.Sprintf("%s must be a positive integer.", name)))
		return 0, false
	}
	return uint(id), true
}

// queryUint reads an optional positive integer query parameter.
func queryUint(c *gin.Context, name, domain string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.Abort(c, httperr.Validation(domain, fmt.Sprintf("%s must be a positive integer.", name)))
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func queryBool(c *gin.Context, name string) bool {
	b, _ := strconv.ParseBool(c.Query(name))
	return b
}

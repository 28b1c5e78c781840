package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam parses a numeric URL parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, errors.New("missing " + name + " parameter")
	}
	id64, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return uint(id64), nil
}

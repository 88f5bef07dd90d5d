package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination defaults for list endpoints.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// parseLimitOffset extracts and clamps the limit/offset query parameters.
// Malformed values fall back to the defaults rather than erroring.
func parseLimitOffset(ctx *gin.Context) (int, int) {
	limit := DefaultLimit
	offset := 0

	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(DefaultLimit))); err == nil && l > 0 {
		limit = l
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}
	if o, err := strconv.Atoi(ctx.DefaultQuery("offset", "0")); err == nil && o >= 0 {
		offset = o
	}

	return limit, offset
}

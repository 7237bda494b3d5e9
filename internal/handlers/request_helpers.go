package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// parseDate accepts a calendar date (YYYY-MM-DD, midnight in loc) or a
// full RFC 3339 timestamp. Empty input yields nil.
func parseDate(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.In(loc)
		return &t, nil
	}
	return nil, fmt.Errorf("invalid date %q", value)
}

// pageParams reads page and limit with the same defaults and ceiling as the
// repositories.
func pageParams(c *gin.Context) (int, int) {
	page := 1
	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}
	return page, limit
}

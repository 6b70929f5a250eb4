package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tillpoint/pos-api/pkg/pdfgen"
)

// parseIDParam extracts and parses a UUID path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parsePageSize reads the optional ?size= query for PDF endpoints. Unknown
// or absent values fall back to the endpoint's default size.
func parsePageSize(c *gin.Context, def pdfgen.PageSize) pdfgen.Options {
	switch c.Query("size") {
	case "letter":
		return pdfgen.Options{Size: pdfgen.PageSizeLetter}
	case "receipt":
		return pdfgen.Options{Size: pdfgen.PageSizeReceipt}
	case "a4":
		return pdfgen.Options{Size: pdfgen.PageSizeA4}
	}
	return pdfgen.Options{Size: def}
}

// parseDateQuery parses a YYYY-MM-DD query parameter, returning ok=false
// when absent or malformed.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseIntQuery parses an integer query parameter with a fallback default
func parseIntQuery(c *gin.Context, name string, def int) int {
	value := c.Query(name)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

// parseFloatQuery parses a float query parameter with a fallback default
func parseFloatQuery(c *gin.Context, name string, def float64) float64 {
	value := c.Query(name)
	if value == "" {
		return def
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return f
}

package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tillpoint/pos-api/pkg/pdfgen"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePageSize(t *testing.T) {
	cases := []struct {
		name  string
		query string
		def   pdfgen.PageSize
		want  pdfgen.PageSize
	}{
		{"no query uses endpoint default", "", pdfgen.PageSizeReceipt, pdfgen.PageSizeReceipt},
		{"explicit letter", "size=letter", pdfgen.PageSizeReceipt, pdfgen.PageSizeLetter},
		{"explicit receipt", "size=receipt", pdfgen.PageSizeA4, pdfgen.PageSizeReceipt},
		{"explicit a4", "size=a4", pdfgen.PageSizeReceipt, pdfgen.PageSizeA4},
		{"unknown value falls back to default", "size=tabloid", pdfgen.PageSizeA4, pdfgen.PageSizeA4},
	}
	for _, tc := range cases {
		opts := parsePageSize(queryContext(tc.query), tc.def)
		if opts.Size != tc.want {
			t.Errorf("%s: Size = %q, want %q", tc.name, opts.Size, tc.want)
		}
	}
}

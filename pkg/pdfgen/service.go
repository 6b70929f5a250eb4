package pdfgen

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/jung-kurt/gofpdf"
)

// PageSize selects the page geometry for a generated document.
type PageSize string

const (
	PageSizeA4      PageSize = "A4"
	PageSizeLetter  PageSize = "LETTER"
	PageSizeReceipt PageSize = "RECEIPT" // narrow thermal-style page
)

type pageGeometry struct {
	width  float64 // pt
	height float64 // pt
	margin float64 // pt
}

var pageGeometries = map[PageSize]pageGeometry{
	PageSizeA4:      {width: 595.28, height: 841.89, margin: 50},
	PageSizeLetter:  {width: 612, height: 792, margin: 50},
	PageSizeReceipt: {width: 226.77, height: 841.89, margin: 10}, // 80mm paper
}

// Options control page selection for a single generation call.
type Options struct {
	Size   PageSize // default A4
	Margin *float64 // overrides the size's default margin when set
}

// Template renders one document kind onto a canvas. Templates draw top to
// bottom and must return with the cursor positioned after their last content;
// they never open pages or finalize the document.
type Template interface {
	DocumentType() DocumentType
	Generate(c *Canvas, doc Document) error
}

const pdfCreator = "tillpoint-pos"

// Service owns the template registry and drives document production. The
// registry is populated at start-up and only read afterwards; each generation
// call builds its own canvas, so concurrent calls share nothing else.
type Service struct {
	mu        sync.RWMutex
	templates map[DocumentType]Template
}

// NewService creates an empty generation service.
func NewService() *Service {
	return &Service{templates: make(map[DocumentType]Template)}
}

// Default creates a service with every built-in template registered.
func Default() *Service {
	s := NewService()
	s.RegisterTemplate(NewReceiptTemplate())
	s.RegisterTemplate(NewInvoiceTemplate())
	s.RegisterTemplate(NewDailySummaryTemplate())
	s.RegisterTemplate(NewInventoryReportTemplate())
	s.RegisterTemplate(NewSalesReportTemplate())
	return s
}

// RegisterTemplate inserts or overwrites the registry entry for the
// template's declared document type.
func (s *Service) RegisterTemplate(t Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[t.DocumentType()] = t
}

// HasTemplate reports whether a template is registered for the given type.
func (s *Service) HasTemplate(dt DocumentType) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.templates[dt]
	return ok
}

// RegisteredTypes returns the registered document types in sorted order.
func (s *Service) RegisteredTypes() []DocumentType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	types := make([]DocumentType, 0, len(s.templates))
	for dt := range s.templates {
		types = append(types, dt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (s *Service) resolve(dt DocumentType) (Template, error) {
	s.mu.RLock()
	t, ok := s.templates[dt]
	s.mu.RUnlock()
	if ok {
		return t, nil
	}

	names := make([]string, 0)
	for _, rt := range s.RegisteredTypes() {
		names = append(names, string(rt))
	}
	return nil, fmt.Errorf("No template registered for document type %q (available: %s)",
		dt, strings.Join(names, ", "))
}

// Generate renders the document and returns the finished PDF as a byte
// slice. On any rendering failure no partial output is returned.
func (s *Service) Generate(doc Document, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Stream(doc, &buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stream renders the document and writes the PDF to w. The content is
// identical to Generate; this path exists so large documents need not be
// buffered twice. Destination errors propagate to the caller.
func (s *Service) Stream(doc Document, w io.Writer, opts Options) error {
	tmpl, err := s.resolve(doc.Type())
	if err != nil {
		return err
	}

	size := opts.Size
	if size == "" {
		size = PageSizeA4
	}
	geo, ok := pageGeometries[size]
	if !ok {
		geo = pageGeometries[PageSizeA4]
	}
	margin := geo.margin
	if opts.Margin != nil {
		margin = *opts.Margin
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: geo.width, Ht: geo.height},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(documentTitle(doc), true)
	pdf.SetAuthor(doc.Business().Name, true)
	pdf.SetCreator(pdfCreator, true)
	pdf.SetCreationDate(doc.GeneratedTime())
	pdf.AddPage()

	canvas := newCanvas(pdf, margin)
	if err := tmpl.Generate(canvas, doc); err != nil {
		return fmt.Errorf("PDF generation failed: %w", err)
	}
	if pdf.Err() {
		return fmt.Errorf("PDF generation failed: %v", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("PDF generation failed: %w", err)
	}
	return nil
}

func documentTitle(doc Document) string {
	return fmt.Sprintf("%s - %s", doc.Type().displayName(), doc.GeneratedTime().Format("2006-01-02"))
}

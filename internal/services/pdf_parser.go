package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

type PDFParserService interface {
	ExtractText(filePath string) (string, error)
	ExtractTextWithMetaData(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text          string
	PageCount     int
	PagesWithText int
	Truncated     bool
	FilePath      string
}

type pdfParserService struct {
	maxChars int
	logger   *zap.Logger
}

// NewPDFParserService returns an extractor that caps its output at maxChars characters.
func NewPDFParserService(maxChars int, logger *zap.Logger) PDFParserService {
	return &pdfParserService{
		maxChars: maxChars,
		logger:   logger,
	}
}

// ExtractText returns the document text joined page by page, truncated to the
// character budget. A document without extractable text yields "" and no error.
func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	content, err := p.ExtractTextWithMetaData(filePath)
	if err != nil {
		return "", err
	}

	return content.Text, nil
}

func (p *pdfParserService) ExtractTextWithMetaData(filePath string) (content *PDFContent, err error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()
	pagesWithText := 0

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Debug("skipping unreadable page",
				zap.String("file", filePath),
				zap.Int("page", pageIndex),
				zap.Error(err))
			continue
		}
		if text == "" {
			continue
		}

		pagesWithText++
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := textBuilder.String()
	truncated := TruncateChars(text, p.maxChars)

	return &PDFContent{
		Text:          truncated,
		PageCount:     totalPage,
		PagesWithText: pagesWithText,
		Truncated:     len(truncated) < len(text),
		FilePath:      filePath,
	}, nil
}

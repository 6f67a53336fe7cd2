// Package document extracts plain text from report files.
package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// ErrUnsupportedType is returned for file extensions the extractor does not read.
var ErrUnsupportedType = goerr.New("unsupported document type")

// Extractor reads PDF and plain text reports.
type Extractor struct{}

var _ interfaces.DocumentExtractor = (*Extractor)(nil)

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text of the document at path. PDF pages are joined
// with a newline in page order.
func (x *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", goerr.Wrap(err, "extraction cancelled", goerr.V(model.ReportPathKey, path))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(ctx, path)
	case ".txt", ".md", ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read document", goerr.V(model.ReportPathKey, path))
		}
		return string(data), nil
	default:
		return "", goerr.Wrap(ErrUnsupportedType, "cannot extract text",
			goerr.V(model.ReportPathKey, path),
			goerr.V("ext", filepath.Ext(path)))
	}
}

func extractPDF(ctx context.Context, path string) (text string, err error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open PDF", goerr.V(model.ReportPathKey, path))
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			logging.From(ctx).Warn("failed to close PDF", "error", cerr.Error(), "path", path)
		}
	}()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read PDF page",
				goerr.V(model.ReportPathKey, path),
				goerr.V("page", i))
		}
		pages = append(pages, strings.TrimSpace(pageText))
	}

	logging.From(ctx).Debug("PDF extracted", "path", path, "pages", len(pages))
	return strings.Join(pages, "\n"), nil
}

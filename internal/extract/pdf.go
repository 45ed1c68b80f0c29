package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/logger"
)

// FromPDF extracts plain text from a PDF file. Page texts are concatenated
// in page order; pages with no extractable text are skipped.
func FromPDF(path string) (domain.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("Skipping page %d of %s: %v", i, path, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return domain.Document{}, fmt.Errorf("%w: no extractable text in %s", domain.ErrInvalidInput, path)
	}

	logger.Debug("Extracted %d chars from %d pages of %s", sb.Len(), total, path)

	return domain.Document{
		SourcePrefix: Prefix(path),
		Text:         sb.String(),
		Origin:       "pdf",
		IngestedAt:   time.Now(),
	}, nil
}

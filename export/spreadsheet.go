package export

import (
	"fmt"

	"github.com/pevans/newsscrape/relevance"
	"github.com/xuri/excelize/v2"
)

type row struct {
	article relevance.ClassifiedArticle
	picture string
}

func writeSpreadsheet(path string, rows []row) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}

		values := []any{
			r.article.Title,
			r.article.RawDate,
			r.article.Description,
			r.picture,
			r.article.PhraseMatches,
			r.article.ContainsMoney,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}

	return nil
}

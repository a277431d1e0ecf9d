package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bgrellier/paperdeck"
)

// SaveXLSX writes a review workbook: a Slides sheet with one row per
// bullet, and a Sections sheet summarizing coverage. Reviewers tick
// through bullets faster in a spreadsheet than in rendered slides.
func SaveXLSX(path string, deck *paperdeck.Deck) error {
	f := excelize.NewFile()
	defer f.Close()

	const slidesSheet = "Slides"
	f.SetSheetName("Sheet1", slidesSheet)

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	cols := []string{"Slide", "Section", "Title", "Bullet", "Images", "Notes"}
	for i, name := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(slidesSheet, cell, name)
	}
	f.SetCellStyle(slidesSheet, "A1", "F1", header)
	f.SetColWidth(slidesSheet, "D", "D", 70)
	f.SetColWidth(slidesSheet, "F", "F", 50)

	row := 2
	for si, s := range deck.Slides {
		bullets := s.Bullets
		if len(bullets) == 0 {
			bullets = []string{""}
		}
		for bi, b := range bullets {
			f.SetCellValue(slidesSheet, cell("A", row), si+1)
			f.SetCellValue(slidesSheet, cell("B", row), s.Section)
			f.SetCellValue(slidesSheet, cell("C", row), s.Title)
			f.SetCellValue(slidesSheet, cell("D", row), b)
			if bi == 0 {
				f.SetCellValue(slidesSheet, cell("E", row), len(s.Images))
				f.SetCellValue(slidesSheet, cell("F", row), s.Notes)
			}
			row++
		}
	}

	const sectionsSheet = "Sections"
	if _, err := f.NewSheet(sectionsSheet); err != nil {
		return fmt.Errorf("creating sections sheet: %w", err)
	}
	for i, name := range []string{"Section", "Title", "Bullets", "Images", "Insight", "Pages"} {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sectionsSheet, c, name)
	}
	f.SetCellStyle(sectionsSheet, "A1", "F1", header)
	f.SetColWidth(sectionsSheet, "E", "E", 70)

	for i, sec := range deck.Sections {
		r := i + 2
		f.SetCellValue(sectionsSheet, cell("A", r), sec.Name)
		f.SetCellValue(sectionsSheet, cell("B", r), sec.Title)
		f.SetCellValue(sectionsSheet, cell("C", r), len(sec.Bullets))
		f.SetCellValue(sectionsSheet, cell("D", r), sec.Images)
		f.SetCellValue(sectionsSheet, cell("E", r), sec.Insight)
		f.SetCellValue(sectionsSheet, cell("F", r), fmt.Sprint(sec.Pages))
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

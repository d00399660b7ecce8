package transfer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/opencode-ai/colorvault/internal/colors"
	"github.com/opencode-ai/colorvault/internal/models"
)

// SheetName is the worksheet palettes are written to.
const SheetName = "Palettes"

var xlsxHeader = []string{"Name", "ID", "Source", "Tags"}

// firstColorColumn is the 1-based column of the first color cell.
const firstColorColumn = 5

func exportXLSX(w io.Writer, collection []models.Palette) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	maxColors := 0
	for _, p := range collection {
		if len(p.Colors) > maxColors {
			maxColors = len(p.Colors)
		}
	}

	header := make([]interface{}, 0, len(xlsxHeader)+maxColors)
	for _, h := range xlsxHeader {
		header = append(header, h)
	}
	for i := 1; i <= maxColors; i++ {
		header = append(header, fmt.Sprintf("Color %d", i))
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	styles := map[string]int{}
	for idx, p := range collection {
		row := idx + 2
		axis, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}

		cells := []interface{}{p.Name, p.ID, string(p.Source), strings.Join(p.Tags, ", ")}
		values := colors.NormalizeAll(p.Colors)
		for _, v := range values {
			cells = append(cells, strings.ToUpper(v))
		}
		if err := f.SetSheetRow(SheetName, axis, &cells); err != nil {
			return fmt.Errorf("write palette %s: %w", p.ID, err)
		}

		for ci, v := range values {
			hex, err := colors.ToCanonicalHex(v)
			if err != nil {
				continue
			}
			style, ok := styles[hex]
			if !ok {
				style, err = f.NewStyle(&excelize.Style{
					Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(hex, "#")}},
					Font: &excelize.Font{Color: strings.TrimPrefix(colors.TextColorFor(hex), "#")},
				})
				if err != nil {
					return fmt.Errorf("create style %s: %w", hex, err)
				}
				styles[hex] = style
			}
			cell, err := excelize.CoordinatesToCellName(firstColorColumn+ci, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
				return fmt.Errorf("style %s: %w", cell, err)
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "B", 38); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// importXLSX reads the first sheet. A header row starting with "Name" is
// skipped; rows without a name are ignored.
func importXLSX(data []byte) ([]models.Palette, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var out []models.Palette
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), xlsxHeader[0]) {
			continue
		}

		p := models.Palette{Name: strings.TrimSpace(row[0])}
		if len(row) > 3 {
			for _, tag := range strings.Split(row[3], ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					p.Tags = append(p.Tags, tag)
				}
			}
		}
		for c := firstColorColumn - 1; c < len(row); c++ {
			if v := strings.TrimSpace(row[c]); v != "" {
				p.Colors = append(p.Colors, models.Color(v))
			}
		}
		out = append(out, p)
	}
	return out, nil
}

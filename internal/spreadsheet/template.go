package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sampleRows are fixed illustrative rows shipped with the template to
// teach the expected shape. The template is not a dump of current
// data.
var sampleRows = [][]string{
	{"", "Combate", "Lobos famintos cercam o acampamento durante a noite. Eles recuam se **metade da matilha** cair.", "20 moedas de prata", "Fácil", "Genérico"},
	{"", "Elite", "O necromante da torre anima os ossos do salão. Destruir o **filactério no trono** encerra o ritual.", "Cajado de osso", "Difícil", "Genérico"},
	{"", "Tesouro", "Sob as tábuas soltas do moinho há um esconderijo de contrabandistas.", "60 moedas de ouro", "", "Genérico"},
}

// WriteTemplate writes the import template workbook to path: a single
// "Events" sheet with the header row and the fixed sample rows.
func WriteTemplate(path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name template sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write template header: %w", err)
	}

	for i, row := range sampleRows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute template cell: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write template row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

package interfaces

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"theatre-billing/internal/theatre/application"
)

// BuildStatementPDF renders a statement as a one page PDF.
func BuildStatementPDF(stmt *application.Statement, money *MoneyFormatter) ([]byte, error) {
	if stmt == nil || money == nil {
		return nil, errors.New("statement pdf: nil statement or formatter")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; the translator maps symbols such as the euro sign.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, tr(fmt.Sprintf("Statement for %s", stmt.Customer)))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Statement: %s", stmt.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", stmt.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Currency: %s", money.Currency()))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Play", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Seats", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Credits", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, line := range stmt.Result.Lines {
		pdf.CellFormat(70, 6, tr(line.PlayName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", line.Audience), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, tr(money.Format(line.Amount)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", line.VolumeCredits), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Amount owed is %s", money.Format(stmt.Result.TotalAmount))))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("You earned %d credits", stmt.Result.TotalVolumeCredits))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildStatementXLSX renders a statement as a workbook with summary and items sheets.
// Amounts are written in minor units so the sheet stays integer-exact.
func BuildStatementXLSX(stmt *application.Statement, money *MoneyFormatter) ([]byte, error) {
	if stmt == nil || money == nil {
		return nil, errors.New("statement xlsx: nil statement or formatter")
	}
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	itemsSheet := "items"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Statement ID")
	_ = f.SetCellValue(summarySheet, "B3", stmt.ID)
	_ = f.SetCellValue(summarySheet, "A4", "Customer")
	_ = f.SetCellValue(summarySheet, "B4", stmt.Customer)
	_ = f.SetCellValue(summarySheet, "A5", "Generated")
	_ = f.SetCellValue(summarySheet, "B5", stmt.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A6", "Currency")
	_ = f.SetCellValue(summarySheet, "B6", money.Currency())
	_ = f.SetCellValue(summarySheet, "A7", "Total Amount (minor units)")
	_ = f.SetCellValue(summarySheet, "B7", stmt.Result.TotalAmount)
	_ = f.SetCellValue(summarySheet, "A8", "Amount Owed")
	_ = f.SetCellValue(summarySheet, "B8", money.Format(stmt.Result.TotalAmount))
	_ = f.SetCellValue(summarySheet, "A9", "Volume Credits")
	_ = f.SetCellValue(summarySheet, "B9", stmt.Result.TotalVolumeCredits)

	_ = f.SetCellValue(itemsSheet, "A1", "Play ID")
	_ = f.SetCellValue(itemsSheet, "B1", "Play")
	_ = f.SetCellValue(itemsSheet, "C1", "Genre")
	_ = f.SetCellValue(itemsSheet, "D1", "Seats")
	_ = f.SetCellValue(itemsSheet, "E1", "Amount (minor units)")
	_ = f.SetCellValue(itemsSheet, "F1", "Credits")
	for i, line := range stmt.Result.Lines {
		row := i + 2
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", row), line.PlayID)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("B%d", row), line.PlayName)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("C%d", row), string(line.Genre))
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("D%d", row), line.Audience)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("E%d", row), line.Amount)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("F%d", row), line.VolumeCredits)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

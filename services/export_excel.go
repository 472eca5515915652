package services

import (
	"bytes"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ExportColumn defines one column of an admin list export.
type ExportColumn struct {
	Header string
	Field  string  // field name on the record, or a computed key in the row map
	Width  float64 // column width in Excel units
}

// ListExportData holds everything needed to build an admin list workbook.
type ListExportData struct {
	Title   string
	Columns []ExportColumn
	Rows    []map[string]string
}

// MemberExportColumns is the column layout for membership exports.
var MemberExportColumns = []ExportColumn{
	{Header: "Membership ID", Field: "membership_id", Width: 22},
	{Header: "Full Name", Field: "full_name", Width: 28},
	{Header: "Father's Name", Field: "father_name", Width: 28},
	{Header: "Gender", Field: "gender", Width: 10},
	{Header: "Caste", Field: "caste", Width: 16},
	{Header: "Phone", Field: "phone", Width: 15},
	{Header: "Aadhaar", Field: "aadhar", Width: 16},
	{Header: "Village", Field: "village", Width: 20},
	{Header: "Mandal", Field: "mandal", Width: 20},
	{Header: "District", Field: "district", Width: 20},
	{Header: "State", Field: "state", Width: 18},
	{Header: "Status", Field: "status", Width: 12},
	{Header: "Registered", Field: "created", Width: 20},
}

// DonationExportColumns is the column layout for donation exports.
var DonationExportColumns = []ExportColumn{
	{Header: "Reference ID", Field: "reference_id", Width: 22},
	{Header: "Donor Name", Field: "donor_name", Width: 28},
	{Header: "Phone", Field: "phone", Width: 15},
	{Header: "Amount", Field: "_amount_inr", Width: 16},
	{Header: "Purpose", Field: "purpose", Width: 22},
	{Header: "District", Field: "district", Width: 20},
	{Header: "State", Field: "state", Width: 18},
	{Header: "Status", Field: "status", Width: 14},
	{Header: "Received", Field: "created", Width: 20},
}

// ComplaintExportColumns is the column layout for complaint exports.
var ComplaintExportColumns = []ExportColumn{
	{Header: "Reference ID", Field: "reference_id", Width: 22},
	{Header: "Name", Field: "full_name", Width: 28},
	{Header: "Phone", Field: "phone", Width: 15},
	{Header: "Subject", Field: "subject", Width: 30},
	{Header: "Description", Field: "description", Width: 50},
	{Header: "Mandal", Field: "mandal", Width: 20},
	{Header: "District", Field: "district", Width: 20},
	{Header: "State", Field: "state", Width: 18},
	{Header: "Status", Field: "status", Width: 14},
	{Header: "Submitted", Field: "created", Width: 20},
}

// RecordExportRow flattens a record into the field -> value map the workbook
// builder consumes. Donation amounts get a formatted "_amount_inr" key.
func RecordExportRow(record *core.Record, columns []ExportColumn) map[string]string {
	row := make(map[string]string, len(columns))
	for _, col := range columns {
		if col.Field == "_amount_inr" {
			row[col.Field] = FormatINR(record.GetFloat("amount"))
			continue
		}
		row[col.Field] = record.GetString(col.Field)
	}
	return row
}

// GenerateListExcel creates a styled workbook from admin list data.
func GenerateListExcel(data ListExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		Alignment: &excelize.Alignment{
			Vertical: "center",
			WrapText: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create data style: %w", err)
	}

	for i, col := range data.Columns {
		letter := excelColName(i)
		f.SetColWidth(sheetName, letter, letter, col.Width)
	}

	lastCol := excelColName(len(data.Columns) - 1)

	// Row 1: title, row 2: record count, row 4: headers, data from row 5.
	f.MergeCell(sheetName, "A1", lastCol+"1")
	f.SetCellValue(sheetName, "A1", OrgName+" - "+data.Title)
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	f.MergeCell(sheetName, "A2", lastCol+"2")
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Total: %d records", len(data.Rows)))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	for i, col := range data.Columns {
		f.SetCellValue(sheetName, fmt.Sprintf("%s4", excelColName(i)), col.Header)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      4,
		TopLeftCell: "A5",
		ActivePane:  "bottomLeft",
	})

	for rowIdx, rowData := range data.Rows {
		rowStr := fmt.Sprintf("%d", rowIdx+5)
		for colIdx, col := range data.Columns {
			cell := excelColName(colIdx) + rowStr
			f.SetCellValue(sheetName, cell, sanitizeExcelCell(rowData[col.Field]))
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, dataStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// excelColName converts a 0-based column index to an Excel column letter
// (A, B, ..., Z, AA, ...).
func excelColName(index int) string {
	name := ""
	for index >= 0 {
		name = string(rune('A'+index%26)) + name
		index = index/26 - 1
	}
	return name
}

// sanitizeExcelCell guards against spreadsheet formula injection by prefixing
// values that would otherwise be interpreted as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}

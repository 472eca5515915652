package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateListExcel(t *testing.T) {
	data := ListExportData{
		Title:   "Members",
		Columns: MemberExportColumns,
		Rows: []map[string]string{
			{
				"membership_id": "SNG-MEM-25-26-0001",
				"full_name":     "Ravi Kumar",
				"phone":         "9876543210",
				"district":      "Rangareddy",
				"state":         "Telangana",
				"status":        "approved",
			},
			{
				"membership_id": "SNG-MEM-25-26-0002",
				"full_name":     "Lakshmi Devi",
				"phone":         "8765432109",
				"status":        "pending",
			},
		},
	}

	out, err := GenerateListExcel(data)
	if err != nil {
		t.Fatalf("GenerateListExcel failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "Members" {
		t.Errorf("sheet name = %q, want Members", sheet)
	}

	// Headers live on row 4, data from row 5.
	header, err := f.GetCellValue(sheet, "A4")
	if err != nil || header != "Membership ID" {
		t.Errorf("A4 = %q (%v), want Membership ID", header, err)
	}
	first, _ := f.GetCellValue(sheet, "A5")
	if first != "SNG-MEM-25-26-0001" {
		t.Errorf("A5 = %q, want first membership id", first)
	}
	name, _ := f.GetCellValue(sheet, "B6")
	if name != "Lakshmi Devi" {
		t.Errorf("B6 = %q, want Lakshmi Devi", name)
	}
}

func TestGenerateListExcelSanitizesFormulas(t *testing.T) {
	data := ListExportData{
		Title:   "Complaints",
		Columns: []ExportColumn{{Header: "Subject", Field: "subject", Width: 30}},
		Rows:    []map[string]string{{"subject": "=HYPERLINK(\"http://evil\")"}},
	}

	out, err := GenerateListExcel(data)
	if err != nil {
		t.Fatalf("GenerateListExcel failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	v, _ := f.GetCellValue(f.GetSheetName(0), "A5")
	if len(v) == 0 || v[0] == '=' {
		t.Errorf("formula value was not sanitized: %q", v)
	}
}

func TestExcelColName(t *testing.T) {
	cases := []struct {
		idx  int
		want string
	}{{0, "A"}, {1, "B"}, {25, "Z"}, {26, "AA"}, {27, "AB"}}
	for _, c := range cases {
		if got := excelColName(c.idx); got != c.want {
			t.Errorf("excelColName(%d) = %q, want %q", c.idx, got, c.want)
		}
	}
}

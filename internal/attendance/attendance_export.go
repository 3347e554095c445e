package attendance

import (
	"bytes"
	"strings"

	"go-attendance/internal/shared/clock"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const exportSheet = "Attendance"

var exportColumns = []struct {
	key   string
	width float64
}{
	{"date", 12},
	{"employee_id", 16},
	{"employee_name", 32},
	{"status", 10},
}

// formatHeader: employee_name -> Employee Name
func formatHeader(key string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(key, "_", " "))
}

func buildWorkbook(rows []Attendance) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, 0, len(exportColumns))
	for i, col := range exportColumns {
		header = append(header, formatHeader(col.key))
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, name, name, col.width); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	if err := f.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, a := range rows {
		var employeeID, employeeName string
		if a.Employee != nil {
			employeeID = a.Employee.Code
			employeeName = a.Employee.FullName
		}
		row := []interface{}{a.Date.Format(clock.DateLayout), employeeID, employeeName, a.Status}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

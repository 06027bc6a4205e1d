// Package output serializes extraction results and operation reports to JSON.
package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
)

// ToJSON serializes workbook data.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes a single sheet.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// ReportToJSON serializes an operation report.
func ReportToJSON(report *models.Report, pretty bool) ([]byte, error) {
	return marshal(report, pretty)
}

// ReportsToJSON serializes the reports of a job file run as an array.
func ReportsToJSON(reports []models.Report, pretty bool) ([]byte, error) {
	if reports == nil {
		reports = []models.Report{}
	}
	return marshal(reports, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// Package export renders recruiter views as spreadsheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/xuri/excelize/v2"
)

const candidatesSheet = "Candidates"

var candidateHeaders = []string{"Application", "Job ID", "Job Title", "Company", "Candidate", "Status", "Applied", "AI Score", "Referral Bonus"}

// CandidatesWorkbook returns an .xlsx document with one row per candidate, in
// the order given.
func CandidatesWorkbook(candidates []models.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", candidatesSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	f.SetColWidth(candidatesSheet, "A", "B", 12)
	f.SetColWidth(candidatesSheet, "C", "E", 28)
	f.SetColWidth(candidatesSheet, "F", "I", 14)

	for col, header := range candidateHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(candidatesSheet, cell, header)
	}
	f.SetCellStyle(candidatesSheet, "A1", "I1", headerStyle)

	for i, c := range candidates {
		row := []any{c.ID, c.JobID, c.JobTitle, c.Company, c.UserEmail, string(c.Status), c.Date, c.AIScore, c.ReferralBonus}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(candidatesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

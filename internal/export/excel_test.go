package export

import (
	"bytes"
	"testing"

	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/xuri/excelize/v2"
)

func TestCandidatesWorkbook(t *testing.T) {
	cands := []models.Candidate{
		{Application: models.Application{ID: 2, JobID: 7, UserEmail: "b@example.com", JobTitle: "SRE", Company: "Acme", Status: "Interview", Date: "2024-05-02", AIScore: 91}, ReferralBonus: 100},
		{Application: models.Application{ID: 1, JobID: 7, UserEmail: "a@example.com", JobTitle: "SRE", Company: "Acme", Status: models.StatusReceived, Date: "2024-05-01", AIScore: 72}},
	}

	b, err := CandidatesWorkbook(cands)
	if err != nil {
		t.Fatalf("CandidatesWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(candidatesSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Application" || rows[0][8] != "Referral Bonus" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][4] != "b@example.com" || rows[1][5] != "Interview" || rows[1][7] != "91" || rows[1][8] != "100" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
	if rows[2][4] != "a@example.com" || rows[2][5] != "Received" {
		t.Fatalf("unexpected second row %v", rows[2])
	}
}

func TestCandidatesWorkbook_Empty(t *testing.T) {
	b, err := CandidatesWorkbook(nil)
	if err != nil {
		t.Fatalf("CandidatesWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(candidatesSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header row only, got %d rows", len(rows))
	}
}

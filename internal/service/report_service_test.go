package service

import (
	"context"
	"testing"
	"time"
)

func reportInput() ReportInput {
	return ReportInput{
		ClientName:      "Raymond Gray Holdings",
		SiteAddress:     "14 Harbour View Rd",
		MeetingDate:     time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC),
		Summary:         "Walkthrough of the chiller plant.",
		Recommendations: "Replace the condenser fan motors.",
	}
}

func TestReportCRUD(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	created, err := svc.CreateReport(ctx, "admin-1", reportInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" || created.CreatedBy != "admin-1" {
		t.Fatalf("report not persisted with author: %+v", created)
	}

	fetched, err := svc.GetReport(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if fetched.ClientName != "Raymond Gray Holdings" {
		t.Fatalf("unexpected client name %q", fetched.ClientName)
	}

	input := reportInput()
	input.Summary = "Walkthrough plus roof inspection."
	updated, err := svc.UpdateReport(ctx, created.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Summary != "Walkthrough plus roof inspection." {
		t.Fatalf("update not applied: %q", updated.Summary)
	}

	reports, err := svc.ListReports(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	if err := svc.DeleteReport(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	_, err = svc.GetReport(ctx, created.ID)
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestReportValidation(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	input := reportInput()
	input.ClientName = "   "
	_, err := svc.CreateReport(ctx, "admin-1", input)
	assertErrorCode(t, err, "VALIDATION_FAILED")

	input = reportInput()
	input.Summary = ""
	_, err = svc.CreateReport(ctx, "admin-1", input)
	assertErrorCode(t, err, "VALIDATION_FAILED")

	input = reportInput()
	input.MeetingDate = time.Time{}
	_, err = svc.CreateReport(ctx, "admin-1", input)
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestReportOperationsOnMissingID(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())
	ctx := context.Background()

	_, err := svc.UpdateReport(ctx, "missing", reportInput())
	assertErrorCode(t, err, "NOT_FOUND")

	err = svc.DeleteReport(ctx, "missing")
	assertErrorCode(t, err, "NOT_FOUND")
}

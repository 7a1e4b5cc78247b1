package posting

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedNow(t *testing.T) {
	t.Helper()
	previous := now
	now = func() time.Time { return time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { now = previous })
}

func TestDecodeDefaults(t *testing.T) {
	fixedNow(t)

	p, err := Decode(map[string]any{
		"title":          "Go Developer",
		"company":        "Acme",
		"salary":         85000.0,
		"matching_score": 42.0,
		"extra":          "ignored",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uuid.Parse(p.ID); err != nil {
		t.Fatalf("expected generated uuid, got %q", p.ID)
	}
	if p.DateFound != "2024-03-09" {
		t.Fatalf("unexpected date_found: %q", p.DateFound)
	}
	if p.Status != StatusNotApplied {
		t.Fatalf("unexpected status: %q", p.Status)
	}
	if p.Salary != "85000" {
		t.Fatalf("unexpected salary: %q", p.Salary)
	}
	if p.MatchingScore != 42 {
		t.Fatalf("unexpected matching score: %d", p.MatchingScore)
	}
}

func TestDecodeKeepsProvidedValues(t *testing.T) {
	p, err := Decode(map[string]any{
		"id":         "job-1",
		"date_found": "2023-01-01",
		"status":     StatusApplied,
		"salary":     map[string]any{"min": 90000, "max": 120000, "currency": nil},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.ID != "job-1" || p.DateFound != "2023-01-01" || p.Status != StatusApplied {
		t.Fatalf("provided values were replaced: %+v", p)
	}
	if p.Salary != "max 120000 min 90000" {
		t.Fatalf("unexpected flattened salary: %q", p.Salary)
	}
}

func TestExcludeKeepsOrder(t *testing.T) {
	postings := &Postings{Items: []*Posting{
		{ID: "1", Company: "Acme"},
		{ID: "2", Company: "Globex"},
		{ID: "3", Company: "acme"},
		{ID: "4", Company: "Initech"},
	}}

	removed := postings.Exclude(CompanyField, []string{"ACME "})

	if !slices.Equal(removed, []string{"1", "3"}) {
		t.Fatalf("unexpected removed ids: %v", removed)
	}
	if !slices.Equal(postings.IDs(), []string{"2", "4"}) {
		t.Fatalf("unexpected remaining ids: %v", postings.IDs())
	}
	if postings.Exclude(IDField, nil) != nil {
		t.Fatalf("expected nothing removed for empty targets")
	}
}

func TestCollectionToleratesNilPostings(t *testing.T) {
	postings := &Postings{Items: []*Posting{nil, {ID: "1", Company: "Acme"}, {ID: "2"}}}

	removed := postings.Exclude(CompanyField, []string{"acme", ""})
	if !slices.Equal(removed, []string{"1", "2"}) {
		t.Fatalf("unexpected removed ids: %v", removed)
	}
	if postings.Len() != 1 || postings.Items[0] != nil {
		t.Fatalf("expected only the nil entry to remain, got %v", postings.Items)
	}
	if len(postings.IDs()) != 0 || postings.FindByID("") != nil {
		t.Fatalf("nil entries must be invisible to lookups")
	}
	if len(postings.ReportByCompany()) != 0 || len(postings.ToExcluded("x").Items) != 0 {
		t.Fatalf("nil entries must not be reported")
	}
}

func TestExcludedFileRoundTrip(t *testing.T) {
	fixedNow(t)
	path := filepath.Join(t.TempDir(), "exclude.json")

	excluded, err := GetExcludedFromFile(path)
	if err != nil {
		t.Fatalf("missing file must be an empty list: %v", err)
	}
	if len(excluded.Items) != 0 {
		t.Fatalf("expected empty list, got %d", len(excluded.Items))
	}

	postings := &Postings{Items: []*Posting{{ID: "a", URL: "https://example.com/a", Company: "Acme"}}}
	excluded.Append(postings.ToExcluded("not interested"))
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("writing exclude file: %v", err)
	}

	loaded, err := GetExcludedFromFile(path)
	if err != nil {
		t.Fatalf("reading exclude file: %v", err)
	}
	if !slices.Equal(loaded.IDs(), []string{"a"}) {
		t.Fatalf("unexpected ids: %v", loaded.IDs())
	}
	if loaded.Items[0].Reason != "not interested" || loaded.Items[0].Company != "Acme" {
		t.Fatalf("unexpected entry: %+v", loaded.Items[0])
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postings.json")
	content := `[
  {"id": "1", "title": "Backend Engineer", "location": "New York, NY", "salary": "$120,000"},
  {"title": "Data Analyst", "salary": 31}
]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing postings: %v", err)
	}

	postings, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if postings.Len() != 2 {
		t.Fatalf("expected 2 postings, got %d", postings.Len())
	}
	if postings.FindByID("1") == nil {
		t.Fatalf("expected posting 1 to be found")
	}
	if postings.Items[1].Salary != "31" || postings.Items[1].ID == "" {
		t.Fatalf("unexpected second posting: %+v", postings.Items[1])
	}
}

func TestReportByCompany(t *testing.T) {
	postings := &Postings{Items: []*Posting{
		{ID: "1", Title: "Go Developer", Company: "Acme", FilterMatchScore: 2, FilterMatchReasons: []string{"Location match", "Salary meets minimum requirement"}},
		{ID: "2", Title: "SRE"},
	}}

	report := postings.ReportByCompany()

	entries, ok := report["Acme"]
	if !ok || len(entries) != 1 {
		t.Fatalf("expected one Acme entry, got %v", report)
	}
	if entries[0]["filter_match_reasons"] != "Location match; Salary meets minimum requirement" {
		t.Fatalf("unexpected reasons: %q", entries[0]["filter_match_reasons"])
	}
	if _, ok := report["Unknown Company"]; !ok {
		t.Fatalf("expected postings without company to be grouped")
	}
}

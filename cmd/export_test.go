package cmd

import (
	"bytes"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"recruitflow/internal/usecase/review"
)

func seqOf(rows []review.ExportRow, tailErr error) iter.Seq2[review.ExportRow, error] {
	return func(yield func(review.ExportRow, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
		if tailErr != nil {
			yield(review.ExportRow{}, tailErr)
		}
	}
}

func TestWriteExportCSV(t *testing.T) {
	total := 240
	rows := []review.ExportRow{
		{ApplicationID: 2, PostingTitle: "Backend, Go", Name: "Kim", Email: "kim@example.com", StatusLabel: "First pass", LatestTotal: &total},
		{ApplicationID: 1, PostingTitle: "Backend, Go", Name: "Lee", Email: "lee@example.com", StatusLabel: "Submitted"},
	}

	var buf bytes.Buffer
	count, err := writeExportCSV(&buf, seqOf(rows, nil))
	if err != nil {
		t.Fatalf("writeExportCSV() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3: %q", len(lines), buf.String())
	}
	if lines[0] != strings.Join(review.ExportColumns, ",") {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != `2,"Backend, Go",Kim,kim@example.com,,First pass,,240` {
		t.Fatalf("row 1 = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",Submitted,,") {
		t.Fatalf("row 2 = %q, want empty latest total", lines[2])
	}
}

func TestWriteExportCSVStopsOnError(t *testing.T) {
	boom := errors.New("boom")

	var buf bytes.Buffer
	count, err := writeExportCSV(&buf, seqOf([]review.ExportRow{{ApplicationID: 1}}, boom))
	if !errors.Is(err, boom) {
		t.Fatalf("writeExportCSV() error = %v, want boom", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestWriteExportTable(t *testing.T) {
	var buf bytes.Buffer
	count, err := writeExportTable(&buf, seqOf([]review.ExportRow{{ApplicationID: 7, Name: "Park", StatusLabel: "Rejected"}}, nil))
	if err != nil {
		t.Fatalf("writeExportTable() error = %v", err)
	}
	if count != 1 || !strings.Contains(buf.String(), "Park") || !strings.Contains(buf.String(), "Rejected") {
		t.Fatalf("table output = %q", buf.String())
	}
}

func TestParseAttachments(t *testing.T) {
	got, err := parseAttachments([]string{"cv.pdf=https://files/cv.pdf", " portfolio = https://files/p.pdf "})
	if err != nil {
		t.Fatalf("parseAttachments() error = %v", err)
	}
	if len(got) != 2 || got[1].Name != "portfolio" || got[1].URL != "https://files/p.pdf" {
		t.Fatalf("parseAttachments() = %+v", got)
	}

	if _, err := parseAttachments([]string{"no-separator"}); err == nil {
		t.Fatalf("parseAttachments() error = nil, want error")
	}
}

func TestFilterFromFlags(t *testing.T) {
	c := &cobra.Command{Use: "probe"}
	addFilterFlags(c)
	if err := c.Flags().Parse([]string{"--status", "submitted,first_pass", "--posting", "3,4"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	filter, err := filterFromFlags(c)
	if err != nil {
		t.Fatalf("filterFromFlags() error = %v", err)
	}
	if len(filter.Statuses) != 2 || len(filter.PostingIDs) != 2 || filter.PostingIDs[1] != 4 {
		t.Fatalf("filter = %+v", filter)
	}

	bad := &cobra.Command{Use: "probe"}
	addFilterFlags(bad)
	if err := bad.Flags().Parse([]string{"--posting", "x"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := filterFromFlags(bad); err == nil {
		t.Fatalf("filterFromFlags() error = nil, want error")
	}
}

func TestStatusLabel(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	if got := statusLabel("final_pass"); got != "Final pass" {
		t.Fatalf("statusLabel(final_pass) = %q", got)
	}
	if got := statusLabel("mystery"); got != "mystery" {
		t.Fatalf("statusLabel(mystery) = %q", got)
	}
}

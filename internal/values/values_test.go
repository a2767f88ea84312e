package values

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/username/invoice-maker/internal/invoice"
)

func writeValues(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing values file: %v", err)
	}
	return path
}

const sampleValues = `
"2024-01-31":
  work:
    - description: Consulting
      rate: "100.00"
  billables:
    - description: Server hosting
      amount: "25.00"
  days_off:
    - "2024-01-15"
  work_done:
    - work: upgraded the fleet to bookworm
    - work: tuned backup schedules
`

func TestLoadParsesEntry(t *testing.T) {
	entries, err := Load(writeValues(t, sampleValues))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	entry := entries[0]
	if entry.Billdate != "2024-01-31" {
		t.Errorf("Billdate = %q, want 2024-01-31", entry.Billdate)
	}

	if len(entry.Work) != 1 || entry.Work[0].Description != "Consulting" ||
		entry.Work[0].Rate != "100.00" {
		t.Fatalf("Work = %+v, want one Consulting item at 100.00", entry.Work)
	}

	if len(entry.Billables) != 1 || entry.Billables[0].Description != "Server hosting" ||
		entry.Billables[0].Amount != "25.00" {
		t.Fatalf("Billables = %+v, want one hosting item at 25.00", entry.Billables)
	}

	if len(entry.DaysOff) != 1 || entry.DaysOff[0] != "2024-01-15" {
		t.Errorf("DaysOff = %+v, want [2024-01-15]", entry.DaysOff)
	}

	if len(entry.WorkDone) != 2 || entry.WorkDone[0] != "upgraded the fleet to bookworm" {
		t.Errorf("WorkDone = %+v, want two notes", entry.WorkDone)
	}
}

func TestLoadSortsEntriesByBilldate(t *testing.T) {
	content := `
"2024-03-31":
  work:
    - description: Consulting
      rate: "100.00"
"2024-01-31":
  work:
    - description: Consulting
      rate: "100.00"
"2024-02-29":
  work:
    - description: Consulting
      rate: "100.00"
`
	entries, err := Load(writeValues(t, content))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	for i := 1; i < len(entries); i++ {
		if entries[i-1].Billdate >= entries[i].Billdate {
			t.Errorf("entries not sorted: %q before %q",
				entries[i-1].Billdate, entries[i].Billdate)
		}
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bad billdate key",
			content: `
"january 2024":
  work:
    - description: Consulting
      rate: "100.00"
`,
		},
		{
			name: "billdate not the last day of its month",
			content: `
"2024-01-30":
  work:
    - description: Consulting
      rate: "100.00"
`,
		},
		{
			name: "bad days_off date",
			content: `
"2024-01-31":
  work:
    - description: Consulting
      rate: "100.00"
  days_off:
    - "15"
`,
		},
		{
			name:    "empty file",
			content: "",
		},
		{
			name:    "not yaml at all",
			content: "{{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeValues(t, tt.content))

			if err == nil {
				t.Fatal("Load succeeded, want ValidationError")
			}
			if !errors.Is(err, invoice.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestLoadMissingFileIsIOError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	if err == nil {
		t.Fatal("Load succeeded, want IOError")
	}
	if !errors.Is(err, invoice.ErrIO) {
		t.Errorf("error = %v, want ErrIO", err)
	}
}

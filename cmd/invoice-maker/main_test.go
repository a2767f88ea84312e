package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/username/invoice-maker/internal/invoice"
	"github.com/username/invoice-maker/internal/values"
	"go.uber.org/zap"
)

const testTemplate = `billdate: "%(BILLDATE)s"

business:
  name: Example Consulting LLC
  person: Sam Smith
  address: 123 Any Street, Sometown

bill_to:
  email: accounts@bigcorp.example
  name: BigCorp Inc
  street: 1 Corporate Way
  city_state_zip: Metropolis, NY 10001
  country: USA

bill:
  department: Engineering
  currency: USD
  payment_terms: Net 30

%(WORK)s
%(BILLABLES)s
tax_details:
  default_percentage: 2
  tax_name: VAT

app_config:
  output_dir: OUTPUT_DIR
`

func testEntry() values.Entry {
	return values.Entry{
		Billdate: "2024-01-31",
		Work: []values.WorkLine{
			{Description: "Consulting", Rate: "100.00"},
		},
		DaysOff:  []string{"2024-01-15"},
		WorkDone: []string{"upgraded the fleet"},
	}
}

func replaceOutputDir(tpl, dir string) string {
	return strings.Replace(tpl, "OUTPUT_DIR", dir, 1)
}

func TestGenerateEndToEnd(t *testing.T) {
	logger = zap.NewNop()
	outputDir := t.TempDir()

	outPath, err := generate(replaceOutputDir(testTemplate, outputDir), testEntry())
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}

	if filepath.Base(outPath) != "invoice_Jan312024.pdf" {
		t.Errorf("output file = %q, want invoice_Jan312024.pdf", filepath.Base(outPath))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading rendered PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with %PDF header")
	}
}

func TestGenerateBadBilldateFails(t *testing.T) {
	logger = zap.NewNop()
	outputDir := t.TempDir()

	entry := testEntry()
	entry.Billdate = "2024-01-30" // not the last day of the month

	_, err := generate(replaceOutputDir(testTemplate, outputDir), entry)

	if err == nil {
		t.Fatal("generate succeeded, want ValidationError")
	}
	if !errors.Is(err, invoice.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}

	// no PDF may be produced on failure
	matches, _ := filepath.Glob(filepath.Join(outputDir, "*.pdf"))
	if len(matches) != 0 {
		t.Errorf("found PDFs after failed generation: %v", matches)
	}
}

func TestGenerateNonNumericRateFails(t *testing.T) {
	logger = zap.NewNop()

	entry := testEntry()
	entry.Work[0].Rate = "a lot"

	_, err := generate(replaceOutputDir(testTemplate, t.TempDir()), entry)

	if err == nil {
		t.Fatal("generate succeeded, want ValidationError")
	}
	if !errors.Is(err, invoice.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// Package template performs the textual half of the invoice pipeline.
// The values file supplies one entry per billing month; this package
// splices that entry into the YAML template through its %(BILLDATE)s,
// %(WORK)s and %(BILLABLES)s markers. The completed document is ordinary
// YAML, parsed by the config package, and only then does the core consume
// the structured work and billable lists.
package template

import (
	"fmt"
	"os"
	"strings"

	"github.com/username/invoice-maker/internal/invoice"
	"github.com/username/invoice-maker/internal/values"
	"gopkg.in/yaml.v3"
)

const (
	markerBilldate  = "%(BILLDATE)s"
	markerWork      = "%(WORK)s"
	markerBillables = "%(BILLABLES)s"
)

type workNote struct {
	Work string `yaml:"work"`
}

// workSection becomes the work-calendar block of the completed document:
// the hourly items, the free-text notes, and the days off
type workSection struct {
	Work     []values.WorkLine `yaml:"work,omitempty"`
	WorkDone []workNote        `yaml:"work_done,omitempty"`
	DaysOff  []string          `yaml:"days_off,omitempty"`
}

type billablesSection struct {
	Billables []values.BillableLine `yaml:"billables,omitempty"`
}

// LoadFile reads the template text from disk
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading template %s: %v", invoice.ErrIO, path, err)
	}
	return string(data), nil
}

// Render substitutes the three markers with the entry's data and returns
// the completed YAML document. %(WORK)s and %(BILLABLES)s expand to
// top-level YAML blocks and must sit alone at column 0; %(BILLDATE)s is a
// scalar and may appear inline (typically "billdate: %(BILLDATE)s"). A
// template without markers passes through unchanged.
func Render(templateText string, entry values.Entry) (string, error) {
	work := workSection{
		Work:    entry.Work,
		DaysOff: entry.DaysOff,
	}
	for _, note := range entry.WorkDone {
		work.WorkDone = append(work.WorkDone, workNote{Work: note})
	}
	workYAML, err := marshalSection(work, len(entry.Work)+len(entry.WorkDone)+len(entry.DaysOff))
	if err != nil {
		return "", fmt.Errorf("marshaling work section: %w", err)
	}

	billablesYAML, err := marshalSection(billablesSection{Billables: entry.Billables}, len(entry.Billables))
	if err != nil {
		return "", fmt.Errorf("marshaling billables section: %w", err)
	}

	replacer := strings.NewReplacer(
		markerBilldate, entry.Billdate,
		markerWork, workYAML,
		markerBillables, billablesYAML,
	)

	return replacer.Replace(templateText), nil
}

// marshalSection yaml-encodes a block, or yields an empty string when the
// section has no content (an empty struct would marshal to "{}", which is
// not splicable between top-level keys).
func marshalSection(section interface{}, size int) (string, error) {
	if size == 0 {
		return "", nil
	}
	out, err := yaml.Marshal(section)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

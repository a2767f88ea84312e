// Package values loads the per-month billing values file: a YAML map
// keyed by billing date, each entry holding the work and billable items,
// days off, and free-text work notes for one invoice. Values stay in
// their wire form here; the config package turns them into typed items
// after template substitution.
package values

import (
	"fmt"
	"os"
	"sort"

	"github.com/username/invoice-maker/internal/invoice"
	"github.com/username/invoice-maker/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// WorkLine is one hourly item as written in the values file
type WorkLine struct {
	Description string `yaml:"description"`
	Rate        string `yaml:"rate"`
}

// BillableLine is one flat-amount item as written in the values file
type BillableLine struct {
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
}

// Entry is the input for one billing month
type Entry struct {
	Billdate  string
	Work      []WorkLine
	Billables []BillableLine
	DaysOff   []string
	WorkDone  []string
}

type rawEntry struct {
	Work      []WorkLine     `yaml:"work"`
	Billables []BillableLine `yaml:"billables"`
	DaysOff   []string       `yaml:"days_off"`
	WorkDone  []struct {
		Work string `yaml:"work"`
	} `yaml:"work_done"`
}

// Load reads and validates a values file. Dates are checked eagerly so a
// malformed file fails before any template work begins. Entries come back
// sorted by billing date so a multi-month file generates invoices in a
// stable order.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading values file %s: %v", invoice.ErrIO, path, err)
	}

	var raw map[string]rawEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing values file %s: %v", invoice.ErrValidation, path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: values file %s has no billing entries", invoice.ErrValidation, path)
	}

	entries := make([]Entry, 0, len(raw))
	for billdate, rawEnt := range raw {
		entry, err := convert(billdate, rawEnt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Billdate < entries[j].Billdate
	})

	return entries, nil
}

func convert(billdate string, raw rawEntry) (Entry, error) {
	billingDate, err := dateutil.ParseDate(billdate)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: billdate key: %v", invoice.ErrValidation, err)
	}
	if !dateutil.IsEndOfMonth(billingDate) {
		return Entry{}, fmt.Errorf("%w: billdate %s is not the last day of its month",
			invoice.ErrValidation, billdate)
	}

	for _, dayOff := range raw.DaysOff {
		if _, err := dateutil.ParseDate(dayOff); err != nil {
			return Entry{}, fmt.Errorf("%w: days_off for %s: %v",
				invoice.ErrValidation, billdate, err)
		}
	}

	entry := Entry{
		Billdate:  billdate,
		Work:      raw.Work,
		Billables: raw.Billables,
		DaysOff:   raw.DaysOff,
	}
	for _, wd := range raw.WorkDone {
		entry.WorkDone = append(entry.WorkDone, wd.Work)
	}

	return entry, nil
}

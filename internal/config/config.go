package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/username/invoice-maker/internal/calendar"
	"github.com/username/invoice-maker/internal/invoice"
	"github.com/username/invoice-maker/pkg/dateutil"
)

// Defaults applied when the template omits optional settings
const (
	DefaultCurrencyMarker = "$"
	DefaultTaxName        = "Tax"
	DefaultOutputDir      = "./billed"
	DefaultSansFont       = "Helvetica"
	DefaultSerifFont      = "Times"
	DefaultPaymentTerms   = "Net 30"
)

// Config represents one completed invoice document: the template fields
// plus the values spliced in for a single billing month.
type Config struct {
	Billdate       string           `mapstructure:"billdate"`
	Business       BusinessConfig   `mapstructure:"business"`
	BillTo         BillToConfig     `mapstructure:"bill_to"`
	Bill           BillConfig       `mapstructure:"bill"`
	Work           []WorkConfig     `mapstructure:"work"`
	Billables      []BillableConfig `mapstructure:"billables"`
	DaysOff        []string         `mapstructure:"days_off"`
	WorkDone       []WorkNote       `mapstructure:"work_done"`
	TaxDetails     TaxConfig        `mapstructure:"tax_details"`
	CurrencyMarker string           `mapstructure:"currency_marker"`
	Colors         ColorsConfig     `mapstructure:"colors"`
	AppConfig      AppConfig        `mapstructure:"app_config"`
}

// BusinessConfig identifies the biller
type BusinessConfig struct {
	Name      string `mapstructure:"name"`
	Person    string `mapstructure:"person"`
	Address   string `mapstructure:"address"`
	ImageFile string `mapstructure:"image_file"`
}

// BillToConfig identifies the entity being billed
type BillToConfig struct {
	Email        string `mapstructure:"email"`
	Name         string `mapstructure:"name"`
	Street       string `mapstructure:"street"`
	CityStateZip string `mapstructure:"city_state_zip"`
	Country      string `mapstructure:"country"`
}

// BillConfig carries the billing terms shown on the invoice
type BillConfig struct {
	Department   string `mapstructure:"department"`
	Currency     string `mapstructure:"currency"`
	PaymentTerms string `mapstructure:"payment_terms"`
	DueDate      string `mapstructure:"due_date"`
}

// WorkConfig is one hourly work item
type WorkConfig struct {
	Description string `mapstructure:"description"`
	Rate        string `mapstructure:"rate"`
}

// BillableConfig is one flat-amount item
type BillableConfig struct {
	Description string `mapstructure:"description"`
	Amount      string `mapstructure:"amount"`
}

// WorkNote is one free-text line for the Work Details section
type WorkNote struct {
	Work string `mapstructure:"work"`
}

// TaxConfig represents the tax applied to the subtotal. The percentage is
// expressed as 0-100, so a value of 2 means 2%.
type TaxConfig struct {
	DefaultPercentage float64 `mapstructure:"default_percentage"`
	TaxName           string  `mapstructure:"tax_name"`
}

// RGB is a 0-255 color triple
type RGB struct {
	R int `mapstructure:"r"`
	G int `mapstructure:"g"`
	B int `mapstructure:"b"`
}

// ColorsConfig represents the invoice color theme
type ColorsConfig struct {
	ColorLight RGB `mapstructure:"color_light"`
	ColorDark  RGB `mapstructure:"color_dark"`
}

// AppConfig represents application-level settings
type AppConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	SansFont  string `mapstructure:"sans_font"`
	SerifFont string `mapstructure:"serif_font"`
	FontDir   string `mapstructure:"font_dir"`
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
}

// Parse reads a completed invoice document (template with values spliced
// in), applies defaults, computes the due date, and validates.
func Parse(completed string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(completed)); err != nil {
		return nil, fmt.Errorf("%w: parsing invoice document: %v", invoice.ErrValidation, err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling invoice document: %v", invoice.ErrValidation, err)
	}

	config.applyDefaults()

	if err := config.setDueDate(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.CurrencyMarker == "" {
		c.CurrencyMarker = DefaultCurrencyMarker
	}
	if c.TaxDetails.TaxName == "" {
		c.TaxDetails.TaxName = DefaultTaxName
	}
	if c.AppConfig.OutputDir == "" {
		c.AppConfig.OutputDir = DefaultOutputDir
	}
	if c.AppConfig.SansFont == "" {
		c.AppConfig.SansFont = DefaultSansFont
	}
	if c.AppConfig.SerifFont == "" {
		c.AppConfig.SerifFont = DefaultSerifFont
	}
	if c.Bill.PaymentTerms == "" {
		c.Bill.PaymentTerms = DefaultPaymentTerms
	}
	if (c.Colors.ColorLight == RGB{}) {
		c.Colors.ColorLight = RGB{R: 117, G: 180, B: 209}
	}
	if (c.Colors.ColorDark == RGB{}) {
		c.Colors.ColorDark = RGB{R: 16, G: 46, B: 95}
	}
}

// setDueDate derives bill.due_date from the payment terms: Net N means N
// days after the billing date, formatted YYYY/MM/DD.
func (c *Config) setDueDate() error {
	fields := strings.Fields(c.Bill.PaymentTerms)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "net") {
		return fmt.Errorf("%w: bad payment terms %q, want Net 30|60|90|120|180",
			invoice.ErrValidation, c.Bill.PaymentTerms)
	}

	var days int
	switch fields[1] {
	case "30", "60", "90", "120", "180":
		fmt.Sscanf(fields[1], "%d", &days)
	default:
		return fmt.Errorf("%w: bad payment terms %q, want Net 30|60|90|120|180",
			invoice.ErrValidation, c.Bill.PaymentTerms)
	}

	billdate, err := dateutil.ParseDate(c.Billdate)
	if err != nil {
		return fmt.Errorf("%w: billdate: %v", invoice.ErrValidation, err)
	}

	c.Bill.DueDate = billdate.AddDate(0, 0, days).Format("2006/01/02")
	return nil
}

// Validate checks the mandatory stanzas and value ranges
func (c *Config) Validate() error {
	if c.Billdate == "" {
		return fmt.Errorf("%w: billdate is required", invoice.ErrValidation)
	}
	if c.Business.Name == "" {
		return fmt.Errorf("%w: business.name is required", invoice.ErrValidation)
	}
	if c.Business.Person == "" {
		return fmt.Errorf("%w: business.person is required", invoice.ErrValidation)
	}
	if c.Business.Address == "" {
		return fmt.Errorf("%w: business.address is required", invoice.ErrValidation)
	}
	if c.BillTo.Name == "" {
		return fmt.Errorf("%w: bill_to.name is required", invoice.ErrValidation)
	}
	if c.Bill.Currency == "" {
		return fmt.Errorf("%w: bill.currency is required", invoice.ErrValidation)
	}

	if c.TaxDetails.DefaultPercentage < 0 || c.TaxDetails.DefaultPercentage > 100 {
		return fmt.Errorf("%w: tax_details.default_percentage %v is outside [0, 100]",
			invoice.ErrValidation, c.TaxDetails.DefaultPercentage)
	}

	for _, color := range []struct {
		name string
		rgb  RGB
	}{
		{"colors.color_light", c.Colors.ColorLight},
		{"colors.color_dark", c.Colors.ColorDark},
	} {
		for _, channel := range []int{color.rgb.R, color.rgb.G, color.rgb.B} {
			if channel < 0 || channel > 255 {
				return fmt.Errorf("%w: %s channel %d is outside [0, 255]",
					invoice.ErrValidation, color.name, channel)
			}
		}
	}

	if c.Business.ImageFile != "" {
		if _, err := os.Stat(c.Business.ImageFile); err != nil {
			return fmt.Errorf("%w: business.image_file %s: %v",
				invoice.ErrIO, c.Business.ImageFile, err)
		}
	}

	return nil
}

// BillingDate returns the parsed billing date
func (c *Config) BillingDate() (time.Time, error) {
	billdate, err := dateutil.ParseDate(c.Billdate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: billdate: %v", invoice.ErrValidation, err)
	}
	return billdate, nil
}

// WorkItems converts the work stanza into typed assembler input
func (c *Config) WorkItems() ([]invoice.WorkItem, error) {
	items := make([]invoice.WorkItem, 0, len(c.Work))
	for _, w := range c.Work {
		rate, err := decimal.NewFromString(w.Rate)
		if err != nil {
			return nil, fmt.Errorf("%w: rate %q for %q is not a number",
				invoice.ErrValidation, w.Rate, w.Description)
		}
		items = append(items, invoice.WorkItem{Description: w.Description, Rate: rate})
	}
	return items, nil
}

// BillableItems converts the billables stanza into typed assembler input
func (c *Config) BillableItems() ([]invoice.BillableItem, error) {
	items := make([]invoice.BillableItem, 0, len(c.Billables))
	for _, b := range c.Billables {
		amount, err := decimal.NewFromString(b.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q for %q is not a number",
				invoice.ErrValidation, b.Amount, b.Description)
		}
		items = append(items, invoice.BillableItem{Description: b.Description, Amount: amount})
	}
	return items, nil
}

// TaxSpec returns the tax specification for the assembler
func (c *Config) TaxSpec() invoice.TaxSpec {
	return invoice.TaxSpec{
		Percent: decimal.NewFromFloat(c.TaxDetails.DefaultPercentage),
		Name:    c.TaxDetails.TaxName,
	}
}

// DaysOffSet returns the days off as a calendar date set
func (c *Config) DaysOffSet() (calendar.DateSet, error) {
	set := calendar.NewDateSet()
	for _, dayOff := range c.DaysOff {
		date, err := dateutil.ParseDate(dayOff)
		if err != nil {
			return nil, fmt.Errorf("%w: days_off: %v", invoice.ErrValidation, err)
		}
		set.Add(date)
	}
	return set, nil
}

// WorkNotes returns the free-text work details lines
func (c *Config) WorkNotes() []string {
	notes := make([]string, 0, len(c.WorkDone))
	for _, note := range c.WorkDone {
		notes = append(notes, note.Work)
	}
	return notes
}

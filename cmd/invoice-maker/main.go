package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/invoice-maker/internal/calendar"
	"github.com/username/invoice-maker/internal/config"
	"github.com/username/invoice-maker/internal/invoice"
	"github.com/username/invoice-maker/internal/render"
	"github.com/username/invoice-maker/internal/template"
	"github.com/username/invoice-maker/internal/values"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	valuesPath   string
	templatePath string
	logger       *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "invoice-maker",
		Short: "Generate PDF invoices from YAML values and a template",
		Long: "Generate one-page PDF invoices from a small YAML values file " +
			"(work items, flat billables, days off) and a YAML template with " +
			"business branding and billing terms. One invoice is produced per " +
			"billing month in the values file.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger()
		},
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&valuesPath, "values", "v", "", "Path to YAML values file")
	rootCmd.Flags().StringVarP(&templatePath, "template", "t", "", "Path to invoice template file")
	rootCmd.MarkFlagRequired("values")
	rootCmd.MarkFlagRequired("template")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	entries, err := values.Load(valuesPath)
	if err != nil {
		return err
	}

	templateText, err := template.LoadFile(templatePath)
	if err != nil {
		return err
	}

	logger.Info("Generating invoices",
		zap.String("values", valuesPath),
		zap.String("template", templatePath),
		zap.Int("entries", len(entries)))

	for _, entry := range entries {
		outPath, err := generate(templateText, entry)
		if err != nil {
			return fmt.Errorf("invoice for %s: %w", entry.Billdate, err)
		}
		fmt.Printf("Wrote %s\n", outPath)
	}

	return nil
}

// generate runs the full pipeline for one billing month: splice the entry
// into the template, parse and validate the completed document, assemble
// the invoice, and render the PDF.
func generate(templateText string, entry values.Entry) (string, error) {
	completed, err := template.Render(templateText, entry)
	if err != nil {
		return "", err
	}

	cfg, err := config.Parse(completed)
	if err != nil {
		return "", err
	}

	// Once the document names a log file, route logs there with rotation
	if cfg.AppConfig.LogFile != "" {
		if fileLogger, err := initFileLogger(cfg.AppConfig.LogFile, cfg.AppConfig.LogLevel); err == nil {
			logger = fileLogger
		}
	}

	work, err := cfg.WorkItems()
	if err != nil {
		return "", err
	}
	billables, err := cfg.BillableItems()
	if err != nil {
		return "", err
	}
	daysOff, err := cfg.DaysOffSet()
	if err != nil {
		return "", err
	}
	billingDate, err := cfg.BillingDate()
	if err != nil {
		return "", err
	}

	monthInfo := calendar.MonthOf(billingDate, daysOff)
	logger.Info("Billing month computed",
		zap.String("billdate", entry.Billdate),
		zap.Int("billed_days", monthInfo.BilledDays),
		zap.Int("weekends", monthInfo.Weekends),
		zap.Int("days_off", monthInfo.DaysOff))

	inv, err := invoice.Assemble(work, billables, cfg.TaxSpec(), daysOff, billingDate)
	if err != nil {
		return "", err
	}
	inv.BusinessName = cfg.Business.Name
	inv.Terms = cfg.Bill.PaymentTerms

	logger.Info("Invoice assembled",
		zap.String("billdate", entry.Billdate),
		zap.Int("line_items", len(inv.LineItems)),
		zap.String("subtotal", invoice.FormatCents(inv.Subtotal)),
		zap.String("tax", invoice.FormatCents(inv.Tax)),
		zap.String("total", invoice.FormatCents(inv.Total)))

	renderer := render.New(render.ThemeFromConfig(cfg), logger)
	return renderer.Render(cfg, inv)
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Lumberjack handles rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"theatre-billing/internal/config"
	"theatre-billing/internal/observability/metrics"
	"theatre-billing/internal/theatre/application"
	"theatre-billing/internal/theatre/infrastructure/file"
	"theatre-billing/internal/theatre/interfaces"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if err := run(context.Background(), cfg, os.Stdout, logger); err != nil {
		logger.WithError(err).Error("statement run failed")
		os.Exit(1)
	}
}

func loadConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("theatre-billing", flag.ContinueOnError)
	configPath := fs.String("config", "", "yaml config file")
	invoices := fs.String("invoices", "", "invoices file (.json or .yaml)")
	plays := fs.String("plays", "", "plays catalog file (.json or .yaml)")
	outDir := fs.String("out", "", "output directory for exported statements")
	formats := fs.String("formats", "", "comma separated formats: text,pdf,xlsx")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if *configPath != "" {
		if err := cfg.MergeFile(*configPath); err != nil {
			return cfg, err
		}
	}
	if *invoices != "" {
		cfg.InvoicesPath = *invoices
	}
	if *plays != "" {
		cfg.PlaysPath = *plays
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *formats != "" {
		cfg.Formats = config.ParseFormats(*formats)
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config, stdout io.Writer, logger logrus.FieldLogger) error {
	metrics.Init()
	defer func() {
		if cfg.MetricsFile == "" {
			return
		}
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.WithError(err).Warn("metrics textfile write failed")
		}
	}()

	invoices, err := file.LoadInvoices(cfg.InvoicesPath)
	if err != nil {
		return err
	}
	catalog, err := file.LoadCatalog(cfg.PlaysPath)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"invoices": len(invoices), "plays": len(catalog)}).Debug("data loaded")

	money, err := interfaces.NewMoneyFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		return err
	}
	tpl := ""
	if cfg.TemplatePath != "" {
		data, err := os.ReadFile(cfg.TemplatePath)
		if err != nil {
			return err
		}
		tpl = string(data)
	}
	renderer, err := interfaces.NewTextRenderer(tpl, money)
	if err != nil {
		return err
	}

	service, err := application.NewStatementService(cfg.Rules(), application.WithPublisher(interfaces.NewLoggingPublisher(logger)))
	if err != nil {
		return err
	}
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return err
		}
	}

	for i, invoice := range invoices {
		stmt, err := service.Generate(ctx, invoice, catalog)
		if err != nil {
			return fmt.Errorf("invoice %d: %w", i, err)
		}
		if err := emit(stmt, cfg, renderer, money, stdout, logger); err != nil {
			return err
		}
	}
	return nil
}

func emit(stmt *application.Statement, cfg config.Config, renderer *interfaces.TextRenderer, money *interfaces.MoneyFormatter, stdout io.Writer, logger logrus.FieldLogger) error {
	for _, format := range cfg.Formats {
		start := time.Now()
		data, ext, err := export(stmt, format, renderer, money)
		if err != nil {
			metrics.ObserveStatementExport(format, metrics.ResultError, time.Since(start))
			return fmt.Errorf("export %s %s: %w", stmt.ID, format, err)
		}
		if format == config.FormatText {
			if _, err := stdout.Write(data); err != nil {
				metrics.ObserveStatementExport(format, metrics.ResultError, time.Since(start))
				return fmt.Errorf("write %s %s: %w", stmt.ID, format, err)
			}
		}
		if cfg.OutputDir != "" {
			path := filepath.Join(cfg.OutputDir, stmt.ID+"."+ext)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				metrics.ObserveStatementExport(format, metrics.ResultError, time.Since(start))
				return err
			}
			logger.WithFields(logrus.Fields{"statement_id": stmt.ID, "path": path}).Info("statement exported")
		}
		metrics.ObserveStatementExport(format, metrics.ResultSuccess, time.Since(start))
	}

	if cfg.SealSecret != "" {
		seal, err := interfaces.SealStatement(stmt, []byte(cfg.SealSecret))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(stdout, "Seal: %s\n", seal); err != nil {
			return err
		}
	}
	return nil
}

func export(stmt *application.Statement, format string, renderer *interfaces.TextRenderer, money *interfaces.MoneyFormatter) ([]byte, string, error) {
	switch format {
	case config.FormatText:
		text, err := renderer.Render(stmt.Result)
		return []byte(text), "txt", err
	case config.FormatPDF:
		data, err := interfaces.BuildStatementPDF(stmt, money)
		return data, "pdf", err
	case config.FormatXLSX:
		data, err := interfaces.BuildStatementXLSX(stmt, money)
		return data, "xlsx", err
	default:
		return nil, "", fmt.Errorf("unsupported format %q", format)
	}
}

package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	theatre "theatre-billing/internal/theatre/domain"
)

// Format identifies the encoding of a data file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("loader: unsupported format")

type performanceRecord struct {
	PlayID   string `json:"playID" yaml:"playID" validate:"required"`
	Audience int    `json:"audience" yaml:"audience" validate:"gte=0"`
}

type invoiceRecord struct {
	Customer     string              `json:"customer" yaml:"customer" validate:"required"`
	Performances []performanceRecord `json:"performances" yaml:"performances" validate:"dive"`
}

type playRecord struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Type string `json:"type" yaml:"type" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadInvoices reads invoices from a JSON or YAML file.
func LoadInvoices(path string) ([]theatre.Invoice, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	invoices, err := DecodeInvoices(f, format)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	return invoices, nil
}

// LoadCatalog reads a play catalog from a JSON or YAML file.
func LoadCatalog(path string) (theatre.Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	catalog, err := DecodeCatalog(f, format)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	return catalog, nil
}

// DecodeInvoices decodes and validates a list of invoices.
func DecodeInvoices(r io.Reader, format Format) ([]theatre.Invoice, error) {
	var records []invoiceRecord
	if err := decode(r, format, &records); err != nil {
		return nil, err
	}

	invoices := make([]theatre.Invoice, 0, len(records))
	for i, record := range records {
		if err := validate.Struct(record); err != nil {
			return nil, fmt.Errorf("invoice %d: %w", i, err)
		}
		invoice := theatre.Invoice{
			Customer:     record.Customer,
			Performances: make([]theatre.Performance, 0, len(record.Performances)),
		}
		for _, perf := range record.Performances {
			invoice.Performances = append(invoice.Performances, theatre.Performance{
				PlayID:   perf.PlayID,
				Audience: perf.Audience,
			})
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

// DecodeCatalog decodes and validates a play catalog keyed by play id.
// Genre tags are kept as-is; unknown genres fail later, at pricing time.
func DecodeCatalog(r io.Reader, format Format) (theatre.Catalog, error) {
	records := map[string]playRecord{}
	if err := decode(r, format, &records); err != nil {
		return nil, err
	}

	catalog := make(theatre.Catalog, len(records))
	for id, record := range records {
		if strings.TrimSpace(id) == "" {
			return nil, errors.New("catalog: empty play id")
		}
		if err := validate.Struct(record); err != nil {
			return nil, fmt.Errorf("play %s: %w", id, err)
		}
		catalog[id] = theatre.Play{Name: record.Name, Type: theatre.Genre(record.Type)}
	}
	return catalog, nil
}

func decode(r io.Reader, format Format, out any) error {
	switch format {
	case FormatJSON:
		return json.NewDecoder(r).Decode(out)
	case FormatYAML:
		return yaml.NewDecoder(r).Decode(out)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveStatementGenerate(t *testing.T) {
	Init()
	before := testutil.ToFloat64(statementGenerateTotal.WithLabelValues(ResultError))

	ObserveStatementGenerate(ResultError, 5*time.Millisecond)

	after := testutil.ToFloat64(statementGenerateTotal.WithLabelValues(ResultError))
	if after != before+1 {
		t.Fatalf("expected counter to grow by 1, got %v -> %v", before, after)
	}
}

func TestIncPricingError_DefaultsReason(t *testing.T) {
	Init()
	before := testutil.ToFloat64(pricingErrorsTotal.WithLabelValues("unknown"))
	IncPricingError("")
	if got := testutil.ToFloat64(pricingErrorsTotal.WithLabelValues("unknown")); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}
}

func TestAddStatementTotals_IgnoresNonPositive(t *testing.T) {
	Init()
	before := testutil.ToFloat64(statementAmountTotal)
	AddStatementTotals(0, -1)
	AddStatementTotals(173000, 47)
	if got := testutil.ToFloat64(statementAmountTotal); got != before+173000 {
		t.Fatalf("expected %v, got %v", before+173000, got)
	}
}

func TestWriteTextfile(t *testing.T) {
	Init()
	ObserveStatementExport("pdf", ResultSuccess, time.Millisecond)

	path := filepath.Join(t.TempDir(), "theatre.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "theatre_statement_export_total") {
		t.Fatalf("expected export counter in textfile, got %s", data)
	}
}

package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"theatre-billing/internal/observability/metrics"
	theatre "theatre-billing/internal/theatre/domain"
)

// Statement is a generated customer statement.
type Statement struct {
	ID          string
	Customer    string
	Result      theatre.StatementResult
	GeneratedAt time.Time
}

// StatementGenerated is emitted once a statement has been priced.
type StatementGenerated struct {
	StatementID   string
	Customer      string
	Lines         int
	TotalAmount   int64
	VolumeCredits int
	OccurredAt    time.Time
}

// StatementPublisher emits statement generated events.
type StatementPublisher interface {
	PublishStatementGenerated(ctx context.Context, event StatementGenerated) error
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Option configures a StatementService.
type Option func(*StatementService)

// WithPublisher sets the event publisher.
func WithPublisher(publisher StatementPublisher) Option {
	return func(s *StatementService) {
		s.publisher = publisher
	}
}

// WithClock overrides the clock.
func WithClock(clock Clock) Option {
	return func(s *StatementService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides statement id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *StatementService) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// StatementService handles statement generation use cases.
type StatementService struct {
	rules     theatre.Rules
	publisher StatementPublisher
	clock     Clock
	newID     func() string
}

// NewStatementService constructs the service.
func NewStatementService(rules theatre.Rules, opts ...Option) (*StatementService, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("statement service: %w", err)
	}
	s := &StatementService{
		rules: rules,
		clock: SystemClock{},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate prices an invoice and returns its statement.
func (s *StatementService) Generate(ctx context.Context, invoice theatre.Invoice, catalog theatre.Catalog) (*Statement, error) {
	if s == nil {
		return nil, errors.New("statement service: nil service")
	}
	start := time.Now()

	result, err := s.rules.Aggregate(invoice, catalog)
	if err != nil {
		metrics.IncPricingError(pricingErrorReason(err))
		metrics.ObserveStatementGenerate(metrics.ResultError, time.Since(start))
		return nil, fmt.Errorf("statement for %q: %w", invoice.Customer, err)
	}

	stmt := &Statement{
		ID:          s.newID(),
		Customer:    invoice.Customer,
		Result:      result,
		GeneratedAt: s.clock.Now(),
	}

	if s.publisher != nil {
		err := s.publisher.PublishStatementGenerated(ctx, StatementGenerated{
			StatementID:   stmt.ID,
			Customer:      stmt.Customer,
			Lines:         len(result.Lines),
			TotalAmount:   result.TotalAmount,
			VolumeCredits: result.TotalVolumeCredits,
			OccurredAt:    stmt.GeneratedAt,
		})
		if err != nil {
			metrics.ObserveStatementGenerate(metrics.ResultError, time.Since(start))
			return nil, fmt.Errorf("publish statement %s: %w", stmt.ID, err)
		}
	}

	metrics.AddStatementTotals(result.TotalAmount, result.TotalVolumeCredits)
	metrics.ObserveStatementGenerate(metrics.ResultSuccess, time.Since(start))
	return stmt, nil
}

// GenerateBatch generates statements for invoices in order, stopping at the first failure.
func (s *StatementService) GenerateBatch(ctx context.Context, invoices []theatre.Invoice, catalog theatre.Catalog) ([]*Statement, error) {
	statements := make([]*Statement, 0, len(invoices))
	for i, invoice := range invoices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stmt, err := s.Generate(ctx, invoice, catalog)
		if err != nil {
			return nil, fmt.Errorf("invoice %d: %w", i, err)
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func pricingErrorReason(err error) string {
	switch {
	case errors.Is(err, theatre.ErrUnknownPlayType):
		return metrics.ReasonUnknownPlayType
	case errors.Is(err, theatre.ErrUnresolvedPlayID), errors.Is(err, theatre.ErrNilCatalog):
		return metrics.ReasonUnresolvedPlayID
	case errors.Is(err, theatre.ErrNegativeAudience):
		return metrics.ReasonNegativeAudience
	default:
		return ""
	}
}

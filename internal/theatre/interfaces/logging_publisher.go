package interfaces

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"theatre-billing/internal/theatre/application"
)

// LoggingPublisher logs statement generated events.
type LoggingPublisher struct {
	logger logrus.FieldLogger
}

// NewLoggingPublisher constructs a logging publisher.
func NewLoggingPublisher(logger logrus.FieldLogger) *LoggingPublisher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LoggingPublisher{logger: logger}
}

// PublishStatementGenerated logs the event.
func (p *LoggingPublisher) PublishStatementGenerated(ctx context.Context, event application.StatementGenerated) error {
	_ = ctx
	if p == nil {
		return errors.New("statement publisher: nil publisher")
	}
	p.logger.WithFields(logrus.Fields{
		"statement_id":   event.StatementID,
		"customer":       event.Customer,
		"lines":          event.Lines,
		"total_amount":   event.TotalAmount,
		"volume_credits": event.VolumeCredits,
	}).Info("statement generated")
	return nil
}

package finance

import (
	"context"
	"errors"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"go.uber.org/zap"
)

// humanize turns a repository failure into a message the user can read.
// Domain errors pass through untouched; anything else is logged and replaced.
func humanize(ctx context.Context, logger *zap.Logger, err error, replacement *shared.DomainError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	logger.Error("finance storage failure", zap.Error(err), zap.String("user_error", replacement.Code))
	return replacement
}

func notFound(what string) error {
	return shared.NewDomainError("NOT_FOUND", what+" not found")
}

// publishEvents forwards the aggregate's pending events and clears them
func publishEvents(ctx context.Context, logger *zap.Logger, publisher shared.EventPublisher, agg shared.AggregateRoot) {
	events := agg.GetDomainEvents()
	if publisher == nil || len(events) == 0 {
		agg.ClearDomainEvents()
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("failed to publish finance events", zap.Error(err))
	}
	agg.ClearDomainEvents()
}

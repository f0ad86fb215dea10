package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes service use-case events to the provided writer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// NewSlogUseCaseObserver writes service use-case events to logger.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

// ObserveUseCase logs one service_use_case record. Rejections the caller can
// act on (validation, missing ids, name clashes) are logged at WARN; anything
// else that failed is logged at ERROR.
func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 10+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		attrs = append(attrs, k, event.Fields[k])
	}
	if event.Err == nil {
		o.logger.InfoContext(ctx, "service_use_case", attrs...)
		return
	}

	kind := errorKind(event.Err)
	attrs = append(attrs, "error_kind", kind, "error", event.Err.Error())
	if kind == "internal" {
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.WarnContext(ctx, "service_use_case", attrs...)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrTransactionFailure):
		return "internal"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrTargetNotFound), errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicateName):
		return "conflict"
	case errors.Is(err, domain.ErrCategoryInUse):
		return "in_use"
	default:
		return "internal"
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// observe emits one event for a finished use case.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

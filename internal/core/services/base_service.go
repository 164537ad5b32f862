package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock domain.Clock
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithClock replaces the wall clock used to stamp entries, logs and audit fields.
func WithClock(clock domain.Clock) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{clock: func() time.Time { return time.Now().UTC() }}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now reads the injected clock.
func (s *BaseService) Now() time.Time {
	return s.clock()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logFailure logs unexpected errors at error level and caller mistakes at debug level.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isClientError(err) {
		s.LogDebug(ctx, msg, append([]any{slog.String("reason", err.Error())}, keyvals...)...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func isClientError(err error) bool {
	for _, target := range []error{
		apperrors.ErrNotFound,
		apperrors.ErrValidation,
		apperrors.ErrDuplicate,
		apperrors.ErrInvalidStateTransition,
		apperrors.ErrUnbalancedEntry,
		apperrors.ErrConcurrentModification,
		apperrors.ErrMissingParentPath,
		apperrors.ErrMissingParameter,
		apperrors.ErrUnsupportedFormula,
		apperrors.ErrDivisionByZero,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Package slog provides logging decorators for sitesnap services.
// Successful calls log at debug level, failures at warn level.
package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/sitesnap"
)

func logResult(ctx context.Context, logger *slog.Logger, msg string, err error, args ...any) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelWarn
		args = append(args, "code", sitesnap.ErrorCode(err), "err", err)
	}
	logger.Log(ctx, level, msg, args...)
}

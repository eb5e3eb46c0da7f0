package app

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"service-rider-platform/internal/config"
	"service-rider-platform/internal/logx"
)

// NewLogger builds the JSON logger selected by LOG_BACKEND.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	switch cfg.Log.Backend {
	case "zap":
		level, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		zl, err := zc.Build()
		if err != nil {
			return nil, fmt.Errorf("build zap logger: %w", err)
		}
		return logx.NewZapAdapter(zl), nil
	default:
		level := slog.LevelInfo
		if cfg.Log.Level != "" {
			if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
				return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
			}
		}
		base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		return logx.NewSlogAdapter(base), nil
	}
}

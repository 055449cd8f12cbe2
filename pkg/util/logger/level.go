package logger

import "go.uber.org/zap"

// Level enumerates the severities a Logger record can carry.
type Level int

const (
	// LevelDebug is the lowest severity, for diagnostic detail.
	LevelDebug Level = iota
	// LevelInfo is the default severity for routine operation.
	LevelInfo
	// LevelWarn marks a recoverable anomaly.
	LevelWarn
	// LevelError marks a failed operation.
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

type levelWriteFunc func(l *zap.Logger, msg string, ctx ...zap.Field)

var mLevelFunc = map[Level]levelWriteFunc{
	LevelDebug: (*zap.Logger).Debug,
	LevelInfo:  (*zap.Logger).Info,
	LevelWarn:  (*zap.Logger).Warn,
	LevelError: (*zap.Logger).Error,
}

func zapLevel(l Level) zap.AtomicLevel {
	switch l {
	case LevelDebug:
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case LevelWarn:
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case LevelError:
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}

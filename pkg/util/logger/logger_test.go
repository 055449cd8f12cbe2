package logger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtreemfs-go/osd-storage/pkg/util/logger"
)

func TestInitAndWriteDoNotPanic(t *testing.T) {
	var cfg logger.Config
	log := &logger.Logger{}
	log.Init(&cfg)

	require.NotPanics(t, func() {
		log.Debug("debug message")
		log.Info("info message", logger.FieldString("k", "v"))
		log.Warn("warn message", logger.FieldInt("n", -1))
		log.Error("error message", logger.FieldError(assertError{}))
	})

	cfg.SetLevel(logger.LevelError)
	require.NotPanics(t, func() {
		log.Debug("should be filtered by the new level")
	})
}

func TestWithContextInheritsAndAddsFields(t *testing.T) {
	log := &logger.Logger{}
	log.Init(nil)

	child := log.WithContext(logger.FieldBool("child", true))
	require.NotNil(t, child)
	require.NotPanics(t, func() {
		child.Info("from child logger")
	})
}

type assertError struct{}

func (assertError) Error() string { return "boom" }

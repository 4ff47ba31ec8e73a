package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Warn, LogLevel("release"))
	assert.Equal(t, logger.Info, LogLevel("debug"))
	assert.Equal(t, logger.Info, LogLevel("test"))
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
	buffer *bytes.Buffer
}

func (suite *LoggerTestSuite) SetupTest() {
	suite.buffer = &bytes.Buffer{}
}

func (suite *LoggerTestSuite) newLogger(level, format string) Logger {
	return NewLoggerWithOutput(level, format, suite.buffer)
}

func (suite *LoggerTestSuite) TestLevelFiltering() {
	testCases := []struct {
		name      string
		level     string
		logFunc   func(Logger)
		shouldLog bool
	}{
		{"debug level logs debug", "debug", func(l Logger) { l.Debug("debug message") }, true},
		{"info level skips debug", "info", func(l Logger) { l.Debug("debug message") }, false},
		{"info level logs info", "info", func(l Logger) { l.Info("info message") }, true},
		{"warn level skips info", "warn", func(l Logger) { l.Info("info message") }, false},
		{"warn level logs warn", "warn", func(l Logger) { l.Warn("warn message") }, true},
		{"error level skips warn", "error", func(l Logger) { l.Warn("warn message") }, false},
		{"error level logs error", "error", func(l Logger) { l.Error("error message") }, true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			logger := suite.newLogger(tc.level, "text")
			suite.buffer.Reset()

			tc.logFunc(logger)

			if tc.shouldLog {
				assert.NotEmpty(t, suite.buffer.String())
			} else {
				assert.Empty(t, suite.buffer.String())
			}
		})
	}
}

func (suite *LoggerTestSuite) TestFormattedMethods() {
	logger := suite.newLogger("debug", "text")

	suite.buffer.Reset()
	logger.Debugf("debug message with %s and %d", "string", 42)
	assert.Contains(suite.T(), suite.buffer.String(), "debug message with string and 42")

	suite.buffer.Reset()
	logger.Infof("order %s confirmed with %d items", "ORD-001", 3)
	assert.Contains(suite.T(), suite.buffer.String(), "order ORD-001 confirmed with 3 items")

	suite.buffer.Reset()
	logger.Warnf("stock below threshold: %.1f", 2.5)
	assert.Contains(suite.T(), suite.buffer.String(), "stock below threshold: 2.5")

	suite.buffer.Reset()
	logger.Errorf("failed after %d attempts", 5)
	assert.Contains(suite.T(), suite.buffer.String(), "failed after 5 attempts")
}

func (suite *LoggerTestSuite) TestJSONFormat() {
	logger := suite.newLogger("info", "json")

	logger.Info("test json message")

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(suite.buffer.String())), &logEntry)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "info", logEntry["level"])
	assert.Equal(suite.T(), "test json message", logEntry["msg"])
	assert.Contains(suite.T(), logEntry, "time")
}

func (suite *LoggerTestSuite) TestTextFormat() {
	logger := suite.newLogger("info", "text")

	logger.Info("test text message")
	output := suite.buffer.String()

	assert.Contains(suite.T(), output, "test text message")
	assert.Contains(suite.T(), output, "INFO")
	assert.Regexp(suite.T(), `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`, output)
}

func (suite *LoggerTestSuite) TestMultipleArguments() {
	logger := suite.newLogger("info", "text")

	logger.Info("message", 123, true, 45.67)
	output := suite.buffer.String()

	assert.Contains(suite.T(), output, "message")
	assert.Contains(suite.T(), output, "123")
	assert.Contains(suite.T(), output, "45.67")
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"invalid", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{"DEBUG", logrus.InfoLevel}, // case sensitive
	}

	for _, tc := range testCases {
		t.Run("level_"+tc.input, func(t *testing.T) {
			logger := NewLogger(tc.input, "text")
			logrusLogger, ok := logger.(*LogrusLogger)
			require.True(t, ok)
			assert.Equal(t, tc.expected, logrusLogger.logger.Level)
		})
	}
}

func TestBuildFormatter(t *testing.T) {
	logger := NewLogger("info", "json")
	_, isJSON := logger.(*LogrusLogger).logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	// Anything other than "json" falls back to text
	for _, format := range []string{"text", "", "JSON", "invalid"} {
		logger := NewLogger("info", format)
		_, isText := logger.(*LogrusLogger).logger.Formatter.(*logrus.TextFormatter)
		assert.True(t, isText, "format %q should use the text formatter", format)
	}
}

func TestLoggerConcurrency(t *testing.T) {
	logger := NewLoggerWithOutput("info", "json", &bytes.Buffer{})

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func(id int) {
			defer func() { done <- true }()
			for j := 0; j < 100; j++ {
				logger.Infof("goroutine %d, message %d", id, j)
			}
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

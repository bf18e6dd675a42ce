package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturedAdapter(t *testing.T) (Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	base := logrus.New()
	base.SetOutput(buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.JSONFormatter{})
	return NewLogrusAdapterFromLogger(base), buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestLogrusAdapterFields(t *testing.T) {
	logger, buf := newCapturedAdapter(t)

	logger.Info("extraction completed",
		Field{Key: FieldProvider, Value: "visa_cal"},
		Field{Key: FieldConfidence, Value: 90})

	entry := lastLine(t, buf)
	assert.Equal(t, "extraction completed", entry["msg"])
	assert.Equal(t, "visa_cal", entry[FieldProvider])
	assert.Equal(t, float64(90), entry[FieldConfidence])
}

func TestLogrusAdapterWithError(t *testing.T) {
	logger, buf := newCapturedAdapter(t)

	logger.WithError(errors.New("boom")).Warn("operation failed")

	entry := lastLine(t, buf)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLogrusAdapterWithFieldsChains(t *testing.T) {
	logger, buf := newCapturedAdapter(t)

	logger.WithField(FieldHousehold, "hh-1").
		WithFields(Field{Key: FieldOperation, Value: "reconcile"}).
		Info("pass finished")

	entry := lastLine(t, buf)
	assert.Equal(t, "hh-1", entry[FieldHousehold])
	assert.Equal(t, "reconcile", entry[FieldOperation])
}

func TestNewLogrusAdapterBadLevelFallsBack(t *testing.T) {
	logger := NewLogrusAdapter("extremely-verbose", "text")
	require.NotNil(t, logger)
	// Must not panic; falls back to info.
	logger.Info("still works")
}

func TestMockLoggerRecordsThroughDerivedLoggers(t *testing.T) {
	mock := NewMockLogger()

	mock.WithError(errors.New("boom")).Warn("operation failed")
	mock.WithField(FieldCount, 3).Info("done")

	assert.True(t, mock.HasEntry("WARN", "operation failed"))
	assert.True(t, mock.HasEntry("INFO", "done"))
	require.Len(t, mock.Entries(), 2)
	assert.EqualError(t, mock.Entries()[0].Error, "boom")
}

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncFileWriter_FlushesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	w, err := NewAsyncFileWriter(path, 1024)
	require.NoError(t, err)

	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))

	_, err = w.Write([]byte("late\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestConsoleHook_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := NewLogger(Options{FileDisabled: true, Level: "debug"})
	require.NoError(t, err)
	defer closer.Close()
	log.SetOutput(&bytes.Buffer{})
	log.AddHook(NewConsoleHook(&buf))

	log.WithField("key", "ip:10.0.0.1").Debug("rate limited")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rate limited", entry["msg"])
	assert.Equal(t, "ip:10.0.0.1", entry["key"])
	assert.Contains(t, entry, "time")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, parseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, parseLevel("warn"))
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, logrus.InfoLevel, parseLevel("nonsense"))
}

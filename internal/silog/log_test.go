package silog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/testing/stub"
)

func TestLogger_levels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, nil)

	log.Debug("hidden")
	log.Infof("Hello, %s!", "world")
	log.Warn("Careful", "path", "/tmp/secrets.json")
	log.Error("Sadness", "error", errors.New("oh no"))

	assert.Equal(t, []string{
		"INF Hello, world!",
		"WRN Careful  path=/tmp/secrets.json",
		"ERR Sadness  error=oh no",
		"",
	}, strings.Split(buf.String(), "\n"))
}

func TestLogger_printf(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, &Options{Level: LevelDebug})

	log.Debugf("found %d records", 2)
	log.Infof("stored %q", "MyPassword")
	log.Warnf("retrying %v", "insert")
	log.Errorf("open %v: %v", "secrets.json", errors.New("denied"))
	log.Logf(LevelInfo, "%s=%d", "n", 3)

	assert.Equal(t, []string{
		"DBG found 2 records",
		`INF stored "MyPassword"`,
		"WRN retrying insert",
		"ERR open secrets.json: denied",
		"INF n=3",
		"",
	}, strings.Split(buf.String(), "\n"))
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, nil)
	child := log.With("credential", "generic:TestApp/MyPassword")

	child.Debug("before")
	log.SetLevel(LevelDebug)
	child.Debug("after")

	assert.Equal(t, LevelDebug, child.Level())
	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "DBG after  credential=generic:TestApp/MyPassword")
}

func TestLogger_fatal(t *testing.T) {
	var buf bytes.Buffer
	var fatalCalled bool
	log := New(&buf, &Options{
		Level: LevelInfo,
		OnFatal: func() {
			fatalCalled = true
			panic("stop")
		},
	})

	assert.PanicsWithValue(t, "stop", func() {
		log.Fatalf("pwstore: %v", "great sadness")
	})
	assert.True(t, fatalCalled)
	assert.Equal(t, "FTL pwstore: great sadness\n", buf.String())
}

func TestLogger_nil(t *testing.T) {
	var log *Logger
	log.Info("ignored")
	log.SetLevel(LevelDebug)
	assert.Nil(t, log.With("k", "v"))
	assert.Equal(t, LevelFatal+1, log.Level())

	var exitCode int
	defer stub.Value(&_osExit, func(code int) { exitCode = code })()
	log.Fatal("bye")
	assert.Equal(t, 1, exitCode)
}

func TestNew_invalidLevel(t *testing.T) {
	assert.Panics(t, func() {
		New(new(bytes.Buffer), &Options{Level: LevelFatal})
	})
}

func TestNop(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)
	log.Error("discarded")
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		give Level
		want string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LevelFatal, "fatal"},
		{LevelInfo + 1, "INFO+1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.give.String())
		})
	}
}

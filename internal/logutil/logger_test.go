package logutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestLogger(t *testing.T) {
	var stub testOutputStub
	logger := TestLogger(&stub)

	logger.Infof("Hello, %s!", "world")
	logger.Debug("Looking up password", "credential", "generic:TestApp/MyPassword")
	stub.runCleanup()

	logs := strings.Join(stub.logs, "\n")
	assert.Contains(t, logs, "Hello, world!")
	assert.Contains(t, logs, "Looking up password")
	assert.Contains(t, logs, "generic:TestApp/MyPassword")
}

type testOutputStub struct {
	logs    []string
	cleanup func()
}

func (t *testOutputStub) Logf(format string, args ...any) {
	t.logs = append(t.logs, fmt.Sprintf(format, args...))
}

func (t *testOutputStub) Cleanup(f func()) {
	old := t.cleanup
	t.cleanup = func() {
		f()
		if old != nil {
			old()
		}
	}
}

func (t *testOutputStub) runCleanup() {
	if t.cleanup != nil {
		t.cleanup()
	}
}

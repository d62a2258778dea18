package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/hvacgrid/internal/config"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. Program output
// and debug logs are captured in separate buffers.
func SetupAppTest(t *testing.T, appConfig *Config, loader config.Loader, opts ...Option) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	opts = append([]Option{WithLogWriter(logBuffer)}, opts...)
	testApp := NewApp(outBuffer, appConfig, loader, opts...)

	t.Cleanup(func() {
		if os.Getenv("HVACGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}

package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
)

func TestToRetryOptionsHonoursAttempts(t *testing.T) {
	cfg := &RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	calls := 0
	err := retry.Do(func() error {
		calls++
		return errors.New("still failing")
	}, cfg.ToRetryOptions()...)

	if err == nil {
		t.Fatal("expected an error after the last attempt")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.Attempts != defaultAttempts || cfg.Delay != defaultDelay || cfg.MaxDelay != defaultMaxDelay {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

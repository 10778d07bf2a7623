package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"200ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
	// Timeout bounds all attempts together. Zero means no bound.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0s"`
}

func (rc *RetryConfig) ToRetryOptions(ctx context.Context) []retry.Option {
	// retry-go treats zero attempts as unlimited
	attempts := rc.Attempts
	if attempts == 0 {
		attempts = 1
	}
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	}
}

// WithTimeout derives the context all attempts share
func (rc *RetryConfig) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if rc.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, rc.Timeout)
}

package anthropic

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// rateLimitedClient throttles CreateMessage calls so a wide plugin fan-out
// cannot exceed the account's request-per-minute budget.
type rateLimitedClient struct {
	inner   Client
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps a Client with a token-bucket limiter allowing
// rps requests per second with the given burst. Non-positive rps returns the
// inner client unchanged.
func NewRateLimitedClient(inner Client, rps float64, burst int) Client {
	if rps <= 0 {
		return inner
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimitedClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (c *rateLimitedClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "anthropic: rate limit wait")
	}
	return c.inner.CreateMessage(ctx, req)
}

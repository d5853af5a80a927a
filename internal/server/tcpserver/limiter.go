package tcpserver

import (
	"sync"

	"golang.org/x/time/rate"
)

// ipLimiter applies a token-bucket rate limit per client IP.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newIPLimiter(commandsPerSecond int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(commandsPerSecond),
		burst:    commandsPerSecond,
	}
}

// allow reports whether one more command from ip fits its budget.
func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

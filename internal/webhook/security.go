package webhook

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// SecurityConfig holds webhook guard rails applied before signature checks.
type SecurityConfig struct {
	AllowedIPs      []string // IP or CIDR allow-list, empty allows all
	RateLimitPerMin int      // per repository, <= 0 disables
	// RequireSignature rejects GitBucket and Bitbucket Server deliveries
	// that arrive without a signature header.
	RequireSignature bool
}

// SecurityValidator enforces the IP allow-list and per-repository rate limits.
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	v := &SecurityValidator{config: config}
	if config.RateLimitPerMin > 0 {
		v.rateLimiter = newRateLimiter(config.RateLimitPerMin)
	}
	return v
}

// ValidateIPAddress checks if the client IP is whitelisted. ip must come from
// gin's ClientIP so forwarding headers are honored only from trusted proxies.
func (v *SecurityValidator) ValidateIPAddress(ip string) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil
	}

	parsed := net.ParseIP(ip)

	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}

		if strings.Contains(allowedIP, "/") && parsed != nil {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if ipNet.Contains(parsed) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrIPNotAllowed, ip)
}

// CheckRateLimit spends one token from the bucket for key. Call it only for
// verified deliveries so unsigned traffic cannot drain a repository's bucket.
func (v *SecurityValidator) CheckRateLimit(key string) error {
	if v.rateLimiter == nil {
		return nil
	}
	return v.rateLimiter.Allow(key)
}

// CheckFallback rejects unsigned deliveries when signatures are required.
func (v *SecurityValidator) CheckFallback(p Push) error {
	if p.Fallback && v.config.RequireSignature {
		return ErrSignatureRequired
	}
	return nil
}

// rateLimiter keeps one token bucket per key; idle buckets expire.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // max tracked repositories
			nil,           // no eviction callback
			time.Minute*5, // idle TTL
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0), // per second
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("%w for %s", ErrRateLimited, key)
	}
	return nil
}

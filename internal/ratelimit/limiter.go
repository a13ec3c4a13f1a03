// Package ratelimit throttles login attempts per client IP and per username.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	// Per-IP token bucket
	IPAttemptsPerMinute int // Sustained login attempts per IP (default: 10)
	IPBurst             int // Attempts allowed at once (default: 5)

	// Per-username failures
	MaxFailures int           // Failed logins before lockout (default: 5)
	Lockout     time.Duration // Lockout duration (default: 5m)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		IPAttemptsPerMinute: 10,
		IPBurst:             5,
		MaxFailures:         5,
		Lockout:             5 * time.Minute,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

type ipEntry struct {
	limiter *rate.Limiter
	lastAt  time.Time
}

type failureEntry struct {
	count    int
	lastAt   time.Time
	lockedAt time.Time // zero if not locked
}

// Limiter implements login rate limiting.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.Mutex
	// Keyed by hash of username or IP
	byIP      map[string]*ipEntry
	failures  map[string]*failureEntry
	ipLimit   rate.Limit
	ipBurst   int
	sweepTick time.Duration

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	defaults := DefaultConfig()
	if cfg.IPAttemptsPerMinute <= 0 {
		cfg.IPAttemptsPerMinute = defaults.IPAttemptsPerMinute
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = defaults.IPBurst
	}
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = defaults.MaxFailures
	}
	if cfg.Lockout <= 0 {
		cfg.Lockout = defaults.Lockout
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        cfg,
		clock:         clock,
		byIP:          make(map[string]*ipEntry),
		failures:      make(map[string]*failureEntry),
		ipLimit:       rate.Every(time.Minute / time.Duration(cfg.IPAttemptsPerMinute)),
		ipBurst:       cfg.IPBurst,
		sweepTick:     5 * time.Minute,
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// CheckLogin reports whether a login attempt may proceed. Every call spends one
// token from the IP bucket; the username lockout is only read.
func (l *Limiter) CheckLogin(username, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()
	idKey := l.hashKey("login:id:", normalizeIdentifier(username))
	ipKey := l.hashKey("login:ip:", ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	if e := l.failures[idKey]; e != nil && !e.lockedAt.IsZero() {
		elapsed := now.Sub(e.lockedAt)
		if elapsed < l.config.Lockout {
			return LimitResult{
				Allowed:    false,
				RetryAfter: l.config.Lockout - elapsed,
				Reason:     "lockout",
			}
		}
		delete(l.failures, idKey)
	}

	e := l.byIP[ipKey]
	if e == nil {
		e = &ipEntry{limiter: rate.NewLimiter(l.ipLimit, l.ipBurst)}
		l.byIP[ipKey] = e
	}
	e.lastAt = now
	reservation := e.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return LimitResult{
			Allowed:    false,
			RetryAfter: delay,
			Reason:     "ip_rate",
		}
	}

	return LimitResult{Allowed: true}
}

// RecordFailure counts a failed login for username. Returns true if this
// failure started a lockout.
func (l *Limiter) RecordFailure(username string) (lockedOut bool) {
	now := l.clock.Now()
	idKey := l.hashKey("login:id:", normalizeIdentifier(username))

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.failures[idKey]
	if e == nil || (!e.lockedAt.IsZero() && now.Sub(e.lockedAt) >= l.config.Lockout) {
		e = &failureEntry{}
		l.failures[idKey] = e
	}
	e.count++
	e.lastAt = now
	if e.count >= l.config.MaxFailures && e.lockedAt.IsZero() {
		e.lockedAt = now
		lockedOut = true
	}
	return lockedOut
}

// RecordSuccess clears the failure counter after a successful login.
func (l *Limiter) RecordSuccess(username string) {
	idKey := l.hashKey("login:id:", normalizeIdentifier(username))
	l.mu.Lock()
	delete(l.failures, idKey)
	l.mu.Unlock()
}

func (l *Limiter) hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(hash[:8])
}

// normalizeIdentifier lowercases the username to prevent case-based bypass.
func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(l.sweepTick)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, e := range l.byIP {
		if now.Sub(e.lastAt) > time.Hour {
			delete(l.byIP, k)
		}
	}
	maxAge := l.config.Lockout + time.Hour
	for k, e := range l.failures {
		if now.Sub(e.lastAt) > maxAge {
			delete(l.failures, k)
		}
	}
}

// SanitizeIdentifier masks a username for logging.
func SanitizeIdentifier(identifier string) string {
	identifier = normalizeIdentifier(identifier)
	if len(identifier) > 2 {
		return identifier[:2] + "***"
	}
	return "***"
}

// LogRateLimitExceeded logs a rate limit event with sanitized identifier.
func LogRateLimitExceeded(identifier, ip, reason string) {
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("identifier", SanitizeIdentifier(identifier)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Login rate limit exceeded")
}

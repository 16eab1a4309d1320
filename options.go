package cask

import (
	"sync"

	"go.uber.org/zap"
)

// ProviderOption configures a provider at build time.
type ProviderOption func(*Provider)

// Concurrent makes the provider safe for use from multiple goroutines.
// Each cache — the singleton cache and every scope's cache — gets its own
// mutex; resolving unrelated contracts through different caches never
// contends. The default is the unsynchronized single-owner mode.
func Concurrent() ProviderOption {
	return func(p *Provider) {
		p.concurrent = true
	}
}

// WithLogger attaches a structured logger for container events: provider
// build, scope creation and disposal, and instance construction, all at
// debug level. The default logger discards everything.
func WithLogger(logger *zap.Logger) ProviderOption {
	return func(p *Provider) {
		p.logger = logger
	}
}

// newLocker returns the guard for one cache: a real mutex in concurrent
// mode, a no-op in single-owner mode.
func newLocker(concurrent bool) sync.Locker {
	if concurrent {
		return &sync.Mutex{}
	}

	return nopLocker{}
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

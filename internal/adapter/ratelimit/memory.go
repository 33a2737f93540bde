package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process sliding-window limiter. It is per instance, so
// budgets are not shared between replicas. Call Stop on shutdown.
type Memory struct {
	windows sync.Map // map[string]*window
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	now     func() time.Time
}

type window struct {
	mu       sync.Mutex
	hits     []time.Time
	span     time.Duration
	lastSeen time.Time
	// dead is set by sweep under mu once the window left the map.
	dead bool
}

// NewMemory creates a memory limiter whose idle windows are swept every
// cleanupInterval.
func NewMemory(cleanupInterval time.Duration) *Memory {
	m := &Memory{
		stop: make(chan struct{}),
		done: make(chan struct{}),
		now:  time.Now,
	}
	go m.cleanup(cleanupInterval)
	return m
}

// Stop terminates the background cleanup goroutine and waits for it to exit.
func (m *Memory) Stop() {
	m.once.Do(func() { close(m.stop) })
	<-m.done
}

// Allow reports whether key may make another request under rule.
func (m *Memory) Allow(_ context.Context, key string, rule Rule) (Decision, error) {
	now := m.now()
	w := m.lockWindow(rule.Name+":"+key, rule.Window)
	defer w.mu.Unlock()

	w.lastSeen = now
	w.evict(now)

	resetAt := now.Add(rule.Window)
	if len(w.hits) > 0 {
		resetAt = w.hits[0].Add(rule.Window)
	}

	if len(w.hits) >= rule.Limit {
		return Decision{Allowed: false, Limit: rule.Limit, Remaining: 0, ResetAt: resetAt}, nil
	}

	w.hits = append(w.hits, now)
	return Decision{
		Allowed:   true,
		Limit:     rule.Limit,
		Remaining: remaining(rule.Limit, len(w.hits)),
		ResetAt:   resetAt,
	}, nil
}

// lockWindow returns the live window for key with its mutex held. A window
// swept between load and lock is dead and is replaced.
func (m *Memory) lockWindow(key string, span time.Duration) *window {
	for {
		val, _ := m.windows.LoadOrStore(key, &window{span: span})
		w := val.(*window)
		w.mu.Lock()
		if !w.dead {
			return w
		}
		w.mu.Unlock()
		m.windows.CompareAndDelete(key, w)
	}
}

// evict drops hits older than the window. Caller holds w.mu.
func (w *window) evict(now time.Time) {
	cutoff := now.Add(-w.span)
	i := 0
	for i < len(w.hits) && !w.hits[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.hits = append(w.hits[:0], w.hits[i:]...)
	}
}

func (m *Memory) cleanup(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep removes windows that have been idle for longer than their span.
func (m *Memory) sweep() {
	now := m.now()
	m.windows.Range(func(key, value any) bool {
		w := value.(*window)
		w.mu.Lock()
		if now.Sub(w.lastSeen) > w.span {
			w.dead = true
			m.windows.CompareAndDelete(key, w)
		}
		w.mu.Unlock()
		return true
	})
}

package auth

import (
	"sync"
	"time"
)

const (
	MaxLoginAttempts = 5
	LockoutTime      = 15 * time.Minute
)

type attempt struct {
	count       int
	lockedUntil time.Time
}

// Limiter conta falhas de login por usuário e bloqueia depois de
// MaxLoginAttempts até passar LockoutTime. O estado vive só em memória.
type Limiter struct {
	mu       sync.Mutex
	attempts map[string]*attempt
	max      int
	lockout  time.Duration
	now      func() time.Time
}

func NewLimiter(max int, lockout time.Duration) *Limiter {
	return &Limiter{
		attempts: make(map[string]*attempt),
		max:      max,
		lockout:  lockout,
		now:      time.Now,
	}
}

// Locked devolve quanto falta para o desbloqueio. Bloqueios vencidos são
// apagados aqui.
func (l *Limiter) Locked(username string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[username]
	if !ok || a.lockedUntil.IsZero() {
		return 0, false
	}

	remaining := a.lockedUntil.Sub(l.now())
	if remaining <= 0 {
		delete(l.attempts, username)
		return 0, false
	}
	return remaining, true
}

func (l *Limiter) Record(username string, success bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if success {
		delete(l.attempts, username)
		return
	}

	a, ok := l.attempts[username]
	if !ok {
		a = &attempt{}
		l.attempts[username] = a
	}
	a.count++
	if a.count >= l.max {
		a.lockedUntil = l.now().Add(l.lockout)
	}
}

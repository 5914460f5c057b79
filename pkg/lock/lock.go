// Package lock serializa operações concorrentes sobre a mesma chave (uma
// mesa). Há uma implementação em processo e outra distribuída sobre Redis
// para quando mais de uma instância da API atende os terminais.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrNotAcquired é retornado quando o contexto expira antes do lock ser obtido
var ErrNotAcquired = errors.New("não foi possível obter o lock")

// Unlock libera um lock obtido
type Unlock func()

// Locker obtém locks exclusivos por chave, respeitando o prazo do contexto
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// LocalLocker implementa Locker com um semáforo por chave
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewLocalLocker cria um Locker em memória
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*slot)}
}

// Lock bloqueia até obter a chave ou o contexto terminar
func (l *LocalLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.release(key, s)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, s)
		return nil, errors.Join(ErrNotAcquired, ctx.Err())
	}
}

func (l *LocalLocker) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

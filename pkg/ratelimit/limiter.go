// Package ratelimit реализует fixed-window rate limiting по идентификатору
// клиента (IP). Каждый именованный limiter ведет собственные окна и лимиты.
//
// Это именно fixed window: счетчик сбрасывается на границе окна, всплески
// на стыке двух окон не сглаживаются.
package ratelimit

import (
	"sort"
	"sync"
	"time"
)

// DefaultCapacity максимальное число отслеживаемых идентификаторов по умолчанию
const DefaultCapacity = 500

type entry struct {
	count   int
	resetAt time.Time
}

// Config параметры limiter-а
type Config struct {
	// Name имя limiter-а (booking, auth, cancel, api)
	Name string
	// Limit максимум запросов в окно
	Limit int
	// Window длительность окна
	Window time.Duration
	// Capacity максимум отслеживаемых идентификаторов (0 = DefaultCapacity)
	Capacity int
	// Clock источник времени (nil = time.Now), подменяется в тестах
	Clock func() time.Time
}

// Limiter процесс-локальный fixed-window limiter
type Limiter struct {
	name     string
	limit    int
	window   time.Duration
	capacity int
	clock    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New создает limiter и запускает фоновую очистку устаревших записей
func New(cfg Config) *Limiter {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	l := &Limiter{
		name:     cfg.Name,
		limit:    cfg.Limit,
		window:   cfg.Window,
		capacity: capacity,
		clock:    clock,
		entries:  make(map[string]*entry),
		stopCh:   make(chan struct{}),
	}

	go l.sweepLoop()

	return l
}

// Name возвращает имя limiter-а
func (l *Limiter) Name() string {
	return l.name
}

// Allow регистрирует запрос от token и сообщает, пропущен ли он.
// Первый запрос (или запрос после истечения окна) открывает новое окно
// со счетчиком 1. Запросы со счетчиком >= limit отклоняются.
func (l *Limiter) Allow(token string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()

	e, ok := l.entries[token]
	if !ok || now.After(e.resetAt) {
		l.entries[token] = &entry{count: 1, resetAt: now.Add(l.window)}
		return true, l.limit - 1
	}

	if e.count >= l.limit {
		return false, 0
	}

	e.count++
	return true, l.limit - e.count
}

// Len возвращает число отслеживаемых идентификаторов
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Sweep удаляет записи с истекшим окном и, при превышении capacity,
// вытесняет записи с ближайшим resetAt (самые старые окна)
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	for token, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, token)
		}
	}

	if len(l.entries) <= l.capacity {
		return
	}

	type tokenReset struct {
		token   string
		resetAt time.Time
	}
	all := make([]tokenReset, 0, len(l.entries))
	for token, e := range l.entries {
		all = append(all, tokenReset{token, e.resetAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].resetAt.Before(all[j].resetAt) })

	for _, tr := range all[:len(l.entries)-l.capacity] {
		delete(l.entries, tr.token)
	}
}

// Stop останавливает фоновую очистку
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.stopCh:
			return
		}
	}
}

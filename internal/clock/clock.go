// Package clock абстрагирует время и таймеры, чтобы планировщики можно было
// детерминированно гонять в тестах.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer запланированный callback, который можно отменить.
type Timer interface {
	// Stop отменяет callback. Возвращает false, если он уже сработал или был остановлен.
	Stop() bool
}

// Clock дает текущее время и одноразовые таймеры.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real системные часы.
type Real struct{}

// New возвращает системные часы.
func New() Clock {
	return Real{}
}

// Now возвращает time.Now()
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc обертка над time.AfterFunc
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Fake часы, которые двигаются вручную. Callback выполняются синхронно внутри Advance,
// по порядку сроков и без удержания блокировки часов.
type Fake struct {
	now    time.Time
	timers []*fakeTimer
	seq    int
	mu     sync.Mutex
}

type fakeTimer struct {
	at      time.Time
	f       func()
	clock   *Fake
	seq     int
	stopped bool
	fired   bool
}

// NewFake создает fake часы, начиная с now.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

// Now возвращает текущее fake время
func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc планирует f, когда часы сдвинутся на d.
func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &fakeTimer{at: c.now.Add(d), f: f, clock: c, seq: c.seq}
	c.timers = append(c.timers, t)
	return t
}

// Advance двигает часы вперед и запускает все наступившие таймеры.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		if next.at.After(c.now) {
			c.now = next.at
		}
		c.mu.Unlock()

		next.f()
	}
}

// Pending возвращает число запланированных таймеров, которые еще не сработали и не остановлены.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// nextDue должен вызываться под c.mu
func (c *Fake) nextDue(target time.Time) *fakeTimer {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	c.timers = live

	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at.Before(c.timers[j].at)
	})

	if len(c.timers) == 0 || c.timers[0].at.After(target) {
		return nil
	}
	return c.timers[0]
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

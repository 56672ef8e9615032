package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
)

// RateLimiter ограничивает число запросов с одного ключа (обычно IP) за окно.
// Неактивные buckets вытесняются ttlcache.
type RateLimiter struct {
	buckets *ttlcache.Cache[string, *bucket]
	clock   clock.Clock
	logger  *slog.Logger
	rate    int
	window  time.Duration
	mu      sync.Mutex
}

// bucket представляет bucket для конкретного IP/ключа
type bucket struct {
	windowStart time.Time
	tokens      int
}

// NewRateLimiter создает новый rate limiter.
// rate - максимальное количество запросов за window.
func NewRateLimiter(rate int, window time.Duration, clk clock.Clock, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets: ttlcache.New(
			ttlcache.WithTTL[string, *bucket](window * 2),
		),
		clock:  clk,
		logger: logger,
		rate:   rate,
		window: window,
	}

	go rl.buckets.Start()

	return rl
}

// Stop останавливает вытеснение неактивных buckets
func (rl *RateLimiter) Stop() {
	rl.buckets.Stop()
}

// Len возвращает число отслеживаемых ключей
func (rl *RateLimiter) Len() int {
	return rl.buckets.Len()
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()

	var b *bucket
	if item := rl.buckets.Get(key); item != nil {
		b = item.Value()
	} else {
		b = &bucket{windowStart: now, tokens: rl.rate}
		rl.buckets.Set(key, b, ttlcache.DefaultTTL)
	}

	// Новое окно - полный набор токенов
	if now.Sub(b.windowStart) >= rl.window {
		b.tokens = rl.rate
		b.windowStart = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}

	return false
}

// Handler оборачивает next проверкой лимита по IP клиента
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := getClientIP(r)

		if !rl.Allow(key) {
			rl.logger.Warn("Rate limit exceeded",
				"ip", key,
				"method", r.Method,
				"path", r.URL.Path,
			)

			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, "rate limit exceeded, please try again later", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// PathRateLimit задает отдельный лимит для пути
type PathRateLimit struct {
	Path   string
	Rate   int
	Window time.Duration
}

// PathRateLimiter применяет отдельные лимиты к перечисленным путям и общий
// лимит ко всем остальным
type PathRateLimiter struct {
	limiters map[string]*RateLimiter
	fallback *RateLimiter
}

// NewPathRateLimiter создает limiter с кастомными лимитами для путей
func NewPathRateLimiter(limits []PathRateLimit, defaultRate int, defaultWindow time.Duration, clk clock.Clock, logger *slog.Logger) *PathRateLimiter {
	p := &PathRateLimiter{
		limiters: make(map[string]*RateLimiter, len(limits)),
		fallback: NewRateLimiter(defaultRate, defaultWindow, clk, logger),
	}
	for _, limit := range limits {
		p.limiters[limit.Path] = NewRateLimiter(limit.Rate, limit.Window, clk, logger)
	}
	return p
}

// Middleware выбирает limiter по пути запроса
func (p *PathRateLimiter) Middleware(next http.Handler) http.Handler {
	limited := make(map[string]http.Handler, len(p.limiters))
	for path, limiter := range p.limiters {
		limited[path] = limiter.Handler(next)
	}
	fallback := p.fallback.Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := limited[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		fallback.ServeHTTP(w, r)
	})
}

// Stop останавливает все limiters
func (p *PathRateLimiter) Stop() {
	for _, limiter := range p.limiters {
		limiter.Stop()
	}
	p.fallback.Stop()
}

// getClientIP извлекает IP адрес клиента из запроса
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Первый IP в списке - реальный клиент
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// RemoteAddr содержит порт, который меняется между соединениями
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

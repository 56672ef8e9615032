// Package retry решает, повторять ли упавшую операцию и когда.
package retry

import (
	"math"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// Policy описывает правила повторов для одного типа операции
type Policy struct {
	MaxRetries    int           `mapstructure:"max_retries"`
	BaseDelay     time.Duration `mapstructure:"base_delay"`
	MaxDelay      time.Duration `mapstructure:"max_delay"`
	BackoffFactor float64       `mapstructure:"backoff_factor"`
}

// Policies сопоставляет типам операций их политику повторов
type Policies map[models.OperationType]Policy

// DefaultPolicy применяется к типам, которых нет в таблице
var DefaultPolicy = Policy{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 30 * time.Second, BackoffFactor: 2}

// DefaultPolicies возвращает встроенную таблицу. Заказы и платежи получают меньше
// попыток с большими паузами, чем изменения метаданных.
func DefaultPolicies() Policies {
	return Policies{
		models.OperationCreateOrder:   {MaxRetries: 5, BaseDelay: 2 * time.Second, MaxDelay: 60 * time.Second, BackoffFactor: 2},
		models.OperationUpdateOrder:   {MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 30 * time.Second, BackoffFactor: 1.5},
		models.OperationProfileUpdate: {MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 20 * time.Second, BackoffFactor: 1.5},
		models.OperationPayment:       {MaxRetries: 2, BaseDelay: 5 * time.Second, MaxDelay: 30 * time.Second, BackoffFactor: 2},
	}
}

// Engine принимает решения о повторах по таблице политик.
type Engine struct {
	policies Policies
	fallback Policy
}

// NewEngine создает engine. Записи из overrides заменяют умолчания для своего типа.
func NewEngine(overrides Policies) *Engine {
	policies := DefaultPolicies()
	for t, p := range overrides {
		policies[t] = p.normalize()
	}
	return &Engine{policies: policies, fallback: DefaultPolicy}
}

// PolicyFor возвращает политику для типа операции
func (e *Engine) PolicyFor(t models.OperationType) Policy {
	if p, ok := e.policies[t]; ok {
		return p
	}
	return e.fallback
}

// MaxRetries возвращает предел попыток для типа.
func (e *Engine) MaxRetries(t models.OperationType) int {
	return e.PolicyFor(t).MaxRetries
}

// ShouldRetry сообщает, можно ли снова выполнить операцию, упавшую retryCount раз.
func (e *Engine) ShouldRetry(t models.OperationType, retryCount int) bool {
	return retryCount < e.PolicyFor(t).MaxRetries
}

// NextDelay возвращает min(base * factor^(retryCount-1), max). retryCount меньше 1 считается как 1.
func (e *Engine) NextDelay(t models.OperationType, retryCount int) time.Duration {
	return e.PolicyFor(t).Delay(retryCount)
}

// Delay считает backoff для номера попытки.
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}

	factor := p.BackoffFactor
	if factor < 1 {
		factor = 1
	}

	delay := float64(p.BaseDelay) * math.Pow(factor, float64(retryCount-1))
	if delay > float64(p.MaxDelay) || math.IsInf(delay, 0) {
		return p.MaxDelay
	}
	return time.Duration(delay)
}

// normalize подставляет значения по умолчанию для незаданных полей
func (p Policy) normalize() Policy {
	if p.MaxRetries <= 0 {
		p.MaxRetries = DefaultPolicy.MaxRetries
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultPolicy.BaseDelay
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	if p.BackoffFactor < 1 {
		p.BackoffFactor = 1
	}
	return p
}

// Package syncqueue копит изменения, сделанные без связи с сервером, и
// отправляет их по порядку, с повторами и backoff по типу операции, когда связь есть.
package syncqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/api"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/events"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/metrics"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/retry"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

const (
	// DefaultExecTimeout ограничивает одну попытку выполнения
	DefaultExecTimeout = 30 * time.Second
	// DefaultSweepInterval период проверки операций, которым пора на повтор
	DefaultSweepInterval = 30 * time.Second
)

var (
	// ErrOffline возвращается из ForceSyncAll, когда нет связи
	ErrOffline = errors.New("cannot sync while offline")
	// ErrNotAuthenticated возвращается из ForceSyncAll, пока очередь ждет
	// следующего входа
	ErrNotAuthenticated = errors.New("sync paused until login")
)

// expiredReason ошибка, записываемая операциям, отброшенным по возрасту
const expiredReason = "operation expired before it could be sent"

//go:generate moq -out executor_mock.go . Executor

// Executor выполняет сетевой вызов, описанный payload операции.
type Executor interface {
	Execute(ctx context.Context, payload models.RequestPayload) (json.RawMessage, error)
}

// Connectivity сообщает состояние сети и его изменения.
type Connectivity interface {
	IsOnline() bool
	Subscribe(fn func(online bool)) func()
}

// EnqueueOptions настройки одного вызова Enqueue
type EnqueueOptions struct {
	Meta map[string]string
	// ID заранее задает id операции; пустой означает случайный UUID
	ID string
}

// OperationEvent payload всех событий operation-*
type OperationEvent struct {
	Meta       map[string]string
	Response   json.RawMessage // тело ответа сервера, только для operation-completed
	Operation  models.OperationSummary
	Error      string
	Delay      time.Duration // задержка до следующей попытки, только для operation-retrying
	StatusCode int
}

// SyncStatus урезанное представление очереди для UI
type SyncStatus struct {
	Operations []models.OperationSummary `json:"operations"`
	Pending    int                       `json:"pending"`
	Queued     int                       `json:"queued"`
	Retrying   int                       `json:"retrying"`
	Failed     int                       `json:"failed"`
	InProgress bool                      `json:"in_progress"`
	Online     bool                      `json:"online"`
	// AwaitingLogin: очередь стоит, пока нет действующей сессии
	AwaitingLogin bool `json:"awaiting_login"`
}

// Options зависимости координатора. Metrics может быть nil.
type Options struct {
	Store         *Store
	Executor      Executor
	Retry         *retry.Engine
	Network       Connectivity
	Bus           *events.Bus
	Clock         clock.Clock
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	ExecTimeout   time.Duration
	SweepInterval time.Duration
}

// Coordinator единственный владелец состояния операций. Все переходы идут
// под mu; события публикуются после его освобождения.
type Coordinator struct {
	store   *Store
	exec    Executor
	retry   *retry.Engine
	network Connectivity
	bus     *events.Bus
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *slog.Logger

	ctx            context.Context
	cancel         context.CancelFunc
	unsubscribe    func()
	unsubscribeBus func()
	sweep          clock.Timer

	ops    map[string]*models.Operation
	timers map[string]clock.Timer
	idle   chan struct{} // закрыт, когда drain не запущен

	inFlight string
	queue    []string

	execTimeout   time.Duration
	sweepInterval time.Duration

	wg             sync.WaitGroup
	mu             sync.Mutex
	started        bool
	disposed       bool
	syncInProgress bool
	awaitingLogin  bool
}

// NewCoordinator создает координатор. До вызова Init он ничего не делает.
func NewCoordinator(opts Options) *Coordinator {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Retry == nil {
		opts.Retry = retry.NewEngine(nil)
	}
	if opts.ExecTimeout <= 0 {
		opts.ExecTimeout = DefaultExecTimeout
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}

	idle := make(chan struct{})
	close(idle)

	return &Coordinator{
		store:         opts.Store,
		exec:          opts.Executor,
		retry:         opts.Retry,
		network:       opts.Network,
		bus:           opts.Bus,
		clock:         opts.Clock,
		metrics:       opts.Metrics,
		logger:        opts.Logger,
		ops:           make(map[string]*models.Operation),
		timers:        make(map[string]clock.Timer),
		idle:          idle,
		execTimeout:   opts.ExecTimeout,
		sweepInterval: opts.SweepInterval,
	}
}

// Init восстанавливает сохраненные операции, подписывается на сеть и сессию,
// запускает проверку повторов и разбирает очередь, если есть связь.
// Незавершенные операции, отброшенные по возрасту, публикуются как
// operation-expired, чтобы их локальные записи были помечены.
func (c *Coordinator) Init(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return fmt.Errorf("sync coordinator already initialized")
	}
	c.started = true
	c.ctx, c.cancel = context.WithCancel(context.Background())

	ops, queue, expired := c.store.Restore(ctx)
	c.restoreLocked(ops, queue)
	if len(expired) > 0 {
		// снапшот больше не должен содержать просроченные операции
		c.persistLocked()
	}
	c.sweep = c.clock.AfterFunc(c.sweepInterval, c.runSweep)
	c.metrics.SetQueueDepth(len(c.queue))
	restored := len(c.ops)
	c.mu.Unlock()

	unsubscribe := c.network.Subscribe(c.onNetworkChange)
	unsubscribeBus := c.bus.Subscribe(c.onEvent)
	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.unsubscribeBus = unsubscribeBus
	c.mu.Unlock()

	c.logger.Info("Sync coordinator started", "restored_operations", restored, "expired_operations", len(expired))

	for _, op := range expired {
		op.Status = models.OperationFailed
		op.LastError = expiredReason
		c.logger.Warn("Operation expired", "operation_id", op.ID, "type", op.Type, "created_at", op.CreatedAt)
		c.bus.Publish(c.operationEvent(events.OperationExpired, op))
	}

	c.triggerDrain()
	return nil
}

// Dispose останавливает таймеры, отписывается от сети и ждет окончания
// текущего разбора. Прерванное выполнение остается в pending.
func (c *Coordinator) Dispose() {
	c.mu.Lock()
	if !c.started || c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.cancel()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	if c.sweep != nil {
		c.sweep.Stop()
	}
	unsubscribe, unsubscribeBus := c.unsubscribe, c.unsubscribeBus
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if unsubscribeBus != nil {
		unsubscribeBus()
	}
	c.wg.Wait()

	c.logger.Info("Sync coordinator stopped")
}

// Enqueue записывает новую операцию, сохраняет ее и запускает разбор при наличии связи.
// Ошибок не бывает; возвращенный id идентифицирует операцию в событиях и статусе.
func (c *Coordinator) Enqueue(opType models.OperationType, payload models.RequestPayload, opts EnqueueOptions) string {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	c.mu.Lock()
	if _, exists := c.ops[id]; exists {
		c.mu.Unlock()
		c.logger.Warn("Operation already queued", "operation_id", id)
		return id
	}

	op := &models.Operation{
		ID:         id,
		Type:       opType,
		Status:     models.OperationPending,
		Payload:    payload,
		CreatedAt:  c.clock.Now(),
		MaxRetries: c.retry.MaxRetries(opType),
		Meta:       opts.Meta,
	}
	c.ops[id] = op
	c.queue = append(c.queue, id)
	c.persistLocked()
	ev := c.operationEvent(events.OperationQueued, op)
	c.mu.Unlock()

	c.metrics.OperationQueued(string(opType))
	c.logger.Info("Operation queued", "operation_id", id, "type", opType)
	c.bus.Publish(ev)

	c.triggerDrain()
	return id
}

// ForceSyncAll переносит все pending и retrying операции в активную очередь
// в обход backoff и ждет окончания разбора или отмены ctx.
// Упавшие операции не трогаются.
func (c *Coordinator) ForceSyncAll(ctx context.Context) error {
	if !c.network.IsOnline() {
		return ErrOffline
	}

	c.mu.Lock()
	// явный запрос пользователя: пробуем снова даже после паузы
	c.awaitingLogin = false
	moved := 0
	for _, op := range c.sortedOpsLocked() {
		if op.Status != models.OperationPending && op.Status != models.OperationRetrying {
			continue
		}
		if t, ok := c.timers[op.ID]; ok {
			t.Stop()
			delete(c.timers, op.ID)
		}
		if op.Status == models.OperationRetrying {
			op.Status = models.OperationPending
			op.NextAttemptAt = time.Time{}
			moved++
		}
		if op.ID != c.inFlight && !slices.Contains(c.queue, op.ID) {
			c.queue = append(c.queue, op.ID)
		}
	}
	c.persistLocked()
	c.metrics.SetQueueDepth(len(c.queue))
	c.mu.Unlock()

	c.logger.Info("Forced sync requested", "requeued", moved)

	c.triggerDrain()
	if err := c.WaitIdle(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	remaining := len(c.queue)
	paused := c.awaitingLogin
	c.mu.Unlock()
	if paused {
		return ErrNotAuthenticated
	}
	if remaining > 0 && !c.network.IsOnline() {
		return ErrOffline
	}
	return nil
}

// Resume снимает паузу, вызванную отсутствием сессии. Вызывается по событию
// session-started; без паузы ничего не делает.
func (c *Coordinator) Resume() {
	c.mu.Lock()
	was := c.awaitingLogin
	c.awaitingLogin = false
	c.mu.Unlock()

	if was {
		c.logger.Info("Session available, resuming sync")
	}
	c.triggerDrain()
}

// CancelOperation удаляет операцию из очереди, ее таймер повтора и из хранилища.
// Возвращает false, если id неизвестен или операция уже завершена.
// Уже идущее выполнение не прерывается, его результат отбрасывается.
func (c *Coordinator) CancelOperation(id string) bool {
	c.mu.Lock()
	op, ok := c.ops[id]
	if !ok {
		c.mu.Unlock()
		return false
	}

	delete(c.ops, id)
	c.queue = slices.DeleteFunc(c.queue, func(v string) bool { return v == id })
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	c.persistLocked()
	c.metrics.SetQueueDepth(len(c.queue))
	inFlight := c.inFlight == id
	ev := c.operationEvent(events.OperationCancelled, op)
	c.mu.Unlock()

	c.metrics.OperationCancelled()
	c.logger.Info("Operation cancelled", "operation_id", id, "type", op.Type, "in_flight", inFlight)
	c.bus.Publish(ev)
	return true
}

// GetSyncStatus возвращает счетчики и сводки без payload в порядке создания
func (c *Coordinator) GetSyncStatus() SyncStatus {
	online := c.network.IsOnline()

	c.mu.Lock()
	defer c.mu.Unlock()

	status := SyncStatus{
		Operations:    make([]models.OperationSummary, 0, len(c.ops)),
		Queued:        len(c.queue),
		InProgress:    c.syncInProgress,
		Online:        online,
		AwaitingLogin: c.awaitingLogin,
	}
	for _, op := range c.sortedOpsLocked() {
		switch op.Status {
		case models.OperationPending:
			status.Pending++
		case models.OperationRetrying:
			status.Retrying++
		case models.OperationFailed:
			status.Failed++
		}
		status.Operations = append(status.Operations, op.Summary())
	}
	return status
}

// Operation возвращает копию отслеживаемой операции
func (c *Coordinator) Operation(id string) (*models.Operation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	op, ok := c.ops[id]
	if !ok {
		return nil, false
	}
	return op.Clone(), true
}

// Drain запускает разбор, если он не идет и сеть доступна
func (c *Coordinator) Drain() {
	c.triggerDrain()
}

// WaitIdle блокируется, пока идет разбор
func (c *Coordinator) WaitIdle(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Coordinator) onNetworkChange(online bool) {
	now := c.clock.Now()
	if !online {
		// текущее выполнение завершится само, новые операции не берем
		c.bus.Emit(events.NetworkLost, now, nil)
		return
	}
	c.bus.Emit(events.NetworkRestored, now, nil)
	c.triggerDrain()
}

func (c *Coordinator) onEvent(e events.Event) {
	if e.Type == events.SessionStarted {
		c.Resume()
	}
}

// triggerDrain запускает единственный цикл обработки очереди
func (c *Coordinator) triggerDrain() {
	if !c.network.IsOnline() {
		return
	}

	c.mu.Lock()
	if !c.started || c.disposed || c.syncInProgress || c.awaitingLogin || len(c.queue) == 0 {
		c.mu.Unlock()
		return
	}
	c.syncInProgress = true
	c.idle = make(chan struct{})
	c.wg.Add(1)
	c.mu.Unlock()

	go c.drain()
}

func (c *Coordinator) drain() {
	defer c.wg.Done()

	c.bus.Emit(events.SyncStarted, c.clock.Now(), nil)
	processed := 0

	for {
		op, ok := c.dequeue()
		if !ok {
			break
		}
		if op == nil {
			continue
		}

		c.bus.Publish(c.operationEvent(events.OperationStarted, op))
		c.logger.Debug("Executing operation", "operation_id", op.ID, "type", op.Type, "attempt", op.RetryCount+1)

		started := c.clock.Now()
		execCtx, cancel := context.WithTimeout(c.ctx, c.execTimeout)
		resp, err := c.exec.Execute(execCtx, op.Payload)
		cancel()

		c.finish(op.ID, resp, err, c.clock.Now().Sub(started))
		processed++
	}

	c.bus.Emit(events.SyncFinished, c.clock.Now(), map[string]int{"processed": processed})
}

// dequeue снимает следующую операцию с головы очереди. ok=false завершает drain.
// nil операция означает, что id устарел и его надо пропустить.
func (c *Coordinator) dequeue() (*models.Operation, bool) {
	online := c.network.IsOnline()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ctx.Err() != nil || !online || c.awaitingLogin || len(c.queue) == 0 {
		c.syncInProgress = false
		close(c.idle)
		return nil, false
	}

	id := c.queue[0]
	c.queue = c.queue[1:]
	c.metrics.SetQueueDepth(len(c.queue))

	op, ok := c.ops[id]
	if !ok || op.Status != models.OperationPending {
		return nil, true
	}

	op.LastAttemptAt = c.clock.Now()
	c.inFlight = id
	return op.Clone(), true
}

// finish применяет результат попытки к состоянию операции
func (c *Coordinator) finish(id string, resp json.RawMessage, execErr error, took time.Duration) {
	c.mu.Lock()
	c.inFlight = ""

	op, ok := c.ops[id]
	if !ok {
		c.mu.Unlock()
		c.logger.Info("Operation cancelled during execution, result ignored", "operation_id", id)
		return
	}

	// Dispose прервал выполнение: попытка не засчитывается
	if execErr != nil && c.ctx.Err() != nil {
		c.queue = append([]string{id}, c.queue...)
		c.persistLocked()
		c.mu.Unlock()
		return
	}

	now := c.clock.Now()
	opType := string(op.Type)

	// нет сессии: запрос не ушел в сеть, попытка не засчитывается
	if errors.Is(execErr, api.ErrUnauthenticated) {
		op.LastError = execErr.Error()
		op.LastStatus = api.StatusCode(execErr)
		c.queue = append([]string{id}, c.queue...)
		c.awaitingLogin = true
		c.persistLocked()
		c.metrics.SetQueueDepth(len(c.queue))
		ev := c.operationEvent(events.SyncPaused, op)
		c.mu.Unlock()

		c.logger.Warn("Sync paused until login", "operation_id", id, "type", op.Type, "error", execErr)
		c.bus.Publish(ev)
		return
	}

	if execErr == nil {
		op.Status = models.OperationCompleted
		op.CompletedAt = now
		op.LastError = ""
		delete(c.ops, id)
		c.persistLocked()
		p := c.describe(op)
		p.Response = resp
		ev := c.event(events.OperationCompleted, p)
		c.mu.Unlock()

		c.metrics.OperationCompleted(opType, took)
		c.logger.Info("Operation completed", "operation_id", id, "type", op.Type, "attempts", op.RetryCount+1)
		c.bus.Publish(ev)
		return
	}

	op.RetryCount++
	op.LastError = execErr.Error()
	op.LastStatus = api.StatusCode(execErr)

	if c.retry.ShouldRetry(op.Type, op.RetryCount) {
		delay := c.retry.NextDelay(op.Type, op.RetryCount)
		op.Status = models.OperationRetrying
		op.NextAttemptAt = now.Add(delay)
		c.timers[id] = c.clock.AfterFunc(delay, func() { c.requeue(id) })
		c.persistLocked()
		p := c.describe(op)
		p.Delay = delay
		ev := c.event(events.OperationRetrying, p)
		c.mu.Unlock()

		c.metrics.OperationRetrying(opType, took)
		c.logger.Warn("Operation failed, will retry",
			"operation_id", id,
			"type", op.Type,
			"retry_count", op.RetryCount,
			"delay", delay,
			"error", execErr)
		c.bus.Publish(ev)
		return
	}

	op.Status = models.OperationFailed
	op.FailedAt = now
	op.NextAttemptAt = time.Time{}
	c.persistLocked()
	ev := c.operationEvent(events.OperationFailed, op)
	c.mu.Unlock()

	c.metrics.OperationFailed(opType, took)
	c.logger.Error("Operation failed permanently",
		"operation_id", id,
		"type", op.Type,
		"retry_count", op.RetryCount,
		"error", execErr)
	c.bus.Publish(ev)
}

// requeue возвращает операцию в конец очереди после backoff
func (c *Coordinator) requeue(id string) {
	c.mu.Lock()
	delete(c.timers, id)
	if c.disposed || !c.requeueLocked(id) {
		c.mu.Unlock()
		return
	}
	c.persistLocked()
	c.metrics.SetQueueDepth(len(c.queue))
	c.mu.Unlock()

	c.triggerDrain()
}

func (c *Coordinator) requeueLocked(id string) bool {
	op, ok := c.ops[id]
	if !ok || op.Status != models.OperationRetrying {
		return false
	}
	op.Status = models.OperationPending
	op.NextAttemptAt = time.Time{}
	c.queue = append(c.queue, id)
	return true
}

// runSweep подбирает повторы, чьи таймеры потерялись
func (c *Coordinator) runSweep() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}

	now := c.clock.Now()
	swept := 0
	for _, op := range c.sortedOpsLocked() {
		if op.Status != models.OperationRetrying || op.NextAttemptAt.After(now) {
			continue
		}
		if t, ok := c.timers[op.ID]; ok {
			t.Stop()
			delete(c.timers, op.ID)
		}
		if c.requeueLocked(op.ID) {
			swept++
		}
	}
	if swept > 0 {
		c.persistLocked()
		c.metrics.SetQueueDepth(len(c.queue))
	}
	c.sweep = c.clock.AfterFunc(c.sweepInterval, c.runSweep)
	c.mu.Unlock()

	if swept > 0 {
		c.logger.Info("Sweep requeued due operations", "count", swept)
		c.triggerDrain()
	}
}

// restoreLocked восстанавливает состояние из снапшота
func (c *Coordinator) restoreLocked(ops []*models.Operation, queue []string) {
	now := c.clock.Now()

	for _, op := range ops {
		if _, exists := c.ops[op.ID]; exists {
			continue
		}
		c.ops[op.ID] = op
	}

	queued := make(map[string]struct{}, len(c.queue))
	for _, id := range c.queue {
		queued[id] = struct{}{}
	}
	for _, id := range queue {
		if _, ok := queued[id]; ok {
			continue
		}
		if op, ok := c.ops[id]; ok && op.Status == models.OperationPending {
			c.queue = append(c.queue, id)
			queued[id] = struct{}{}
		}
	}

	for _, op := range c.sortedOpsLocked() {
		switch op.Status {
		case models.OperationPending:
			// операция была в полете в момент сохранения
			if _, ok := queued[op.ID]; !ok {
				c.queue = append(c.queue, op.ID)
				queued[op.ID] = struct{}{}
			}
		case models.OperationRetrying:
			delay := op.NextAttemptAt.Sub(now)
			if delay < 0 {
				delay = 0
			}
			id := op.ID
			c.timers[id] = c.clock.AfterFunc(delay, func() { c.requeue(id) })
		}
	}
}

// persistLocked сохраняет снапшот, должен вызываться под c.mu
func (c *Coordinator) persistLocked() {
	ops := c.sortedOpsLocked()
	snapshot := make([]*models.Operation, 0, len(ops))
	for _, op := range ops {
		snapshot = append(snapshot, op.Clone())
	}
	c.store.Save(context.Background(), snapshot, slices.Clone(c.queue))
}

func (c *Coordinator) sortedOpsLocked() []*models.Operation {
	ops := make([]*models.Operation, 0, len(c.ops))
	for _, op := range c.ops {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].CreatedAt.Equal(ops[j].CreatedAt) {
			return ops[i].ID < ops[j].ID
		}
		return ops[i].CreatedAt.Before(ops[j].CreatedAt)
	})
	return ops
}

func (c *Coordinator) operationEvent(t events.Type, op *models.Operation) events.Event {
	return c.event(t, c.describe(op))
}

func (c *Coordinator) describe(op *models.Operation) OperationEvent {
	return OperationEvent{
		Operation:  op.Summary(),
		Meta:       op.Meta,
		Error:      op.LastError,
		StatusCode: op.LastStatus,
	}
}

func (c *Coordinator) event(t events.Type, payload OperationEvent) events.Event {
	return events.Event{Type: t, Timestamp: c.clock.Now(), Payload: payload}
}

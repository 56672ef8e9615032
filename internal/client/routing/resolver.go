// Package routing сообщает клиенту, что может показать экран, когда
// сервер недоступен.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
)

// Mode способ отдачи маршрута
type Mode string

const (
	ModeLive        Mode = "live"
	ModeCached      Mode = "cached"
	ModeOffline     Mode = "offline"
	ModeUnavailable Mode = "unavailable"
)

const (
	unavailableTitle   = "Not available offline"
	unavailableMessage = "This page needs a connection to the server. It will be available again once you are back online."
)

// Connectivity сообщает, доступен ли сервер.
type Connectivity interface {
	IsOnline() bool
}

// Resolution результат разрешения маршрута
type Resolution struct {
	LastUpdated time.Time       `json:"last_updated,omitzero"`
	Path        string          `json:"path"`
	Mode        Mode            `json:"mode"`
	Title       string          `json:"title,omitempty"`
	Message     string          `json:"message,omitempty"`
	Dataset     string          `json:"dataset,omitempty"`
	Actions     []string        `json:"actions,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
}

// Resolver сопоставляет маршрут с живым, кэшированным или офлайн содержимым.
type Resolver struct {
	registry  *Registry
	snapshots storage.SnapshotStorage
	network   Connectivity
	clock     clock.Clock
	logger    *slog.Logger
}

// NewResolver создает resolver. snapshots может быть nil, тогда маршруты
// никогда не отдаются в режиме cached.
func NewResolver(registry *Registry, snapshots storage.SnapshotStorage, network Connectivity, clk clock.Clock, logger *slog.Logger) *Resolver {
	if clk == nil {
		clk = clock.New()
	}
	return &Resolver{
		registry:  registry,
		snapshots: snapshots,
		network:   network,
		clock:     clk,
		logger:    logger,
	}
}

// Resolve не падает: неизвестный маршрут офлайн получает общее описание.
func (r *Resolver) Resolve(ctx context.Context, p string) Resolution {
	p = NormalizePath(p)

	if r.network.IsOnline() {
		return Resolution{Path: p, Mode: ModeLive}
	}

	fb, ok := r.registry.Match(p)
	if !ok {
		return Resolution{
			Path:    p,
			Mode:    ModeUnavailable,
			Title:   unavailableTitle,
			Message: unavailableMessage,
		}
	}

	res := Resolution{
		Path:    p,
		Mode:    ModeOffline,
		Title:   fb.Title,
		Message: fb.Message,
		Actions: append([]string(nil), fb.Actions...),
	}

	if fb.Dataset == "" || r.snapshots == nil {
		return res
	}

	snapshot, err := r.snapshots.GetSnapshot(ctx, fb.Dataset)
	if err != nil {
		if !errors.Is(err, storage.ErrSnapshotNotFound) {
			r.logger.Warn("Failed to read route snapshot", "path", p, "dataset", fb.Dataset, "error", err)
		}
		return res
	}

	res.Mode = ModeCached
	res.Dataset = fb.Dataset
	res.Content = snapshot.Content
	res.LastUpdated = snapshot.LastUpdated
	return res
}

// Age возвращает возраст кэшированного содержимого
func (r *Resolver) Age(res Resolution) time.Duration {
	if res.LastUpdated.IsZero() {
		return 0
	}
	return r.clock.Now().Sub(res.LastUpdated)
}

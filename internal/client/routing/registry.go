package routing

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultRoutes []byte

// Fallback описывает, что маршрут предлагает, пока клиент офлайн.
type Fallback struct {
	Path    string   `yaml:"path" json:"path"`
	Title   string   `yaml:"title" json:"title"`
	Message string   `yaml:"message" json:"message"`
	Dataset string   `yaml:"dataset,omitempty" json:"dataset,omitempty"`
	Actions []string `yaml:"actions,omitempty" json:"actions,omitempty"`
}

type routesFile struct {
	Routes []Fallback `yaml:"routes"`
}

// Registry хранит офлайн описания по нормализованному пути маршрута.
type Registry struct {
	routes map[string]Fallback
	// пути отсортированы по убыванию длины для поиска по самому длинному префиксу
	order []string
}

// DefaultRegistry возвращает встроенные описания маршрутов.
func DefaultRegistry() (*Registry, error) {
	r := &Registry{routes: make(map[string]Fallback)}
	if err := r.merge(defaultRoutes); err != nil {
		return nil, fmt.Errorf("failed to parse built-in routes: %w", err)
	}
	return r, nil
}

// LoadRegistry возвращает встроенные описания, переопределенные записями из
// YAML файла overridePath. Пустой путь загружает только умолчания.
func LoadRegistry(overridePath string) (*Registry, error) {
	r, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}
	if overridePath == "" {
		return r, nil
	}

	data, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file: %w", err)
	}
	if err := r.merge(data); err != nil {
		return nil, fmt.Errorf("failed to parse routes file %s: %w", overridePath, err)
	}
	return r, nil
}

// Register добавляет или заменяет описание маршрута.
func (r *Registry) Register(fb Fallback) error {
	p := NormalizePath(fb.Path)
	if p == "/" {
		return errors.New("route path must not be empty")
	}
	fb.Path = p
	if _, ok := r.routes[p]; !ok {
		r.order = append(r.order, p)
		sort.SliceStable(r.order, func(i, j int) bool {
			return len(r.order[i]) > len(r.order[j])
		})
	}
	r.routes[p] = fb
	return nil
}

// Match возвращает описание самого длинного зарегистрированного префикса p.
func (r *Registry) Match(p string) (Fallback, bool) {
	p = NormalizePath(p)
	for _, route := range r.order {
		if p == route || strings.HasPrefix(p, route+"/") {
			return r.routes[route], true
		}
	}
	return Fallback{}, false
}

// Routes возвращает все описания, самые длинные пути первыми.
func (r *Registry) Routes() []Fallback {
	out := make([]Fallback, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, r.routes[p])
	}
	return out
}

func (r *Registry) merge(data []byte) error {
	var f routesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	for _, fb := range f.Routes {
		if err := r.Register(fb); err != nil {
			return err
		}
	}
	return nil
}

// NormalizePath убирает query, fragment и завершающие слэши и чистит
// путь. Результат всегда начинается с "/".
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.ToLower(path.Clean(p))
}

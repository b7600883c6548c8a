// Package catalog is the process-wide registry of named graph stores.
// Entries are immutable snapshots; replacing a name swaps the snapshot and
// never mutates the previous one.
package catalog

import (
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/metrics"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

var (
	ErrGraphNotFound = errors.New("graph not found")
	ErrGraphExists   = errors.New("graph already exists")
)

// Entry describes one named graph
type Entry struct {
	Name              string    `json:"name"`
	NodeCount         int       `json:"nodeCount"`
	RelationshipCount int       `json:"relationshipCount"`
	RelationshipTypes []string  `json:"relationshipTypes"`
	NodeProperties    []string  `json:"nodeProperties"`
	CreatedAt         time.Time `json:"createdAt"`
}

type slot struct {
	store   *graphstore.GraphStore
	created time.Time
}

// Catalog maps names to graph stores. Safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	graphs  map[string]slot
	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates an empty catalog. logger and m may be nil.
func New(logger logging.Logger, m *metrics.Registry) *Catalog {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Catalog{
		graphs:  make(map[string]slot),
		logger:  logger.With(logging.Component("catalog")),
		metrics: m,
	}
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default returns the process-wide catalog
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(logging.DefaultLogger(), metrics.DefaultRegistry())
	})
	return defaultCatalog
}

// Put registers store under name and fails if the name is taken.
func (c *Catalog) Put(name string, store *graphstore.GraphStore) error {
	if err := validation.ValidateGraphName(name); err != nil {
		c.record("put", err)
		return err
	}

	c.mu.Lock()
	if _, exists := c.graphs[name]; exists {
		c.mu.Unlock()
		err := &Error{Op: "put", Name: name, Cause: ErrGraphExists}
		c.record("put", err)
		return err
	}
	c.graphs[name] = slot{store: store, created: time.Now()}
	count := len(c.graphs)
	c.mu.Unlock()

	c.published(name, store, count)
	c.logger.Info("graph stored", logging.GraphName(name),
		logging.NodeCount(store.NodeCount()), logging.RelationshipCount(store.RelationshipCount()))
	c.record("put", nil)
	return nil
}

// Replace registers store under name, replacing any existing entry.
func (c *Catalog) Replace(name string, store *graphstore.GraphStore) error {
	if err := validation.ValidateGraphName(name); err != nil {
		c.record("replace", err)
		return err
	}

	c.mu.Lock()
	c.graphs[name] = slot{store: store, created: time.Now()}
	count := len(c.graphs)
	c.mu.Unlock()

	c.published(name, store, count)
	c.record("replace", nil)
	return nil
}

// Update replaces the store under name with fn's result. fn runs under
// the catalog write lock, so concurrent updates of one name see each
// other's snapshots. An error from fn leaves the entry unchanged.
func (c *Catalog) Update(name string, fn func(*graphstore.GraphStore) (*graphstore.GraphStore, error)) error {
	c.mu.Lock()
	s, ok := c.graphs[name]
	if !ok {
		c.mu.Unlock()
		err := &Error{Op: "update", Name: name, Cause: ErrGraphNotFound}
		c.record("update", err)
		return err
	}
	next, err := fn(s.store)
	if err != nil {
		c.mu.Unlock()
		c.record("update", err)
		return err
	}
	c.graphs[name] = slot{store: next, created: s.created}
	count := len(c.graphs)
	c.mu.Unlock()

	c.published(name, next, count)
	c.record("update", nil)
	return nil
}

// Get returns the store registered under name
func (c *Catalog) Get(name string) (*graphstore.GraphStore, error) {
	c.mu.RLock()
	s, ok := c.graphs[name]
	c.mu.RUnlock()
	if !ok {
		err := &Error{Op: "get", Name: name, Cause: ErrGraphNotFound}
		c.record("get", err)
		return nil, err
	}
	c.record("get", nil)
	return s.store, nil
}

// Exists reports whether name is registered
func (c *Catalog) Exists(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.graphs[name]
	return ok
}

// Drop removes name and returns the store it held
func (c *Catalog) Drop(name string) (*graphstore.GraphStore, error) {
	c.mu.Lock()
	s, ok := c.graphs[name]
	if ok {
		delete(c.graphs, name)
	}
	count := len(c.graphs)
	c.mu.Unlock()

	if !ok {
		err := &Error{Op: "drop", Name: name, Cause: ErrGraphNotFound}
		c.record("drop", err)
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.RemoveCatalogGraph(name)
		c.metrics.CatalogGraphsTotal.Set(float64(count))
	}
	c.logger.Info("graph dropped", logging.GraphName(name))
	c.record("drop", nil)
	return s.store, nil
}

// List describes every graph, ordered by name
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	snapshot := maps.Clone(c.graphs)
	c.mu.RUnlock()

	out := make([]Entry, 0, len(snapshot))
	for _, name := range slices.Sorted(maps.Keys(snapshot)) {
		s := snapshot[name]
		out = append(out, Entry{
			Name:              name,
			NodeCount:         s.store.NodeCount(),
			RelationshipCount: s.store.RelationshipCount(),
			RelationshipTypes: s.store.RelationshipTypes(),
			NodeProperties:    s.store.NodePropertyKeys(),
			CreatedAt:         s.created,
		})
	}
	return out
}

func (c *Catalog) published(name string, store *graphstore.GraphStore, count int) {
	if c.metrics == nil {
		return
	}
	c.metrics.UpdateCatalogGraph(name, store.NodeCount(), store.RelationshipCount())
	c.metrics.CatalogGraphsTotal.Set(float64(count))
}

func (c *Catalog) record(op string, err error) {
	if c.metrics == nil {
		return
	}
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	c.metrics.RecordCatalogOperation(op, status)
}

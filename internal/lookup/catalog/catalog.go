package catalog

import (
	"strings"
	"sync"

	"github.com/alraulpm-lang/checador/internal/lookup/model"
)

// State is the load lifecycle of a Catalog.
type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Catalog is an insertion-ordered, in-memory product table keyed by a
// configurable barcode column. Lookups are linear scans; duplicates resolve to
// the first match.
type Catalog struct {
	mu        sync.RWMutex
	codeField string
	records   []model.Record
	state     State
}

func New(codeField string) *Catalog {
	return &Catalog{codeField: codeField, state: Pending}
}

// Load replaces the contents wholesale. Readers see either the old or the new
// slice, never a mix.
func (c *Catalog) Load(records []model.Record) {
	cp := make([]model.Record, len(records))
	copy(cp, records)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = cp
	c.state = Ready
}

// Fail marks the load as failed and drops any previous contents.
func (c *Catalog) Fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = nil
	c.state = Failed
}

func (c *Catalog) FindByCode(code string) (model.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, rec := range c.records {
		if v, ok := rec.Get(c.codeField); ok && v == code {
			return rec, true
		}
	}
	return model.Record{}, false
}

// Lookup is FindByCode with the not-ready case made explicit: while the first
// load is still in flight the outcome is OutcomeLoading.
func (c *Catalog) Lookup(code string) (model.Record, model.Outcome) {
	if c.State() == Pending {
		return model.Record{}, model.OutcomeLoading
	}
	rec, found := c.FindByCode(code)
	if !found {
		return model.Record{}, model.OutcomeNotFound
	}
	return rec, model.OutcomeFound
}

// Search returns up to limit records whose name or description contains query,
// ignoring case. limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []model.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []model.Record
	for _, rec := range c.records {
		if q != "" &&
			!strings.Contains(strings.ToLower(rec.Product.Name), q) &&
			!strings.Contains(strings.ToLower(rec.Product.Description), q) {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func (c *Catalog) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// CodeField returns the column used as the lookup key.
func (c *Catalog) CodeField() string {
	return c.codeField
}

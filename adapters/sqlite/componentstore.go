package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fakester/radcomponents/adapters/clock"
	"github.com/fakester/radcomponents/domain/component"
	"github.com/fakester/radcomponents/ports"
)

// Scope separates the rows written by each process kind.
type Scope string

const (
	ScopeDesigner Scope = "designer"
	ScopeGateway  Scope = "gateway"
)

// ErrUnknownScope is returned for a scope other than designer or gateway.
var ErrUnknownScope = errors.New("unknown registry scope")

// ParseScope validates a scope name.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeDesigner, ScopeGateway:
		return Scope(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// ComponentStore implements ports.ComponentRegistry and
// ports.ComponentLookup for one scope.
type ComponentStore struct {
	db    *DB
	scope Scope
	clock ports.Clock
}

// NewComponentStore creates a component store bound to scope. A nil clock
// uses the system clock.
func NewComponentStore(db *DB, scope Scope, c ports.Clock) *ComponentStore {
	return &ComponentStore{db: db, scope: scope, clock: clock.Or(c)}
}

// Scope returns the scope this store writes to.
func (s *ComponentStore) Scope() Scope { return s.scope }

// RegisterComponent upserts d.
func (s *ComponentStore) RegisterComponent(ctx context.Context, d component.Descriptor) error {
	if d.IsZero() {
		return fmt.Errorf("register component: empty descriptor")
	}

	rec := d.Record()
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.ID, err)
	}

	_, err = s.db.DB.ExecContext(ctx, `
		INSERT INTO components (scope, id, module_id, record, fingerprint, registered_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(scope, id) DO UPDATE SET
			module_id = excluded.module_id,
			record = excluded.record,
			fingerprint = excluded.fingerprint,
			registered_at = excluded.registered_at
	`, string(s.scope), rec.ID, rec.ModuleID, string(data), rec.Fingerprint(),
		s.clock.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert component %s: %w", rec.ID, err)
	}
	return nil
}

// RemoveComponent deletes the row for id. Missing rows are not an error.
func (s *ComponentStore) RemoveComponent(ctx context.Context, id string) error {
	_, err := s.db.DB.ExecContext(ctx,
		`DELETE FROM components WHERE scope = ? AND id = ?`,
		string(s.scope), id,
	)
	if err != nil {
		return fmt.Errorf("delete component %s: %w", id, err)
	}
	return nil
}

// Component returns the record registered under id.
func (s *ComponentStore) Component(ctx context.Context, id string) (component.Record, bool, error) {
	var data string
	err := s.db.DB.QueryRowContext(ctx,
		`SELECT record FROM components WHERE scope = ? AND id = ?`,
		string(s.scope), id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return component.Record{}, false, nil
		}
		return component.Record{}, false, err
	}

	var rec component.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return component.Record{}, false, fmt.Errorf("decode record %s: %w", id, err)
	}
	return rec, true, nil
}

// Components returns every record in the scope sorted by id.
func (s *ComponentStore) Components(ctx context.Context) ([]component.Record, error) {
	rows, err := s.db.DB.QueryContext(ctx,
		`SELECT id, record FROM components WHERE scope = ? ORDER BY id`,
		string(s.scope),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []component.Record
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var rec component.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", id, err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// ScopeSummary is the row count and last registration time of one scope.
type ScopeSummary struct {
	Scope        Scope     `json:"scope" yaml:"scope"`
	Components   int       `json:"components" yaml:"components"`
	RegisteredAt time.Time `json:"registeredAt,omitempty" yaml:"registeredAt,omitempty"`
}

// Scopes summarizes both scopes. A scope with no rows is reported with a
// zero count.
func Scopes(ctx context.Context, db *DB) ([]ScopeSummary, error) {
	rows, err := db.DB.QueryContext(ctx,
		`SELECT scope, COUNT(*), MAX(registered_at) FROM components GROUP BY scope`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[Scope]ScopeSummary)
	for rows.Next() {
		var scope, last string
		var n int
		if err := rows.Scan(&scope, &n, &last); err != nil {
			return nil, err
		}
		sum := ScopeSummary{Scope: Scope(scope), Components: n}
		sum.RegisteredAt, _ = time.Parse(time.RFC3339, last)
		found[sum.Scope] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]ScopeSummary, 0, 2)
	for _, scope := range []Scope{ScopeDesigner, ScopeGateway} {
		sum, ok := found[scope]
		if !ok {
			sum = ScopeSummary{Scope: scope}
		}
		result = append(result, sum)
	}
	return result, nil
}

// Drift describes a component whose designer and gateway rows disagree.
// An empty fingerprint means the row is missing from that scope.
type Drift struct {
	ID       string `json:"id" yaml:"id"`
	Designer string `json:"designer" yaml:"designer"`
	Gateway  string `json:"gateway" yaml:"gateway"`
}

// Compare reports every component id whose fingerprint differs between the
// designer and gateway scopes, sorted by id.
func Compare(ctx context.Context, db *DB) ([]Drift, error) {
	rows, err := db.DB.QueryContext(ctx,
		`SELECT scope, id, fingerprint FROM components ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var order []string
	byID := make(map[string]*Drift)
	for rows.Next() {
		var scope, id, fp string
		if err := rows.Scan(&scope, &id, &fp); err != nil {
			return nil, err
		}
		d, ok := byID[id]
		if !ok {
			d = &Drift{ID: id}
			byID[id] = d
			order = append(order, id)
		}
		switch Scope(scope) {
		case ScopeDesigner:
			d.Designer = fp
		case ScopeGateway:
			d.Gateway = fp
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var result []Drift
	for _, id := range order {
		if d := byID[id]; d.Designer != d.Gateway {
			result = append(result, *d)
		}
	}
	return result, nil
}

// Ensure interface compliance.
var (
	_ ports.ComponentRegistry = (*ComponentStore)(nil)
	_ ports.ComponentLookup   = (*ComponentStore)(nil)
)

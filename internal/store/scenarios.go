// Package store provides a SQLite-backed store for saved cost scenarios.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/vaporcalc/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrNotFound is returned when no scenario has the requested name.
	ErrNotFound = errors.New("scenario not found")
	// ErrEmptyName is returned when saving a scenario without a name.
	ErrEmptyName = errors.New("scenario name is empty")
)

// Store persists named scenarios.
type Store struct {
	db *sql.DB
}

// Scenario is a saved set of inputs.
type Scenario struct {
	ID        string
	Name      string
	Inputs    model.Inputs
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is a compact listing entry for a saved scenario.
type Summary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Items          int       `json:"items"`
	TotalWithTaxes float64   `json:"total_with_taxes"`
	MaxIncome      float64   `json:"max_income"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Open opens or creates the scenario database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save creates or replaces the scenario called name. Line items are
// rewritten in their current order.
func (s *Store) Save(name string, in model.Inputs) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)

	var id string
	err = tx.QueryRow("SELECT id FROM scenarios WHERE name = ?", name).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.NewString()
		_, err = tx.Exec(`INSERT INTO scenarios
			(id, name, max_income, development_cost, monthly_cost, tax_rate, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, name, in.MaxIncome, in.DevelopmentCost, in.MonthlyCost, in.TaxRate, now, now,
		)
	case err == nil:
		_, err = tx.Exec(`UPDATE scenarios SET
			max_income = ?, development_cost = ?, monthly_cost = ?, tax_rate = ?, updated_at = ?
			WHERE id = ?`,
			in.MaxIncome, in.DevelopmentCost, in.MonthlyCost, in.TaxRate, now, id,
		)
	}
	if err != nil {
		return fmt.Errorf("saving scenario %q: %w", name, err)
	}

	if _, err := tx.Exec("DELETE FROM scenario_items WHERE scenario_id = ?", id); err != nil {
		return err
	}

	for _, list := range []model.ItemList{model.HardwareList, model.OperationalList} {
		for pos, it := range *in.Items(list) {
			_, err := tx.Exec(`INSERT INTO scenario_items (scenario_id, list, position, name, price)
				VALUES (?, ?, ?, ?, ?)`, id, list.String(), pos, it.Name, it.Price)
			if err != nil {
				return fmt.Errorf("saving %s item %d: %w", list, pos, err)
			}
		}
	}

	return tx.Commit()
}

// Load returns the scenario called name, or ErrNotFound.
func (s *Store) Load(name string) (Scenario, error) {
	var sc Scenario
	var created, updated string
	err := s.db.QueryRow(`SELECT id, name, max_income, development_cost, monthly_cost, tax_rate,
		created_at, updated_at FROM scenarios WHERE name = ?`, strings.TrimSpace(name)).Scan(
		&sc.ID, &sc.Name, &sc.Inputs.MaxIncome, &sc.Inputs.DevelopmentCost,
		&sc.Inputs.MonthlyCost, &sc.Inputs.TaxRate, &created, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Scenario{}, err
	}
	sc.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)

	items, err := s.loadItems("WHERE scenario_id = ?", sc.ID)
	if err != nil {
		return Scenario{}, err
	}
	sc.Inputs.HardwareItems = items[sc.ID][model.HardwareList]
	sc.Inputs.OperationalItems = items[sc.ID][model.OperationalList]
	return sc, nil
}

// List returns summaries of every saved scenario, ordered by name.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(`SELECT id, name, max_income, development_cost, monthly_cost, tax_rate, updated_at
		FROM scenarios ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scenarios []Scenario
	for rows.Next() {
		var sc Scenario
		var updated string
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Inputs.MaxIncome, &sc.Inputs.DevelopmentCost,
			&sc.Inputs.MonthlyCost, &sc.Inputs.TaxRate, &updated); err != nil {
			return nil, err
		}
		sc.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		scenarios = append(scenarios, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Batch-load items
	items, err := s.loadItems("")
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(scenarios))
	for _, sc := range scenarios {
		sc.Inputs.HardwareItems = items[sc.ID][model.HardwareList]
		sc.Inputs.OperationalItems = items[sc.ID][model.OperationalList]
		out := model.Compute(sc.Inputs)
		summaries = append(summaries, Summary{
			ID:             sc.ID,
			Name:           sc.Name,
			Items:          len(sc.Inputs.HardwareItems) + len(sc.Inputs.OperationalItems),
			TotalWithTaxes: out.TotalWithTaxes,
			MaxIncome:      sc.Inputs.MaxIncome,
			UpdatedAt:      sc.UpdatedAt,
		})
	}
	return summaries, nil
}

// Delete removes the scenario called name, or returns ErrNotFound.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec("DELETE FROM scenarios WHERE name = ?", strings.TrimSpace(name))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Count returns the number of saved scenarios.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scenarios").Scan(&count)
	return count, err
}

// loadItems returns scenario ID -> list -> items in position order.
func (s *Store) loadItems(where string, args ...any) (map[string]map[model.ItemList][]model.LineItem, error) {
	rows, err := s.db.Query(`SELECT scenario_id, list, name, price FROM scenario_items `+
		where+` ORDER BY scenario_id, list, position`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]map[model.ItemList][]model.LineItem)
	for rows.Next() {
		var id, listName string
		var it model.LineItem
		if err := rows.Scan(&id, &listName, &it.Name, &it.Price); err != nil {
			return nil, err
		}
		list, ok := model.ParseItemList(listName)
		if !ok {
			continue
		}
		if result[id] == nil {
			result[id] = make(map[model.ItemList][]model.LineItem)
		}
		result[id][list] = append(result[id][list], it)
	}
	return result, rows.Err()
}

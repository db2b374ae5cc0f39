package capacity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tradecapacity/internal/adapters/storage"
	domain "tradecapacity/internal/domain/capacity"
	"tradecapacity/internal/domain/filter"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const rowColumns = `id, tm_area, tm_region, tm_division, tm_territory, capacity_percent, pacing_percent, region_color`

// ListRows returns every row ordered by id.
func (s *SQLiteStore) ListRows(ctx context.Context) ([]domain.Row, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+rowColumns+` FROM capacity_row ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// GetRow retrieves a row by id.
// PRE: id > 0
// POST: returns domain.ErrRowNotFound when no row has the id
func (s *SQLiteStore) GetRow(ctx context.Context, id int) (domain.Row, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+rowColumns+` FROM capacity_row WHERE id = ?`, id)
	r, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Row{}, domain.ErrRowNotFound
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(sc scanner) (domain.Row, error) {
	var r domain.Row
	err := sc.Scan(&r.ID, &r.Area, &r.Region, &r.Division, &r.Territory,
		&r.CapacityPercent, &r.PacingPercent, &r.RegionColor)
	return r, err
}

// Catalog assembles option lists, defaults and the state lookup.
// POST: row-carried categories list distinct row values in id order;
// the area list also carries every area the lookup can produce
func (s *SQLiteStore) Catalog(ctx context.Context) (filter.Catalog, error) {
	rows, err := s.ListRows(ctx)
	if err != nil {
		return filter.Catalog{}, fmt.Errorf("list rows: %w", err)
	}

	static := filter.Options{}
	defaults := filter.Selection{}
	optRows, err := s.db.QueryContext(ctx,
		`SELECT category, value, is_default FROM filter_option ORDER BY category, position`)
	if err != nil {
		return filter.Catalog{}, fmt.Errorf("list options: %w", err)
	}
	defer optRows.Close()
	for optRows.Next() {
		var category, value string
		var isDefault int
		if err := optRows.Scan(&category, &value, &isDefault); err != nil {
			return filter.Catalog{}, err
		}
		c := filter.Category(category)
		static[c] = append(static[c], value)
		if isDefault == 1 {
			defaults[c] = append(defaults[c], value)
		}
	}
	if err := optRows.Err(); err != nil {
		return filter.Catalog{}, err
	}

	lookup, err := s.areaLookup(ctx)
	if err != nil {
		return filter.Catalog{}, err
	}

	return domain.Dataset{
		Rows:       rows,
		Options:    static,
		Defaults:   defaults,
		AreaLookup: lookup,
	}.Catalog(), nil
}

func (s *SQLiteStore) areaLookup(ctx context.Context) (filter.AreaLookup, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT state, area FROM state_area`)
	if err != nil {
		return nil, fmt.Errorf("list state areas: %w", err)
	}
	defer rows.Close()
	lookup := filter.AreaLookup{}
	for rows.Next() {
		var state, area string
		if err := rows.Scan(&state, &area); err != nil {
			return nil, err
		}
		lookup[state] = area
	}
	return lookup, rows.Err()
}

// ListStates returns map capacities ordered by tile position.
func (s *SQLiteStore) ListStates(ctx context.Context) ([]domain.StateCapacity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT state, capacity, tile_row, tile_col FROM state_capacity ORDER BY tile_row, tile_col`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.StateCapacity
	for rows.Next() {
		var sc domain.StateCapacity
		if err := rows.Scan(&sc.State, &sc.Capacity, &sc.TileRow, &sc.TileCol); err != nil {
			return nil, err
		}
		list = append(list, sc)
	}
	return list, rows.Err()
}

// ListTerritories returns the graph series in fixture order.
func (s *SQLiteStore) ListTerritories(ctx context.Context) ([]domain.TerritoryCapacity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT territory, capacity FROM territory_capacity ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.TerritoryCapacity
	for rows.Next() {
		var tc domain.TerritoryCapacity
		if err := rows.Scan(&tc.Territory, &tc.Capacity); err != nil {
			return nil, err
		}
		list = append(list, tc)
	}
	return list, rows.Err()
}

// Replace swaps the whole data set in one transaction.
// PRE: d.Options and d.Defaults keys are valid categories
// POST: the previous data set is gone; on error nothing changes
func (s *SQLiteStore) Replace(ctx context.Context, d domain.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"capacity_row", "filter_option", "state_area", "state_capacity", "territory_capacity"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, r := range d.Rows {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO capacity_row (`+rowColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Area, r.Region, r.Division, r.Territory, r.CapacityPercent, r.PacingPercent, r.RegionColor)
		if err != nil {
			return fmt.Errorf("insert row %d: %w", r.ID, err)
		}
	}

	for c, values := range d.Options {
		for i, v := range values {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO filter_option (category, value, position, is_default) VALUES (?, ?, ?, ?)`,
				string(c), v, i, boolToInt(d.Defaults.Has(c, v)))
			if err != nil {
				return fmt.Errorf("insert option %s/%s: %w", c, v, err)
			}
		}
	}

	for state, area := range d.AreaLookup {
		if _, err := tx.ExecContext(ctx, `INSERT INTO state_area (state, area) VALUES (?, ?)`, state, area); err != nil {
			return fmt.Errorf("insert state area %s: %w", state, err)
		}
	}

	for _, sc := range d.States {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO state_capacity (state, capacity, tile_row, tile_col) VALUES (?, ?, ?, ?)`,
			sc.State, sc.Capacity, sc.TileRow, sc.TileCol)
		if err != nil {
			return fmt.Errorf("insert state %s: %w", sc.State, err)
		}
	}

	for i, tc := range d.Territories {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO territory_capacity (position, territory, capacity) VALUES (?, ?, ?)`,
			i, tc.Territory, tc.Capacity)
		if err != nil {
			return fmt.Errorf("insert territory %s: %w", tc.Territory, err)
		}
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

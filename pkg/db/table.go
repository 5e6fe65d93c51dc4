package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Table is a fully materialised query result: named columns and the rows
// beneath them, in select order.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns every value of the named column
func (t *Table) Column(name string) ([]any, error) {
	idx := -1
	for i, col := range t.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoColumn, name)
	}

	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Maps returns each row keyed by column name
func (t *Table) Maps() []map[string]any {
	results := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			m[col] = row[i]
		}
		results = append(results, m)
	}
	return results
}

// scanTable reads every remaining row into a Table
func scanTable(rows *sqlx.Rows) (*Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		for i, val := range values {
			// Drivers hand back text as byte slices
			if b, ok := val.([]byte); ok {
				values[i] = string(b)
			}
		}
		table.Rows = append(table.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

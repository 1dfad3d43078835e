package export

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/platebench/platebench/internal/wellplate"
)

// WriteSQLite writes the plate in long format to a SQLite file: one
// row per well, except mixture wells, which get one row per component.
// The file is a write-once analysis artifact, not a live store.
func WriteSQLite(p *wellplate.Plate, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS plate_layout (
			plate_type TEXT,
			well_id TEXT,
			"row" TEXT,
			"column" INTEGER,
			row_index INTEGER,
			column_index INTEGER,
			treatment TEXT,
			compound TEXT,
			concentration TEXT,
			time_point TEXT,
			subject TEXT,
			replicate INTEGER,
			mixture_component INTEGER,
			mixture_compound TEXT,
			mixture_concentration DOUBLE,
			mixture_unit TEXT,
			color TEXT,
			plate_rows INTEGER,
			plate_cols INTEGER,
			created_date TIMESTAMP
		);
	`)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO plate_layout (
		plate_type, well_id, "row", "column", row_index, column_index,
		treatment, compound, concentration, time_point, subject, replicate,
		mixture_component, mixture_compound, mixture_concentration, mixture_unit,
		color, plate_rows, plate_cols, created_date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	created := p.Created.Format("2006-01-02 15:04")
	for i := 0; i < p.Rows; i++ {
		for j := 0; j < p.Cols; j++ {
			id := wellplate.Address{Row: i, Col: j}.Label()
			w := p.Well(id)

			base := []interface{}{
				p.Type, id, wellplate.RowLetters(i), j + 1, i, j,
			}
			tail := []interface{}{p.Rows, p.Cols, created}

			if w.Assigned() && len(w.Mixture) > 0 {
				for idx, comp := range w.Mixture {
					args := append(append([]interface{}{}, base...),
						w.Treatment, w.Compound, w.Concentration, w.TimePoint, w.Subject, w.Replicate,
						idx+1, comp.Compound, comp.Concentration, comp.Unit,
						w.Color)
					args = append(args, tail...)
					if _, err := stmt.Exec(args...); err != nil {
						tx.Rollback()
						return fmt.Errorf("well %s: %w", id, err)
					}
				}
				continue
			}

			var color interface{}
			if w.Assigned() {
				color = w.Color
			}
			args := append(append([]interface{}{}, base...),
				w.Treatment, w.Compound, w.Concentration, w.TimePoint, w.Subject, w.Replicate,
				nil, nil, nil, nil,
				color)
			args = append(args, tail...)
			if _, err := stmt.Exec(args...); err != nil {
				tx.Rollback()
				return fmt.Errorf("well %s: %w", id, err)
			}
		}
	}
	return tx.Commit()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"macrotrend/internal/domain"
)

// UpsertWeight writes the weight entry for its day. When overwrite is false
// a conflicting day fails with domain.ErrDuplicateDay.
func (d *DB) UpsertWeight(ctx context.Context, e domain.WeightEntry, overwrite bool) error {
	if overwrite {
		_, err := d.sql.ExecContext(ctx,
			"INSERT INTO weights(day, kg, created_at) VALUES($1, $2, $3) ON CONFLICT (day) DO UPDATE SET kg = EXCLUDED.kg, created_at = EXCLUDED.created_at;",
			e.Day, e.Kg, e.CreatedAt.UTC(),
		)
		return err
	}
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO weights(day, kg, created_at) VALUES($1, $2, $3) ON CONFLICT (day) DO NOTHING;",
		e.Day, e.Kg, e.CreatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDuplicateDay
	}
	return nil
}

// WeightRange returns entries with from <= day <= to, ordered by day.
func (d *DB) WeightRange(ctx context.Context, from, to string) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT day, kg, created_at FROM weights WHERE day >= $1 AND day <= $2 ORDER BY day;", from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightEntry
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.Day, &e.Kg, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LatestWeight returns the most recent entry by day, or nil if none exist.
func (d *DB) LatestWeight(ctx context.Context) (*domain.WeightEntry, error) {
	var e domain.WeightEntry
	err := d.sql.QueryRowContext(ctx,
		"SELECT day, kg, created_at FROM weights ORDER BY day DESC LIMIT 1;").Scan(&e.Day, &e.Kg, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// AppendIntake inserts a new intake entry.
func (d *DB) AppendIntake(ctx context.Context, e domain.IntakeEntry) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO intake_events(day, calories, protein_g, fat_g, carbs_g, created_at) VALUES($1, $2, $3, $4, $5, $6) RETURNING id;",
		e.Day, e.Calories, e.ProteinG, e.FatG, e.CarbsG, e.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// DeleteLatestIntake removes the most recently logged intake entry.
func (d *DB) DeleteLatestIntake(ctx context.Context) (bool, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"SELECT id FROM intake_events ORDER BY created_at DESC, id DESC LIMIT 1;").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_, err = d.sql.ExecContext(ctx, "DELETE FROM intake_events WHERE id=$1;", id)
	return err == nil, err
}

// IntakeRange returns entries with from <= day <= to, ordered by day.
func (d *DB) IntakeRange(ctx context.Context, from, to string) ([]domain.IntakeEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, day, calories, protein_g, fat_g, carbs_g, created_at FROM intake_events WHERE day >= $1 AND day <= $2 ORDER BY day, id;", from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.IntakeEntry
	for rows.Next() {
		var e domain.IntakeEntry
		if err := rows.Scan(&e.ID, &e.Day, &e.Calories, &e.ProteinG, &e.FatG, &e.CarbsG, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DailyIntakeTotals returns per-day sums for from <= day <= to, ordered by
// day. Days with no entries are absent from the result.
func (d *DB) DailyIntakeTotals(ctx context.Context, from, to string) ([]domain.DayIntake, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT day, SUM(calories), SUM(protein_g), SUM(fat_g), SUM(carbs_g) FROM intake_events WHERE day >= $1 AND day <= $2 GROUP BY day ORDER BY day;", from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DayIntake
	for rows.Next() {
		var t domain.DayIntake
		if err := rows.Scan(&t.Day, &t.Calories, &t.ProteinG, &t.FatG, &t.CarbsG); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

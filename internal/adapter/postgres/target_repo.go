package postgres

import (
	"context"
	"database/sql"
	"errors"

	"macrotrend/internal/domain"
)

// SaveTarget inserts a superseding target row. Old rows are kept as history.
func (d *DB) SaveTarget(ctx context.Context, t domain.Target) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO targets(as_of, calories, protein_g, fat_g, carbs_g, tdee, expected_rate_per_day, goal, created_at) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id;",
		t.AsOf, t.Calories, t.ProteinG, t.FatG, t.CarbsG, t.TDEE, t.ExpectedRatePerDay, string(t.Goal), t.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// LatestTarget returns the most recent target with as_of <= asOf, or nil.
func (d *DB) LatestTarget(ctx context.Context, asOf string) (*domain.Target, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, as_of, calories, protein_g, fat_g, carbs_g, tdee, expected_rate_per_day, goal, created_at FROM targets WHERE as_of <= $1 ORDER BY as_of DESC, id DESC LIMIT 1;", asOf)
	t, err := scanTarget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTargets returns all targets with as_of <= through, ordered by as_of
// then insertion order.
func (d *DB) ListTargets(ctx context.Context, through string) ([]domain.Target, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, as_of, calories, protein_g, fat_g, carbs_g, tdee, expected_rate_per_day, goal, created_at FROM targets WHERE as_of <= $1 ORDER BY as_of, id;", through)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Target
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTarget(r rowScanner) (*domain.Target, error) {
	var t domain.Target
	var goal string
	if err := r.Scan(&t.ID, &t.AsOf, &t.Calories, &t.ProteinG, &t.FatG, &t.CarbsG, &t.TDEE, &t.ExpectedRatePerDay, &goal, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Goal = domain.Goal(goal)
	return &t, nil
}

// SaveGoal upserts the single goal configuration row.
func (d *DB) SaveGoal(ctx context.Context, g domain.GoalConfig) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO goal_config(id, goal, weekly_rate_kg) VALUES(1, $1, $2) ON CONFLICT (id) DO UPDATE SET goal = EXCLUDED.goal, weekly_rate_kg = EXCLUDED.weekly_rate_kg;",
		string(g.Goal), g.WeeklyRateKg)
	return err
}

// GetGoal returns the configured goal, or nil when unset.
func (d *DB) GetGoal(ctx context.Context) (*domain.GoalConfig, error) {
	var goal string
	var rate float64
	err := d.sql.QueryRowContext(ctx,
		"SELECT goal, weekly_rate_kg FROM goal_config WHERE id = 1;").Scan(&goal, &rate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.GoalConfig{Goal: domain.Goal(goal), WeeklyRateKg: rate}, nil
}

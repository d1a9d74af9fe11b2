package db

import (
	"context"

	"newsverify/internal/models"
)

// IncrementOutcome upserts the count for a predicted label in a mode.
func (d *DB) IncrementOutcome(ctx context.Context, label, mode string) error {
	if label == "" {
		return ErrEmptyLabel
	}
	if mode == "" {
		return ErrEmptyMode
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO prediction_outcomes (label, mode, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (label, mode) DO UPDATE
		SET count = prediction_outcomes.count + 1, last_seen_at = NOW()
	`, label, mode)
	return err
}

// Outcomes returns all outcome rows, ordered by mode then label.
func (d *DB) Outcomes(ctx context.Context) ([]models.PredictionOutcome, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT label, mode, count, last_seen_at
		FROM prediction_outcomes
		ORDER BY mode, label
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []models.PredictionOutcome
	for rows.Next() {
		var o models.PredictionOutcome
		if err := rows.Scan(&o.Label, &o.Mode, &o.Count, &o.LastSeenAt); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

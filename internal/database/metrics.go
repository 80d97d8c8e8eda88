package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// SaveMetric upserts one metric value. label key/value are empty for plain
// counters and gauges.
func SaveMetric(name, labelKey, labelValue string, value float64) error {
	query := `
	INSERT INTO metrics (metric_name, label_key, label_value, metric_value)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(metric_name, label_key, label_value)
	DO UPDATE SET metric_value = excluded.metric_value;`

	_, err := DB.Exec(query, name, labelKey, labelValue, value)
	if err != nil {
		return fmt.Errorf("failed to save metric %s: %w", name, err)
	}
	return nil
}

// GetMetric fetches a plain metric value, zero when absent.
func GetMetric(name string) (float64, error) {
	query := `SELECT metric_value FROM metrics WHERE metric_name = ? AND label_key = '' AND label_value = '';`

	var value float64
	err := DB.QueryRow(query, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read metric %s: %w", name, err)
	}
	return value, nil
}

// GetMetricsWithLabels fetches all labeled values for one metric, keyed by
// label key then label value.
func GetMetricsWithLabels(name string) (map[string]map[string]float64, error) {
	query := `SELECT label_key, label_value, metric_value FROM metrics WHERE metric_name = ? AND label_key != '';`

	rows, err := DB.Query(query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric %s: %w", name, err)
	}
	defer rows.Close()

	out := make(map[string]map[string]float64)
	for rows.Next() {
		var labelKey, labelValue string
		var value float64
		if err := rows.Scan(&labelKey, &labelValue, &value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if out[labelKey] == nil {
			out[labelKey] = make(map[string]float64)
		}
		out[labelKey][labelValue] = value
	}

	return out, nil
}

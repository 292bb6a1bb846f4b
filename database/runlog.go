// database/runlog.go
package database

import (
	"database/sql"
	"fmt"
	"time"
)

// PipelineRun представляет запись журнала о запуске пайплайна
type PipelineRun struct {
	ID                   int       `json:"id"`
	StartTime            time.Time `json:"startTime"`
	EndTime              time.Time `json:"endTime"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	RecordsProcessed     int       `json:"recordsProcessed"`
	RecordsDropped       int       `json:"recordsDropped"`
	Warnings             int       `json:"warnings"`
	ErrorMessage         string    `json:"errorMessage,omitempty"`
	ExecutionTimeSeconds float64   `json:"executionTimeSeconds"`
}

// PipelineRunRepository предоставляет операции над журналом запусков пайплайна
type PipelineRunRepository struct {
	db *sql.DB
}

// NewPipelineRunRepository создает новый экземпляр PipelineRunRepository
func NewPipelineRunRepository(db *sql.DB) *PipelineRunRepository {
	return &PipelineRunRepository{db: db}
}

// CreateRunEntry создает новую запись о запуске пайплайна
func (r *PipelineRunRepository) CreateRunEntry(startTime time.Time) (int, error) {
	result, err := r.db.Exec(`
		INSERT INTO pipeline_runs (start_time, status)
		VALUES (?, 'in_progress')
	`, startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске пайплайна: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// CompleteRunSuccess обновляет запись при успешном завершении запуска
func (r *PipelineRunRepository) CompleteRunSuccess(id int, endTime time.Time, processed, dropped, warnings int) error {
	executionTime, err := r.executionTime(id, endTime)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		UPDATE pipeline_runs
		SET
			end_time = ?,
			status = 'success',
			records_processed = ?,
			records_dropped = ?,
			warnings = ?,
			execution_time_seconds = ?
		WHERE id = ?
	`, endTime, processed, dropped, warnings, executionTime, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске пайплайна: %w", err)
	}

	return nil
}

// CompleteRunFailure обновляет запись при неудачном завершении запуска
func (r *PipelineRunRepository) CompleteRunFailure(id int, endTime time.Time, errorMessage string) error {
	executionTime, err := r.executionTime(id, endTime)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		UPDATE pipeline_runs
		SET
			end_time = ?,
			status = 'failed',
			error_message = ?,
			execution_time_seconds = ?
		WHERE id = ?
	`, endTime, errorMessage, executionTime, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске пайплайна: %w", err)
	}

	return nil
}

// executionTime рассчитывает длительность запуска в секундах
func (r *PipelineRunRepository) executionTime(id int, endTime time.Time) (float64, error) {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM pipeline_runs WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении времени начала запуска: %w", err)
	}

	return endTime.Sub(startTime).Seconds(), nil
}

// GetRecentRuns возвращает последние записи журнала запусков
func (r *PipelineRunRepository) GetRecentRuns(limit int) ([]PipelineRun, error) {
	rows, err := r.db.Query(`
		SELECT
			id, start_time, IFNULL(end_time, start_time), status,
			records_processed, records_dropped, warnings,
			IFNULL(error_message, ''), IFNULL(execution_time_seconds, 0)
		FROM pipeline_runs
		ORDER BY start_time DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе журнала запусков: %w", err)
	}
	defer rows.Close()

	var runs []PipelineRun
	for rows.Next() {
		var run PipelineRun
		err := rows.Scan(
			&run.ID, &run.StartTime, &run.EndTime, &run.Status,
			&run.RecordsProcessed, &run.RecordsDropped, &run.Warnings,
			&run.ErrorMessage, &run.ExecutionTimeSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании записи о запуске: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по журналу запусков: %w", err)
	}

	return runs, nil
}

// database/rawrecord.go
package database

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_marketing/pipeline"
)

// RawRecordRepository предоставляет операции над сырыми записями.
// Сырые записи после приема не изменяются и не удаляются.
type RawRecordRepository struct {
	db *sql.DB
}

// NewRawRecordRepository создает новый экземпляр RawRecordRepository
func NewRawRecordRepository(db *sql.DB) *RawRecordRepository {
	return &RawRecordRepository{db: db}
}

// Insert сохраняет принятую сырую запись и возвращает ее ID.
// Формат записи определяется на стороне приема и сохраняется вместе с ней.
func (r *RawRecordRepository) Insert(record pipeline.RawRecord) (int, error) {
	result, err := r.db.Exec(`
		INSERT INTO raw_records (source_id, origin, content, format, ingested_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.SourceID, record.Origin, record.Content, string(record.Format), record.IngestedAt)
	if err != nil {
		return 0, fmt.Errorf("ошибка при сохранении сырой записи: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID сырой записи: %w", err)
	}

	return int(id), nil
}

// GetPendingRawRecords возвращает все сырые записи для обработки.
// Каждый запуск пайплайна пересоздает нормализованный набор заново,
// поэтому инкрементальная выборка не используется.
func (r *RawRecordRepository) GetPendingRawRecords() ([]pipeline.RawRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, source_id, origin, content, format, ingested_at
		FROM raw_records
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе сырых записей: %w", err)
	}
	defer rows.Close()

	var records []pipeline.RawRecord
	for rows.Next() {
		var record pipeline.RawRecord
		var format string
		if err := rows.Scan(&record.ID, &record.SourceID, &record.Origin, &record.Content, &format, &record.IngestedAt); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании сырой записи: %w", err)
		}
		record.Format = pipeline.SourceFormat(format)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по сырым записям: %w", err)
	}

	return records, nil
}

// database/normalized.go
package database

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_marketing/pipeline"
)

// NormalizedRecordRepository предоставляет операции над нормализованными записями
type NormalizedRecordRepository struct {
	db *sql.DB
}

// NewNormalizedRecordRepository создает новый экземпляр NormalizedRecordRepository
func NewNormalizedRecordRepository(db *sql.DB) *NormalizedRecordRepository {
	return &NormalizedRecordRepository{db: db}
}

// SaveNormalizedRecords сохраняет итоговый набор запуска пайплайна.
// Набор пересоздается целиком: предыдущий результат удаляется и заменяется
// новым внутри одной транзакции, чтобы читатели не видели частичный набор.
func (r *NormalizedRecordRepository) SaveNormalizedRecords(records []pipeline.NormalizedRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM normalized_records"); err != nil {
		return fmt.Errorf("ошибка при очистке нормализованных записей: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO normalized_records (system_id, category, value, content, raw_record_id)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса вставки: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.Exec(record.SystemID, record.Category, record.Value, record.Content, record.RawRecordID); err != nil {
			return fmt.Errorf("ошибка при вставке нормализованной записи %s: %w", record.SystemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

// GetAll возвращает все нормализованные записи последнего запуска
func (r *NormalizedRecordRepository) GetAll() ([]pipeline.NormalizedRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, system_id, category, value, content, raw_record_id
		FROM normalized_records
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе нормализованных записей: %w", err)
	}
	defer rows.Close()

	var records []pipeline.NormalizedRecord
	for rows.Next() {
		var record pipeline.NormalizedRecord
		if err := rows.Scan(&record.ID, &record.SystemID, &record.Category, &record.Value, &record.Content, &record.RawRecordID); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании нормализованной записи: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по нормализованным записям: %w", err)
	}

	return records, nil
}

// PipelineStorage объединяет репозитории сырых и нормализованных записей
// в единый контракт хранилища для оркестратора пайплайна
type PipelineStorage struct {
	raw        *RawRecordRepository
	normalized *NormalizedRecordRepository
}

// NewPipelineStorage создает новый экземпляр PipelineStorage
func NewPipelineStorage(db *sql.DB) *PipelineStorage {
	return &PipelineStorage{
		raw:        NewRawRecordRepository(db),
		normalized: NewNormalizedRecordRepository(db),
	}
}

// GetPendingRawRecords возвращает сырые записи для обработки
func (s *PipelineStorage) GetPendingRawRecords() ([]pipeline.RawRecord, error) {
	return s.raw.GetPendingRawRecords()
}

// SaveNormalizedRecords сохраняет итоговый набор нормализованных записей
func (s *PipelineStorage) SaveNormalizedRecords(records []pipeline.NormalizedRecord) error {
	return s.normalized.SaveNormalizedRecords(records)
}

var _ pipeline.Storage = (*PipelineStorage)(nil)

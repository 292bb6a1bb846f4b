// database/source.go
package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Source описывает внешний источник данных с заявленным форматом
type Source struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Format    string    `json:"format"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// SourceRepository предоставляет операции над источниками данных
type SourceRepository struct {
	db *sql.DB
}

// NewSourceRepository создает новый экземпляр SourceRepository
func NewSourceRepository(db *sql.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// GetAll возвращает все источники данных
func (r *SourceRepository) GetAll() ([]Source, error) {
	rows, err := r.db.Query(`
		SELECT id, name, kind, format, url, created_at
		FROM sources
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе источников: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var source Source
		if err := rows.Scan(&source.ID, &source.Name, &source.Kind, &source.Format, &source.URL, &source.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании источника: %w", err)
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по источникам: %w", err)
	}

	return sources, nil
}

// GetByID возвращает источник по его ID.
// Если источник не найден, возвращается (nil, nil).
func (r *SourceRepository) GetByID(id int) (*Source, error) {
	var source Source
	err := r.db.QueryRow(`
		SELECT id, name, kind, format, url, created_at
		FROM sources
		WHERE id = ?
	`, id).Scan(&source.ID, &source.Name, &source.Kind, &source.Format, &source.URL, &source.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при запросе источника %d: %w", id, err)
	}

	return &source, nil
}

// Create создает новый источник и возвращает его ID
func (r *SourceRepository) Create(source Source) (int, error) {
	result, err := r.db.Exec(`
		INSERT INTO sources (name, kind, format, url)
		VALUES (?, ?, ?, ?)
	`, source.Name, source.Kind, source.Format, source.URL)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании источника: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданного источника: %w", err)
	}

	return int(id), nil
}

// Update обновляет данные источника
func (r *SourceRepository) Update(source Source) error {
	_, err := r.db.Exec(`
		UPDATE sources
		SET name = ?, kind = ?, format = ?, url = ?
		WHERE id = ?
	`, source.Name, source.Kind, source.Format, source.URL, source.ID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении источника %d: %w", source.ID, err)
	}

	return nil
}

// Delete удаляет источник по ID
func (r *SourceRepository) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении источника %d: %w", id, err)
	}

	return nil
}

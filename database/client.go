// database/client.go
package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Client представляет клиента в базе маркетинговых данных
type Client struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Segment   string    `json:"segment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientRepository предоставляет операции над клиентами
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository создает новый экземпляр ClientRepository
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetAll возвращает всех клиентов
func (r *ClientRepository) GetAll() ([]Client, error) {
	rows, err := r.db.Query(`
		SELECT id, name, email, segment, created_at
		FROM clients
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе клиентов: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var client Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Email, &client.Segment, &client.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании клиента: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по клиентам: %w", err)
	}

	return clients, nil
}

// GetByID возвращает клиента по его ID.
// Если клиент не найден, возвращается (nil, nil).
func (r *ClientRepository) GetByID(id int) (*Client, error) {
	var client Client
	err := r.db.QueryRow(`
		SELECT id, name, email, segment, created_at
		FROM clients
		WHERE id = ?
	`, id).Scan(&client.ID, &client.Name, &client.Email, &client.Segment, &client.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при запросе клиента %d: %w", id, err)
	}

	return &client, nil
}

// Create создает нового клиента и возвращает его ID
func (r *ClientRepository) Create(client Client) (int, error) {
	result, err := r.db.Exec(`
		INSERT INTO clients (name, email, segment)
		VALUES (?, ?, ?)
	`, client.Name, client.Email, client.Segment)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании клиента: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданного клиента: %w", err)
	}

	return int(id), nil
}

// Update обновляет данные клиента
func (r *ClientRepository) Update(client Client) error {
	_, err := r.db.Exec(`
		UPDATE clients
		SET name = ?, email = ?, segment = ?
		WHERE id = ?
	`, client.Name, client.Email, client.Segment, client.ID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении клиента %d: %w", client.ID, err)
	}

	return nil
}

// Delete удаляет клиента по ID
func (r *ClientRepository) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении клиента %d: %w", id, err)
	}

	return nil
}

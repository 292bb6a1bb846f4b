// database/sale.go
package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Sale представляет продажу в базе маркетинговых данных
type Sale struct {
	ID        int       `json:"id"`
	ClientID  int       `json:"clientId"`
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
	Total     float64   `json:"total"`
	SaleDate  time.Time `json:"saleDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaleSummaryRow представляет агрегированную строку отчета по продажам
type SaleSummaryRow struct {
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// SaleRepository предоставляет операции над продажами
type SaleRepository struct {
	db *sql.DB
}

// NewSaleRepository создает новый экземпляр SaleRepository
func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// GetAll возвращает все продажи
func (r *SaleRepository) GetAll() ([]Sale, error) {
	rows, err := r.db.Query(`
		SELECT id, client_id, product_id, quantity, total, sale_date, created_at
		FROM sales
		ORDER BY sale_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе продаж: %w", err)
	}
	defer rows.Close()

	var sales []Sale
	for rows.Next() {
		var sale Sale
		if err := rows.Scan(&sale.ID, &sale.ClientID, &sale.ProductID, &sale.Quantity, &sale.Total, &sale.SaleDate, &sale.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании продажи: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по продажам: %w", err)
	}

	return sales, nil
}

// GetByID возвращает продажу по ее ID.
// Если продажа не найдена, возвращается (nil, nil).
func (r *SaleRepository) GetByID(id int) (*Sale, error) {
	var sale Sale
	err := r.db.QueryRow(`
		SELECT id, client_id, product_id, quantity, total, sale_date, created_at
		FROM sales
		WHERE id = ?
	`, id).Scan(&sale.ID, &sale.ClientID, &sale.ProductID, &sale.Quantity, &sale.Total, &sale.SaleDate, &sale.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при запросе продажи %d: %w", id, err)
	}

	return &sale, nil
}

// Create создает новую продажу и возвращает ее ID
func (r *SaleRepository) Create(sale Sale) (int, error) {
	result, err := r.db.Exec(`
		INSERT INTO sales (client_id, product_id, quantity, total, sale_date)
		VALUES (?, ?, ?, ?, ?)
	`, sale.ClientID, sale.ProductID, sale.Quantity, sale.Total, sale.SaleDate)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании продажи: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной продажи: %w", err)
	}

	return int(id), nil
}

// Delete удаляет продажу по ID
func (r *SaleRepository) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM sales WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении продажи %d: %w", id, err)
	}

	return nil
}

// GetSummary возвращает агрегированные продажи по товарам для отчета
func (r *SaleRepository) GetSummary() ([]SaleSummaryRow, error) {
	rows, err := r.db.Query(`
		SELECT p.name, p.category, SUM(s.quantity), SUM(s.total)
		FROM sales s
		JOIN products p ON s.product_id = p.id
		GROUP BY p.id, p.name, p.category
		ORDER BY SUM(s.total) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе сводки продаж: %w", err)
	}
	defer rows.Close()

	var summary []SaleSummaryRow
	for rows.Next() {
		var row SaleSummaryRow
		if err := rows.Scan(&row.ProductName, &row.Category, &row.Quantity, &row.Total); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании сводки продаж: %w", err)
		}
		summary = append(summary, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по сводке продаж: %w", err)
	}

	return summary, nil
}

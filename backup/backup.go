// backup/backup.go
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/LilVoxy/coursework_marketing/events"
	"github.com/LilVoxy/coursework_marketing/utils"
	"github.com/golang/snappy"
)

// Archive — содержимое резервной копии справочных таблиц
type Archive struct {
	CreatedAt time.Time          `json:"createdAt"`
	Clients   []database.Client  `json:"clients"`
	Products  []database.Product `json:"products"`
	Sources   []database.Source  `json:"sources"`
}

// Service выполняет резервное копирование и восстановление справочных таблиц.
// Архив сериализуется в JSON и сжимается Snappy.
type Service struct {
	db       *sql.DB
	clients  *database.ClientRepository
	products *database.ProductRepository
	sources  *database.SourceRepository
	dir      string
	logger   *utils.PipelineLogger
	bus      *events.Bus
}

// NewService создает новый экземпляр Service
func NewService(db *sql.DB, dir string, logger *utils.PipelineLogger, bus *events.Bus) *Service {
	return &Service{
		db:       db,
		clients:  database.NewClientRepository(db),
		products: database.NewProductRepository(db),
		sources:  database.NewSourceRepository(db),
		dir:      dir,
		logger:   logger,
		bus:      bus,
	}
}

// Create создает резервную копию и возвращает путь к файлу архива
func (s *Service) Create() (string, error) {
	archive := Archive{CreatedAt: time.Now()}
	var err error

	archive.Clients, err = s.clients.GetAll()
	if err != nil {
		return "", fmt.Errorf("ошибка при выгрузке клиентов: %w", err)
	}

	archive.Products, err = s.products.GetAll()
	if err != nil {
		return "", fmt.Errorf("ошибка при выгрузке товаров: %w", err)
	}

	archive.Sources, err = s.sources.GetAll()
	if err != nil {
		return "", fmt.Errorf("ошибка при выгрузке источников: %w", err)
	}

	data, err := json.Marshal(archive)
	if err != nil {
		return "", fmt.Errorf("ошибка при сериализации архива: %w", err)
	}

	// Сжимаем архив перед записью на диск
	compressed := snappy.Encode(nil, data)

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("ошибка при создании каталога резервных копий: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("backup_%s.json.snappy", time.Now().Format("2006-01-02_150405")))
	if err := os.WriteFile(path, compressed, 0644); err != nil {
		return "", fmt.Errorf("ошибка при записи архива: %w", err)
	}

	s.logger.Info("Резервная копия создана: %s (%d байт)", path, len(compressed))

	if s.bus != nil {
		s.bus.Publish(events.Event{
			Topic: events.TopicBackupCompleted,
			Payload: events.BackupCompletedPayload{
				File:       path,
				FinishedAt: time.Now(),
			},
		})
	}

	return path, nil
}

// Load читает и распаковывает архив резервной копии
func Load(path string) (*Archive, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении архива: %w", err)
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("ошибка при распаковке архива: %w", err)
	}

	var archive Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("ошибка при разборе архива: %w", err)
	}

	return &archive, nil
}

// Restore восстанавливает справочные таблицы из архива.
// Существующие записи с совпадающими ID обновляются, отсутствующие создаются.
func (s *Service) Restore(path string) error {
	archive, err := Load(path)
	if err != nil {
		return err
	}

	for _, client := range archive.Clients {
		_, err := s.db.Exec(`
			INSERT INTO clients (id, name, email, segment)
			VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE name = VALUES(name), email = VALUES(email), segment = VALUES(segment)
		`, client.ID, client.Name, client.Email, client.Segment)
		if err != nil {
			return fmt.Errorf("ошибка при восстановлении клиента %d: %w", client.ID, err)
		}
	}

	for _, product := range archive.Products {
		_, err := s.db.Exec(`
			INSERT INTO products (id, name, category, price)
			VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE name = VALUES(name), category = VALUES(category), price = VALUES(price)
		`, product.ID, product.Name, product.Category, product.Price)
		if err != nil {
			return fmt.Errorf("ошибка при восстановлении товара %d: %w", product.ID, err)
		}
	}

	for _, source := range archive.Sources {
		_, err := s.db.Exec(`
			INSERT INTO sources (id, name, kind, format, url)
			VALUES (?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE name = VALUES(name), kind = VALUES(kind), format = VALUES(format), url = VALUES(url)
		`, source.ID, source.Name, source.Kind, source.Format, source.URL)
		if err != nil {
			return fmt.Errorf("ошибка при восстановлении источника %d: %w", source.ID, err)
		}
	}

	s.logger.Info("Резервная копия восстановлена: %s", path)
	return nil
}

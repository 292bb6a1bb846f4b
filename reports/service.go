// reports/service.go
package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/LilVoxy/coursework_marketing/events"
	"github.com/LilVoxy/coursework_marketing/utils"
)

// Service генерирует Excel-отчеты по продажам.
// Отчет создается автоматически после каждого успешного запуска пайплайна
// (по событию LoadCompleted) и может быть запрошен через HTTP.
type Service struct {
	sales      *database.SaleRepository
	normalized *database.NormalizedRecordRepository
	dir        string
	logger     *utils.PipelineLogger
}

// NewService создает новый экземпляр Service
func NewService(sales *database.SaleRepository, normalized *database.NormalizedRecordRepository, dir string, logger *utils.PipelineLogger) *Service {
	return &Service{
		sales:      sales,
		normalized: normalized,
		dir:        dir,
		logger:     logger,
	}
}

// Generate формирует отчет и возвращает путь к созданному файлу
func (s *Service) Generate() (string, error) {
	summary, err := s.sales.GetSummary()
	if err != nil {
		return "", fmt.Errorf("ошибка при получении сводки продаж: %w", err)
	}

	records, err := s.normalized.GetAll()
	if err != nil {
		return "", fmt.Errorf("ошибка при получении нормализованных записей: %w", err)
	}

	workbook, err := BuildWorkbook(summary, records)
	if err != nil {
		return "", fmt.Errorf("ошибка при формировании книги отчета: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("ошибка при создании каталога отчетов: %w", err)
	}

	path := filepath.Join(s.dir, reportFileName(time.Now()))
	if err := workbook.SaveAs(path); err != nil {
		return "", fmt.Errorf("ошибка при сохранении отчета: %w", err)
	}

	s.logger.Info("Отчет по продажам сохранен: %s", path)
	return path, nil
}

// LatestReportPath возвращает путь к последнему сгенерированному отчету.
// Если отчетов еще нет, возвращается пустая строка.
func (s *Service) LatestReportPath() (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("ошибка при чтении каталога отчетов: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".xlsx") {
			names = append(names, entry.Name())
		}
	}

	if len(names) == 0 {
		return "", nil
	}

	// Имена файлов содержат время генерации, поэтому достаточно сортировки
	sort.Strings(names)
	return filepath.Join(s.dir, names[len(names)-1]), nil
}

// Listen подписывается на события завершения загрузки и генерирует отчет
// после каждого успешного запуска пайплайна. Блокирует до отмены контекста.
func (s *Service) Listen(ctx context.Context, bus *events.Bus) {
	ch := bus.Subscribe(events.TopicLoadCompleted)
	s.logger.Info("Сервис отчетов подписан на события завершения загрузки")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Сервис отчетов остановлен")
			return
		case event := <-ch:
			payload, ok := event.Payload.(events.LoadCompletedPayload)
			if !ok {
				s.logger.Error("Неожиданная полезная нагрузка события %s", event.Topic)
				continue
			}

			s.logger.Info("Получено событие %s (запуск %d, записей: %d), генерируем отчет",
				event.Topic, payload.RunID, payload.Records)

			if _, err := s.Generate(); err != nil {
				// Ошибка отчета не влияет на итог запуска пайплайна
				s.logger.Error("Ошибка при генерации отчета: %v", err)
			}
		}
	}
}

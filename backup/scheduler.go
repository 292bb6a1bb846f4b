// backup/scheduler.go
package backup

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
)

// StartScheduler запускает планировщик регулярного резервного копирования
func (s *Service) StartScheduler(ctx context.Context, interval time.Duration) {
	scheduler := gocron.NewScheduler(time.UTC)

	s.logger.Info("Запуск планировщика резервного копирования с интервалом %v", interval)

	_, err := scheduler.Every(interval).Do(func() {
		s.logger.Info("Запланированное создание резервной копии")
		if _, err := s.Create(); err != nil {
			s.logger.Error("Ошибка при создании резервной копии: %v", err)
		}
	})

	if err != nil {
		s.logger.Error("Ошибка при настройке планировщика резервного копирования: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	s.logger.Info("Планировщик резервного копирования остановлен")
}

package alerts

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/LilVoxy/coursework_marketing/utils"
)

// LogAlerter — сервис критических оповещений.
// Пишет оповещение в лог и дописывает его в отдельный файл оповещений,
// чтобы дежурный оператор мог увидеть сбой без разбора общего лога.
type LogAlerter struct {
	logger    *utils.PipelineLogger
	alertFile string
}

// NewLogAlerter создает новый экземпляр LogAlerter
func NewLogAlerter(logger *utils.PipelineLogger, alertFile string) *LogAlerter {
	return &LogAlerter{
		logger:    logger,
		alertFile: alertFile,
	}
}

// SendCritical отправляет критическое оповещение
func (a *LogAlerter) SendCritical(message, detail string) {
	a.logger.Error("КРИТИЧЕСКОЕ ОПОВЕЩЕНИЕ: %s (%s)", message, detail)

	file, err := os.OpenFile(a.alertFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Printf("❌ Не удалось открыть файл оповещений: %v", err)
		return
	}
	defer file.Close()

	line := fmt.Sprintf("%s CRITICAL: %s | %s\n", time.Now().Format(time.RFC3339), message, detail)
	if _, err := file.WriteString(line); err != nil {
		log.Printf("❌ Не удалось записать оповещение: %v", err)
	}
}

package pipeline

import (
	"fmt"

	"github.com/LilVoxy/coursework_marketing/utils"
	"github.com/google/uuid"
)

// parseFunc разбирает содержимое записи одного конкретного формата
type parseFunc func(record RawRecord) (NormalizedRecord, error)

// Transformer преобразует сырые записи в нормализованное представление.
// Разбор выбирается по таблице стратегий, ключом служит формат записи,
// определенный при приеме. Трансформация тотальна: для любой записи,
// прошедшей валидацию, возвращается результат — испорченное содержимое
// уходит в запасную ветку с предупреждением, а не роняет запуск.
type Transformer struct {
	parsers map[SourceFormat]parseFunc
	logger  *utils.PipelineLogger
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.PipelineLogger) *Transformer {
	return &Transformer{
		parsers: map[SourceFormat]parseFunc{
			FormatJSON: parseObjectNotation,
			FormatCSV:  parseDelimited,
			FormatXML:  parseMarkup,
		},
		logger: logger,
	}
}

// Transform преобразует одну сырую запись в нормализованную.
// Вторым значением возвращается предупреждение, если запись обработана
// запасной веткой (неизвестный формат или испорченное содержимое).
func (t *Transformer) Transform(record RawRecord) (NormalizedRecord, *TransformWarning) {
	parse, ok := t.parsers[record.Format]
	if !ok {
		return t.fallback(record, fmt.Sprintf("неизвестный формат %q", record.Format))
	}

	normalized, err := parse(record)
	if err != nil {
		return t.fallback(record, fmt.Sprintf("ошибка разбора формата %s: %v", record.Format, err))
	}

	normalized.RawRecordID = record.ID
	return normalized, nil
}

// fallback строит запасную нормализованную запись со сгенерированным
// идентификатором и общей категорией. Никогда не завершается ошибкой.
func (t *Transformer) fallback(record RawRecord, reason string) (NormalizedRecord, *TransformWarning) {
	if t.logger != nil {
		t.logger.Debug("Запись %d обработана запасной веткой: %s", record.ID, reason)
	}

	normalized := NormalizedRecord{
		SystemID:    fmt.Sprintf("fallback-%s", uuid.NewString()[:8]),
		Category:    "uncategorized",
		Content:     record.Content,
		RawRecordID: record.ID,
	}

	warning := &TransformWarning{
		RawRecordID: record.ID,
		Format:      record.Format,
		Reason:      reason,
	}

	return normalized, warning
}

package pipeline

import (
	"encoding/json"
	"strings"
	"time"
)

// SourceFormat определяет формат содержимого сырой записи.
// Формат определяется один раз при приеме записи (по заявленному формату
// источника и по форме содержимого) и сохраняется вместе с записью,
// чтобы пайплайн не угадывал формат заново при каждой трансформации.
type SourceFormat string

const (
	// FormatJSON — объектная нотация (JSON-подобная полезная нагрузка)
	FormatJSON SourceFormat = "json"

	// FormatCSV — текст с разделителями (строка заголовка + данные через запятую)
	FormatCSV SourceFormat = "csv"

	// FormatXML — структурированная разметка (содержимое в тегах)
	FormatXML SourceFormat = "xml"

	// FormatUnknown — формат не распознан, трансформация уходит в запасную ветку
	FormatUnknown SourceFormat = "unknown"
)

// RawRecord представляет сырую запись, принятую от внешнего источника.
// После приема запись не изменяется; пайплайн читает ее ровно один раз за запуск.
type RawRecord struct {
	ID         int          `json:"id"`
	SourceID   int          `json:"sourceId"`
	Origin     string       `json:"origin"`
	Content    string       `json:"content"`
	Format     SourceFormat `json:"format"`
	IngestedAt time.Time    `json:"ingestedAt"`
}

// NormalizedRecord представляет каноническое внутреннее представление записи
// после форматно-специфичного разбора
type NormalizedRecord struct {
	ID          int     `json:"id"`
	SystemID    string  `json:"systemId"`
	Category    string  `json:"category"`
	Value       float64 `json:"value"`
	Content     string  `json:"content"`
	RawRecordID int     `json:"rawRecordId"`
}

// TransformWarning описывает запись, которую пришлось обработать запасной веткой.
// Трансформация никогда не роняет запуск из-за одной испорченной записи,
// но проблемы качества данных не должны маскироваться молча — оркестратор
// собирает предупреждения отдельно от жестких ошибок.
type TransformWarning struct {
	RawRecordID int
	Format      SourceFormat
	Reason      string
}

// ResolveFormat определяет формат содержимого при приеме записи.
// Сначала учитывается формат, заявленный источником, затем форма содержимого.
func ResolveFormat(declared, content string) SourceFormat {
	switch strings.ToLower(strings.TrimSpace(declared)) {
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	case "xml":
		return FormatXML
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return FormatUnknown
	}

	// Объектная нотация: содержимое должно разбираться как JSON-объект
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return FormatJSON
	}

	// Структурированная разметка: содержимое начинается с тега
	if strings.HasPrefix(trimmed, "<") {
		return FormatXML
	}

	// Текст с разделителями: несколько строк, в первой есть запятые
	lines := strings.Split(trimmed, "\n")
	if len(lines) >= 2 && strings.Contains(lines[0], ",") {
		return FormatCSV
	}

	return FormatUnknown
}

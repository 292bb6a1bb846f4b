package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// objectNotationPayload описывает ожидаемые поля объектной нотации.
// Категория может приходить как "category" или как "type".
type objectNotationPayload struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Type     string          `json:"type"`
	Value    json.RawMessage `json:"value"`
}

// parseObjectNotation разбирает запись в объектной нотации (JSON)
func parseObjectNotation(record RawRecord) (NormalizedRecord, error) {
	var payload objectNotationPayload
	if err := json.Unmarshal([]byte(record.Content), &payload); err != nil {
		return NormalizedRecord{}, fmt.Errorf("некорректная объектная нотация: %w", err)
	}

	if payload.ID == "" {
		return NormalizedRecord{}, errors.New("в объектной нотации отсутствует поле id")
	}

	category := payload.Category
	if category == "" {
		category = payload.Type
	}
	if category == "" {
		return NormalizedRecord{}, errors.New("в объектной нотации отсутствует категория")
	}

	// Числовое значение не обязательно
	var value float64
	if len(payload.Value) > 0 {
		if err := json.Unmarshal(payload.Value, &value); err != nil {
			return NormalizedRecord{}, fmt.Errorf("поле value не является числом: %w", err)
		}
	}

	return NormalizedRecord{
		SystemID: payload.ID,
		Category: category,
		Value:    value,
		Content:  record.Content,
	}, nil
}

// parseDelimited разбирает текст с разделителями:
// строка заголовка, затем строки данных вида id,category,value.
// Нормализованная запись строится по первой строке данных.
func parseDelimited(record RawRecord) (NormalizedRecord, error) {
	reader := csv.NewReader(strings.NewReader(record.Content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return NormalizedRecord{}, fmt.Errorf("некорректный текст с разделителями: %w", err)
	}

	if len(rows) < 2 {
		return NormalizedRecord{}, errors.New("отсутствует строка данных после заголовка")
	}

	data := rows[1]
	if len(data) < 2 || strings.TrimSpace(data[0]) == "" {
		return NormalizedRecord{}, errors.New("в строке данных нет идентификатора и категории")
	}

	normalized := NormalizedRecord{
		SystemID: strings.TrimSpace(data[0]),
		Category: strings.TrimSpace(data[1]),
		Content:  record.Content,
	}

	if len(data) >= 3 {
		value, err := strconv.ParseFloat(strings.TrimSpace(data[2]), 64)
		if err == nil {
			normalized.Value = value
		}
	}

	return normalized, nil
}

// parseMarkup разбирает структурированную разметку,
// извлекая идентификатор и категорию поиском по тегам
func parseMarkup(record RawRecord) (NormalizedRecord, error) {
	id := extractTag(record.Content, "id")
	if id == "" {
		return NormalizedRecord{}, errors.New("в разметке отсутствует тег id")
	}

	category := extractTag(record.Content, "category")
	if category == "" {
		category = extractTag(record.Content, "type")
	}
	if category == "" {
		return NormalizedRecord{}, errors.New("в разметке отсутствует тег категории")
	}

	normalized := NormalizedRecord{
		SystemID: id,
		Category: category,
		Content:  record.Content,
	}

	if raw := extractTag(record.Content, "value"); raw != "" {
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil {
			normalized.Value = value
		}
	}

	return normalized, nil
}

// extractTag возвращает содержимое первой пары тегов <name>...</name>
func extractTag(content, name string) string {
	open := "<" + name + ">"
	close := "</" + name + ">"

	start := strings.Index(content, open)
	if start == -1 {
		return ""
	}
	start += len(open)

	end := strings.Index(content[start:], close)
	if end == -1 {
		return ""
	}

	return strings.TrimSpace(content[start : start+end])
}

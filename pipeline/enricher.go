package pipeline

// Enricher дополняет содержимое нормализованных записей служебным маркером
type Enricher struct {
	marker string
}

// NewEnricher создает новый экземпляр Enricher с заданным маркером
func NewEnricher(marker string) *Enricher {
	return &Enricher{marker: marker}
}

// Enrich добавляет маркер к содержимому каждой записи ровно один раз.
// Чистая функция над копией набора: пустой вход дает пустой выход.
func (e *Enricher) Enrich(records []NormalizedRecord) []NormalizedRecord {
	enriched := make([]NormalizedRecord, 0, len(records))
	for _, record := range records {
		record.Content = record.Content + e.marker
		enriched = append(enriched, record)
	}
	return enriched
}

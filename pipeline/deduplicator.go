package pipeline

// Dedupe устраняет дубликаты по системному идентификатору.
// Записи группируются по SystemID с сохранением порядка первого появления;
// в каждой группе остается только первая встреченная запись (first-write-wins).
func Dedupe(records []NormalizedRecord) []NormalizedRecord {
	seen := make(map[string]bool, len(records))
	result := make([]NormalizedRecord, 0, len(records))

	for _, record := range records {
		if seen[record.SystemID] {
			continue
		}
		seen[record.SystemID] = true
		result = append(result, record)
	}

	return result
}

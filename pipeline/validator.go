package pipeline

import "strings"

// Validate проверяет пригодность сырой записи для обработки.
// Запись отбрасывается, если содержимое пустое или не задано время приема.
// Отбраковка отдельной записи не считается ошибкой запуска.
func Validate(record RawRecord) bool {
	if strings.TrimSpace(record.Content) == "" {
		return false
	}
	if record.IngestedAt.IsZero() {
		return false
	}
	return true
}

// reports/excel.go
package reports

import (
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/LilVoxy/coursework_marketing/pipeline"
	"github.com/xuri/excelize/v2"
)

// BuildWorkbook формирует Excel-книгу отчета по продажам.
// Первый лист — сводка продаж по товарам, второй — нормализованные записи
// последнего запуска пайплайна.
func BuildWorkbook(summary []database.SaleSummaryRow, records []pipeline.NormalizedRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	// Лист сводки продаж
	const salesSheet = "Продажи"
	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, fmt.Errorf("ошибка при переименовании листа: %w", err)
	}

	salesHeaders := []string{"Товар", "Категория", "Количество", "Сумма"}
	for i, header := range salesHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(salesSheet, cell, header); err != nil {
			return nil, fmt.Errorf("ошибка при записи заголовка: %w", err)
		}
	}

	for i, row := range summary {
		values := []interface{}{row.ProductName, row.Category, row.Quantity, row.Total}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(salesSheet, cell, value); err != nil {
				return nil, fmt.Errorf("ошибка при записи строки сводки: %w", err)
			}
		}
	}

	// Лист нормализованных записей
	const recordsSheet = "Нормализованные данные"
	if _, err := f.NewSheet(recordsSheet); err != nil {
		return nil, fmt.Errorf("ошибка при создании листа: %w", err)
	}

	recordHeaders := []string{"Системный ID", "Категория", "Значение", "Содержимое"}
	for i, header := range recordHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(recordsSheet, cell, header); err != nil {
			return nil, fmt.Errorf("ошибка при записи заголовка: %w", err)
		}
	}

	for i, record := range records {
		values := []interface{}{record.SystemID, record.Category, record.Value, record.Content}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(recordsSheet, cell, value); err != nil {
				return nil, fmt.Errorf("ошибка при записи нормализованной записи: %w", err)
			}
		}
	}

	return f, nil
}

// reportFileName формирует имя файла отчета по времени генерации
func reportFileName(now time.Time) string {
	return fmt.Sprintf("sales_report_%s.xlsx", now.Format("2006-01-02_150405"))
}

// reports/excel_test.go
package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_marketing/database"
	"github.com/LilVoxy/coursework_marketing/pipeline"
)

func TestBuildWorkbook(t *testing.T) {
	summary := []database.SaleSummaryRow{
		{ProductName: "Смартфон X", Category: "электроника", Quantity: 3, Total: 89970},
		{ProductName: "Наушники Y", Category: "аксессуары", Quantity: 10, Total: 19990},
	}
	records := []pipeline.NormalizedRecord{
		{SystemID: "crm-1", Category: "ads", Value: 199.9, Content: "содержимое"},
	}

	f, err := BuildWorkbook(summary, records)
	require.NoError(t, err)
	defer f.Close()

	// Лист сводки продаж
	sheets := f.GetSheetList()
	require.Contains(t, sheets, "Продажи")
	require.Contains(t, sheets, "Нормализованные данные")

	header, err := f.GetCellValue("Продажи", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Товар", header)

	product, err := f.GetCellValue("Продажи", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Смартфон X", product)

	quantity, err := f.GetCellValue("Продажи", "C3")
	require.NoError(t, err)
	assert.Equal(t, "10", quantity)

	// Лист нормализованных записей
	systemID, err := f.GetCellValue("Нормализованные данные", "A2")
	require.NoError(t, err)
	assert.Equal(t, "crm-1", systemID)

	category, err := f.GetCellValue("Нормализованные данные", "B2")
	require.NoError(t, err)
	assert.Equal(t, "ads", category)
}

func TestBuildWorkbook_EmptyData(t *testing.T) {
	f, err := BuildWorkbook(nil, nil)
	require.NoError(t, err)
	defer f.Close()

	// Листы создаются даже без данных, заголовки на месте
	header, err := f.GetCellValue("Продажи", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Товар", header)

	header, err = f.GetCellValue("Нормализованные данные", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Системный ID", header)
}

func TestReportFileName(t *testing.T) {
	now := time.Date(2026, 8, 30, 2, 5, 7, 0, time.Local)
	assert.Equal(t, "sales_report_2026-08-30_020507.xlsx", reportFileName(now))
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformer_Transform(t *testing.T) {
	transformer := NewTransformer(nil)

	tests := []struct {
		name         string
		record       RawRecord
		wantSystemID string
		wantCategory string
		wantValue    float64
		wantWarning  bool
	}{
		{
			name: "объектная нотация с категорией",
			record: RawRecord{
				ID:      1,
				Content: `{"id":"crm-42","category":"ads","value":199.9}`,
				Format:  FormatJSON,
			},
			wantSystemID: "crm-42",
			wantCategory: "ads",
			wantValue:    199.9,
		},
		{
			name: "объектная нотация с полем type вместо category",
			record: RawRecord{
				ID:      2,
				Content: `{"id":"crm-43","type":"email"}`,
				Format:  FormatJSON,
			},
			wantSystemID: "crm-43",
			wantCategory: "email",
		},
		{
			name: "текст с разделителями",
			record: RawRecord{
				ID:      3,
				Content: "id,category,value\nerp-7,stock,15.5",
				Format:  FormatCSV,
			},
			wantSystemID: "erp-7",
			wantCategory: "stock",
			wantValue:    15.5,
		},
		{
			name: "структурированная разметка",
			record: RawRecord{
				ID:      4,
				Content: "<record><id>web-9</id><category>visits</category><value>300</value></record>",
				Format:  FormatXML,
			},
			wantSystemID: "web-9",
			wantCategory: "visits",
			wantValue:    300,
		},
		{
			name: "испорченная объектная нотация уходит в запасную ветку",
			record: RawRecord{
				ID:      5,
				Content: `{"id": нет`,
				Format:  FormatJSON,
			},
			wantCategory: "uncategorized",
			wantWarning:  true,
		},
		{
			name: "неизвестный формат уходит в запасную ветку",
			record: RawRecord{
				ID:      6,
				Content: "просто текст",
				Format:  FormatUnknown,
			},
			wantCategory: "uncategorized",
			wantWarning:  true,
		},
		{
			name: "объектная нотация без id уходит в запасную ветку",
			record: RawRecord{
				ID:      7,
				Content: `{"category":"ads"}`,
				Format:  FormatJSON,
			},
			wantCategory: "uncategorized",
			wantWarning:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, warning := transformer.Transform(tt.record)

			// Трансформация тотальна: результат есть всегда
			assert.Equal(t, tt.record.ID, normalized.RawRecordID)
			assert.Equal(t, tt.wantCategory, normalized.Category)

			if tt.wantWarning {
				require.NotNil(t, warning)
				assert.Equal(t, tt.record.ID, warning.RawRecordID)
				assert.NotEmpty(t, warning.Reason)
				// Запасная ветка всегда выдает сгенерированный идентификатор
				assert.Contains(t, normalized.SystemID, "fallback-")
				assert.Equal(t, tt.record.Content, normalized.Content)
			} else {
				require.Nil(t, warning)
				assert.Equal(t, tt.wantSystemID, normalized.SystemID)
				assert.Equal(t, tt.wantValue, normalized.Value)
			}
		})
	}
}

func TestTransformer_FallbackIdentifiersUnique(t *testing.T) {
	transformer := NewTransformer(nil)
	record := RawRecord{ID: 1, Content: "не разбирается", Format: FormatUnknown}

	first, _ := transformer.Transform(record)
	second, _ := transformer.Transform(record)

	// Две записи запасной ветки не должны схлопнуться при дедупликации
	assert.NotEqual(t, first.SystemID, second.SystemID)
}

func TestParseDelimited_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "только заголовок без данных", content: "id,category,value"},
		{name: "строка данных без категории", content: "id,category\nerp-7"},
		{name: "пустой идентификатор", content: "id,category\n ,stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDelimited(RawRecord{Content: tt.content})
			assert.Error(t, err)
		})
	}
}

func TestParseMarkup_CategoryFromTypeTag(t *testing.T) {
	normalized, err := parseMarkup(RawRecord{
		Content: "<record><id>web-1</id><type>clicks</type></record>",
	})

	require.NoError(t, err)
	assert.Equal(t, "web-1", normalized.SystemID)
	assert.Equal(t, "clicks", normalized.Category)
}

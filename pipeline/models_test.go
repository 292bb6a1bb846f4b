package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		content  string
		want     SourceFormat
	}{
		{
			name:     "заявленный формат имеет приоритет над содержимым",
			declared: "csv",
			content:  `{"id":"x"}`,
			want:     FormatCSV,
		},
		{
			name:     "заявленный формат нечувствителен к регистру",
			declared: " JSON ",
			content:  "",
			want:     FormatJSON,
		},
		{
			name:     "объектная нотация распознается по содержимому",
			declared: "",
			content:  `{"id":"a-1","category":"ads"}`,
			want:     FormatJSON,
		},
		{
			name:     "разметка распознается по открывающему тегу",
			declared: "",
			content:  "<record><id>a-1</id></record>",
			want:     FormatXML,
		},
		{
			name:     "текст с разделителями распознается по заголовку и строке данных",
			declared: "",
			content:  "id,category,value\na-1,ads,10",
			want:     FormatCSV,
		},
		{
			name:     "пустое содержимое дает неизвестный формат",
			declared: "",
			content:  "   ",
			want:     FormatUnknown,
		},
		{
			name:     "фигурная скобка без валидного JSON дает неизвестный формат",
			declared: "",
			content:  "{не json",
			want:     FormatUnknown,
		},
		{
			name:     "однострочный текст без структуры дает неизвестный формат",
			declared: "",
			content:  "просто текст",
			want:     FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFormat(tt.declared, tt.content))
		})
	}
}

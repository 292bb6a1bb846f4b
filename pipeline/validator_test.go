package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	ingested := time.Date(2026, 8, 30, 2, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		record RawRecord
		want   bool
	}{
		{
			name:   "запись с содержимым проходит валидацию",
			record: RawRecord{ID: 1, Content: `{"id":"a-1"}`, IngestedAt: ingested},
			want:   true,
		},
		{
			name:   "пустое содержимое отбрасывается",
			record: RawRecord{ID: 2, Content: "", IngestedAt: ingested},
			want:   false,
		},
		{
			name:   "содержимое из одних пробелов отбрасывается",
			record: RawRecord{ID: 3, Content: "   \n\t  ", IngestedAt: ingested},
			want:   false,
		},
		{
			name:   "запись без времени приема отбрасывается",
			record: RawRecord{ID: 4, Content: `{"id":"a-1"}`},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.record))
		})
	}
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name    string
		records []NormalizedRecord
		wantIDs []string
	}{
		{
			name: "первая запись группы побеждает",
			records: []NormalizedRecord{
				{SystemID: "a-1", Content: "первая"},
				{SystemID: "a-2", Content: "вторая"},
				{SystemID: "a-1", Content: "дубликат"},
			},
			wantIDs: []string{"a-1", "a-2"},
		},
		{
			name: "порядок первого появления сохраняется",
			records: []NormalizedRecord{
				{SystemID: "c-3"},
				{SystemID: "a-1"},
				{SystemID: "b-2"},
				{SystemID: "a-1"},
				{SystemID: "c-3"},
			},
			wantIDs: []string{"c-3", "a-1", "b-2"},
		},
		{
			name:    "пустой набор",
			records: nil,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Dedupe(tt.records)

			ids := make([]string, 0, len(result))
			for _, record := range result {
				ids = append(ids, record.SystemID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestDedupe_KeepsFirstContent(t *testing.T) {
	records := []NormalizedRecord{
		{SystemID: "a-1", Content: "оригинал"},
		{SystemID: "a-1", Content: "поздний дубликат"},
	}

	result := Dedupe(records)

	assert.Len(t, result, 1)
	assert.Equal(t, "оригинал", result[0].Content)
}

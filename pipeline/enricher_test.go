package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnricher_Enrich(t *testing.T) {
	enricher := NewEnricher(" [enriched]")

	records := []NormalizedRecord{
		{SystemID: "a-1", Content: "первая"},
		{SystemID: "a-2", Content: "вторая"},
	}

	enriched := enricher.Enrich(records)

	assert.Len(t, enriched, 2)
	assert.Equal(t, "первая [enriched]", enriched[0].Content)
	assert.Equal(t, "вторая [enriched]", enriched[1].Content)

	// Исходный набор не изменяется
	assert.Equal(t, "первая", records[0].Content)
}

func TestEnricher_EnrichEmptySet(t *testing.T) {
	enricher := NewEnricher(" [enriched]")

	enriched := enricher.Enrich(nil)

	assert.NotNil(t, enriched)
	assert.Empty(t, enriched)
}

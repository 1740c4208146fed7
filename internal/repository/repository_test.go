package repository_test

import (
	"testing"

	"github.com/Houeta/lot-watch/internal/models"
	"github.com/Houeta/lot-watch/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	a1Stored := models.Vehicle{StockNumber: "A1", Price: "$20,000"}
	a1Rescraped := models.Vehicle{StockNumber: "A1", Price: "$19,500"}
	b1 := models.Vehicle{StockNumber: "B1", Price: "$31,000"}

	t.Run("prior record wins on collision", func(t *testing.T) {
		prior := models.Store{"A1": a1Stored}

		merged := repository.Merge(prior, []models.Vehicle{a1Rescraped, b1})

		assert.Len(t, merged, 2)
		assert.Equal(t, a1Stored, merged["A1"], "stored snapshot must survive a re-scrape")
		assert.Equal(t, b1, merged["B1"])
	})

	t.Run("empty prior store", func(t *testing.T) {
		merged := repository.Merge(models.Store{}, []models.Vehicle{a1Rescraped})

		assert.Equal(t, models.Store{"A1": a1Rescraped}, merged)
	})

	t.Run("no fresh vehicles keeps prior intact", func(t *testing.T) {
		prior := models.Store{"A1": a1Stored, "B1": b1}

		merged := repository.Merge(prior, nil)

		assert.Equal(t, prior, merged)
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		prior := models.Store{"A1": a1Stored}

		merged := repository.Merge(prior, []models.Vehicle{b1})
		merged["C9"] = models.Vehicle{StockNumber: "C9"}

		assert.Len(t, prior, 1)
		assert.Equal(t, a1Stored, prior["A1"])
	})
}

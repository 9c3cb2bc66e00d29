package entity

import (
	"math"

	"github.com/google/uuid"
)

type Rating struct {
	Base
	Value   int       `db:"value"`
	UserID  uuid.UUID `db:"user_id"`
	StoreID uuid.UUID `db:"store_id"`
}

// RatingAggregate holds the sum and count of a store's ratings.
type RatingAggregate struct {
	Sum   int64
	Count int64
}

// Average is the arithmetic mean rounded half away from zero to one decimal,
// 0 when there are no ratings.
func (a RatingAggregate) Average() float64 {
	if a.Count <= 0 {
		return 0
	}
	return math.Round(float64(a.Sum)/float64(a.Count)*10) / 10
}

// Rater is one row of the owner dashboard: who rated and with what value.
type Rater struct {
	RatingID uuid.UUID
	Name     string
	Email    string
	Address  string
	Value    int
}

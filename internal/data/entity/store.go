package entity

import "github.com/google/uuid"

type Store struct {
	Base
	Name    string    `db:"name"`
	Email   string    `db:"email"`
	Address string    `db:"address"`
	OwnerID uuid.UUID `db:"owner_id"`
}

// StoreSummary is a store with its rating aggregate. UserRating carries the
// viewing user's own rating, nil when that user has not rated the store.
type StoreSummary struct {
	Store
	Rating     RatingAggregate
	UserRating *int
}

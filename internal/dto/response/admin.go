package response

import (
	"time"

	"store-rating/internal/data/entity"
)

// UserListItem is a row of the admin user listing. StoreAverageRating is
// present only for owners that have a store.
type UserListItem struct {
	UserResponse
	StoreAverageRating *string `json:"storeAverageRating,omitempty"`
}

type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

type StoreListItem struct {
	StoreResponse
	Rating      string `json:"rating"`
	RatingCount int64  `json:"ratingCount"`
}

type StatsResponse struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Ratings int64 `json:"ratings"`
}

func StoreToResponse(store *entity.Store) StoreResponse {
	return StoreResponse{
		ID:        store.ID.String(),
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		OwnerID:   store.OwnerID.String(),
		CreatedAt: store.CreatedAt,
	}
}

func UserSummaryToItem(u *entity.UserSummary) UserListItem {
	item := UserListItem{UserResponse: UserToResponse(&u.User)}
	if u.StoreRating != nil {
		avg := FormatRating(u.StoreRating.Average())
		item.StoreAverageRating = &avg
	}
	return item
}

func StoreSummaryToItem(s *entity.StoreSummary) StoreListItem {
	return StoreListItem{
		StoreResponse: StoreToResponse(&s.Store),
		Rating:        FormatRating(s.Rating.Average()),
		RatingCount:   s.Rating.Count,
	}
}

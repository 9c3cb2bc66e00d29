package response

import (
	"strconv"
	"time"

	"store-rating/internal/data/entity"
)

// FormatRating renders an average with exactly one decimal, e.g. "4.0".
func FormatRating(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 1, 64)
}

// UserStoreItem is a store as seen by a normal user. UserSubmittedRating is
// null until the user rates the store.
type UserStoreItem struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Address             string  `json:"address"`
	OverallRating       float64 `json:"overallRating"`
	UserSubmittedRating *int    `json:"userSubmittedRating"`
}

type RatingResponse struct {
	ID        string    `json:"id"`
	Value     int       `json:"value"`
	UserID    string    `json:"userId"`
	StoreID   string    `json:"storeId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RaterResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Rating  int    `json:"rating"`
}

type OwnerDashboardResponse struct {
	StoreName     string                            `json:"storeName"`
	AverageRating float64                           `json:"averageRating"`
	RatingCount   int64                             `json:"ratingCount"`
	Ratings       *PaginatedResponse[RaterResponse] `json:"ratings"`
}

func StoreSummaryToUserItem(s *entity.StoreSummary) UserStoreItem {
	return UserStoreItem{
		ID:                  s.ID.String(),
		Name:                s.Name,
		Address:             s.Address,
		OverallRating:       s.Rating.Average(),
		UserSubmittedRating: s.UserRating,
	}
}

func RatingToResponse(r *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID.String(),
		Value:     r.Value,
		UserID:    r.UserID.String(),
		StoreID:   r.StoreID.String(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func RaterToResponse(r *entity.Rater) RaterResponse {
	return RaterResponse{
		Name:    r.Name,
		Email:   r.Email,
		Address: r.Address,
		Rating:  r.Value,
	}
}

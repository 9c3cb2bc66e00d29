package response

import (
	"encoding/json"
	"testing"

	"store-rating/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "4.0", FormatRating(entity.RatingAggregate{Sum: 8, Count: 2}.Average()))
	assert.Equal(t, "0.0", FormatRating(entity.RatingAggregate{}.Average()))
	assert.Equal(t, "3.3", FormatRating(entity.RatingAggregate{Sum: 10, Count: 3}.Average()))
}

func TestNewPaginatedResponse(t *testing.T) {
	items := []int{11, 12, 13, 14, 15}
	resp := NewPaginatedResponse(items, 2, 10, 15)

	assert.Len(t, resp.Data, 5)
	assert.Equal(t, PaginationMeta{CurrentPage: 2, TotalPages: 2, TotalItems: 15, Limit: 10}, resp.Pagination)
}

func TestNewPaginatedResponse_NilBecomesEmptyArray(t *testing.T) {
	resp := NewPaginatedResponse[string](nil, 1, 10, 0)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"pagination":{"currentPage":1,"totalPages":0,"totalItems":0,"limit":10}}`, string(raw))
}

func TestStoreSummaryToUserItem_UserRating(t *testing.T) {
	summary := &entity.StoreSummary{
		Store:  entity.Store{Base: entity.Base{ID: uuid.New()}, Name: "Corner Shop"},
		Rating: entity.RatingAggregate{Sum: 8, Count: 2},
	}

	raw, err := json.Marshal(StoreSummaryToUserItem(summary))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"userSubmittedRating":null`)
	assert.Contains(t, string(raw), `"overallRating":4`)

	value := 5
	summary.UserRating = &value
	raw, err = json.Marshal(StoreSummaryToUserItem(summary))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"userSubmittedRating":5`)
}

func TestUserSummaryToItem(t *testing.T) {
	owner := &entity.UserSummary{
		User:        entity.User{Role: entity.RoleStoreOwner},
		StoreRating: &entity.RatingAggregate{Sum: 8, Count: 2},
	}
	item := UserSummaryToItem(owner)
	require.NotNil(t, item.StoreAverageRating)
	assert.Equal(t, "4.0", *item.StoreAverageRating)

	normal := &entity.UserSummary{User: entity.User{Role: entity.RoleNormalUser}}
	assert.Nil(t, UserSummaryToItem(normal).StoreAverageRating)
}

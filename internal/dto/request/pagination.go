package request

import (
	"net/url"
	"strings"

	"store-rating/pkg/utils"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*MaxLimit well inside a Postgres bigint offset.
	MaxPage      = 1_000_000
)

// ListQuery is the pagination and ordering part shared by every listing.
type ListQuery struct {
	Page   int    `json:"page" validate:"min=1,max=1000000"`
	Limit  int    `json:"limit" validate:"min=1,max=100"`
	SortBy string `json:"sortBy"`
	Order  string `json:"order" validate:"oneof=asc desc"`
}

func (q ListQuery) Offset() int {
	return utils.CalculateOffset(q.Page, q.Limit)
}

func (q ListQuery) Desc() bool {
	return q.Order == "desc"
}

// ParseListQuery reads page, limit, sortBy and order. Missing or
// non-positive page/limit fall back to defaults and limit is capped.
func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Page:   utils.ParseInt(values.Get("page"), 1),
		Limit:  utils.ParseInt(values.Get("limit"), DefaultLimit),
		SortBy: strings.TrimSpace(values.Get("sortBy")),
		Order:  strings.ToLower(strings.TrimSpace(values.Get("order"))),
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.SortBy == "" {
		q.SortBy = "name"
	}
	if q.Order == "" {
		q.Order = "asc"
	}
	return q
}

type UserListQuery struct {
	ListQuery
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    string `json:"role" validate:"omitempty,oneof=NORMAL_USER STORE_OWNER SYSTEM_ADMIN"`
}

func ParseUserListQuery(values url.Values) UserListQuery {
	return UserListQuery{
		ListQuery: ParseListQuery(values),
		Name:      strings.TrimSpace(values.Get("name")),
		Email:     strings.TrimSpace(values.Get("email")),
		Address:   strings.TrimSpace(values.Get("address")),
		Role:      strings.TrimSpace(values.Get("role")),
	}
}

type StoreListQuery struct {
	ListQuery
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func ParseStoreListQuery(values url.Values) StoreListQuery {
	return StoreListQuery{
		ListQuery: ParseListQuery(values),
		Name:      strings.TrimSpace(values.Get("name")),
		Email:     strings.TrimSpace(values.Get("email")),
		Address:   strings.TrimSpace(values.Get("address")),
	}
}

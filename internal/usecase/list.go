package usecase

import (
	"fmt"
	"slices"
	"strings"

	"store-rating/internal/data/repository"
	"store-rating/internal/dto/request"
	"store-rating/pkg/utils"
)

// checkSort rejects sort keys outside allowed so that a typo does not
// silently fall back to the default order.
func checkSort(q request.ListQuery, allowed []string) error {
	if slices.Contains(allowed, q.SortBy) {
		return nil
	}
	return validationError([]utils.FieldError{{
		Field:   "sortBy",
		Message: fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")),
	}})
}

func listOptions(q request.ListQuery) repository.ListOptions {
	return repository.ListOptions{
		Limit:  q.Limit,
		Offset: q.Offset(),
		SortBy: q.SortBy,
		Desc:   q.Desc(),
	}
}

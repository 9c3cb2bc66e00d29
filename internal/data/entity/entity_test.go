package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseRole("ADMIN")
	assert.Error(t, err)
	_, err = ParseRole("normal_user")
	assert.Error(t, err)
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		role     UserRole
		required []UserRole
		want     bool
	}{
		{"any role allowed", RoleNormalUser, nil, true},
		{"unknown role never allowed", UserRole("GUEST"), nil, false},
		{"matching role", RoleSystemAdmin, []UserRole{RoleSystemAdmin}, true},
		{"one of several", RoleStoreOwner, []UserRole{RoleNormalUser, RoleStoreOwner}, true},
		{"not in set", RoleNormalUser, []UserRole{RoleSystemAdmin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.role, tt.required...))
		})
	}
}

func TestRatingAggregate_Average(t *testing.T) {
	assert.Equal(t, 0.0, RatingAggregate{}.Average())
	assert.Equal(t, 4.0, RatingAggregate{Sum: 8, Count: 2}.Average())
	assert.Equal(t, 3.3, RatingAggregate{Sum: 10, Count: 3}.Average())
	assert.Equal(t, 3.7, RatingAggregate{Sum: 11, Count: 3}.Average())
	// 4.25 rounds away from zero
	assert.Equal(t, 4.3, RatingAggregate{Sum: 17, Count: 4}.Average())
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "menu_items", MenuItem{}.TableName())
	assert.Equal(t, "reservations", Reservation{}.TableName())
	assert.Equal(t, "orders", Order{}.TableName())
	assert.Equal(t, "order_items", OrderItem{}.TableName())
}

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role string
		want bool
	}{
		{"customer role", RoleCustomer, false},
		{"admin role", RoleAdmin, true},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := User{Email: "test@example.com", Role: tt.role}
			assert.Equal(t, tt.want, user.IsAdmin())
		})
	}
}

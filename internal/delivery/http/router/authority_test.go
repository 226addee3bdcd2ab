package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace/internal/domain/entity"
)

func TestAuthority(t *testing.T) {
	cases := []struct {
		name    string
		op      Operation
		role    entity.Role
		allowed bool
	}{
		{"admin promotes accounts", OpPromoteAccount, entity.RoleAdmin, true},
		{"user cannot promote accounts", OpPromoteAccount, entity.RoleUser, false},
		{"provider cannot promote accounts", OpPromoteAccount, entity.RoleProvider, false},
		{"provider creates profile", OpProviderProfileCreate, entity.RoleProvider, true},
		{"admin does not create profiles", OpProviderProfileCreate, entity.RoleAdmin, false},
		{"admin reads profiles", OpProviderProfileRead, entity.RoleAdmin, true},
		{"user books appointments", OpAppointmentBook, entity.RoleUser, true},
		{"only admin lists all appointments", OpAppointmentListAll, entity.RoleProvider, false},
		{"admin lists all appointments", OpAppointmentListAll, entity.RoleAdmin, true},
		{"provider updates appointment status", OpAppointmentUpdate, entity.RoleProvider, true},
		{"user does not update appointment status", OpAppointmentUpdate, entity.RoleUser, false},
		{"user cancels own appointment", OpAppointmentCancel, entity.RoleUser, true},
		{"provider does not cancel appointments", OpAppointmentCancel, entity.RoleProvider, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, Authority(tc.op).Contains(tc.role))
		})
	}
}

func TestAuthority_UnknownOperationDeniesAll(t *testing.T) {
	roles := Authority(Operation("no.such.operation"))

	assert.Empty(t, roles)
	for _, role := range []entity.Role{entity.RoleUser, entity.RoleProvider, entity.RoleAdmin} {
		assert.False(t, roles.Contains(role))
	}
}

package router

import "marketplace/internal/domain/entity"

// Operation names every protected endpoint. The authority table below is the
// single declarative source of which roles may perform which operation;
// handlers never restate role lists.
type Operation string

const (
	OpPromoteAccount Operation = "account.promote"

	OpProviderProfileCreate Operation = "provider_profile.create"
	OpProviderProfileRead   Operation = "provider_profile.read"
	OpProviderProfileUpdate Operation = "provider_profile.update"
	OpProviderProfileDelete Operation = "provider_profile.delete"

	OpAppointmentBook    Operation = "appointment.book"
	OpAppointmentListOwn Operation = "appointment.list_own"
	OpAppointmentListAll Operation = "appointment.list_all"
	OpAppointmentRead    Operation = "appointment.read"
	OpAppointmentUpdate  Operation = "appointment.update_status"
	OpAppointmentCancel  Operation = "appointment.cancel"
)

var authorityTable = map[Operation]entity.Roles{
	OpPromoteAccount: {entity.RoleAdmin},

	OpProviderProfileCreate: {entity.RoleProvider},
	OpProviderProfileRead:   {entity.RoleProvider, entity.RoleAdmin},
	OpProviderProfileUpdate: {entity.RoleProvider, entity.RoleAdmin},
	OpProviderProfileDelete: {entity.RoleProvider, entity.RoleAdmin},

	OpAppointmentBook:    {entity.RoleUser, entity.RoleProvider, entity.RoleAdmin},
	OpAppointmentListOwn: {entity.RoleUser, entity.RoleProvider, entity.RoleAdmin},
	OpAppointmentListAll: {entity.RoleAdmin},
	OpAppointmentRead:    {entity.RoleUser, entity.RoleProvider, entity.RoleAdmin},
	OpAppointmentUpdate:  {entity.RoleProvider, entity.RoleAdmin},
	OpAppointmentCancel:  {entity.RoleUser, entity.RoleAdmin},
}

// Authority returns the role set permitted to perform the operation. Unknown
// operations return an empty set, which denies everyone.
func Authority(op Operation) entity.Roles {
	return authorityTable[op]
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderProfile holds the public business data of a PROVIDER account.
// At most one profile exists per account.
type ProviderProfile struct {
	ID                  uuid.UUID // The unique ID of this profile record.
	AccountID           uuid.UUID // Links this profile to the Account it belongs to.
	BusinessName        string    // The provider's official business name.
	BusinessDescription string    // A description of the business and its services.
	BusinessAddress     string    // The physical address of the business.
	BusinessPhone       string    // Public contact phone, distinct from the account phone.
	BusinessEmail       string    // Public contact email, distinct from the login email.
	BusinessWebsite     string    // Public website URL.
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

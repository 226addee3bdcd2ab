package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/service"
)

type fakeTokenService struct {
	claims *service.Claims
	err    error
}

func (f *fakeTokenService) Sign(accountID uuid.UUID, role entity.Role, email string) (string, error) {
	return "signed", nil
}

func (f *fakeTokenService) Verify(tokenString string) (*service.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.claims, nil
}

func newEchoContext(authHeader string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec)
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true

		return c.NoContent(http.StatusOK)
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	accountID := uuid.New()
	tokenSvc := &fakeTokenService{claims: &service.Claims{
		AccountID: accountID,
		Role:      entity.RoleProvider,
		Email:     "provider@example.com",
	}}
	m := NewAuthMiddleware(tokenSvc)

	c := newEchoContext("Bearer some-token")

	var called bool
	err := m.Authenticate(okHandler(&called))(c)
	require.NoError(t, err)
	assert.True(t, called)

	gotID, ok := AccountID(c)
	require.True(t, ok)
	assert.Equal(t, accountID, gotID)

	gotRole, ok := AccountRole(c)
	require.True(t, ok)
	assert.Equal(t, entity.RoleProvider, gotRole)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{})

	c := newEchoContext("")

	var called bool
	err := m.Authenticate(okHandler(&called))(c)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.False(t, called)
}

func TestAuthenticate_WrongScheme(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{})

	c := newEchoContext("Basic dXNlcjpwYXNz")

	var called bool
	err := m.Authenticate(okHandler(&called))(c)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.False(t, called)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{err: errors.New("bad signature")})

	c := newEchoContext("Bearer tampered")

	var called bool
	err := m.Authenticate(okHandler(&called))(c)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.False(t, called)
}

func TestRequireAuthority(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{})

	cases := []struct {
		name    string
		role    any
		allowed entity.Roles
		wantErr error
	}{
		{
			name:    "member role passes",
			role:    entity.RoleAdmin,
			allowed: entity.Roles{entity.RoleAdmin},
		},
		{
			name:    "non-member role is forbidden",
			role:    entity.RoleUser,
			allowed: entity.Roles{entity.RoleAdmin},
			wantErr: domainerrors.ErrForbidden,
		},
		{
			name:    "empty set denies every role",
			role:    entity.RoleAdmin,
			allowed: entity.Roles{},
			wantErr: domainerrors.ErrForbidden,
		},
		{
			name:    "missing role is unauthorized",
			role:    nil,
			allowed: entity.Roles{entity.RoleAdmin},
			wantErr: domainerrors.ErrUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newEchoContext("")
			if tc.role != nil {
				c.Set(ContextKeyRole, tc.role)
			}

			var called bool
			err := m.RequireAuthority(tc.allowed)(okHandler(&called))(c)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.False(t, called)

				return
			}

			require.NoError(t, err)
			assert.True(t, called)
		})
	}
}

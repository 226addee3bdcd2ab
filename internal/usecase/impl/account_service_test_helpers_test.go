package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/errors"
	"marketplace/internal/usecase"
)

// fakeAccountRepo is an in-memory AccountRepository with the same guarded
// token-consumption semantics as the SQL implementation.
type fakeAccountRepo struct {
	mu              sync.Mutex
	accounts        map[uuid.UUID]*entity.Account
	consumeResetErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	copied := *account

	return &copied, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == account.Email || existing.Phone == account.Phone {
			return domainerrors.ErrDuplicateAccount
		}
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}

	copied := *account
	copied.UpdatedAt = time.Now()
	r.accounts[account.ID] = &copied

	return nil
}

func (r *fakeAccountRepo) UpdateRole(_ context.Context, id uuid.UUID, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}

	account.Role = role

	return nil
}

func (r *fakeAccountRepo) SetResetPasswordToken(_ context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}

	account.ResetPasswordToken = &token
	account.ResetPasswordTokenExpiresAt = &expiresAt

	return nil
}

func (r *fakeAccountRepo) ConsumeVerificationToken(_ context.Context, token string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.VerificationToken != nil && *account.VerificationToken == token &&
			account.VerificationTokenExpiresAt != nil && account.VerificationTokenExpiresAt.After(now) {
			account.EmailVerified = true
			account.VerificationToken = nil
			account.VerificationTokenExpiresAt = nil

			return nil
		}
	}

	return repository.ErrTokenNotConsumed
}

func (r *fakeAccountRepo) ConsumeResetPasswordToken(_ context.Context, token, newPasswordHash string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.consumeResetErr != nil {
		return r.consumeResetErr
	}

	for _, account := range r.accounts {
		if account.ResetPasswordToken != nil && *account.ResetPasswordToken == token &&
			account.ResetPasswordTokenExpiresAt != nil && account.ResetPasswordTokenExpiresAt.After(now) {
			account.PasswordHash = newPasswordHash
			account.ResetPasswordToken = nil
			account.ResetPasswordTokenExpiresAt = nil

			return nil
		}
	}

	return repository.ErrTokenNotConsumed
}

// fakeTxManager runs the callback directly against the shared fake repos.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

type fakeRepoFactory struct {
	accountRepo repository.AccountRepository
}

func (f *fakeRepoFactory) AccountRepo() repository.AccountRepository {
	return f.accountRepo
}

func (f *fakeRepoFactory) ProviderProfileRepo() repository.ProviderProfileRepository {
	return nil
}

func (f *fakeRepoFactory) AppointmentRepo() repository.AppointmentRepository {
	return nil
}

// fakeHasher avoids bcrypt cost in tests while keeping the policy surface.
type fakeHasher struct{}

func (h *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

func (h *fakeHasher) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password too weak")
	}

	return nil
}

type fakeTokenService struct{}

func (s *fakeTokenService) Sign(accountID uuid.UUID, role entity.Role, email string) (string, error) {
	return strings.Join([]string{"token", accountID.String(), string(role), email}, "|"), nil
}

func (s *fakeTokenService) Verify(tokenString string) (*service.Claims, error) {
	parts := strings.Split(tokenString, "|")
	if len(parts) != 4 || parts[0] != "token" {
		return nil, errors.New("invalid token")
	}

	accountID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, err
	}

	return &service.Claims{AccountID: accountID, Role: entity.Role(parts[2]), Email: parts[3]}, nil
}

// fakeTokenGenerator returns deterministic sequential tokens.
type fakeTokenGenerator struct {
	mu      sync.Mutex
	counter int
}

func (g *fakeTokenGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++

	return fmt.Sprintf("generated-token-%04d", g.counter), nil
}

// fakeMailer records deliveries and can simulate provider failures.
type fakeMailer struct {
	mu                sync.Mutex
	verificationMails []sentMail
	resetMails        []sentMail
	failVerification  bool
	failResetPassword bool
}

type sentMail struct {
	To    string
	Token string
}

func (m *fakeMailer) SendVerificationEmail(_ context.Context, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failVerification {
		return errors.New("mail provider unavailable")
	}

	m.verificationMails = append(m.verificationMails, sentMail{To: to, Token: token})

	return nil
}

func (m *fakeMailer) SendResetPasswordEmail(_ context.Context, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failResetPassword {
		return errors.New("mail provider unavailable")
	}

	m.resetMails = append(m.resetMails, sentMail{To: to, Token: token})

	return nil
}

// newTestAccountService wires an accountService against the in-memory fakes.
func newTestAccountService() (usecase.AccountUsecase, *fakeAccountRepo, *fakeMailer) {
	accountRepo := newFakeAccountRepo()
	mailer := &fakeMailer{}
	svc := &accountService{
		txManager:      &fakeTxManager{factory: &fakeRepoFactory{accountRepo: accountRepo}},
		accountRepo:    accountRepo,
		hasher:         &fakeHasher{},
		tokenService:   &fakeTokenService{},
		tokenGenerator: &fakeTokenGenerator{},
		mailer:         mailer,
		logger:         slog.Default(),
	}

	return svc, accountRepo, mailer
}

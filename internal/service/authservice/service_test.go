package authservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"catalogo/internal/domain"
	apperror "catalogo/internal/errors"
	"catalogo/internal/pkg/logger"
	"catalogo/internal/pkg/token"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account domain.Account, passwordHash string) (domain.Account, error) {
	args := m.Called(ctx, account, passwordHash)
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, string, error) {
	args := m.Called(ctx, email)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.String(1), args.Error(2)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockHook struct {
	mock.Mock
}

func (m *MockHook) OnAccountCreated(ctx context.Context, event domain.AccountCreated) error {
	return m.Called(ctx, event).Error(0)
}

// orderHook registra a ordem de chamada em uma fatia compartilhada.
type orderHook struct {
	name  string
	calls *[]string
}

func (h orderHook) OnAccountCreated(context.Context, domain.AccountCreated) error {
	*h.calls = append(*h.calls, h.name)
	return nil
}

func newService(repo *MockAccountRepository) *Service {
	svc := NewService(repo, token.NewService("segredo", time.Hour, "http://localhost:3000"), logger.NewNopLogger())
	svc.cost = bcrypt.MinCost
	return svc
}

func signUpInput() domain.SignUpInput {
	return domain.SignUpInput{Name: "Ana", Email: "Ana@B.com", Password: "senha-forte"}
}

func TestSignUp_Success_RunsHookOnce(t *testing.T) {
	repo := new(MockAccountRepository)
	hook := new(MockHook)
	svc := newService(repo)
	svc.RegisterHook(hook)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Email == "ana@b.com" && *a.Name == "Ana"
	}), mock.AnythingOfType("string")).
		Return(domain.Account{ID: "u1", Email: "ana@b.com", Name: ptr("Ana")}, nil).Once()
	hook.On("OnAccountCreated", mock.Anything, domain.AccountCreated{ID: "u1", Email: "ana@b.com", Name: ptr("Ana")}).
		Return(nil).Once()

	account, err := svc.SignUp(context.Background(), signUpInput())

	require.NoError(t, err)
	assert.Equal(t, "u1", account.ID)
	hook.AssertNumberOfCalls(t, "OnAccountCreated", 1)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSignUp_StoresBcryptHash(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newService(repo)

	var stored string
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.String(2) }).
		Return(domain.Account{ID: "u1", Email: "ana@b.com"}, nil)

	_, err := svc.SignUp(context.Background(), signUpInput())

	require.NoError(t, err)
	assert.NotEqual(t, "senha-forte", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("senha-forte")))
}

func TestSignUp_HooksRunInRegistrationOrder(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newService(repo)

	var calls []string
	svc.RegisterHook(orderHook{name: "primeiro", calls: &calls})
	svc.RegisterHook(orderHook{name: "segundo", calls: &calls})
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(domain.Account{ID: "u1"}, nil)

	_, err := svc.SignUp(context.Background(), signUpInput())

	require.NoError(t, err)
	assert.Equal(t, []string{"primeiro", "segundo"}, calls)
}

func TestSignUp_HookFailure_CompensatesAndPropagates(t *testing.T) {
	repo := new(MockAccountRepository)
	hook := new(MockHook)
	svc := newService(repo)
	svc.RegisterHook(hook)

	hookErr := apperror.NewDatabaseError("Erro ao criar perfil de usuário.", errors.New("db down"))
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(domain.Account{ID: "u1"}, nil)
	hook.On("OnAccountCreated", mock.Anything, mock.Anything).Return(hookErr)
	repo.On("Delete", mock.Anything, "u1").Return(nil).Once()

	_, err := svc.SignUp(context.Background(), signUpInput())

	assert.ErrorIs(t, err, hookErr)
	repo.AssertExpectations(t)
}

// cancelingHook simula um cliente que desiste da requisição durante o provisionamento.
type cancelingHook struct {
	cancel context.CancelFunc
}

func (h cancelingHook) OnAccountCreated(ctx context.Context, _ domain.AccountCreated) error {
	h.cancel()
	return ctx.Err()
}

func TestSignUp_HookFailure_CompensatesAfterRequestCanceled(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.RegisterHook(cancelingHook{cancel: cancel})

	var deleteCtxErr error
	var deleteDeadline bool
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(domain.Account{ID: "u1"}, nil)
	repo.On("Delete", mock.Anything, "u1").
		Run(func(args mock.Arguments) {
			dctx := args.Get(0).(context.Context)
			deleteCtxErr = dctx.Err()
			_, deleteDeadline = dctx.Deadline()
		}).
		Return(nil).Once()

	_, err := svc.SignUp(ctx, signUpInput())

	assert.ErrorIs(t, err, context.Canceled)
	repo.AssertExpectations(t)
	assert.NoError(t, deleteCtxErr, "a remoção não pode herdar o cancelamento da requisição")
	assert.True(t, deleteDeadline, "a remoção deve ter prazo próprio")
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	repo := new(MockAccountRepository)
	hook := new(MockHook)
	svc := newService(repo)
	svc.RegisterHook(hook)

	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Account{}, domain.ErrDuplicateEmail)

	_, err := svc.SignUp(context.Background(), signUpInput())

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	hook.AssertNotCalled(t, "OnAccountCreated", mock.Anything, mock.Anything)
}

func TestSignUp_Validation(t *testing.T) {
	cases := map[string]domain.SignUpInput{
		"senha curta":    {Name: "Ana", Email: "a@b.com", Password: "123"},
		"email inválido": {Name: "Ana", Email: "nao-e-email", Password: "senha-forte"},
		"sem nome":       {Email: "a@b.com", Password: "senha-forte"},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(MockAccountRepository)
			svc := newService(repo)

			_, err := svc.SignUp(context.Background(), input)

			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSignIn_Success(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "ana@b.com").
		Return(&domain.Account{ID: "u1", Email: "ana@b.com"}, string(hash), nil)

	session, err := svc.SignIn(context.Background(), domain.SignInInput{Email: "ana@b.com", Password: "senha-forte"})

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "u1", session.User.ID)

	claims, err := svc.tokens.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newService(repo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	repo.On("FindByEmail", mock.Anything, "ana@b.com").
		Return(&domain.Account{ID: "u1", Email: "ana@b.com"}, string(hash), nil)

	_, err := svc.SignIn(context.Background(), domain.SignInInput{Email: "ana@b.com", Password: "outra-senha"})

	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestSignIn_UnknownEmail(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newService(repo)

	repo.On("FindByEmail", mock.Anything, "x@b.com").Return(nil, "", nil)

	_, err := svc.SignIn(context.Background(), domain.SignInInput{Email: "x@b.com", Password: "qualquer"})

	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func ptr[T any](v T) *T { return &v }

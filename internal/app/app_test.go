package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/domain"
	apperror "catalogo/internal/errors"
	"catalogo/internal/pkg/logger"
	"catalogo/internal/pkg/token"
)

// store simula as tabelas users, credentials e user_profiles.
type store struct {
	mu        sync.Mutex
	accounts  map[string]domain.Account
	hashes    map[string]string
	profiles  map[string]domain.UserProfile
	seq       int
	failWrite bool
}

func newStore() *store {
	return &store{
		accounts: map[string]domain.Account{},
		hashes:   map[string]string{},
		profiles: map[string]domain.UserProfile{},
	}
}

type accountRepo struct{ s *store }

func (r accountRepo) Create(_ context.Context, a domain.Account, hash string) (domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return domain.Account{}, domain.ErrDuplicateEmail
		}
	}
	r.s.seq++
	a.ID = fmt.Sprintf("acc-%d", r.s.seq)
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	r.s.accounts[a.ID] = a
	r.s.hashes[a.ID] = hash
	return a, nil
}

func (r accountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, a := range r.s.accounts {
		if a.Email == email {
			return &a, r.s.hashes[id], nil
		}
	}
	return nil, "", nil
}

func (r accountRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.accounts, id)
	delete(r.s.hashes, id)
	delete(r.s.profiles, id)
	return nil
}

type userRepo struct{ s *store }

func (r userRepo) Create(_ context.Context, in domain.CreateUserProfileInput) (domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWrite {
		return domain.UserProfile{}, errors.New("db down")
	}
	p := domain.UserProfile{Account: r.s.accounts[in.ID], LastLoginAt: time.Now()}
	r.s.profiles[in.ID] = p
	return p, nil
}

func (r userRepo) FindByID(_ context.Context, id string) (*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, nil
}

func (r userRepo) FindAll(context.Context) ([]domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.UserProfile{}
	for _, p := range r.s.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r userRepo) Update(_ context.Context, id string, _ domain.UpdateUserProfileInput) (domain.UserProfile, error) {
	return r.s.profiles[id], nil
}

func (r userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.profiles, id)
	return nil
}

type recorder struct{ ok, failed int }

func (r *recorder) RecordProvisioning(success bool) {
	if success {
		r.ok++
	} else {
		r.failed++
	}
}

func newServices(s *store, rec *recorder) *Services {
	return NewServices(
		Adapters{Accounts: accountRepo{s}, Users: userRepo{s}, ProvisioningRecorder: rec},
		token.NewService("segredo", time.Hour, "http://localhost:3000"),
		logger.NewNopLogger(),
	)
}

func TestSignUp_ProvisionsProfile(t *testing.T) {
	s := newStore()
	rec := &recorder{}
	svc := newServices(s, rec)

	account, err := svc.Auth.SignUp(context.Background(), domain.SignUpInput{Name: "A", Email: "a@b.com", Password: "senha-forte"})
	require.NoError(t, err)

	profile, err := svc.Users.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "a@b.com", profile.Email)
	assert.Nil(t, profile.Role)
	assert.Equal(t, 1, rec.ok)

	session, err := svc.Auth.SignIn(context.Background(), domain.SignInInput{Email: "a@b.com", Password: "senha-forte"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, session.User.ID)
}

func TestSignUp_ProvisioningFailureLeavesNoAccount(t *testing.T) {
	s := newStore()
	s.failWrite = true
	rec := &recorder{}
	svc := newServices(s, rec)

	_, err := svc.Auth.SignUp(context.Background(), domain.SignUpInput{Name: "A", Email: "a@b.com", Password: "senha-forte"})

	require.Error(t, err)
	assert.Equal(t, apperror.KindDatabase, apperror.KindOf(err))
	assert.Empty(t, s.accounts)
	assert.Equal(t, 1, rec.failed)
}

func TestSignUp_DuplicateEmailIsConflict(t *testing.T) {
	s := newStore()
	svc := newServices(s, &recorder{})

	_, err := svc.Auth.SignUp(context.Background(), domain.SignUpInput{Name: "A", Email: "a@b.com", Password: "senha-forte"})
	require.NoError(t, err)

	_, err = svc.Auth.SignUp(context.Background(), domain.SignUpInput{Name: "B", Email: "a@b.com", Password: "outra-senha"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

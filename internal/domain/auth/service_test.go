package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"warelog/internal/core/apperror"
)

type memUserRepo struct {
	nextID int64
	users  map[string]*User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *User) error {
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, userID int64) (*User, error) {
	for _, u := range r.users {
		if u.ID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID)
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, apperror.NewNotFound("user", username)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Update(_ context.Context, user *User) error {
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, userID int64) error {
	for name, u := range r.users {
		if u.ID == userID {
			delete(r.users, name)
			return nil
		}
	}
	return apperror.NewNotFound("user", userID)
}

func (r *memUserRepo) List(_ context.Context, flt UserFilter) ([]User, int64, error) {
	var out []User
	for _, u := range r.users {
		if flt.Search != "" && !strings.Contains(u.Username, flt.Search) {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memAccessRepo struct {
	nextID int64
	grants map[int64]*WarehouseAccess

	// employee -> linked login account, mirrors the employees.user_id column
	employeeUser map[int64]int64
}

func newMemAccessRepo() *memAccessRepo {
	return &memAccessRepo{grants: map[int64]*WarehouseAccess{}, employeeUser: map[int64]int64{}}
}

func (r *memAccessRepo) Create(_ context.Context, access *WarehouseAccess) error {
	r.nextID++
	access.ID = r.nextID
	cp := *access
	r.grants[access.ID] = &cp
	return nil
}

func (r *memAccessRepo) GetByID(_ context.Context, id int64) (*WarehouseAccess, error) {
	g, ok := r.grants[id]
	if !ok {
		return nil, apperror.NewNotFound("warehouse access", id)
	}
	cp := *g
	return &cp, nil
}

func (r *memAccessRepo) Update(_ context.Context, access *WarehouseAccess) error {
	if _, ok := r.grants[access.ID]; !ok {
		return apperror.NewNotFound("warehouse access", access.ID)
	}
	cp := *access
	r.grants[access.ID] = &cp
	return nil
}

func (r *memAccessRepo) ListByEmployee(_ context.Context, employeeID int64) ([]WarehouseAccess, error) {
	var out []WarehouseAccess
	for _, g := range r.grants {
		if g.EmployeeID == employeeID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *memAccessRepo) ActiveWarehouseIDsByUser(_ context.Context, userID int64) ([]int64, error) {
	var out []int64
	for _, g := range r.grants {
		if !g.IsActive {
			continue
		}
		if r.employeeUser[g.EmployeeID] == userID {
			out = append(out, g.WarehouseID)
		}
	}
	return out, nil
}

func (r *memAccessRepo) FindActive(_ context.Context, employeeID, warehouseID int64) (*WarehouseAccess, error) {
	for _, g := range r.grants {
		if g.IsActive && g.EmployeeID == employeeID && g.WarehouseID == warehouseID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newAuthService() (*Service, *memUserRepo, *memAccessRepo) {
	users := newMemUserRepo()
	access := newMemAccessRepo()
	svc := NewService(users, access, passthroughTxManager{},
		NewJWTService(DefaultJWTConfig("test-secret")), DefaultServiceConfig())
	return svc, users, access
}

func register(t *testing.T, svc *Service, username string) *User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: username,
		Password: "correct horse",
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return user
}

func TestRegister_DefaultsToWorkerRole(t *testing.T) {
	svc, _, _ := newAuthService()

	user := register(t, svc, "jdoe")

	assert.NotZero(t, user.ID)
	assert.Equal(t, RoleWorker, user.UserRole)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct horse", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("correct horse")))
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing username", RegisterRequest{Password: "correct horse", Email: "a@b.c"}},
		{"missing email", RegisterRequest{Username: "jdoe", Password: "correct horse"}},
		{"short password", RegisterRequest{Username: "jdoe", Password: "short", Email: "a@b.c"}},
		{"unknown role", RegisterRequest{Username: "jdoe", Password: "correct horse", Email: "a@b.c", UserRole: "Boss"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthService()

	register(t, svc, "jdoe")
	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "jdoe",
		Password: "correct horse",
		Email:    "other@example.com",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))
}

func TestLogin_IssuesTokenWithWarehouseAccess(t *testing.T) {
	svc, _, access := newAuthService()
	user := register(t, svc, "jdoe")

	const employeeID = int64(7)
	access.employeeUser[employeeID] = user.ID
	_, err := svc.GrantWarehouseAccess(context.Background(), employeeID, 10)
	require.NoError(t, err)
	_, err = svc.GrantWarehouseAccess(context.Background(), employeeID, 20)
	require.NoError(t, err)

	pair, loggedIn, err := svc.Login(context.Background(), Credentials{Username: "jdoe", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotNil(t, loggedIn.LastLoginAt)

	claims, err := NewJWTService(DefaultJWTConfig("test-secret")).ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.ElementsMatch(t, []int64{10, 20}, claims.WarehouseIDs)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _ := newAuthService()
	register(t, svc, "jdoe")

	// unknown user and wrong password fail identically
	_, _, err := svc.Login(context.Background(), Credentials{Username: "nobody", Password: "correct horse"})
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))

	_, _, err = svc.Login(context.Background(), Credentials{Username: "jdoe", Password: "wrong"})
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, users, _ := newAuthService()
	user := register(t, svc, "jdoe")

	user.IsActive = false
	require.NoError(t, users.Update(context.Background(), user))

	_, _, err := svc.Login(context.Background(), Credentials{Username: "jdoe", Password: "correct horse"})
	assert.True(t, apperror.IsCode(err, apperror.CodeForbidden))
}

func TestWarehouseAccess_GrantRevokeCycle(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	grant, err := svc.GrantWarehouseAccess(ctx, 7, 10)
	require.NoError(t, err)
	assert.True(t, grant.IsActive)
	assert.WithinDuration(t, time.Now(), grant.AssignmentDate, 5*time.Second)

	// duplicate active grant is rejected
	_, err = svc.GrantWarehouseAccess(ctx, 7, 10)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))

	require.NoError(t, svc.RevokeWarehouseAccess(ctx, grant.ID))

	grants, err := svc.ListEmployeeAccess(ctx, 7)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.False(t, grants[0].IsActive)
	assert.NotNil(t, grants[0].RevocationDate)

	// revoking twice is a conflict, re-granting works
	err = svc.RevokeWarehouseAccess(ctx, grant.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))

	_, err = svc.GrantWarehouseAccess(ctx, 7, 10)
	assert.NoError(t, err)
}

package service

import (
	"context"
	"testing"
	"time"

	"garastore/internal/auth"
	"garastore/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestUserService(repo *MockUserRepository, queue *recordingQueue) (UserService, auth.TokenService) {
	tokens := auth.NewTokenService("test-secret", time.Hour, 3*time.Hour)
	return NewUserService(repo, tokens, queue, "https://shop.example.com/", 3*time.Hour, zerolog.Nop()), tokens
}

func storedUser(t *testing.T, email, password string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &model.User{ID: uuid.New(), Name: "Jane", Email: email, PasswordHash: hash}
}

func TestUserService_SignIn(t *testing.T) {
	ctx := context.Background()
	user := storedUser(t, "jane@example.com", "secret")

	tests := []struct {
		name      string
		email     string
		password  string
		stored    *model.User
		expectErr error
	}{
		{"Valid credentials", "jane@example.com", "secret", user, nil},
		{"Wrong password", "jane@example.com", "nope", user, model.ErrInvalidCredentials},
		{"Unknown email", "ghost@example.com", "secret", nil, model.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			svc, tokens := newTestUserService(repo, &recordingQueue{})

			if tt.stored == nil {
				repo.On("GetByEmail", ctx, tt.email).Return(nil, nil)
			} else {
				repo.On("GetByEmail", ctx, tt.email).Return(tt.stored, nil)
			}

			resp, err := svc.SignIn(ctx, &model.SignInRequest{Email: tt.email, Password: tt.password})
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, resp.ID)
			identity, err := tokens.Verify(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, user.ID, identity.UserID)
		})
	}
}

func TestUserService_SignUp(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc, _ := newTestUserService(repo, &recordingQueue{})

	repo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		ok, _ := auth.CheckPassword(u.PasswordHash, "secret")
		return u.Email == "new@example.com" && ok && !u.IsAdmin
	})).Return(nil)

	resp, err := svc.SignUp(ctx, &model.SignUpRequest{Name: "New", Email: "new@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Name)
	assert.NotEmpty(t, resp.Token)
	repo.AssertExpectations(t)
}

func TestUserService_SignUp_Validation(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestUserService(repo, &recordingQueue{})

	tests := []struct {
		name string
		req  model.SignUpRequest
	}{
		{"Missing name", model.SignUpRequest{Email: "a@example.com", Password: "x"}},
		{"Invalid email", model.SignUpRequest{Name: "A", Email: "not-an-email", Password: "x"}},
		{"Missing password", model.SignUpRequest{Name: "A", Email: "a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), &tt.req)
			de, ok := model.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, model.KindValidation, de.Kind)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_UpdateProfile_KeepsEmptyFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc, _ := newTestUserService(repo, &recordingQueue{})

	user := storedUser(t, "jane@example.com", "secret")
	oldHash := user.PasswordHash
	repo.On("GetByID", ctx, user.ID).Return(user, nil)
	repo.On("Update", ctx, user).Return(nil)

	resp, err := svc.UpdateProfile(ctx, &auth.Identity{UserID: user.ID}, &model.ProfileUpdateRequest{Name: "Janet"})
	require.NoError(t, err)
	assert.Equal(t, "Janet", resp.Name)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, oldHash, user.PasswordHash)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Seed admin is protected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestUserService(repo, &recordingQueue{})

		admin := &model.User{ID: uuid.New(), Email: model.SeedAdminEmail, IsAdmin: true}
		repo.On("GetByID", ctx, admin.ID).Return(admin, nil)

		err := svc.Delete(ctx, admin.ID)
		assert.ErrorIs(t, err, model.ErrCannotDeleteAdmin)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Regular user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestUserService(repo, &recordingQueue{})

		user := &model.User{ID: uuid.New(), Email: "user@example.com"}
		repo.On("GetByID", ctx, user.ID).Return(user, nil)
		repo.On("Delete", ctx, user.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, user.ID))
		repo.AssertExpectations(t)
	})

	t.Run("Unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestUserService(repo, &recordingQueue{})

		id := uuid.New()
		repo.On("GetByID", ctx, id).Return(nil, nil)

		assert.ErrorIs(t, svc.Delete(ctx, id), model.ErrUserNotFound)
	})
}

func TestUserService_Update_OverwritesRoles(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc, _ := newTestUserService(repo, &recordingQueue{})

	user := &model.User{ID: uuid.New(), Name: "Jane", Email: "jane@example.com", IsAdmin: true}
	repo.On("GetByID", ctx, user.ID).Return(user, nil)
	repo.On("Update", ctx, user).Return(nil)

	resp, err := svc.Update(ctx, user.ID, &model.UserUpdateRequest{IsSupplier: true})
	require.NoError(t, err)
	assert.Equal(t, "User Updated", resp.Message)
	assert.Equal(t, "Jane", resp.User.Name)
	assert.False(t, resp.User.IsAdmin)
	assert.True(t, resp.User.IsSupplier)
}

func TestUserService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	queue := &recordingQueue{}
	svc, _ := newTestUserService(repo, queue)

	user := storedUser(t, "jane@example.com", "old")
	repo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)
	repo.On("GetByID", ctx, user.ID).Return(user, nil)
	repo.On("Update", ctx, user).Return(nil)

	require.NoError(t, svc.ForgetPassword(ctx, &model.ForgetPasswordRequest{Email: "jane@example.com"}))
	require.NotNil(t, user.ResetToken)
	token := *user.ResetToken

	sent := queue.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Reset Password", sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "https://shop.example.com/reset-password/"+token)

	err := svc.ResetPassword(ctx, &model.ResetPasswordRequest{Token: "garbage", Password: "new"})
	assert.ErrorIs(t, err, model.ErrInvalidToken)

	require.NoError(t, svc.ResetPassword(ctx, &model.ResetPasswordRequest{Token: token, Password: "new"}))
	assert.Nil(t, user.ResetToken)
	ok, err := auth.CheckPassword(user.PasswordHash, "new")
	require.NoError(t, err)
	assert.True(t, ok)

	// The token is single use.
	err = svc.ResetPassword(ctx, &model.ResetPasswordRequest{Token: token, Password: "again"})
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUserService_ForgetPassword_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	queue := &recordingQueue{}
	svc, _ := newTestUserService(repo, queue)

	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

	err := svc.ForgetPassword(ctx, &model.ForgetPasswordRequest{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, model.ErrUserNotFound)
	assert.Empty(t, queue.sent())
}

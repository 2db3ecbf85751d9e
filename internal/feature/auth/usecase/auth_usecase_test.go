package usecase

import (
	"context"
	"errors"
	"testing"

	"movie_backend/internal/feature/auth/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

// FindByID is the mock implementation of the FindByID method.
func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockTokens implements both TokenIssuer and TokenVerifier.
type mockTokens struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
	VerifyFunc        func(token string) (uint, error)
}

func (m *mockTokens) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-jwt-token", nil
}

func (m *mockTokens) Verify(token string) (uint, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	return 0, errors.New("invalid token")
}

func newTestUsecase(repo UserRepository, tokens *mockTokens) *authUsecase {
	return NewAuthUsecase(repo, tokens, tokens)
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup hashes the password and issues a token", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				assert.NotEqual(t, "password123", user.Password, "password is not hashed")
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
				assert.Equal(t, "Neo", user.Name)
				user.ID = 7
				return nil
			},
		}
		tokens := &mockTokens{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				assert.Equal(t, uint(7), userID)
				assert.Equal(t, "test@example.com", email)
				return "signed", nil
			},
		}

		uc := newTestUsecase(mockRepo, tokens)
		token, err := uc.Signup(context.Background(), "test@example.com", "password123", "Neo")

		require.NoError(t, err)
		assert.Equal(t, "signed", token)
	})

	t.Run("short password is rejected before the store", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("Create should not be called")
				return nil
			},
		}

		uc := newTestUsecase(mockRepo, &mockTokens{})
		_, err := uc.Signup(context.Background(), "test@example.com", "short", "")

		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		uc := newTestUsecase(mockRepo, &mockTokens{})
		_, err := uc.Signup(context.Background(), "test@example.com", "password123", "")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return expectedErr
			},
		}

		uc := newTestUsecase(mockRepo, &mockTokens{})
		_, err := uc.Signup(context.Background(), "test@example.com", "password123", "")

		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("token generation failure", func(t *testing.T) {
		tokens := &mockTokens{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		uc := newTestUsecase(&mockUserRepository{}, tokens)
		_, err := uc.Signup(context.Background(), "test@example.com", "password123", "")

		assert.EqualError(t, err, "failed to generate token: failed to sign token")
	})
}

func TestAuthUsecase_Signin(t *testing.T) {
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	t.Run("successful signin", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		tokens := &mockTokens{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				assert.Equal(t, testUser.ID, userID)
				assert.Equal(t, testUser.Email, email)
				return "mock-jwt-token", nil
			},
		}

		uc := newTestUsecase(mockRepo, tokens)
		token, err := uc.Signin(context.Background(), "test@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
	})

	t.Run("user not found", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockTokens{})
		_, err := uc.Signin(context.Background(), "wrong@example.com", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("incorrect password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}

		uc := newTestUsecase(mockRepo, &mockTokens{})
		_, err := uc.Signin(context.Background(), "test@example.com", "wrong-password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store failure is not reported as bad credentials", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, errors.New("connection reset")
			},
		}

		uc := newTestUsecase(mockRepo, &mockTokens{})
		_, err := uc.Signin(context.Background(), "test@example.com", "password123")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("JWT generation failure", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}
		tokens := &mockTokens{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		uc := newTestUsecase(mockRepo, tokens)
		_, err := uc.Signin(context.Background(), "test@example.com", "password123")

		assert.EqualError(t, err, "failed to generate token: failed to sign token")
	})
}

func TestAuthUsecase_Authenticate(t *testing.T) {
	testUser := &entity.User{ID: 42, Email: "user@example.com"}

	validTokens := &mockTokens{
		VerifyFunc: func(token string) (uint, error) {
			if token == "good" {
				return 42, nil
			}
			return 0, errors.New("signature is invalid")
		},
	}

	t.Run("valid token resolves the user", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				assert.Equal(t, uint(42), id)
				return testUser, nil
			},
		}

		uc := newTestUsecase(mockRepo, validTokens)
		user, err := uc.Authenticate(context.Background(), "good")

		require.NoError(t, err)
		assert.Equal(t, testUser, user)
	})

	t.Run("empty token", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, validTokens)
		_, err := uc.Authenticate(context.Background(), "")

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("invalid token never reaches the store", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				t.Error("FindByID should not be called")
				return nil, nil
			},
		}

		uc := newTestUsecase(mockRepo, validTokens)
		_, err := uc.Authenticate(context.Background(), "forged")

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("user deleted after the token was issued", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return nil, ErrUserNotFound
			},
		}

		uc := newTestUsecase(mockRepo, validTokens)
		user, err := uc.Authenticate(context.Background(), "good")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		storeErr := errors.New("database down")
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return nil, storeErr
			},
		}

		uc := newTestUsecase(mockRepo, validTokens)
		_, err := uc.Authenticate(context.Background(), "good")

		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, ErrUnauthenticated)
	})
}

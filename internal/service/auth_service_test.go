package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
)

// mockUserRepository is a mock implementation of repository.UserRepository
type mockUserRepository struct {
	users      map[string]*domain.User
	emailIndex map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:      make(map[string]*domain.User),
		emailIndex: make(map[string]*domain.User),
	}
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := r.emailIndex[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	r.users[user.ID] = user
	r.emailIndex[user.Email] = user
	return nil
}

func (r *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.emailIndex[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *mockUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	users := make([]*domain.User, 0)
	for _, user := range r.users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	return users, nil
}

func testAuthConfig() *AuthServiceConfig {
	return &AuthServiceConfig{
		JWTSecret:         "test-secret-key",
		AccessTokenExpiry: time.Hour,
		BcryptCost:        bcrypt.MinCost,
	}
}

func TestAuthService_Register(t *testing.T) {
	userRepo := newMockUserRepository()
	svc := NewAuthService(userRepo, testAuthConfig())

	t.Run("successful registration", func(t *testing.T) {
		req := &dto.RegisterRequest{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "password123",
		}

		resp, err := svc.Register(context.Background(), req)
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		if resp.Token == "" {
			t.Error("Register() Token is empty")
		}
		if resp.User.Role != string(domain.RoleParticipant) {
			t.Errorf("Register() User.Role = %v, want %v", resp.User.Role, domain.RoleParticipant)
		}

		stored := userRepo.emailIndex[req.Email]
		if stored == nil {
			t.Fatal("Register() did not store the user")
		}
		if stored.PasswordHash == req.Password {
			t.Error("Register() stored the plaintext password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(req.Password)); err != nil {
			t.Errorf("stored hash does not match the password: %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := &dto.RegisterRequest{
			Name:     "Another User",
			Email:    "test@example.com",
			Password: "password456",
		}

		_, err := svc.Register(context.Background(), req)
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Errorf("Register() error = %v, want %v", err, domain.ErrEmailTaken)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	userRepo := newMockUserRepository()
	svc := NewAuthService(userRepo, testAuthConfig())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	testUser := &domain.User{
		ID:           "user-1",
		Name:         "Login Test",
		Email:        "login@example.com",
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleParticipant,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	userRepo.users[testUser.ID] = testUser
	userRepo.emailIndex[testUser.Email] = testUser

	t.Run("successful login", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "login@example.com",
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if resp.Token == "" {
			t.Error("Login() Token is empty")
		}
		if resp.User.ID != testUser.ID {
			t.Errorf("Login() User.ID = %v, want %v", resp.User.ID, testUser.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "login@example.com",
			Password: "wrong-password",
		})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want %v", err, domain.ErrInvalidCredentials)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want %v", err, domain.ErrInvalidCredentials)
		}
	})
}

func TestAuthService_CreateOrganizer(t *testing.T) {
	userRepo := newMockUserRepository()
	svc := NewAuthService(userRepo, testAuthConfig())

	user, err := svc.CreateOrganizer(context.Background(), &dto.CreateOrganizerRequest{
		Name:     "Concert Hall Inc",
		Email:    "organizer@example.com",
		Password: "organizer-secret",
	})
	if err != nil {
		t.Fatalf("CreateOrganizer() error = %v", err)
	}

	if user.Role != domain.RoleOrganizer {
		t.Errorf("CreateOrganizer() Role = %v, want %v", user.Role, domain.RoleOrganizer)
	}
	if user.PasswordHash == "organizer-secret" {
		t.Error("CreateOrganizer() stored the plaintext password")
	}
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
	"github.com/nvtimofeev/ticketly/pkg/middleware"
)

// stubAuthService implements service.AuthService with empty results
type stubAuthService struct{}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) CreateOrganizer(ctx context.Context, req *dto.CreateOrganizerRequest) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) ListOrganizers(ctx context.Context) ([]*domain.User, error) {
	return nil, nil
}

// stubEventService implements service.EventService with empty results
type stubEventService struct{}

func (s *stubEventService) Create(ctx context.Context, organizerID string, req *dto.CreateEventRequest) (*domain.Event, error) {
	return nil, nil
}

func (s *stubEventService) Cancel(ctx context.Context, actorID string, actorRole domain.Role, eventID string) error {
	return nil
}

func (s *stubEventService) ListActive(ctx context.Context) ([]*domain.Event, error) {
	return nil, nil
}

func (s *stubEventService) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return nil, nil
}

func (s *stubEventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return nil, nil
}

// stubVenueService implements service.VenueService with empty results
type stubVenueService struct{}

func (s *stubVenueService) Upsert(ctx context.Context, req *dto.UpsertVenueRequest) (*domain.Venue, error) {
	return nil, nil
}

func (s *stubVenueService) List(ctx context.Context) ([]*domain.Venue, error) {
	return nil, nil
}

func (s *stubVenueService) ListWithEvents(ctx context.Context) ([]*domain.Venue, error) {
	return nil, nil
}

// stubOrderService implements service.OrderService with empty results
type stubOrderService struct{}

func (s *stubOrderService) Create(ctx context.Context, participantID string, req *dto.CreateOrderRequest) (*domain.Order, error) {
	return nil, nil
}

func (s *stubOrderService) Cancel(ctx context.Context, actorID string, actorRole domain.Role, orderID string) (*domain.Order, error) {
	return nil, nil
}

func (s *stubOrderService) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Order, error) {
	return nil, nil
}

// identityAs fakes an authenticated user on the request context
func identityAs(userID string, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyUserRole, string(role))
		c.Next()
	}
}

func surfaceRouter(role domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSurfaceHandler(&stubAuthService{}, &stubEventService{}, &stubVenueService{}, &stubOrderService{})

	router := gin.New()
	router.Use(identityAs("user-1", role))
	router.GET("/admin", h.Admin)
	router.GET("/organizer", h.Organizer)
	router.GET("/participant", h.Participant)
	return router
}

func TestSurfaceRoleRedirects(t *testing.T) {
	tests := []struct {
		role         domain.Role
		path         string
		wantStatus   int
		wantLocation string
	}{
		{domain.RoleAdmin, "/admin", http.StatusOK, ""},
		{domain.RoleAdmin, "/organizer", http.StatusTemporaryRedirect, "/admin"},
		{domain.RoleAdmin, "/participant", http.StatusTemporaryRedirect, "/admin"},
		{domain.RoleOrganizer, "/organizer", http.StatusOK, ""},
		{domain.RoleOrganizer, "/admin", http.StatusTemporaryRedirect, "/organizer"},
		{domain.RoleOrganizer, "/participant", http.StatusTemporaryRedirect, "/organizer"},
		{domain.RoleParticipant, "/participant", http.StatusOK, ""},
		{domain.RoleParticipant, "/admin", http.StatusTemporaryRedirect, "/participant"},
		{domain.RoleParticipant, "/organizer", http.StatusTemporaryRedirect, "/participant"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" visits "+tt.path, func(t *testing.T) {
			router := surfaceRouter(tt.role)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" {
				if got := w.Header().Get("Location"); got != tt.wantLocation {
					t.Errorf("Location = %q, want %q", got, tt.wantLocation)
				}
			}
		})
	}
}

func TestSurfaceUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSurfaceHandler(&stubAuthService{}, &stubEventService{}, &stubVenueService{}, &stubOrderService{})

	router := gin.New()
	router.GET("/participant", h.Participant)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/participant", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

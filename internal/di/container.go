package di

import (
	"github.com/nvtimofeev/ticketly/internal/gateway"
	"github.com/nvtimofeev/ticketly/internal/handler"
	"github.com/nvtimofeev/ticketly/internal/repository"
	"github.com/nvtimofeev/ticketly/internal/service"
	"github.com/nvtimofeev/ticketly/pkg/config"
	"github.com/nvtimofeev/ticketly/pkg/database"
	"github.com/nvtimofeev/ticketly/pkg/redisclient"
)

// Container holds all dependencies for the service
type Container struct {
	// Infrastructure
	DB      *database.PostgresDB
	Redis   *redisclient.Client
	Gateway gateway.PaymentGateway

	// Repositories
	UserRepo  repository.UserRepository
	VenueRepo repository.VenueRepository
	EventRepo repository.EventRepository
	OrderRepo repository.OrderRepository

	// Services
	AuthService  service.AuthService
	VenueService service.VenueService
	EventService service.EventService
	OrderService service.OrderService

	// Handlers
	HealthHandler    *handler.HealthHandler
	AuthHandler      *handler.AuthHandler
	SurfaceHandler   *handler.SurfaceHandler
	VenueHandler     *handler.VenueHandler
	EventHandler     *handler.EventHandler
	OrderHandler     *handler.OrderHandler
	OrganizerHandler *handler.OrganizerHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB     *database.PostgresDB
	Redis  *redisclient.Client
	Config *config.Config
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) (*Container, error) {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	paymentGateway, err := gateway.NewPaymentGateway(cfg.Config.Payment.Gateway, cfg.Config.Payment.StripeSecretKey)
	if err != nil {
		return nil, err
	}
	c.Gateway = paymentGateway

	// Initialize repositories
	c.UserRepo = repository.NewPostgresUserRepository(c.DB)
	c.VenueRepo = repository.NewPostgresVenueRepository(c.DB)
	c.EventRepo = repository.NewPostgresEventRepository(c.DB)
	c.OrderRepo = repository.NewPostgresOrderRepository(c.DB)

	// Initialize services
	c.AuthService = service.NewAuthService(c.UserRepo, &service.AuthServiceConfig{
		JWTSecret:         cfg.Config.JWT.Secret,
		AccessTokenExpiry: cfg.Config.JWT.AccessTokenTTL,
	})
	c.VenueService = service.NewVenueService(c.VenueRepo)
	c.EventService = service.NewEventService(c.EventRepo, c.VenueRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.EventRepo, c.VenueRepo, c.Gateway)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.SurfaceHandler = handler.NewSurfaceHandler(c.AuthService, c.EventService, c.VenueService, c.OrderService)
	c.VenueHandler = handler.NewVenueHandler(c.VenueService)
	c.EventHandler = handler.NewEventHandler(c.EventService)
	c.OrderHandler = handler.NewOrderHandler(c.OrderService)
	c.OrganizerHandler = handler.NewOrganizerHandler(c.AuthService)

	return c, nil
}

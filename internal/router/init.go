package router

import (
	"github.com/eventapp/server/internal/application"
	"github.com/eventapp/server/internal/container"
	"github.com/eventapp/server/internal/domain/repository"
	pginfra "github.com/eventapp/server/internal/infrastructure/postgres"
	handlers "github.com/eventapp/server/internal/interface/http"
	"github.com/eventapp/server/internal/router/modules"
)

// Deps holds the repositories, services and handlers shared by the feature
// modules. Repositories are built once against the process-scoped pool.
type Deps struct {
	Users  repository.UserRepository
	Events repository.EventRepository

	UserService  *application.UserService
	EventService *application.EventService

	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Event    *handlers.EventHandler
	Upload   *handlers.UploadHandler
	Telegram *handlers.TelegramHandler
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(container.GetPGPool())
	events := pginfra.NewEventRepository(container.GetPGPool())

	userSvc := application.NewUserService(users, container.GetJWT(), container.GetRabbitPub(), logger, cfg)
	eventSvc := application.NewEventService(events, container.GetES(), cfg.ESEventsIndex, logger)

	return Deps{
		Users:  users,
		Events: events,

		UserService:  userSvc,
		EventService: eventSvc,

		Auth:     handlers.NewAuthHandler(userSvc, logger),
		User:     handlers.NewUserHandler(userSvc, logger),
		Event:    handlers.NewEventHandler(eventSvc, logger),
		Upload:   handlers.NewUploadHandler(container.GetGCS(), cfg.GCSBucket, logger),
		Telegram: handlers.NewTelegramHandler(userSvc, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(deps.Auth, container.GetJWT()))
	r.Add(modules.NewUserModule(deps.User, container.GetJWT()))
	r.Add(modules.NewEventModule(deps.Event, deps.Events, container.GetJWT()))
	r.Add(modules.NewUploadModule(deps.Upload, container.GetJWT()))
	r.Add(modules.NewTelegramModule(deps.Telegram))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

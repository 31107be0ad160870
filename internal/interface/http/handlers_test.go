package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/eventapp/server/config"
	"github.com/eventapp/server/internal/application"
	"github.com/eventapp/server/internal/infrastructure/memory"
	"github.com/eventapp/server/internal/interface/middleware"
	"github.com/eventapp/server/pkg/helpers"
	"github.com/eventapp/server/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	m.Run()
}

type testEnv struct {
	engine *gin.Engine
	users  *memory.UserRepository
	events *memory.EventRepository

	userSvc  *application.UserService
	eventSvc *application.EventService
	jwt      *helpers.JWTManager
	cfg      *config.Config
}

// newTestEnv wires the handlers against in-memory repositories with the same
// route layout the router modules use, minus the Redis rate limiters.
func newTestEnv() *testEnv {
	cfg := &config.Config{
		FrontendURL:        "http://localhost:3000",
		ResetPasswordURL:   "http://localhost:3000/reset-password",
		VerifyEmailURL:     "http://localhost:3000/verify-email",
		TelegramBotToken:   "12345:testtoken",
		TelegramInitMaxAge: time.Hour,
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := memory.NewUserRepository()
	events := memory.NewEventRepository()
	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TokenTTL: time.Hour}

	userSvc := application.NewUserService(users, jwt, nil, logger, cfg)
	eventSvc := application.NewEventService(events, nil, "", logger)

	authH := NewAuthHandler(userSvc, logger)
	userH := NewUserHandler(userSvc, logger)
	eventH := NewEventHandler(eventSvc, logger)
	uploadH := NewUploadHandler(nil, "", logger)
	telegramH := NewTelegramHandler(userSvc, logger)

	engine := gin.New()
	api := engine.Group("/api")

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/forgot-password", authH.ForgotPassword)
	api.POST("/auth/reset-password", authH.ResetPassword)
	api.POST("/auth/verify-email", authH.VerifyEmail)

	user := api.Group("/user")
	user.Use(middleware.Auth(jwt))
	user.GET("/profile", userH.GetProfile)
	user.PUT("/profile", userH.UpdateProfile)

	api.GET("/events", eventH.List)
	api.GET("/events/search", eventH.Search)
	api.GET("/events/:id", eventH.Get)

	ev := api.Group("/events")
	ev.Use(middleware.Auth(jwt))
	ev.POST("", eventH.Create)
	owner := middleware.RequireOwner(middleware.ResourceEvent, events)
	ev.PUT("/:id", owner, eventH.Update)
	ev.DELETE("/:id", owner, eventH.Delete)

	up := api.Group("/")
	up.Use(middleware.Auth(jwt))
	up.POST("/upload", uploadH.Upload)

	api.POST("/telegram/link", telegramH.Link)

	return &testEnv{
		engine:   engine,
		users:    users,
		events:   events,
		userSvc:  userSvc,
		eventSvc: eventSvc,
		jwt:      jwt,
		cfg:      cfg,
	}
}

type envelope struct {
	Status  int            `json:"status"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   any            `json:"error"`
}

type listEnvelope struct {
	Success bool             `json:"success"`
	Data    []map[string]any `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// register creates an account through the HTTP surface and returns the user
// id and session token.
func (e *testEnv) register(t *testing.T, name, email, password string) (id, token string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decode(t, w)
	user, ok := env.Data["user"].(map[string]any)
	require.True(t, ok)
	return user["id"].(string), env.Data["token"].(string)
}

func (e *testEnv) createEvent(t *testing.T, token string, title string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/events", token, gin.H{
		"title":    title,
		"date":     "2026-10-01",
		"time":     "19:00",
		"location": "Jakarta",
		"format":   "offline",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decode(t, w)
	return env.Data["id"].(string)
}

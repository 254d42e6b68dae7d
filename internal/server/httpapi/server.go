// Package httpapi exposes the card service over HTTP: JSON card CRUD, an
// admin token endpoint, an image rendering endpoint and QR codes for share
// links.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/unbox-app/unbox/internal/logging"
	"github.com/unbox-app/unbox/internal/models"
	"github.com/unbox-app/unbox/internal/server/auth"
)

// CardAPI is the slice of the card service the handlers need.
type CardAPI interface {
	Create(ctx context.Context, in *models.CreateCardInput) (*models.GreetingCard, error)
	Load(ctx context.Context, id string) (*models.GreetingCard, error)
	Get(ctx context.Context, id string) (*models.GreetingCard, error)
	Delete(ctx context.Context, id string) error
}

// Config carries the handler-level settings.
type Config struct {
	// PublicBaseURL is the externally reachable origin used to build share
	// links, e.g. "https://cards.example.com".
	PublicBaseURL string
	// JWTSecret signs admin tokens.
	JWTSecret []byte
	// AdminPasswordHash is the argon2id hash the token endpoint checks
	// against.
	AdminPasswordHash string
	// TokenTTL bounds admin token validity.
	TokenTTL time.Duration
}

// Server is the HTTP front of the card service.
type Server struct {
	cards  CardAPI
	cfg    Config
	logger logging.Logger
	router *mux.Router
}

// NewServer wires the routes and returns a ready-to-serve handler.
func NewServer(cards CardAPI, cfg Config, logger logging.Logger) *Server {
	s := &Server{
		cards:  cards,
		cfg:    cfg,
		logger: logger.With("component", "httpapi"),
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/token", s.handleToken).Methods(http.MethodPost)

	api.Handle("/cards", s.requireAuth(http.HandlerFunc(s.handleCreateCard))).Methods(http.MethodPost)
	api.HandleFunc("/cards/{id}", s.handleGetCard).Methods(http.MethodGet)
	api.Handle("/cards/{id}", s.requireAuth(http.HandlerFunc(s.handleDeleteCard))).Methods(http.MethodDelete)
	api.HandleFunc("/cards/{id}/qr", s.handleCardQR).Methods(http.MethodGet)

	api.Handle("/images", s.requireAuth(http.HandlerFunc(s.handleRenderImage))).Methods(http.MethodPost)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requireAuth rejects requests without a valid admin bearer token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, err := auth.GetSubjectFromToken(token, s.cfg.JWTSecret); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ShareURL builds the link a recipient opens for a card.
func (s *Server) ShareURL(cardID string) string {
	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/c/" + cardID
}

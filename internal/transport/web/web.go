package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/catalog"
	"github.com/avstrong/lodgix/internal/favorite"
	"github.com/avstrong/lodgix/internal/logger"
)

type Server struct {
	srv      *http.Server
	router   *chi.Mux
	l        *logger.Logger
	conf     Conf
	bManager *booking.Manager
	hotels   *catalog.Manager
	fav      *favorite.Manager
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	MaxUploadBytes    int64
}

func New(ctx context.Context, conf Conf, bookingManager *booking.Manager, hotels *catalog.Manager, fav *favorite.Manager) (*Server, error) {
	router := chi.NewRouter()

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           router,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:      srv,
		router:   router,
		l:        conf.L.With("web"),
		conf:     conf,
		bManager: bookingManager,
		hotels:   hotels,
		fav:      fav,
	}

	server.addRoutes(router)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}

func (s *Server) Handler() http.Handler {
	return s.router
}

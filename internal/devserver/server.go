// Package devserver is an in-memory implementation of the sales API used
// for local development and as the far end of integration tests.
//
// It speaks the same wire format as the production backend: bearer tokens,
// {"detail": ...} error bodies and 422 validation arrays. AI endpoints answer
// deterministically from the stored data instead of calling a model.
package devserver

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/sales-intelligence/internal/config"
	"go.uber.org/zap"
)

var errEmailTaken = errors.New("email already registered")

// Server holds the dev backend state. Routes is safe for concurrent use.
type Server struct {
	cfg    config.DevServerConfig
	logger *zap.Logger
	tokens *TokenIssuer
	store  *store
	chats  *conversations
	now    func() time.Time

	latencyMu sync.RWMutex
	latency   map[string]time.Duration
}

// Option configures a Server
type Option func(*Server)

// WithClock replaces time.Now for timestamps and token expiry
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(cfg config.DevServerConfig, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		chats:   newConversations(),
		latency: make(map[string]time.Duration),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = newStore(s.now)
	s.tokens = NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTLDuration())
	s.tokens.now = s.now
	return s
}

// SetLatency delays every request matching method and path (relative to
// /api, e.g. "/dashboard/kpis") by d. A zero d removes the delay.
func (s *Server) SetLatency(method, path string, d time.Duration) {
	key := latencyKey(method, "/api/"+strings.TrimLeft(path, "/"))
	s.latencyMu.Lock()
	defer s.latencyMu.Unlock()
	if d <= 0 {
		delete(s.latency, key)
		return
	}
	s.latency[key] = d
}

func (s *Server) latencyFor(method, path string) time.Duration {
	s.latencyMu.RLock()
	defer s.latencyMu.RUnlock()
	return s.latency[latencyKey(method, path)]
}

func latencyKey(method, path string) string {
	return strings.ToUpper(method) + " " + strings.TrimRight(path, "/")
}

// DisableUser marks an account inactive; its tokens are refused with 403
func (s *Server) DisableUser(id int64) bool {
	return s.store.setActive(id, false)
}

// Routes returns the HTTP handler serving the API under /api
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(recovery(s.logger))
	r.Use(logging(s.logger))
	r.Use(corsHandler(s.cfg.AllowedOrigins))
	r.Use(rateLimit(s.cfg.RateLimitPerMinute))
	r.Use(s.delay)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Post("/auth/register", s.register)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/auth/me", s.me)

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", s.listLeads)
				r.Post("/", s.createLead)
				r.Post("/upload-csv", s.uploadLeadsCSV)
				r.Get("/{id}", s.getLead)
				r.Put("/{id}", s.updateLead)
				r.Delete("/{id}", s.deleteLead)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", s.listCustomers)
				r.Post("/", s.createCustomer)
				r.Post("/convert-lead/{id}", s.convertLead)
				r.Get("/{id}", s.getCustomer)
				r.Put("/{id}", s.updateCustomer)
				r.Delete("/{id}", s.deleteCustomer)
			})

			r.Route("/campaigns", func(r chi.Router) {
				r.Get("/", s.listCampaigns)
				r.Get("/{id}", s.getCampaign)
				r.Group(func(r chi.Router) {
					r.Use(requireRole(roleAdmin, roleMarketing))
					r.Post("/", s.createCampaign)
					r.Put("/{id}", s.updateCampaign)
					r.Post("/{id}/update-metrics", s.updateCampaignMetrics)
				})
				r.With(requireRole(roleAdmin)).Delete("/{id}", s.deleteCampaign)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", s.listSales)
				r.Post("/", s.createSale)
				r.Get("/{id}", s.getSale)
				r.Put("/{id}", s.updateSale)
				r.Delete("/{id}", s.deleteSale)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/kpis", s.kpis)
				r.Get("/revenue-over-time", s.revenueOverTime)
				r.Get("/lead-funnel", s.leadFunnel)
				r.Get("/lead-sources", s.leadSources)
				r.Get("/campaign-performance", s.campaignPerformance)
				r.Get("/sales-by-rep", s.salesByRep)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/score-lead", s.scoreLead)
				r.Post("/score-leads-batch", s.scoreLeadsBatch)
				r.Post("/chat", s.chat)
				r.Post("/generate-content", s.generateContent)
				r.Post("/insights", s.insights)
				r.Get("/insight-types", s.insightTypes)
			})
		})
	})

	return r
}

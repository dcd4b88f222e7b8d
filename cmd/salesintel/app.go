package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/straye-as/sales-intelligence/internal/apiclient"
	"github.com/straye-as/sales-intelligence/internal/config"
	"github.com/straye-as/sales-intelligence/internal/logger"
	"github.com/straye-as/sales-intelligence/internal/service"
	"github.com/straye-as/sales-intelligence/internal/session"
	"github.com/straye-as/sales-intelligence/internal/workflow"
	"go.uber.org/zap"
)

// app holds everything a command needs, built once per invocation
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	session *session.Store
	client  *apiclient.Client

	auth      *service.AuthService
	leads     *service.LeadService
	customers *service.CustomerService
	campaigns *service.CampaignService
	sales     *service.SalesService
	dashboard *service.DashboardService

	chat     *workflow.Chat
	content  *workflow.Content
	insights *workflow.Insights

	in  io.Reader
	out io.Writer

	closeSession func() error
}

// loadConfig layers the global flags over file and environment configuration
func loadConfig(global *pflag.FlagSet) (*config.Config, error) {
	v, err := config.NewViper()
	if err != nil {
		return nil, err
	}
	bindings := map[string]string{
		"api.baseURL":   "api-url",
		"logging.level": "log-level",
		"session.path":  "session",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, global.Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		return nil, err
	}
	// An explicit flag beats the SALESINTEL_API_URL deployment override
	if global.Changed("api-url") {
		url, _ := global.GetString("api-url")
		cfg.API.BaseURL = strings.TrimRight(url, "/")
	}
	return cfg, nil
}

func newApp(ctx context.Context, global *pflag.FlagSet, in io.Reader, out io.Writer) (*app, error) {
	cfg, err := loadConfig(global)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, closeSession, err := session.Open(&cfg.Session, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	if err := store.Load(ctx); err != nil {
		_ = closeSession()
		return nil, err
	}

	client := apiclient.New(cfg.API.BaseURL, store, log,
		apiclient.WithTimeout(cfg.API.TimeoutDuration()),
		apiclient.WithUserAgent(cfg.API.UserAgent),
	)
	aiTimeout := cfg.API.AITimeoutDuration()

	log.Debug("client configured",
		zap.String("base_url", cfg.API.BaseURL),
		zap.String("session_backend", cfg.Session.Backend),
	)

	return &app{
		cfg:     cfg,
		log:     log,
		session: store,
		client:  client,

		auth:      service.NewAuthService(client, store, log),
		leads:     service.NewLeadService(client, workflow.NewScoring(client, aiTimeout, log, nil), log),
		customers: service.NewCustomerService(client, log),
		campaigns: service.NewCampaignService(client, log),
		sales:     service.NewSalesService(client, log),
		dashboard: service.NewDashboardService(client, log),

		chat:     workflow.NewChat(client, aiTimeout, log),
		content:  workflow.NewContent(client, aiTimeout, log, nil),
		insights: workflow.NewInsights(client, aiTimeout, log, nil),

		in:  in,
		out: out,

		closeSession: closeSession,
	}, nil
}

func (a *app) close() {
	if err := a.closeSession(); err != nil {
		a.log.Warn("failed to close session store", zap.Error(err))
	}
	_ = a.log.Sync()
}

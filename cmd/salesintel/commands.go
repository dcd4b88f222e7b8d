package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/straye-as/sales-intelligence/internal/analytics"
	"github.com/straye-as/sales-intelligence/internal/apiclient"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/straye-as/sales-intelligence/internal/jobs"
	"github.com/straye-as/sales-intelligence/internal/service"
	"github.com/straye-as/sales-intelligence/internal/workflow"
	"go.uber.org/zap"
)

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":        {"log in and remember the session", runLogin},
	"register":     {"create an account and log in", runRegister},
	"logout":       {"forget the stored session", runLogout},
	"whoami":       {"show the logged in user", runWhoami},
	"leads":        {"list leads", runLeads},
	"customers":    {"list customers", runCustomers},
	"campaigns":    {"list campaigns", runCampaigns},
	"sales":        {"list deals and the pipeline", runSales},
	"dashboard":    {"show KPIs and breakdowns", runDashboard},
	"score":        {"score a lead with AI", runScore},
	"chat":         {"ask questions about your data", runChat},
	"content":      {"generate marketing copy", runContent},
	"insights":     {"generate an AI insight report", runInsights},
	"import-leads": {"upload leads from a CSV file", runImportLeads},
	"convert-lead": {"convert a lead into a customer", runConvertLead},
}

// parseFlags parses a command's flags. done is true when help was printed.
func parseFlags(a *app, fs *pflag.FlagSet, args []string) (done bool, err error) {
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

func newFlags(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

func parseID(fs *pflag.FlagSet, what string) (int64, error) {
	if fs.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one %s id", what)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, fs.Arg(0))
	}
	return id, nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	password := fs.String("password", "", "account password (default $SALESINTEL_PASSWORD, else read from stdin)")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: salesintel login <email> [--password PASSWORD]")
	}

	pw := *password
	if pw == "" {
		pw = os.Getenv("SALESINTEL_PASSWORD")
	}
	if pw == "" {
		fmt.Fprint(a.out, "Password: ")
		line, err := readLine(a.in)
		if err != nil {
			return err
		}
		pw = line
	}

	user, err := a.auth.Login(ctx, fs.Arg(0), pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.FullName, user.Role)
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "full name")
	role := fs.String("role", string(domain.UserRoleSales), "admin, sales or marketing")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, domain.RegisterRequest{
		Email:    *email,
		Password: *password,
		FullName: *name,
		Role:     domain.UserRole(*role),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered and logged in as %s (%s)\n", user.FullName, user.Role)
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func runWhoami(ctx context.Context, a *app, _ []string) error {
	user, err := a.auth.Whoami(ctx)
	if err != nil {
		return err
	}
	t := newTable(a.out)
	t.row("ID", fmt.Sprint(user.ID))
	t.row("Name", user.FullName)
	t.row("Email", user.Email)
	t.row("Role", string(user.Role))
	t.row("Active", strconv.FormatBool(user.IsActive))
	return t.flush()
}

func runLeads(ctx context.Context, a *app, args []string) error {
	fs := newFlags("leads")
	status := fs.String("status", "", "show only leads in this status")
	search := fs.String("search", "", "match company, contact or email")
	source := fs.String("source", "", "server-side source filter")
	industry := fs.String("industry", "", "server-side industry filter")
	breakdown := fs.Bool("breakdown", false, "also show status and source shares")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}
	if *status != "" {
		if _, err := domain.ParseLeadStatus(*status); err != nil {
			return err
		}
	}

	a.leads.SetQuery(domain.LeadFilter{Source: domain.LeadSource(*source), Industry: *industry})
	if err := a.leads.Refresh(ctx); err != nil {
		return err
	}
	a.leads.SetStatus(*status)
	a.leads.SetSearch(*search)

	if err := renderLeads(a.out, a.leads.Items(), len(a.leads.All())); err != nil {
		return err
	}
	if !*breakdown {
		return nil
	}
	if err := renderShares(a.out, "By status", a.leads.Funnel()); err != nil {
		return err
	}
	return renderShares(a.out, "By source", a.leads.Sources())
}

func runCustomers(ctx context.Context, a *app, args []string) error {
	fs := newFlags("customers")
	status := fs.String("status", "", "active, inactive or churned")
	search := fs.String("search", "", "match company, contact or email")
	industry := fs.String("industry", "", "server-side industry filter")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}
	if *status != "" {
		if _, err := domain.ParseCustomerStatus(*status); err != nil {
			return err
		}
	}

	a.customers.SetQuery(domain.CustomerFilter{Industry: *industry})
	if err := a.customers.Refresh(ctx); err != nil {
		return err
	}
	a.customers.SetStatus(*status)
	a.customers.SetSearch(*search)
	return renderCustomers(a.out, a.customers.Items(), a.customers.Summary())
}

func runCampaigns(ctx context.Context, a *app, args []string) error {
	fs := newFlags("campaigns")
	status := fs.String("status", "", "draft, active, paused, completed or cancelled")
	search := fs.String("search", "", "match campaign name")
	campaignType := fs.String("type", "", "server-side campaign type filter")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}
	if *status != "" {
		if _, err := domain.ParseCampaignStatus(*status); err != nil {
			return err
		}
	}

	a.campaigns.SetQuery(domain.CampaignFilter{CampaignType: domain.CampaignType(*campaignType)})
	if err := a.campaigns.Refresh(ctx); err != nil {
		return err
	}
	a.campaigns.SetStatus(*status)
	a.campaigns.SetSearch(*search)
	return renderCampaigns(a.out, a.campaigns.Cards(), a.campaigns.Summary())
}

func runSales(ctx context.Context, a *app, args []string) error {
	fs := newFlags("sales")
	stage := fs.String("stage", "", "show only deals in this stage")
	search := fs.String("search", "", "match deal name")
	customer := fs.Int64("customer", 0, "server-side customer id filter")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}
	if *stage != "" {
		if _, err := domain.ParseDealStage(*stage); err != nil {
			return err
		}
	}

	a.sales.SetQuery(domain.SalesFilter{CustomerID: *customer})
	if err := a.sales.Refresh(ctx); err != nil {
		return err
	}
	a.sales.SetStatus(*stage)
	a.sales.SetSearch(*search)
	return renderSales(a.out, a.sales.Items(), a.sales.Pipeline(), a.sales.ByRep())
}

func runDashboard(ctx context.Context, a *app, args []string) error {
	fs := newFlags("dashboard")
	months := fs.Int("months", service.DefaultRevenueMonths, "revenue window in months")
	watch := fs.String("watch", "", `refresh on a cron schedule, e.g. "@every 30s"`)
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}
	a.dashboard.SetRevenueMonths(*months)

	if *watch == "" {
		d, err := a.dashboard.Load(ctx)
		if errors.Is(err, service.ErrNotAuthenticated) {
			return err
		}
		return renderDashboard(a.out, d)
	}
	return watchDashboard(ctx, a, *watch)
}

// watchDashboard reloads the dashboard on schedule until interrupted or the
// session is rejected
func watchDashboard(ctx context.Context, a *app, cronExpr string) error {
	render := func(d *service.Dashboard, err error) {
		if errors.Is(err, service.ErrNotAuthenticated) {
			return
		}
		fmt.Fprintln(a.out, strings.Repeat("-", 60))
		if err := renderDashboard(a.out, d); err != nil {
			a.log.Warn("failed to render dashboard", zap.Error(err))
		}
	}

	scheduler := jobs.NewScheduler(a.log)
	job := jobs.NewDashboardRefreshJob(a.dashboard, render, a.log, a.cfg.API.TimeoutDuration())
	if err := jobs.RegisterDashboardRefreshJob(scheduler, job, cronExpr, true); err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-job.Done():
		return err
	}
}

func runScore(ctx context.Context, a *app, args []string) error {
	fs := newFlags("score")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}
	id, err := parseID(fs, "lead")
	if err != nil {
		return err
	}

	result, err := a.leads.Score(ctx, id)
	if result == nil {
		return err
	}
	if err != nil {
		a.log.Warn("lead list not refreshed after scoring", zap.Error(err))
	}
	return renderScore(a.out, result)
}

// runChat is a line-oriented REPL over one conversation
func runChat(ctx context.Context, a *app, _ []string) error {
	fmt.Fprintln(a.out, "Ask a question about your sales data. /reset starts over, /quit exits.")
	fmt.Fprintln(a.out, "\nTry:")
	for _, q := range workflow.SuggestedQuestions {
		fmt.Fprintf(a.out, "  %s\n", q)
	}

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			a.chat.Reset()
			fmt.Fprintln(a.out, "New conversation")
			continue
		}

		turn, err := a.chat.Send(ctx, line)
		if err != nil {
			if errors.Is(err, workflow.ErrValidation) {
				continue
			}
			return err
		}
		if turn.Failed && apiclient.IsAuthError(turn.Cause) {
			return fmt.Errorf("%w: %w", service.ErrNotAuthenticated, turn.Cause)
		}
		if err := renderTurn(a.out, turn); err != nil {
			return err
		}
	}
}

func runContent(ctx context.Context, a *app, args []string) error {
	fs := newFlags("content")
	audience := fs.String("audience", "", "who the copy is for (required)")
	industry := fs.String("industry", "", "target industry (required)")
	tone := fs.String("tone", "", "professional, casual, friendly, formal or persuasive")
	platform := fs.String("platform", "", "linkedin, email, twitter or blog")
	topic := fs.String("topic", "", "what the copy is about")
	points := fs.StringSlice("point", nil, "key point to mention, repeatable")
	maxLength := fs.Int("max-length", 0, "maximum characters per variation")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}

	params := workflow.ContentParams{
		TargetAudience: *audience,
		Industry:       *industry,
		Tone:           *tone,
		Platform:       *platform,
		Topic:          *topic,
		KeyPoints:      *points,
	}
	if *maxLength > 0 {
		params.MaxLength = maxLength
	}

	result, err := a.content.Generate(ctx, params)
	if err != nil {
		return err
	}
	return renderContent(a.out, result)
}

func runInsights(ctx context.Context, a *app, args []string) error {
	fs := newFlags("insights")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}

	if fs.NArg() == 0 {
		types, err := a.client.InsightTypes(ctx)
		if err != nil {
			if apiclient.IsAuthError(err) {
				return err
			}
			a.log.Warn("failed to fetch insight types, showing built-in list", zap.Error(err))
			types = domain.BuiltinInsightTypes
		}
		t := newTable(a.out)
		for _, info := range types {
			t.row(string(info.ID), info.Name, info.Description)
		}
		return t.flush()
	}

	result, err := a.insights.Generate(ctx, domain.InsightType(fs.Arg(0)))
	if err != nil {
		return err
	}
	return renderInsight(a.out, result)
}

func runImportLeads(ctx context.Context, a *app, args []string) error {
	fs := newFlags("import-leads")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: salesintel import-leads <file.csv>")
	}

	path := fs.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	result, err := a.leads.Import(ctx, filepath.Base(path), f)
	if result == nil {
		return err
	}
	if err != nil {
		a.log.Warn("lead list not refreshed after import", zap.Error(err))
	}
	return renderImport(a.out, result)
}

func runConvertLead(ctx context.Context, a *app, args []string) error {
	fs := newFlags("convert-lead")
	if done, err := parseFlags(a, fs, args); done || err != nil {
		return err
	}
	id, err := parseID(fs, "lead")
	if err != nil {
		return err
	}

	customer, err := a.leads.Convert(ctx, id)
	if customer == nil {
		return err
	}
	if err != nil {
		a.log.Warn("lead list not refreshed after conversion", zap.Error(err))
	}
	fmt.Fprintf(a.out, "Lead %d is now customer %d (%s), lifetime value %s\n",
		id, customer.ID, customer.CompanyName, analytics.Currency(customer.LifetimeValue))
	return nil
}

package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/straye-as/sales-intelligence/internal/config"
	"github.com/straye-as/sales-intelligence/internal/devserver"
	"github.com/straye-as/sales-intelligence/internal/service"
	"github.com/straye-as/sales-intelligence/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cli struct {
	baseURL     string
	sessionPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	srv := devserver.New(config.DevServerConfig{JWTSecret: "test-secret", TokenTTL: 60}, zap.NewNop())
	require.NoError(t, srv.SeedDemo())

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	return &cli{
		baseURL:     ts.URL + "/api",
		sessionPath: filepath.Join(t.TempDir(), "session.json"),
	}
}

// exec runs one invocation with stdin and returns stdout
func (c *cli) exec(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	global := []string{"--api-url", c.baseURL, "--session", c.sessionPath, "--log-level", "error"}
	var out bytes.Buffer
	err := run(context.Background(), append(global, args...), strings.NewReader(stdin), &out)
	return out.String(), err
}

func (c *cli) login(t *testing.T, email string) {
	t.Helper()
	_, err := c.exec(t, "", "login", email, "--password", devserver.DemoPassword)
	require.NoError(t, err)
}

func TestCLI_LoginPersistsSession(t *testing.T) {
	c := newCLI(t)

	out, err := c.exec(t, "", "login", "sales@example.com", "--password", devserver.DemoPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Sam Seller (sales)")

	out, err = c.exec(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "sales@example.com")

	_, err = c.exec(t, "", "logout")
	require.NoError(t, err)

	_, err = c.exec(t, "", "whoami")
	assert.ErrorIs(t, err, service.ErrNotAuthenticated)
}

func TestCLI_PasswordFromStdin(t *testing.T) {
	c := newCLI(t)

	out, err := c.exec(t, devserver.DemoPassword+"\n", "login", "admin@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Logged in as Ada Admin (admin)")
}

func TestCLI_Leads(t *testing.T) {
	c := newCLI(t)
	c.login(t, "sales@example.com")

	out, err := c.exec(t, "", "leads")
	require.NoError(t, err)
	assert.Contains(t, out, "Fjord Logistics")
	assert.NotContains(t, out, "Aurora Health", "sales reps only see their own leads")
	assert.Contains(t, out, "4 of 4 leads")

	out, err = c.exec(t, "", "leads", "--search", "FJORD", "--breakdown")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 4 leads")
	assert.Contains(t, out, "By source")

	_, err = c.exec(t, "", "leads", "--status", "bogus")
	assert.Error(t, err)
}

func TestCLI_ListsAndDashboard(t *testing.T) {
	c := newCLI(t)
	c.login(t, "admin@example.com")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "customers", args: []string{"customers"}, want: []string{"Oslo Energy", "3 customers, 2 active"}},
		{name: "campaigns", args: []string{"campaigns", "--status", "active"}, want: []string{"Spring webinar series"}},
		{name: "sales", args: []string{"sales"}, want: []string{"Fleet tracking", "win rate"}},
		{name: "dashboard", args: []string{"dashboard"}, want: []string{"Total Revenue", "Lead funnel", "Sales by rep"}},
		{name: "insight types", args: []string{"insights"}, want: []string{"weekly_sales", "lead_analysis"}},
		{name: "insight", args: []string{"insights", "revenue_forecast"}, want: []string{"Key metrics"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.exec(t, "", tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCLI_ScoreAndConvert(t *testing.T) {
	c := newCLI(t)
	c.login(t, "admin@example.com")

	out, err := c.exec(t, "", "score", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Lead 1 scored")

	out, err = c.exec(t, "", "convert-lead", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Aurora Health")

	_, err = c.exec(t, "", "convert-lead", "2")
	assert.Error(t, err)

	_, err = c.exec(t, "", "score", "abc")
	assert.ErrorContains(t, err, "invalid lead id")
}

func TestCLI_ChatREPL(t *testing.T) {
	c := newCLI(t)
	c.login(t, "admin@example.com")

	out, err := c.exec(t, "How many leads by source?\n\n/reset\nWhat is our revenue?\n/quit\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, workflow.SuggestedQuestions[0])
	assert.Contains(t, out, "SQL:")
	assert.Contains(t, out, "New conversation")
}

func TestCLI_Content(t *testing.T) {
	c := newCLI(t)
	c.login(t, "marketing@example.com")

	_, err := c.exec(t, "", "content", "--industry", "Retail")
	assert.True(t, errors.Is(err, workflow.ErrValidation))

	out, err := c.exec(t, "", "content", "--audience", "CTOs", "--industry", "Retail", "--platform", "linkedin")
	require.NoError(t, err)
	assert.Contains(t, out, "Variation 3")
	assert.Contains(t, out, "Tips:")
}

func TestCLI_ImportLeads(t *testing.T) {
	c := newCLI(t)
	c.login(t, "admin@example.com")

	path := filepath.Join(t.TempDir(), "leads.csv")
	csv := "company_name,contact_name,email\nAcme,Jane Doe,jane@acme.example\nBroken,,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	out, err := c.exec(t, "", "import-leads", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully uploaded 1 leads")
	assert.Contains(t, out, "1 rows rejected")
}

func TestReport(t *testing.T) {
	c := newCLI(t)

	_, err := c.exec(t, "", "leads")
	var stderr bytes.Buffer
	assert.Equal(t, exitAuth, report(err, &stderr))
	assert.Equal(t, "session expired, please log in\n", stderr.String())

	_, err = c.exec(t, "", "login", "admin@example.com", "--password", "wrong-password")
	stderr.Reset()
	assert.Equal(t, exitFailure, report(err, &stderr))
	assert.Contains(t, stderr.String(), "Incorrect email or password")

	_, err = c.exec(t, "", "frobnicate")
	stderr.Reset()
	assert.Equal(t, exitFailure, report(err, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "frobnicate"`)

	assert.Equal(t, exitOK, report(nil, &stderr))
}

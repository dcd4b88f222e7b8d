package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/straye-as/sales-intelligence/internal/analytics"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/straye-as/sales-intelligence/internal/service"
	"github.com/straye-as/sales-intelligence/internal/workflow"
)

// chatPreviewRows is how many result rows a chat answer shows
const chatPreviewRows = 10

type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer) *table {
	return &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	return t.tw.Flush()
}

func optionalNumber(v *float64) string {
	if v == nil {
		return "-"
	}
	return analytics.Number(*v)
}

func optionalCurrency(v *float64) string {
	if v == nil {
		return "-"
	}
	return analytics.Currency(*v)
}

func renderLeads(w io.Writer, leads []domain.Lead, total int) error {
	t := newTable(w)
	t.row("ID", "COMPANY", "CONTACT", "EMAIL", "STATUS", "SOURCE", "SCORE", "EST. VALUE")
	for _, l := range leads {
		t.row(
			fmt.Sprint(l.ID),
			l.CompanyName,
			l.ContactName,
			l.Email,
			domain.StatusLabel(string(l.Status)),
			domain.StatusLabel(string(l.Source)),
			optionalNumber(l.AIScore),
			optionalCurrency(l.EstimatedValue),
		)
	}
	if err := t.flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d leads\n", len(leads), total)
	return err
}

func renderShares(w io.Writer, title string, shares []analytics.Share) error {
	fmt.Fprintf(w, "\n%s\n", title)
	t := newTable(w)
	for _, s := range shares {
		t.row("  "+s.Label, analytics.Number(float64(s.Count)), analytics.Percent(s.Percent))
	}
	return t.flush()
}

func renderCustomers(w io.Writer, customers []domain.Customer, summary analytics.CustomerSummary) error {
	t := newTable(w)
	t.row("ID", "COMPANY", "CONTACT", "INDUSTRY", "STATUS", "LIFETIME VALUE", "PURCHASES")
	for _, c := range customers {
		t.row(
			fmt.Sprint(c.ID),
			c.CompanyName,
			c.ContactName,
			c.Industry,
			domain.StatusLabel(string(c.Status)),
			analytics.Currency(c.LifetimeValue),
			fmt.Sprint(c.TotalPurchases),
		)
	}
	if err := t.flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d customers, %d active, lifetime value %s\n",
		summary.Count, summary.Active(), analytics.Currency(summary.TotalLifetimeValue))
	return err
}

func renderCampaigns(w io.Writer, cards []analytics.CampaignCard, summary analytics.CampaignSummary) error {
	t := newTable(w)
	t.row("NAME", "TYPE", "STATUS", "BUDGET", "USED", "LEADS", "CTR", "CONV.", "CPL", "ROI")
	for _, c := range cards {
		used := analytics.WholePercent(c.Utilisation)
		if c.Overspent {
			used += " (over)"
		}
		t.row(c.Name, c.TypeLabel, c.Status, c.BudgetLine, used,
			fmt.Sprint(c.Leads), c.CTR, c.Conversion, c.CostPerLead, c.ROI)
	}
	if err := t.flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nBudget %s, spent %s, %s leads, %s attributed revenue\n",
		analytics.Currency(summary.TotalBudget),
		analytics.Currency(summary.TotalSpent),
		analytics.Number(float64(summary.TotalLeads)),
		analytics.Currency(summary.TotalRevenue),
	)
	return err
}

func renderSales(w io.Writer, records []domain.SalesRecord, pipeline analytics.PipelineSummary, reps []analytics.RepTotal) error {
	t := newTable(w)
	t.row("ID", "DEAL", "CUSTOMER", "AMOUNT", "STAGE", "PROBABILITY", "CLOSE DATE")
	for _, r := range records {
		closeDate := "-"
		if r.CloseDate != nil {
			closeDate = r.CloseDate.DateString()
		}
		t.row(
			fmt.Sprint(r.ID),
			r.DealName,
			fmt.Sprint(r.CustomerID),
			analytics.Currency(r.Amount),
			domain.StatusLabel(string(r.Stage)),
			analytics.WholePercent(r.Probability),
			closeDate,
		)
	}
	if err := t.flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nRevenue %s, pipeline %s (weighted %s), win rate %s\n",
		analytics.Currency(pipeline.TotalRevenue),
		analytics.Currency(pipeline.PipelineValue),
		analytics.Currency(pipeline.WeightedPipeline),
		pipeline.WinRateLabel(),
	)
	if len(reps) == 0 {
		return nil
	}
	t = newTable(w)
	t.row("REP", "WON DEALS", "REVENUE")
	for _, r := range reps {
		t.row(fmt.Sprint(r.RepID), fmt.Sprint(r.Deals), analytics.Currency(r.Revenue))
	}
	return t.flush()
}

func renderDashboard(w io.Writer, d *service.Dashboard) error {
	if d == nil {
		return nil
	}
	fmt.Fprintf(w, "Dashboard at %s\n\n", d.LoadedAt.Format("2006-01-02 15:04:05"))

	if d.Summary != nil {
		t := newTable(w)
		for _, card := range d.Summary.Cards() {
			t.row(card.Title, card.Value)
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	if len(d.Revenue) > 0 {
		fmt.Fprintln(w, "\nRevenue over time")
		t := newTable(w)
		for _, p := range d.Revenue {
			t.row("  "+p.Label, analytics.Currency(p.Revenue))
		}
		if err := t.flush(); err != nil {
			return err
		}
	}
	if len(d.Funnel) > 0 {
		if err := renderShares(w, "Lead funnel", d.Funnel); err != nil {
			return err
		}
	}
	if len(d.Sources) > 0 {
		if err := renderShares(w, "Lead sources", d.Sources); err != nil {
			return err
		}
	}
	if len(d.Campaigns) > 0 {
		fmt.Fprintln(w, "\nCampaign performance")
		t := newTable(w)
		for _, c := range d.Campaigns {
			t.row("  "+c.Name, domain.StatusLabel(string(c.Status)),
				analytics.Number(float64(c.LeadsGenerated))+" leads", "ROI "+analytics.Percent(c.ROI))
		}
		if err := t.flush(); err != nil {
			return err
		}
	}
	if len(d.Reps) > 0 {
		fmt.Fprintln(w, "\nSales by rep")
		t := newTable(w)
		for _, r := range d.Reps {
			t.row("  "+r.Name, analytics.Number(float64(r.DealsCount))+" deals", analytics.Currency(r.TotalRevenue))
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	if len(d.Errors) > 0 {
		missing := make([]string, 0, len(d.Errors))
		for name := range d.Errors {
			missing = append(missing, name)
		}
		sort.Strings(missing)
		fmt.Fprintf(w, "\nNot loaded: %s\n", strings.Join(missing, ", "))
	}
	return nil
}

func renderScore(w io.Writer, r *domain.LeadScoreResponse) error {
	fmt.Fprintf(w, "Lead %d scored %s (probability %s)\n\n%s\n",
		r.LeadID, analytics.Number(r.Score), analytics.Percent(r.Probability*100), r.Reasoning)
	renderList(w, "Factors", r.Factors)
	renderList(w, "Recommendations", r.Recommendations)
	return nil
}

func renderList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func renderTurn(w io.Writer, turn workflow.Turn) error {
	fmt.Fprintf(w, "\n%s\n", turn.Content)
	if turn.SQLQuery != "" {
		fmt.Fprintf(w, "\nSQL: %s\n", turn.SQLQuery)
	}
	if len(turn.Data) == 0 {
		return nil
	}

	rows, total := turn.PreviewRows(chatPreviewRows)
	cols := turn.Columns()
	fmt.Fprintln(w)
	t := newTable(w)
	t.row(cols...)
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			if v, ok := row[col]; ok && v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		t.row(cells...)
	}
	if err := t.flush(); err != nil {
		return err
	}
	if total > len(rows) {
		fmt.Fprintf(w, "Showing %d of %d results\n", len(rows), total)
	}
	return nil
}

func renderContent(w io.Writer, r *domain.ContentGenerateResponse) error {
	fmt.Fprintf(w, "%s content, %s tone\n", r.Platform, r.Tone)
	for i, v := range r.Variations {
		fmt.Fprintf(w, "\nVariation %d\n%s\n", i+1, v)
	}
	if tips, ok := r.Tips(); ok {
		renderList(w, "Tips", tips)
	}
	return nil
}

func renderInsight(w io.Writer, r *domain.InsightResponse) error {
	fmt.Fprintf(w, "%s\n\n%s\n", r.Title, r.Summary)
	if metrics := r.DisplayMetrics(domain.DefaultDisplayMetrics); len(metrics) > 0 {
		fmt.Fprintln(w, "\nKey metrics:")
		t := newTable(w)
		for _, m := range metrics {
			value := m.Text
			if m.IsNumber {
				value = analytics.Number(m.Number)
			}
			t.row("  "+m.Label, value)
		}
		if err := t.flush(); err != nil {
			return err
		}
	}
	renderList(w, "Recommendations", r.Recommendations)
	return nil
}

func renderImport(w io.Writer, r *domain.ImportResult) error {
	if r.Message != "" {
		fmt.Fprintln(w, r.Message)
	} else {
		fmt.Fprintf(w, "Created %d leads\n", r.CreatedCount)
	}
	if len(r.Errors) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\n%d rows rejected:\n", len(r.Errors))
	t := newTable(w)
	for _, e := range r.Errors {
		t.row(fmt.Sprintf("  row %d", e.Row), e.Error)
	}
	return t.flush()
}

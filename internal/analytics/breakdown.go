package analytics

import (
	"sort"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

// Share is one slice of a funnel or source breakdown
type Share struct {
	Key   string
	Label string
	Count int64
	// Percent of the breakdown total, 0-100
	Percent float64
}

// FunnelShares annotates server funnel stages with their share, keeping order
func FunnelShares(stages []domain.FunnelStage) []Share {
	var total int64
	for _, s := range stages {
		total += s.Count
	}
	out := make([]Share, 0, len(stages))
	for _, s := range stages {
		out = append(out, Share{
			Key:     s.Stage,
			Label:   domain.StatusLabel(s.Stage),
			Count:   s.Count,
			Percent: Ratio(float64(s.Count), float64(total)),
		})
	}
	return out
}

// SourceShares annotates server lead-source counts with their share, keeping order
func SourceShares(sources []domain.SourceCount) []Share {
	var total int64
	for _, s := range sources {
		total += s.Count
	}
	out := make([]Share, 0, len(sources))
	for _, s := range sources {
		out = append(out, Share{
			Key:     s.Source,
			Label:   domain.StatusLabel(s.Source),
			Count:   s.Count,
			Percent: Ratio(float64(s.Count), float64(total)),
		})
	}
	return out
}

// LeadFunnel counts leads per status in funnel order. Every known status is
// present, zero counts included; leads with unknown statuses are appended
// after the known stages in alphabetical order.
func LeadFunnel(leads []domain.Lead) []domain.FunnelStage {
	counts := map[domain.LeadStatus]int64{}
	for _, l := range leads {
		counts[l.Status]++
	}

	out := make([]domain.FunnelStage, 0, len(domain.LeadStatuses))
	for _, status := range domain.LeadStatuses {
		out = append(out, domain.FunnelStage{Stage: string(status), Count: counts[status]})
		delete(counts, status)
	}

	unknown := make([]string, 0, len(counts))
	for status := range counts {
		unknown = append(unknown, string(status))
	}
	sort.Strings(unknown)
	for _, status := range unknown {
		out = append(out, domain.FunnelStage{Stage: status, Count: counts[domain.LeadStatus(status)]})
	}
	return out
}

// LeadSources counts leads per source, largest first then by name
func LeadSources(leads []domain.Lead) []domain.SourceCount {
	counts := map[domain.LeadSource]int64{}
	for _, l := range leads {
		counts[l.Source]++
	}
	out := make([]domain.SourceCount, 0, len(counts))
	for source, n := range counts {
		out = append(out, domain.SourceCount{Source: string(source), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Source < out[j].Source
	})
	return out
}

func sortRepTotals(totals []RepTotal) {
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Revenue != totals[j].Revenue {
			return totals[i].Revenue > totals[j].Revenue
		}
		return totals[i].RepID < totals[j].RepID
	})
}

package domain

import (
	"net/url"
	"strconv"
)

// List filters are forwarded as query parameters. An empty field means
// "no constraint" and is left out of the query entirely.

type LeadFilter struct {
	Status   LeadStatus
	Source   LeadSource
	Industry string
}

// Query renders the filter as query parameters
func (f LeadFilter) Query() url.Values {
	q := url.Values{}
	setIfPresent(q, "status", string(f.Status))
	setIfPresent(q, "source", string(f.Source))
	setIfPresent(q, "industry", f.Industry)
	return q
}

type CustomerFilter struct {
	Status   CustomerStatus
	Industry string
}

// Query renders the filter as query parameters
func (f CustomerFilter) Query() url.Values {
	q := url.Values{}
	setIfPresent(q, "status", string(f.Status))
	setIfPresent(q, "industry", f.Industry)
	return q
}

type CampaignFilter struct {
	Status       CampaignStatus
	CampaignType CampaignType
}

// Query renders the filter as query parameters
func (f CampaignFilter) Query() url.Values {
	q := url.Values{}
	setIfPresent(q, "status", string(f.Status))
	setIfPresent(q, "campaign_type", string(f.CampaignType))
	return q
}

type SalesFilter struct {
	Stage      DealStage
	CustomerID int64
}

// Query renders the filter as query parameters
func (f SalesFilter) Query() url.Values {
	q := url.Values{}
	setIfPresent(q, "stage", string(f.Stage))
	if f.CustomerID > 0 {
		q.Set("customer_id", strconv.FormatInt(f.CustomerID, 10))
	}
	return q
}

func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

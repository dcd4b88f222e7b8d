package domain

import "strings"

// Badge styles shared by every status column
const (
	StyleBlue   = "bg-blue-100 text-blue-800"
	StyleYellow = "bg-yellow-100 text-yellow-800"
	StylePurple = "bg-purple-100 text-purple-800"
	StyleOrange = "bg-orange-100 text-orange-800"
	StylePink   = "bg-pink-100 text-pink-800"
	StyleGreen  = "bg-green-100 text-green-800"
	StyleRed    = "bg-red-100 text-red-800"
	StyleGray   = "bg-gray-100 text-gray-800"

	// StyleFallback is used for any status the table does not know
	StyleFallback = StyleGray
)

// statusStyles covers lead, customer and campaign statuses in one table.
// Keys shared between enums (e.g. "active") resolve to the same style.
var statusStyles = map[string]string{
	// Lead statuses
	string(LeadStatusNew):         StyleBlue,
	string(LeadStatusContacted):   StyleYellow,
	string(LeadStatusQualified):   StylePurple,
	string(LeadStatusProposal):    StyleOrange,
	string(LeadStatusNegotiation): StylePink,
	string(LeadStatusClosedWon):   StyleGreen,
	string(LeadStatusClosedLost):  StyleRed,
	// Customer statuses
	string(CustomerStatusActive):   StyleGreen,
	string(CustomerStatusInactive): StyleGray,
	string(CustomerStatusChurned):  StyleRed,
	// Campaign statuses
	string(CampaignStatusDraft):     StyleGray,
	string(CampaignStatusPaused):    StyleYellow,
	string(CampaignStatusCompleted): StyleBlue,
	string(CampaignStatusCancelled): StyleRed,
}

// StatusColor maps any status string to a display style. It is total:
// unknown values get StyleFallback.
func StatusColor(status string) string {
	if style, ok := statusStyles[status]; ok {
		return style
	}
	return StyleFallback
}

// Score text colours
const (
	ScoreColorHigh   = "text-green-600"
	ScoreColorGood   = "text-yellow-600"
	ScoreColorMedium = "text-orange-600"
	ScoreColorLow    = "text-red-600"
)

// ScoreColor picks the text colour for a 0-100 AI score
func ScoreColor(score float64) string {
	switch {
	case score >= 80:
		return ScoreColorHigh
	case score >= 60:
		return ScoreColorGood
	case score >= 40:
		return ScoreColorMedium
	default:
		return ScoreColorLow
	}
}

// StatusLabel renders a status for display, replacing the first underscore
// with a space ("closed_won" -> "closed won")
func StatusLabel(status string) string {
	return strings.Replace(status, "_", " ", 1)
}

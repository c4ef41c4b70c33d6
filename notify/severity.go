package notify

import (
	"strings"

	"github.com/selfheal-infra/remedy/types"
)

// severityTiers are checked in priority order; the first matching tier wins,
// so a message containing both "failed" and "recovered" is still critical.
var severityTiers = []struct {
	severity types.Severity
	keywords []string
}{
	{types.SeverityCritical, []string{"critical", "down", "failed", "failure"}},
	{types.SeverityError, []string{"error", "problem", "issue"}},
	{types.SeverityWarning, []string{"warning", "warn", "degraded"}},
	{types.SeveritySuccess, []string{"success", "resolved", "recovered", "healthy"}},
}

// ClassifySeverity infers severity from message content with a
// case-insensitive substring match against the keyword tiers.
func ClassifySeverity(text string) types.Severity {
	lower := strings.ToLower(text)
	for _, tier := range severityTiers {
		for _, keyword := range tier.keywords {
			if strings.Contains(lower, keyword) {
				return tier.severity
			}
		}
	}
	return types.SeverityInfo
}

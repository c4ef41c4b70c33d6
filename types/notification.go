package types

import (
	"fmt"
	"time"
)

// Severity levels for notifications, ordered from most to least urgent.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
)

// ParseSeverity maps a raw string to a known severity.
// Anything unrecognized resolves to info, never an arbitrary value.
func ParseSeverity(raw string) Severity {
	switch Severity(raw) {
	case SeverityCritical, SeverityError, SeverityWarning, SeverityInfo, SeveritySuccess:
		return Severity(raw)
	default:
		return SeverityInfo
	}
}

// Pages reports whether this severity is urgent enough to page on-call.
func (s Severity) Pages() bool {
	return s == SeverityCritical || s == SeverityError
}

// Style holds the presentation attributes of a severity level.
type Style struct {
	Color     string // hex, with leading '#'
	Emoji     string
	PagerDuty string // severity value for the PagerDuty Events API
}

var severityStyles = map[Severity]Style{
	SeverityCritical: {Color: "#dc3545", Emoji: ":rotating_light:", PagerDuty: "critical"},
	SeverityError:    {Color: "#fd7e14", Emoji: ":x:", PagerDuty: "error"},
	SeverityWarning:  {Color: "#ffc107", Emoji: ":warning:", PagerDuty: "warning"},
	SeverityInfo:     {Color: "#17a2b8", Emoji: ":information_source:", PagerDuty: "info"},
	SeveritySuccess:  {Color: "#28a745", Emoji: ":white_check_mark:", PagerDuty: "info"},
}

// Style returns the presentation attributes for the severity.
// Unknown severities fall back to the info style.
func (s Severity) Style() Style {
	if style, ok := severityStyles[s]; ok {
		return style
	}
	return severityStyles[SeverityInfo]
}

// Source identifies which inbound shape produced a notification.
type Source string

const (
	SourceSNS        Source = "sns"
	SourceCloudWatch Source = "cloudwatch"
	SourceDirect     Source = "direct"
	SourceLambda     Source = "lambda"
)

// Notification is the canonical record every inbound event normalizes into.
type Notification struct {
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Severity  Severity       `json:"severity"`
	Timestamp string         `json:"timestamp"`
	Source    Source         `json:"source"`
	Metadata  map[string]any `json:"metadata"`
}

// NewNotification returns a notification with all defaults applied:
// info severity, lambda source, current UTC timestamp, empty metadata.
func NewNotification() Notification {
	return Notification{
		Severity:  SeverityInfo,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Source:    SourceLambda,
		Metadata:  map[string]any{},
	}
}

// Validate ensures the notification honors the severity invariant.
func (n *Notification) Validate() error {
	if n.Severity != ParseSeverity(string(n.Severity)) {
		return fmt.Errorf("invalid severity %q", n.Severity)
	}
	if n.Timestamp == "" {
		return fmt.Errorf("timestamp cannot be empty")
	}
	return nil
}

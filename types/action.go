package types

// ActionKind enumerates the remediation actions this system can take.
type ActionKind string

const (
	ActionScaleOut      ActionKind = "scale_out"
	ActionClearCache    ActionKind = "clear_cache"
	ActionCleanDisk     ActionKind = "clean_disk"
	ActionCullUnhealthy ActionKind = "cull_unhealthy"
	ActionUnsupported   ActionKind = "unsupported"
)

// RemediationAction is the routing decision for one firing alarm.
// Actions carry no cross-invocation state; idempotency is structural.
type RemediationAction struct {
	Kind  ActionKind
	Fleet string // target auto scaling group name
	Alarm string // alarm name that triggered the action
}

// ChannelStatus is the outcome of one delivery attempt.
type ChannelStatus string

const (
	ChannelSuccess ChannelStatus = "success"
	ChannelError   ChannelStatus = "error"
	ChannelSkipped ChannelStatus = "skipped"
)

// ChannelResult reports one channel's delivery outcome. Produced once per
// configured channel per fanout call, never mutated afterward.
type ChannelResult struct {
	Channel string        `json:"channel"`
	Status  ChannelStatus `json:"status"`
	Detail  string        `json:"detail,omitempty"`
}

// ChannelOK builds a success result.
func ChannelOK(channel, detail string) ChannelResult {
	return ChannelResult{Channel: channel, Status: ChannelSuccess, Detail: detail}
}

// ChannelFailed builds an error result from a delivery failure.
func ChannelFailed(channel string, err error) ChannelResult {
	return ChannelResult{Channel: channel, Status: ChannelError, Detail: err.Error()}
}

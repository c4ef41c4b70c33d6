package remediation

import (
	"strings"

	"github.com/selfheal-infra/remedy/types"
)

// routingTable maps alarm-name patterns to actions. Order matters: the
// first matching pattern wins.
var routingTable = []struct {
	pattern string
	kind    types.ActionKind
}{
	{"cpu-utilization-high", types.ActionScaleOut},
	{"memory-utilization-high", types.ActionClearCache},
	{"disk-utilization-high", types.ActionCleanDisk},
	{"unhealthy-targets", types.ActionCullUnhealthy},
}

// Route decides the remediation action for an alarm. The second return is
// false when the alarm is not firing: a guarded skip, not an error, with
// no action and no notification.
func Route(event types.AlarmEvent, fleet string) (types.RemediationAction, bool) {
	if !event.Firing() {
		return types.RemediationAction{}, false
	}

	name := strings.ToLower(event.Name)
	for _, rule := range routingTable {
		if strings.Contains(name, rule.pattern) {
			return types.RemediationAction{Kind: rule.kind, Fleet: fleet, Alarm: event.Name}, true
		}
	}

	return types.RemediationAction{Kind: types.ActionUnsupported, Fleet: fleet, Alarm: event.Name}, true
}

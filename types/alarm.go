package types

// AlarmState is the normalized state of a CloudWatch-style alarm.
type AlarmState string

const (
	StateFiring  AlarmState = "FIRING"
	StateOK      AlarmState = "OK"
	StateUnknown AlarmState = "UNKNOWN"
)

// ParseAlarmState derives the normalized state from the raw alarm state string.
// "ALARM" means the condition is breached; anything other than "ALARM" or "OK"
// maps to UNKNOWN.
func ParseAlarmState(raw string) AlarmState {
	switch raw {
	case "ALARM":
		return StateFiring
	case "OK":
		return StateOK
	default:
		return StateUnknown
	}
}

// AlarmEvent is one inbound alarm, constructed per event and never persisted.
type AlarmEvent struct {
	Name        string
	State       AlarmState
	Reason      string
	Description string
}

// Firing reports whether the alarm condition is currently breached.
func (a AlarmEvent) Firing() bool {
	return a.State == StateFiring
}

package outbound

// Metrics records handler outcomes.
type Metrics interface {
	CommandHandled(command string)
	InteractionHandled(action, outcome string)
	GuardRejected(reason string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) CommandHandled(string)             {}
func (NopMetrics) InteractionHandled(string, string) {}
func (NopMetrics) GuardRejected(string)              {}

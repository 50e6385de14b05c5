package inbound

// Origin is where an inbound payload came from. Exactly one of the two shapes is
// normally set: Event for Events API callbacks, Container for interactive
// component callbacks.
type Origin struct {
	Event     *EventOrigin
	Container *ContainerOrigin
}

// EventOrigin is the channel/thread information nested under "event".
type EventOrigin struct {
	ChannelID string
	ThreadTS  string
	TS        string
}

// ContainerOrigin is the channel/thread information nested under "container".
type ContainerOrigin struct {
	ChannelID string
	ThreadTS  string
	MessageTS string
}

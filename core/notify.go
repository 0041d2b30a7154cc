package core

type (
	// Ack is a transient, user-facing acknowledgement of an action.
	// It carries no state: acting on it is the client's business.
	Ack struct {
		Kind        string `json:"kind"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	// Notifier is any service that can deliver acks to the people concerned.
	Notifier interface {
		// Notify delivers acks for the given audience (usually a year group)
		Notify(audience string, acks ...Ack)
	}
)

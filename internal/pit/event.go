package pit

// EventKind classifies a file-change notification.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventChanged EventKind = "changed"
	EventDeleted EventKind = "deleted"
)

// Event is one inbound file-change notification. The watcher produces
// these on a channel; the capture pipeline consumes them one at a time.
type Event struct {
	Path string // absolute
	Kind EventKind
}

package processor

// Processor reacts to enrollment events published after a committed write.
type Processor struct {
	store    Store
	notifier Notifier
}

package reminder

// Notification is one delivered reminder.
type Notification struct {
	Title   string
	Body    string
	Morning bool
	Test    bool
}

// Notifier delivers reminders to the user.
type Notifier interface {
	Notify(n Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification) error

func (f NotifierFunc) Notify(n Notification) error { return f(n) }

// NopNotifier drops every reminder. Used when there is no delivery channel.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) error { return nil }

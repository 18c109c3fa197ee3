// Package notify is the single-slot user notification channel. A new
// notification replaces the current one; there is no queue.
package notify

import "sync"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

const (
	MsgLoginRequired  = "please log in"
	MsgGenericFailure = "something went wrong, please try again"
	MsgCreated        = "review created"
	MsgUpdated        = "review updated"
	MsgDeleted        = "review deleted"
	MsgSignedIn       = "signed in"
	MsgSignedOut      = "signed out"
	MsgRegistered     = "account created"
	MsgAccountUpdated = "account updated"
	MsgAccountDeleted = "account deleted"
)

type Notification struct {
	Message  string
	Severity Severity
	Open     bool
}

// Sink receives every notification as it is raised.
type Sink func(Notification)

type Channel struct {
	mu      sync.Mutex
	current Notification
	sinks   []Sink
}

func NewChannel() *Channel {
	return &Channel{}
}

// Notify replaces the current notification and marks it open.
func (c *Channel) Notify(message string, severity Severity) {
	n := Notification{Message: message, Severity: severity, Open: true}

	c.mu.Lock()
	c.current = n
	sinks := make([]Sink, len(c.sinks))
	copy(sinks, c.sinks)
	c.mu.Unlock()

	for _, s := range sinks {
		s(n)
	}
}

func (c *Channel) Success(message string) { c.Notify(message, SeveritySuccess) }
func (c *Channel) Error(message string)   { c.Notify(message, SeverityError) }
func (c *Channel) Info(message string)    { c.Notify(message, SeverityInfo) }

// Dismiss closes the current notification. Its text is kept until the next
// Notify.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.Open = false
}

// Current returns the last notification, open or not.
func (c *Channel) Current() Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Active returns the current notification only while it is open.
func (c *Channel) Active() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current.Open {
		return Notification{}, false
	}
	return c.current, true
}

func (c *Channel) Subscribe(s Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, s)
}

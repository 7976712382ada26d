package mailer

import (
	"context"
	"sync"
)

// Mock collects outgoing emails in memory. It backs mailer-less dev runs
// and tests; set Err to make every Send fail.
type Mock struct {
	mu   sync.Mutex
	Sent []Email
	Err  error
}

func (m *Mock) Send(_ context.Context, e Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, e)
	return nil
}

// Last returns the most recently recorded email.
func (m *Mock) Last() (Email, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return Email{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

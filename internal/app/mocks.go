package app

import (
	"sync"

	"kazicare_backend/internal/email"
)

// MockEmailProvider records every send for assertions. It stands in for
// SMTP in tests and local development.
type MockEmailProvider struct {
	mu   sync.Mutex
	Sent []email.Email
}

func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{}
}

func (m *MockEmailProvider) Send(e *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, *e)
	return nil
}

func (m *MockEmailProvider) SendAccountVerified(to, name string) error {
	return m.Send(&email.Email{To: []string{to}, Subject: "Account Verified"})
}

func (m *MockEmailProvider) SendJobVerified(to, jobTitle string) error {
	return m.Send(&email.Email{To: []string{to}, Subject: "Job Verified", Body: jobTitle})
}

func (m *MockEmailProvider) SendNewApplication(to, jobTitle, applicantName string) error {
	return m.Send(&email.Email{To: []string{to}, Subject: "New Application", Body: jobTitle})
}

func (m *MockEmailProvider) SendApplicationDecided(to, jobTitle string, accepted bool) error {
	return m.Send(&email.Email{To: []string{to}, Subject: "Application Update", Body: jobTitle})
}

func (m *MockEmailProvider) SendPasswordReset(to, token string) error {
	return m.Send(&email.Email{To: []string{to}, Subject: "Password Reset", Body: token})
}

func (m *MockEmailProvider) Close() error { return nil }

// SentCount returns how many emails have been recorded.
func (m *MockEmailProvider) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// LastSent returns the most recent email, or nil.
func (m *MockEmailProvider) LastSent() *email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	e := m.Sent[len(m.Sent)-1]
	return &e
}

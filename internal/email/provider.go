package email

// Email is a plain transactional message. Delivery is fire-and-forget:
// callers log failures but never surface or retry them.
type Email struct {
	To      []string
	Subject string
	Body    string
}

// Provider sends transactional email on state transitions.
type Provider interface {
	Send(email *Email) error
	SendAccountVerified(to, name string) error
	SendJobVerified(to, jobTitle string) error
	SendNewApplication(to, jobTitle, applicantName string) error
	SendApplicationDecided(to, jobTitle string, accepted bool) error
	SendPasswordReset(to, token string) error
	Close() error
}

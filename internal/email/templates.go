package email

import "fmt"

// Canned bodies for every transition that notifies someone.

func accountVerifiedEmail(to, name string) *Email {
	return &Email{
		To:      []string{to},
		Subject: "Account Verified",
		Body:    fmt.Sprintf("Hello %s,\n\nYour account has been verified! You can now log in to KaziCare.", name),
	}
}

func jobVerifiedEmail(to, jobTitle string) *Email {
	return &Email{
		To:      []string{to},
		Subject: "Job Verified",
		Body:    fmt.Sprintf("Your job posting %q has been verified and is now live.", jobTitle),
	}
}

func newApplicationEmail(to, jobTitle, applicantName string) *Email {
	return &Email{
		To:      []string{to},
		Subject: "New Application",
		Body:    fmt.Sprintf("%s has applied to your job posting %q. Log in to KaziCare to review the application.", applicantName, jobTitle),
	}
}

func applicationDecidedEmail(to, jobTitle string, accepted bool) *Email {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	return &Email{
		To:      []string{to},
		Subject: "Application Update",
		Body:    fmt.Sprintf("Your application for %q has been %s.", jobTitle, outcome),
	}
}

func passwordResetEmail(to, token string) *Email {
	return &Email{
		To:      []string{to},
		Subject: "Password Reset",
		Body:    fmt.Sprintf("Use this token to reset your KaziCare password: %s\n\nIf you did not request a reset, ignore this message.", token),
	}
}

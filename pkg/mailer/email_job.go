package mailer

import "fmt"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// WelcomeJob builds the welcome email sent after registration.
func WelcomeJob(to, name, kind string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to Bookhaven",
		Text: fmt.Sprintf(
			"Hi %s,\n\nYour %s account is ready. Happy reading!\n\nThe Bookhaven team",
			name, kind,
		),
	}
}

package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelcomeJob(t *testing.T) {
	job := WelcomeJob("alice@example.com", "Alice", "buyer")

	assert.Equal(t, "alice@example.com", job.To)
	assert.Equal(t, "Welcome to Bookhaven", job.Subject)
	assert.Contains(t, job.Text, "Alice")
	assert.Contains(t, job.Text, "buyer account")
}

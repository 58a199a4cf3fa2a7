package lib

import (
	"testing"

	"cycleparadise/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPClient(t *testing.T) {
	_, err := NewSMTPClient(&config.Config{})
	assert.ErrorIs(t, err, ErrSMTPNotConfigured)

	c, err := NewSMTPClient(&config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUser:     "user",
		SMTPPassword: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", c.ServerAddr())
}

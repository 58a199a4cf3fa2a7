package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--email", " Ops@Example.com ", "--first", "Ops", "--last", "Team", "--password", "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", opts.email)
	assert.Equal(t, "ADMIN", opts.role)

	opts, err = parseFlags([]string{"--email", "e@example.com", "--first", "E", "--last", "D", "--password", "correct-horse", "--role", "editor"})
	require.NoError(t, err)
	assert.Equal(t, "EDITOR", opts.role)
}

func TestParseFlagsRejectsBadInput(t *testing.T) {
	cases := map[string][]string{
		"missing email":  {"--first", "A", "--last", "B", "--password", "correct-horse"},
		"short password": {"--email", "a@b.co", "--first", "A", "--last", "B", "--password", "short"},
		"unknown role":   {"--email", "a@b.co", "--first", "A", "--last", "B", "--password", "correct-horse", "--role", "OWNER"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseFlags(args)
			assert.Error(t, err)
		})
	}

	_, err := parseFlags([]string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestNewAdmin(t *testing.T) {
	user, err := newAdmin(&options{email: "a@b.co", firstName: "A", lastName: "B", password: "correct-horse", role: "ADMIN"})
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
}

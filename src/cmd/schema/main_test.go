package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSchema(&buf))

	ddl := buf.String()
	assert.Contains(t, ddl, `CREATE TABLE "bookings"`)
	assert.Contains(t, ddl, `CREATE TABLE "booking_status_histories"`)
	assert.Contains(t, ddl, `"booking_number"`)
}

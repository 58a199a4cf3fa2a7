package db

import (
	"testing"

	"cycleparadise/src/db/dbtest"

	"github.com/stretchr/testify/assert"
)

func TestMockDB(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)

	assert.Equal(t, "postgres", gormDB.Name())
	mock.ExpectClose()
	Close(gormDB)
	assert.NoError(t, mock.ExpectationsWereMet())
}

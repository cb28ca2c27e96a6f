package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBManager_BadPrimaryDSN(t *testing.T) {
	_, err := NewDBManager(context.Background(), Config{PrimaryDSN: "postgres://app@localhost:notaport/taskflow"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary")
	assert.Contains(t, err.Error(), "failed to parse DSN")
}

func TestDBManager_ReadFallsBackToPrimary(t *testing.T) {
	m := &DBManager{}
	assert.Equal(t, m.Primary(), m.Read())
	assert.Equal(t, m.Write(), m.Read())
}

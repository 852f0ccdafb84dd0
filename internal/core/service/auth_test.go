package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	token, err := svc.GenerateToken(4)
	require.NoError(t, err)

	id, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 4, id)
}

func TestAuthService_RejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	other := NewAuthService("another-secret", time.Hour)
	token, err := other.GenerateToken(4)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	expired := NewAuthService("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err = expired.GenerateToken(4)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthService_CheckPhoneNumber(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	assert.True(t, svc.CheckPhoneNumber("555-010-0004", "555-010-0004"))
	assert.False(t, svc.CheckPhoneNumber("555-010-0005", "555-010-0004"))
	assert.False(t, svc.CheckPhoneNumber("", ""))
}

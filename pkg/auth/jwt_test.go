package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "clinic-admin")
	id := uuid.New()

	token, expires, err := svc.GenerateToken(id, "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestValidateRejectsOtherSecretAndExpired(t *testing.T) {
	issuer := NewJWTService("secret", time.Hour, "clinic-admin")
	token, _, err := issuer.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = NewJWTService("other", time.Hour, "clinic-admin").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := &jwtService{secret: []byte("secret"), ttl: time.Minute, issuer: "clinic-admin", now: func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}}
	old, _, err := expired.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

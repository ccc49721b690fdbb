package auth_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/hospitalops/pulse/pkg/domain/model/auth"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret-key-for-signing")
	now := time.Now()

	raw, err := auth.IssueToken("user-1", "Nurse Joy", secret, now)
	gt.NoError(t, err)

	claims, err := auth.VerifyToken(raw, secret)
	gt.NoError(t, err)
	gt.Equal(t, claims.UserID, types.UserID("user-1"))
	gt.Equal(t, claims.Name, "Nurse Joy")
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	raw, err := auth.IssueToken("user-1", "Nurse Joy", []byte("secret-a"), time.Now())
	gt.NoError(t, err)

	_, err = auth.VerifyToken(raw, []byte("secret-b"))
	gt.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	issued := time.Now().Add(-auth.TokenExpireDuration - time.Hour)
	raw, err := auth.IssueToken("user-1", "Nurse Joy", []byte("secret"), issued)
	gt.NoError(t, err)

	_, err = auth.VerifyToken(raw, []byte("secret"))
	gt.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := auth.VerifyToken("not-a-token", []byte("secret"))
	gt.Error(t, err)
}

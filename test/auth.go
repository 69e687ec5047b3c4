package test

import (
	"os"
	"testing"
	"time"

	"github.com/grovesmith/backend/internal/auth"
	"github.com/stretchr/testify/require"
)

// ManagerID is the manager that test requests are authenticated as.
const ManagerID = "7f6b2c9e-4c1d-4b8a-9e0f-3a2d1c5b6e7f"

// Token returns a bearer token for managerID, signed with the secret
// from AUTH_JWT_SECRET.
func Token(t *testing.T, managerID string) string {
	cfg := auth.Config{
		Secret:   []byte(os.Getenv("AUTH_JWT_SECRET")),
		Issuer:   os.Getenv("AUTH_ISSUER"),
		Audience: os.Getenv("AUTH_AUDIENCE"),
	}

	token, err := auth.Sign(cfg, auth.Principal{
		ID:       managerID,
		Email:    "parent@example.com",
		FullName: "Alex Doe",
	}, time.Hour)
	require.Nil(t, err, "Token could not be signed")

	return token
}

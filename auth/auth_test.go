package auth

import (
	"testing"

	"pitchbook/middleware"
	"pitchbook/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	u := &models.User{UserID: "u-123", Username: "alice"}
	token, err := generateAccessToken(u)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := middleware.ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("token did not validate: %v", err)
	}
	if claims.UserID != "u-123" || claims.Username != "alice" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	tok, err := generateRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	other, err := generateRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	if tok == other {
		t.Fatal("refresh tokens must be unique")
	}
	if hashToken(tok) != hashToken(tok) {
		t.Fatal("hash must be deterministic")
	}
	if hashToken(tok) == tok {
		t.Fatal("stored form must not be the raw token")
	}
}

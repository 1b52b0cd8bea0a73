package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret-key"

func TestGenerateAndVerifyToken(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := GenerateToken(userID, "grip@setsweet.test", testSecret, "setsweet", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken returned empty token")
	}

	claims, err := VerifyToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != userID.Hex() {
		t.Errorf("UserID = %q, expected %q", claims.UserID, userID.Hex())
	}
	if claims.Email != "grip@setsweet.test" {
		t.Errorf("Email = %q, expected %q", claims.Email, "grip@setsweet.test")
	}
	if claims.Issuer != "setsweet" {
		t.Errorf("Issuer = %q, expected %q", claims.Issuer, "setsweet")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(primitive.NewObjectID(), "a@b.co", testSecret, "setsweet", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := VerifyToken(token, "a-different-secret"); err == nil {
		t.Error("expected verification to fail with the wrong secret")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := GenerateToken(primitive.NewObjectID(), "a@b.co", testSecret, "setsweet", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := VerifyToken(token, testSecret); err == nil {
		t.Error("expected verification to fail for an expired token")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := VerifyToken("not.a.token", testSecret); err == nil {
		t.Error("expected verification to fail for malformed input")
	}
}

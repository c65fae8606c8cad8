package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
)

func TestToken_RoundTrip(t *testing.T) {
	key := []byte("secret")
	u := model.User{ID: "u1", CompanyID: "c1"}

	tok, exp, err := IssueToken(key, u, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("exp %v is not in the future", exp)
	}

	c, err := ParseToken(key, tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if c.Subject != "u1" || c.Company != "c1" {
		t.Fatalf("claims sub=%q company=%q", c.Subject, c.Company)
	}
}

func TestToken_Rejects(t *testing.T) {
	key := []byte("secret")
	u := model.User{ID: "u1"}

	foreign, _, err := IssueToken([]byte("other"), u, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	expired, _, err := IssueToken(key, u, -time.Hour)
	if err != nil {
		t.Fatalf("IssueToken(expired): %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	for name, tok := range map[string]string{"foreign key": foreign, "expired": expired, "alg none": none} {
		if _, err := ParseToken(key, tok); !errors.Is(err, errs.ErrUnauthorized) {
			t.Fatalf("%s: want ErrUnauthorized, got %v", name, err)
		}
	}

	if _, _, err := IssueToken(nil, u, time.Hour); err == nil {
		t.Fatalf("empty key must fail")
	}
}

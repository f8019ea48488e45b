package auth

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestIssueAndVerify(t *testing.T) {
	c := qt.New(t)
	tokens := NewTokens("secret", time.Hour)
	id := uuid.New()

	s, err := tokens.Issue(id)
	c.Assert(err, qt.IsNil)

	got, err := tokens.Verify(s)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, id)
}

func TestVerifyRejects(t *testing.T) {
	c := qt.New(t)
	tokens := NewTokens("secret", time.Hour)
	id := uuid.New()

	otherKey, err := NewTokens("other", time.Hour).Issue(id)
	c.Assert(err, qt.IsNil)

	expired := NewTokens("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(id)
	c.Assert(err, qt.IsNil)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	c.Assert(err, qt.IsNil)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: id.String(),
	}).SignedString([]byte("secret"))
	c.Assert(err, qt.IsNil)

	for name, s := range map[string]string{
		"garbage":    "not-a-token",
		"wrong key":  otherKey,
		"expired":    expiredToken,
		"no subject": noSubject,
		"no expiry":  noExpiry,
	} {
		c.Run(name, func(c *qt.C) {
			_, err := tokens.Verify(s)
			c.Assert(err, qt.Equals, ErrInvalidToken)
		})
	}
}

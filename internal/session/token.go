package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/domain"
)

// demoSignature fills the signature slot of fabricated tokens. The
// token is unsigned (alg "none"); the literal marker makes demo tokens
// recognizable when restoring a persisted session.
const demoSignature = "demo"

// fabricateDemoToken builds the unsigned token used for offline demo
// sessions: a regular JWT header/claims pair with "demo" where a
// signature would go.
func fabricateDemoToken(username string, role domain.Role) string {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": string(role),
		"iat":  time.Now().UnixMilli(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		// The none signer cannot fail with its designated key.
		return ""
	}
	return signed + demoSignature
}

func isDemoToken(token string) bool {
	return strings.HasSuffix(token, "."+demoSignature)
}

// RoleFromToken derives the role from a token's claims without
// verifying the signature: the "role" claim first, then the first entry
// of a "roles" list, then USER. Best effort only — it never fails.
func RoleFromToken(token string) domain.Role {
	claims := unverifiedClaims(token)
	if claims == nil {
		return domain.RoleUser
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		return domain.Role(role)
	}
	if roles, ok := claims["roles"].([]interface{}); ok && len(roles) > 0 {
		if role, ok := roles[0].(string); ok && role != "" {
			return domain.Role(role)
		}
	}
	return domain.RoleUser
}

// subjectFromToken reads the "sub" claim, or "" when undecodable.
func subjectFromToken(token string) string {
	claims := unverifiedClaims(token)
	if claims == nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

func unverifiedClaims(token string) jwt.MapClaims {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	// CtxEmailVerified mirrors the token's email_verified claim.
	CtxEmailVerified = "email_verified"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context
// This is set by FirebaseAuthMiddleware
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserEmail returns the email claim, if the token carried one.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}

// UserEmailVerified reports whether the context email is a verified claim.
func UserEmailVerified(c *gin.Context) bool {
	return c.GetBool(CtxEmailVerified)
}

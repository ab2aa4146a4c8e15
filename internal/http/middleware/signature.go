package middleware

import (
	"crypto/ed25519"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	slogctx "github.com/veqryn/slog-context"
)

// VerifySignature rejects requests whose X-Signature-Ed25519 header does not
// sign X-Signature-Timestamp plus the raw body. The body is left readable
// for the handler.
func VerifySignature(key ed25519.PublicKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !discordgo.VerifyInteraction(c.Request, key) {
			SignatureFailures.Inc()
			slogctx.Warn(c.Request.Context(), "invalid request signature")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid request signature"})
			return
		}
		c.Next()
	}
}

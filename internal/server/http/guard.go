package httpserver

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/abhi1083/simple-crud-ops/internal/errs"
	"github.com/abhi1083/simple-crud-ops/internal/token"
)

const subjectKey = "auth.subject"

// Guard admits requests carrying a valid bearer token. It is stateless: the
// outcome is a pure function of the header, the secret, and the clock.
type Guard struct {
	codec *token.Codec
}

// NewGuard constructs a Guard over the given codec.
func NewGuard(codec *token.Codec) *Guard { return &Guard{codec: codec} }

// Admit parses an "Authorization: Bearer <token>" value and returns the
// authenticated subject. Failures keep the token error kinds distinct.
func (g *Guard) Admit(headerValue string) (uuid.UUID, error) {
	v := strings.TrimSpace(headerValue)
	if v == "" {
		return uuid.Nil, errs.ErrMissingToken
	}
	parts := strings.SplitN(v, " ", 2)
	if !strings.EqualFold(parts[0], "Bearer") {
		return uuid.Nil, errs.ErrTokenMalformed
	}
	// a bare or whitespace-padded scheme carries no token at all
	if len(parts) == 1 {
		return uuid.Nil, errs.ErrMissingToken
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return uuid.Nil, errs.ErrMissingToken
	}
	claims, err := g.codec.Verify(raw)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.Subject, nil
}

// Middleware decodes the token exactly once per request and stores the
// subject in the request context; handlers read it and never re-derive it.
func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := g.Admit(c.GetHeader("Authorization"))
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Set(subjectKey, subject)
		c.Next()
	}
}

// subjectFromCtx fetches the authenticated subject stored by Middleware.
func subjectFromCtx(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(subjectKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

package auth

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"edustack/internal/common"
)

const (
	ctxUserID    = "auth.userID"
	ctxSessionID = "auth.sessionID"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Gate resolves the session cookie on every request and guards routes
// that need a signed-in user.
type Gate struct {
	sessions SessionStore
	signer   *CookieSigner
	cookie   CookieConfig
}

func NewGate(sessions SessionStore, signer *CookieSigner, cookie CookieConfig) *Gate {
	if cookie.Name == "" {
		cookie.Name = "edustack_session"
	}
	if cookie.TTL <= 0 {
		cookie.TTL = 24 * time.Hour
	}
	return &Gate{sessions: sessions, signer: signer, cookie: cookie}
}

// Resolve attaches the signed-in user, if any, to the request and slides
// the session expiry. Bad or stale cookies are cleared.
func (g *Gate) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(g.cookie.Name)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		claims, err := g.signer.Parse(raw)
		if err != nil {
			g.clearCookie(c)
			c.Next()
			return
		}
		userID, ok, err := g.sessions.Lookup(c.Request.Context(), claims.ID, g.cookie.TTL)
		if err != nil {
			log.Printf("session lookup %s: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, common.BodyFromError(err))
			return
		}
		if !ok {
			g.clearCookie(c)
			c.Next()
			return
		}
		c.Set(ctxUserID, userID)
		c.Set(ctxSessionID, claims.ID)
		g.setCookie(c, raw, int(g.cookie.TTL.Seconds()))
		c.Next()
	}
}

// RequireSession rejects requests without a resolved session.
func (g *Gate) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.BodyFromError(common.ErrUnauthenticated))
			return
		}
		c.Next()
	}
}

// Begin starts a fresh session for userID, replacing any current one.
func (g *Gate) Begin(c *gin.Context, userID int64) error {
	ctx := c.Request.Context()
	if old, ok := c.Get(ctxSessionID); ok {
		if err := g.sessions.Delete(ctx, old.(string)); err != nil {
			return err
		}
	}
	id, err := g.sessions.Create(ctx, userID, g.cookie.TTL)
	if err != nil {
		return err
	}
	token, err := g.signer.Sign(id, userID)
	if err != nil {
		return err
	}
	c.Set(ctxUserID, userID)
	c.Set(ctxSessionID, id)
	g.setCookie(c, token, int(g.cookie.TTL.Seconds()))
	return nil
}

// End destroys the current session, if any, and expires the cookie.
func (g *Gate) End(c *gin.Context) error {
	defer g.clearCookie(c)
	id, ok := c.Get(ctxSessionID)
	if !ok {
		return nil
	}
	c.Set(ctxUserID, nil)
	return g.sessions.Delete(c.Request.Context(), id.(string))
}

// UserID returns the signed-in user of the request.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func (g *Gate) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(g.cookie.Name, value, maxAge, "/", "", g.cookie.Secure, true)
}

func (g *Gate) clearCookie(c *gin.Context) {
	g.setCookie(c, "", -1)
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
	"hirehub/pkg/token"
)

func newAuthRouter(tokens *token.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(logger.Nop()))
	r.GET("/admin", Authenticate(tokens, logger.Nop()), RequireRoles(domain.RoleAdmin), func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.UserID})
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func doRequest(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	r.ServeHTTP(w, req)
	return w
}

func msgOf(c *qt.C, w *httptest.ResponseRecorder) string {
	var body map[string]interface{}
	c.Assert(json.Unmarshal(w.Body.Bytes(), &body), qt.IsNil)
	msg, _ := body["msg"].(string)
	return msg
}

func TestAuthenticate(t *testing.T) {
	c := qt.New(t)
	tokens := token.NewManager("secret", time.Hour)
	r := newAuthRouter(tokens)

	w := doRequest(r, "/admin", "")
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(msgOf(c, w), qt.Equals, "No token, authorization denied")

	w = doRequest(r, "/admin", "garbage")
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(msgOf(c, w), qt.Equals, "Token is not valid")

	userToken, err := tokens.Issue(&domain.User{ID: 2, Role: domain.RoleUser})
	c.Assert(err, qt.IsNil)
	w = doRequest(r, "/admin", userToken)
	c.Assert(w.Code, qt.Equals, http.StatusForbidden)
	c.Assert(msgOf(c, w), qt.Equals, "Access denied")

	adminToken, err := tokens.Issue(&domain.User{ID: 1, Role: domain.RoleAdmin})
	c.Assert(err, qt.IsNil)
	w = doRequest(r, "/admin", adminToken)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
}

func TestRecoveryHidesPanicDetail(t *testing.T) {
	c := qt.New(t)
	r := newAuthRouter(token.NewManager("secret", time.Hour))

	w := doRequest(r, "/panic", "")
	c.Assert(w.Code, qt.Equals, http.StatusInternalServerError)
	c.Assert(msgOf(c, w), qt.Equals, "Server error")
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hostel-agent/history"
	"hostel-agent/web/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoResponder struct {
	calls int
}

func (r *echoResponder) Respond(_ context.Context, message string) string {
	r.calls++
	return "reply to: " + message
}

func newTestRouter(responder Responder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Session())

	h := NewChatHandler(responder, history.NewManager(), zap.NewNop())
	router.GET("/chat/history", h.History)
	router.POST("/chat", h.SendMessage)
	router.POST("/chat/clear", h.ClearSession)
	return router
}

// doJSON performs a request carrying the session cookie from a previous
// response, so successive calls land in the same session.
func doJSON(t *testing.T, router *gin.Engine, method, path, body string, cookies []*http.Cookie) (*httptest.ResponseRecorder, ChatResponse) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp ChatResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestSendMessageAppendsBothTurns(t *testing.T) {
	responder := &echoResponder{}
	router := newTestRouter(responder)

	w, resp := doJSON(t, router, http.MethodPost, "/chat", `{"message":"mess timings"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "user", resp.Messages[0].Role)
	assert.Equal(t, "mess timings", resp.Messages[0].Content)
	assert.Equal(t, "assistant", resp.Messages[1].Role)
	assert.Equal(t, "reply to: mess timings", resp.Messages[1].Content)
	assert.NotEmpty(t, resp.Messages[1].HTML)
	assert.Equal(t, "", resp.Reset)
	assert.Equal(t, 1, responder.calls)
}

func TestBlankMessageLeavesHistoryUnchanged(t *testing.T) {
	responder := &echoResponder{}
	router := newTestRouter(responder)

	// Seed one exchange, then send a blank message in the same session.
	w, _ := doJSON(t, router, http.MethodPost, "/chat", `{"message":"hello there"}`, nil)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w2, resp := doJSON(t, router, http.MethodPost, "/chat", `{"message":"   "}`, cookies)

	require.Equal(t, http.StatusOK, w2.Code)
	assert.Len(t, resp.Messages, 2)
	assert.Equal(t, "", resp.Reset)
	assert.Equal(t, 1, responder.calls)
}

func TestClearSessionEmptiesHistory(t *testing.T) {
	responder := &echoResponder{}
	router := newTestRouter(responder)

	w, _ := doJSON(t, router, http.MethodPost, "/chat", `{"message":"wifi password"}`, nil)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w2, resp := doJSON(t, router, http.MethodPost, "/chat/clear", "", cookies)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Empty(t, resp.Messages)

	_, after := doJSON(t, router, http.MethodGet, "/chat/history", "", cookies)
	assert.Empty(t, after.Messages)
}

func TestHistoryIsPerSession(t *testing.T) {
	responder := &echoResponder{}
	router := newTestRouter(responder)

	doJSON(t, router, http.MethodPost, "/chat", `{"message":"first session"}`, nil)

	// No cookie: the middleware mints a fresh session.
	_, resp := doJSON(t, router, http.MethodGet, "/chat/history", "", nil)
	assert.Empty(t, resp.Messages)
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvernberg/lovchat/pkg/api"
)

type stubBot struct {
	lastQuestion string
	answer       api.Answer
	err          error
}

func (s *stubBot) Ask(_ context.Context, question string, _ int) (api.Answer, error) {
	s.lastQuestion = question
	if s.err != nil {
		return api.Answer{}, s.err
	}
	a := s.answer
	a.Question = question
	return a, nil
}

func newTestServer(t *testing.T, bot Asker, reindex func(context.Context) error) *httptest.Server {
	t.Helper()
	v := viper.New()
	v.Set("auth.token", "secret")
	v.Set("openai.model", "gpt-4o-mini")
	srv := httptest.NewServer(New(v, bot, reindex).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubBot{}, nil)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, &stubBot{}, nil)
	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "LovChat")
	assert.Contains(t, string(body), "gpt-4o-mini")
}

func TestIndexPageUnknownPathIs404(t *testing.T) {
	srv := newTestServer(t, &stubBot{}, nil)
	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAsk(t *testing.T) {
	bot := &stubBot{answer: api.Answer{
		Text: "Svar.",
		HTML: "<p>Svar.</p>",
		Contexts: []api.RetrievalResult{
			{Score: 0.9, Chunk: api.Chunk{RefID: "lov-1", Title: "Ferieloven"}},
		},
	}}
	srv := newTestServer(t, bot, nil)

	resp, err := http.Post(srv.URL+"/api/ask", "application/json",
		strings.NewReader(`{"question":" Har jeg rett til ferie? "}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ans api.Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ans))
	assert.Equal(t, "Har jeg rett til ferie?", bot.lastQuestion, "question is trimmed")
	assert.Equal(t, "<p>Svar.</p>", ans.HTML)
	require.Len(t, ans.Contexts, 1)
	assert.Equal(t, "Ferieloven", ans.Contexts[0].Chunk.Title)
}

func TestAskValidation(t *testing.T) {
	srv := newTestServer(t, &stubBot{}, nil)

	resp, err := http.Get(srv.URL + "/api/ask")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/ask", "application/json", strings.NewReader(`{"question":"  "}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/ask", "application/json", strings.NewReader(`not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAskBackendFailure(t *testing.T) {
	srv := newTestServer(t, &stubBot{err: errors.New("boom")}, nil)
	resp, err := http.Post(srv.URL+"/api/ask", "application/json", strings.NewReader(`{"question":"x"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestReindexAuth(t *testing.T) {
	called := 0
	srv := newTestServer(t, &stubBot{}, func(context.Context) error { called++; return nil })

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/reindex", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, called)

	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/api/reindex", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, called)
}

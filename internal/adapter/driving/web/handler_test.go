package web_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gracehub/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/gracehub/internal/adapter/driving/web"
	"github.com/ericfisherdev/gracehub/internal/application"
)

func setupWeb(t *testing.T) (http.Handler, *application.MessageService) {
	t.Helper()

	db, err := sqlite.NewDB(context.Background(), filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = sqlite.RunMigrations(db.Writer)
	require.NoError(t, err)

	messages := application.NewMessageService(sqlite.NewMessageRepo(db))
	mux := http.NewServeMux()
	web.RegisterRoutes(mux, web.NewHandler(messages, slog.New(slog.NewTextHandler(io.Discard, nil))))
	return mux, messages
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHome_NoActiveMessage(t *testing.T) {
	h, _ := setupWeb(t)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<title>Grace Hub</title>")
	assert.Contains(t, rec.Body.String(), `class="empty"`)
}

func TestHome_ShowsActiveMessage(t *testing.T) {
	h, messages := setupWeb(t)

	_, err := messages.Create(context.Background(), application.MessageInput{Title: "Old <news>", Body: "yesterday"})
	require.NoError(t, err)
	_, err = messages.Create(context.Background(), application.MessageInput{Title: "Sunday & Beyond", Body: "See you **Sunday**.<script>x()</script>"})
	require.NoError(t, err)

	body := get(t, h, "/").Body.String()
	assert.Contains(t, body, "Sunday &amp; Beyond")
	assert.Contains(t, body, "<strong>Sunday</strong>")
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "Old")
}

func TestHome_UnknownPathIsNotFound(t *testing.T) {
	h, _ := setupWeb(t)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)
}

func TestStaticAssets(t *testing.T) {
	h, _ := setupWeb(t)

	rec := get(t, h, "/static/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".pastor-message")
}

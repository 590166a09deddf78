package httpapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lifeos/internal/platform/config"
	apperrors "lifeos/internal/platform/errors"
	"lifeos/internal/platform/httpapi"
	"lifeos/internal/platform/httpapi/apitest"
)

func TestDoSendsJSONWithDefaultHeaders(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/niches/", http.StatusOK, map[string]any{"id": 3, "name": "Work"})

	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	err := srv.Client().Do(context.Background(), http.MethodPost, "/niches/", nil, map[string]string{"name": "Work"}, &out)
	require.NoError(t, err)
	require.Equal(t, int64(3), out.ID)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "application/json", calls[0].Header.Get("Content-Type"))
	require.Equal(t, "true", calls[0].Header.Get("ngrok-skip-browser-warning"))
	require.JSONEq(t, `{"name":"Work"}`, string(calls[0].Body))
}

func TestNon2xxCarriesBodyAsMessage(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.Fail(http.MethodGet, "/tasks/profile", http.StatusServiceUnavailable, "AI not configured")
	srv.Fail(http.MethodGet, "/tasks/stats", http.StatusNotFound, "")

	err := srv.Client().Do(context.Background(), http.MethodGet, "/tasks/profile", nil, nil, nil)
	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
	require.Equal(t, "AI not configured", err.Error())

	err = srv.Client().Do(context.Background(), http.MethodGet, "/tasks/stats", nil, nil, nil)
	require.Equal(t, "request failed: 404", err.Error())
	require.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestQueryIsEncoded(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/tasks/{id}/log", http.StatusOK, map[string]string{"status": "logged"})

	q := url.Values{"status": {"done"}, "note": {"felt great & fast"}}
	require.NoError(t, srv.Client().Do(context.Background(), http.MethodPost, "/tasks/7/log", q, nil, nil))
	calls := srv.Calls()
	require.Equal(t, "done", calls[0].Query.Get("status"))
	require.Equal(t, "felt great & fast", calls[0].Query.Get("note"))
	require.Empty(t, calls[0].Body)
}

func TestUploadUsesMultipartBoundary(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	var gotMode, gotFile string
	srv.Handle(http.MethodPost, "/banana/magic", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotMode = r.FormValue("mode")
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		raw, _ := io.ReadAll(f)
		gotFile = hdr.Filename + ":" + string(raw)
		apitest.Write(w, http.StatusOK, map[string]string{"result": "data:image/png;base64,AAA"})
	})

	var out struct {
		Result string `json:"result"`
	}
	err := srv.Client().Upload(context.Background(), "/banana/magic",
		map[string]string{"mode": "anime"},
		httpapi.File{Field: "file", Name: "/tmp/me.png", Data: strings.NewReader("PNG")}, &out)
	require.NoError(t, err)
	require.Equal(t, "anime", gotMode)
	require.Equal(t, "me.png:PNG", gotFile)
	require.Equal(t, "data:image/png;base64,AAA", out.Result)
	require.True(t, strings.HasPrefix(srv.Calls()[0].Header.Get("Content-Type"), "multipart/form-data; boundary="))
}

func TestTransportFailureIsWrapped(t *testing.T) {
	t.Parallel()
	client := httpapi.New(config.APIConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, zap.NewNop())
	err := client.Do(context.Background(), http.MethodGet, "/niches/", nil, nil, nil)
	require.True(t, errors.Is(err, apperrors.ErrTransport), "got %v", err)
}

func TestCancelledContextIsReturnedAsIs(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/niches/", http.StatusOK, []any{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := srv.Client().Do(ctx, http.MethodGet, "/niches/", nil, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBaseTrailingSlashIsTrimmed(t *testing.T) {
	t.Parallel()
	c := httpapi.New(config.APIConfig{BaseURL: "https://api.example.com/", Timeout: time.Second}, nil)
	require.Equal(t, "https://api.example.com/tasks/?niche_id=2", c.URL("/tasks/", url.Values{"niche_id": {"2"}}))
}

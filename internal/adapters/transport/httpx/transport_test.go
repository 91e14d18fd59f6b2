package httpx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/emetic/internal/ports"
)

func TestSendPostsBodyAndHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sys/login/auth.do", r.URL.Path)
		assert.Equal(t, "callback=", r.URL.RawQuery)
		assert.Equal(t, "text/plain;charset=UTF-8", r.Header.Get("Content-Type"))
		assert.Equal(t, "WMONID=w", r.Header.Get("Cookie"))
		assert.Equal(t, "gzip, deflate", r.Header.Get("Accept-Encoding"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "SSV:utf-8\x1ea=1", string(body))

		http.SetCookie(w, &http.Cookie{Name: "ZSESSIONID", Value: "z"})
		_, _ = w.Write([]byte("SSV:utf-8"))
	}))
	t.Cleanup(server.Close)

	transport := Transport{BaseURL: server.URL, HTTPClient: server.Client()}
	header := http.Header{}
	header.Set("Content-Type", "text/plain;charset=UTF-8")
	header.Set("Cookie", "WMONID=w")

	resp, err := transport.Send(context.Background(), ports.Request{
		Path:   "/sys/login/auth.do?callback=",
		Header: header,
		Body:   []byte("SSV:utf-8\x1ea=1"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SSV:utf-8", string(resp.Body))
	assert.Equal(t, []string{"ZSESSIONID=z"}, resp.Header.Values("Set-Cookie"))
}

func TestSendDecodesCompressedBodies(t *testing.T) {
	t.Parallel()

	payload := []byte("SSV:utf-8\x1eErrorCode:int=0")

	var gzipped bytes.Buffer
	gz := gzip.NewWriter(&gzipped)
	_, err := gz.Write(payload)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	var deflated bytes.Buffer
	fl, err := flate.NewWriter(&deflated, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = fl.Write(payload)
	require.NoError(t, err)
	require.NoError(t, fl.Close())

	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{name: "gzip", encoding: "gzip", body: gzipped.Bytes()},
		{name: "deflate", encoding: "deflate", body: deflated.Bytes()},
		{name: "identity", encoding: "", body: payload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.encoding != "" {
					w.Header().Set("Content-Encoding", tt.encoding)
				}
				_, _ = w.Write(tt.body)
			}))
			t.Cleanup(server.Close)

			resp, err := Transport{BaseURL: server.URL, HTTPClient: server.Client()}.Send(context.Background(), ports.Request{Path: "/x"})
			require.NoError(t, err)
			assert.Equal(t, payload, resp.Body)
		})
	}
}

func TestSendReturnsNonSuccessStatusWithoutError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	resp, err := Transport{BaseURL: server.URL, HTTPClient: server.Client()}.Send(context.Background(), ports.Request{Path: "/x"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "502 Bad Gateway", resp.Status)
}

func TestSendRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), maxResponseBytes+1))
	}))
	t.Cleanup(server.Close)

	_, err := Transport{BaseURL: server.URL, HTTPClient: server.Client()}.Send(context.Background(), ports.Request{Path: "/x"})
	assert.ErrorIs(t, err, ErrResponseTooLarge)
}

func TestSendTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	transport := Transport{BaseURL: server.URL, HTTPClient: server.Client(), RequestTimeout: 20 * time.Millisecond}
	_, err := transport.Send(context.Background(), ports.Request{Path: "/x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post /x")
}

func TestBuildURLValidatesBase(t *testing.T) {
	t.Parallel()

	_, err := buildURL("", "/x")
	assert.ErrorContains(t, err, "base url is required")
	_, err = buildURL("ftp://zeus", "/x")
	assert.ErrorContains(t, err, "http or https")

	got, err := buildURL("https://zeus.gist.ac.kr", "/amc/amcDailyTempRegE/select.do")
	require.NoError(t, err)
	assert.Equal(t, "https://zeus.gist.ac.kr/amc/amcDailyTempRegE/select.do", got)
}

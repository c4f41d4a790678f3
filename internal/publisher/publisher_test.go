package publisher

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/promojour/promojour/internal/graph"
	"github.com/promojour/promojour/storage/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeConnection(platform string) db.SocialConnection {
	return db.SocialConnection{
		ID:          "conn-1",
		StoreID:     "store-1",
		Platform:    platform,
		AccountID:   sql.NullString{String: "account-1", Valid: true},
		IsConnected: true,
		AccessToken: sql.NullString{String: "token-123", Valid: true},
	}
}

func TestForPlatform(t *testing.T) {
	client := graph.NewClient()

	fb, err := ForPlatform(PlatformFacebook, client)
	require.NoError(t, err)
	assert.IsType(t, &FacebookPublisher{}, fb)

	ig, err := ForPlatform(PlatformInstagram, client)
	require.NoError(t, err)
	assert.IsType(t, &InstagramPublisher{}, ig)

	_, err = ForPlatform("myspace", client)
	assert.Error(t, err)
}

func TestPublishRejectsInactiveConnection(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := graph.NewClientWithBaseURLs(server.URL, server.URL)

	conn := activeConnection(PlatformFacebook)
	conn.IsConnected = false

	for _, p := range []Publisher{NewFacebookPublisher(client), NewInstagramPublisher(client)} {
		_, err := p.Publish(context.Background(), conn, Media{VideoURL: "https://cdn.example.com/v.mp4"})
		assert.Error(t, err)
	}

	// Connection without a token is equally unusable even when flagged connected.
	conn = activeConnection(PlatformInstagram)
	conn.AccessToken = sql.NullString{}
	_, err := NewInstagramPublisher(client).Publish(context.Background(), conn, Media{VideoURL: "https://cdn.example.com/v.mp4"})
	assert.Error(t, err)

	assert.Equal(t, int64(0), calls.Load())
}

func TestPublishRejectsMedialessPromotion(t *testing.T) {
	client := graph.NewClient()
	_, err := NewFacebookPublisher(client).Publish(context.Background(), activeConnection(PlatformFacebook), Media{Caption: "text only"})
	assert.Error(t, err)
}

func TestFacebookReelSequence(t *testing.T) {
	var phases []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v21.0/account-1/video_reels":
			require.NoError(t, r.ParseForm())
			phases = append(phases, r.FormValue("upload_phase"))
			_, _ = w.Write([]byte(`{"video_id":"video-9"}`))
		case "/video-upload/v21.0/video-9":
			phases = append(phases, "upload")
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := graph.NewClientWithBaseURLs(server.URL, server.URL)
	postID, err := NewFacebookPublisher(client).Publish(context.Background(), activeConnection(PlatformFacebook), Media{
		Caption:  "Weekend special",
		VideoURL: "https://cdn.example.com/v.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, "video-9", postID)
	assert.Equal(t, []string{"start", "upload", "finish"}, phases)
}

func TestFacebookImagePost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/account-1/photos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"photo-5"}`))
	}))
	defer server.Close()

	client := graph.NewClientWithBaseURLs(server.URL, server.URL)
	postID, err := NewFacebookPublisher(client).Publish(context.Background(), activeConnection(PlatformFacebook), Media{
		Caption:  "Weekend special",
		ImageURL: "https://cdn.example.com/p.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "photo-5", postID)
}

func TestInstagramReelPollsUntilFinished(t *testing.T) {
	var statusCalls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v21.0/account-1/media":
			_, _ = w.Write([]byte(`{"id":"container-1"}`))
		case "/v21.0/container-1":
			status := "IN_PROGRESS"
			if statusCalls.Add(1) >= 3 {
				status = "FINISHED"
			}
			_, _ = fmt.Fprintf(w, `{"status_code":%q}`, status)
		case "/v21.0/account-1/media_publish":
			_, _ = w.Write([]byte(`{"id":"media-7"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := graph.NewClientWithBaseURLs(server.URL, server.URL)
	p := NewInstagramPublisher(client)
	p.SetPollInterval(0)

	postID, err := p.Publish(context.Background(), activeConnection(PlatformInstagram), Media{
		Caption:  "Weekend special",
		VideoURL: "https://cdn.example.com/v.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, "media-7", postID)
	assert.Equal(t, int64(3), statusCalls.Load())
}

func TestInstagramReelProcessingErrorIsTerminal(t *testing.T) {
	var statusCalls, publishCalls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v21.0/account-1/media":
			_, _ = w.Write([]byte(`{"id":"container-1"}`))
		case "/v21.0/container-1":
			status := "IN_PROGRESS"
			if statusCalls.Add(1) >= 3 {
				status = "ERROR"
			}
			_, _ = fmt.Fprintf(w, `{"status_code":%q}`, status)
		case "/v21.0/account-1/media_publish":
			publishCalls.Add(1)
			_, _ = w.Write([]byte(`{"id":"media-7"}`))
		}
	}))
	defer server.Close()

	client := graph.NewClientWithBaseURLs(server.URL, server.URL)
	p := NewInstagramPublisher(client)
	p.SetPollInterval(0)

	_, err := p.Publish(context.Background(), activeConnection(PlatformInstagram), Media{VideoURL: "https://cdn.example.com/v.mp4"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed processing")
	assert.Equal(t, int64(3), statusCalls.Load(), "polling must stop at the ERROR status")
	assert.Equal(t, int64(0), publishCalls.Load())
}

func TestInstagramReelPollTimeout(t *testing.T) {
	var statusCalls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v21.0/account-1/media":
			_, _ = w.Write([]byte(`{"id":"container-1"}`))
		case "/v21.0/container-1":
			statusCalls.Add(1)
			_, _ = w.Write([]byte(`{"status_code":"IN_PROGRESS"}`))
		}
	}))
	defer server.Close()

	client := graph.NewClientWithBaseURLs(server.URL, server.URL)
	p := NewInstagramPublisher(client)
	p.SetPollInterval(0)

	_, err := p.Publish(context.Background(), activeConnection(PlatformInstagram), Media{VideoURL: "https://cdn.example.com/v.mp4"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not finish processing")
	assert.Equal(t, int64(30), statusCalls.Load())
}

func TestInstagramImagePostSkipsPolling(t *testing.T) {
	var statusCalls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v21.0/account-1/media":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "https://cdn.example.com/p.jpg", r.FormValue("image_url"))
			_, _ = w.Write([]byte(`{"id":"container-1"}`))
		case "/v21.0/container-1":
			statusCalls.Add(1)
		case "/v21.0/account-1/media_publish":
			_, _ = w.Write([]byte(`{"id":"media-7"}`))
		}
	}))
	defer server.Close()

	client := graph.NewClientWithBaseURLs(server.URL, server.URL)
	postID, err := NewInstagramPublisher(client).Publish(context.Background(), activeConnection(PlatformInstagram), Media{
		ImageURL: "https://cdn.example.com/p.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "media-7", postID)
	assert.Equal(t, int64(0), statusCalls.Load())
}

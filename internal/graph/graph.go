package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	apiVersion       = "v21.0"
	defaultBaseURL   = "https://graph.facebook.com"
	defaultUploadURL = "https://rupload.facebook.com"
)

// Client is a thin wrapper around the Meta Graph API endpoints used for
// publishing promotions to Facebook pages and Instagram business accounts.
type Client struct {
	baseURL    string
	uploadURL  string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		uploadURL: defaultUploadURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURLs overrides the Graph and rupload hosts, used by tests.
func NewClientWithBaseURLs(baseURL, uploadURL string) *Client {
	c := NewClient()
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.uploadURL = strings.TrimRight(uploadURL, "/")
	return c
}

// APIError is the decoded Graph API error envelope.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
	TraceID string `json:"fbtrace_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph api error (code %d, type %s): %s", e.Code, e.Type, e.Message)
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

type idResponse struct {
	ID string `json:"id"`
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/%s%s", c.baseURL, apiVersion, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/%s%s?%s", c.baseURL, apiVersion, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var envelope errorEnvelope
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
			return envelope.Error
		}
		return fmt.Errorf("graph api error: status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// CreateReelContainer creates an Instagram media container for a Reel from a
// remote video URL. The container processes asynchronously; poll
// ContainerStatus before publishing.
func (c *Client) CreateReelContainer(ctx context.Context, igUserID, accessToken, videoURL, caption string) (string, error) {
	form := url.Values{}
	form.Set("media_type", "REELS")
	form.Set("video_url", videoURL)
	form.Set("caption", caption)
	form.Set("access_token", accessToken)

	var resp idResponse
	if err := c.postForm(ctx, fmt.Sprintf("/%s/media", igUserID), form, &resp); err != nil {
		return "", fmt.Errorf("create reel container: %w", err)
	}
	return resp.ID, nil
}

// CreateImageContainer creates an Instagram media container for a single
// image post. Image containers are ready immediately.
func (c *Client) CreateImageContainer(ctx context.Context, igUserID, accessToken, imageURL, caption string) (string, error) {
	form := url.Values{}
	form.Set("image_url", imageURL)
	form.Set("caption", caption)
	form.Set("access_token", accessToken)

	var resp idResponse
	if err := c.postForm(ctx, fmt.Sprintf("/%s/media", igUserID), form, &resp); err != nil {
		return "", fmt.Errorf("create image container: %w", err)
	}
	return resp.ID, nil
}

// ContainerStatus returns the processing status_code of a media container:
// IN_PROGRESS, FINISHED or ERROR.
func (c *Client) ContainerStatus(ctx context.Context, containerID, accessToken string) (string, error) {
	query := url.Values{}
	query.Set("fields", "status_code,status")
	query.Set("access_token", accessToken)

	var resp struct {
		StatusCode string `json:"status_code"`
		Status     string `json:"status"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/%s", containerID), query, &resp); err != nil {
		return "", fmt.Errorf("container status: %w", err)
	}
	return resp.StatusCode, nil
}

// PublishContainer makes a finished Instagram container live and returns the
// published media ID.
func (c *Client) PublishContainer(ctx context.Context, igUserID, accessToken, containerID string) (string, error) {
	form := url.Values{}
	form.Set("creation_id", containerID)
	form.Set("access_token", accessToken)

	var resp idResponse
	if err := c.postForm(ctx, fmt.Sprintf("/%s/media_publish", igUserID), form, &resp); err != nil {
		return "", fmt.Errorf("publish container: %w", err)
	}
	return resp.ID, nil
}

// StartReelUpload begins a Facebook Reels upload session for a page and
// returns the video ID used by the upload and finish phases.
func (c *Client) StartReelUpload(ctx context.Context, pageID, accessToken string) (string, error) {
	form := url.Values{}
	form.Set("upload_phase", "start")
	form.Set("access_token", accessToken)

	var resp struct {
		VideoID  string `json:"video_id"`
		UploadID string `json:"upload_url"`
	}
	if err := c.postForm(ctx, fmt.Sprintf("/%s/video_reels", pageID), form, &resp); err != nil {
		return "", fmt.Errorf("start reel upload: %w", err)
	}
	return resp.VideoID, nil
}

// UploadReelByURL instructs the rupload host to pull the video from a remote
// URL into the upload session started by StartReelUpload.
func (c *Client) UploadReelByURL(ctx context.Context, videoID, accessToken, fileURL string) error {
	endpoint := fmt.Sprintf("%s/video-upload/%s/%s", c.uploadURL, apiVersion, videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+accessToken)
	req.Header.Set("file_url", fileURL)

	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.do(req, &resp); err != nil {
		return fmt.Errorf("upload reel: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("upload reel: upload host reported failure")
	}
	return nil
}

// FinishReelUpload completes the Reels upload session and publishes the video
// to the page.
func (c *Client) FinishReelUpload(ctx context.Context, pageID, videoID, accessToken, description string) error {
	form := url.Values{}
	form.Set("upload_phase", "finish")
	form.Set("video_id", videoID)
	form.Set("video_state", "PUBLISHED")
	form.Set("description", description)
	form.Set("access_token", accessToken)

	if err := c.postForm(ctx, fmt.Sprintf("/%s/video_reels", pageID), form, nil); err != nil {
		return fmt.Errorf("finish reel upload: %w", err)
	}
	return nil
}

// PublishPhoto posts an image to a Facebook page feed from a remote URL and
// returns the post ID.
func (c *Client) PublishPhoto(ctx context.Context, pageID, accessToken, imageURL, caption string) (string, error) {
	form := url.Values{}
	form.Set("url", imageURL)
	form.Set("caption", caption)
	form.Set("access_token", accessToken)

	var resp struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	if err := c.postForm(ctx, fmt.Sprintf("/%s/photos", pageID), form, &resp); err != nil {
		return "", fmt.Errorf("publish photo: %w", err)
	}
	if resp.PostID != "" {
		return resp.PostID, nil
	}
	return resp.ID, nil
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tesso57/storyterm/internal/application/usecase"
	"github.com/tesso57/storyterm/internal/domain/apperr"
	"github.com/tesso57/storyterm/internal/domain/story"
	"github.com/tesso57/storyterm/internal/infrastructure/logx"
)

// TaskClient talks to the task/story service.
type TaskClient struct {
	client *Client
	base   *url.URL
}

var _ usecase.StoryGateway = (*TaskClient)(nil)

// NewTaskClient binds c to the task service at baseURL.
func NewTaskClient(c *Client, baseURL string) (*TaskClient, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}
	return &TaskClient{client: c, base: base}, nil
}

// List returns one page of view. The public feed lives at the service root,
// the caller's own stories under "show".
func (t *TaskClient) List(ctx context.Context, view story.View, page, limit int) ([]story.Story, error) {
	ref, endpoint := "", "tasks.all"
	if view == story.MineView {
		ref, endpoint = "show", "tasks.mine"
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	body, err := t.client.do(ctx, call{
		endpoint: endpoint,
		method:   http.MethodGet,
		url:      resolve(t.base, ref, query),
		want:     http.StatusOK,
	})
	if err != nil {
		return nil, err
	}

	return decodeStories(endpoint, body), nil
}

// decodeStories reads the "data" array of a listing body. A missing or
// non-array payload is an empty page; entries that do not decode are skipped.
func decodeStories(endpoint string, body []byte) []story.Story {
	var payload struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		logx.Debug("listing body is not an object", "endpoint", endpoint, "error", err.Error())
		return []story.Story{}
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(payload.Data, &raw); err != nil {
		logx.Debug("listing data is not an array", "endpoint", endpoint)
		return []story.Story{}
	}

	out := make([]story.Story, 0, len(raw))
	for i, entry := range raw {
		var s story.Story
		if err := json.Unmarshal(entry, &s); err != nil {
			logx.Debug("skipping malformed story", "endpoint", endpoint, "index", i, "error", err.Error())
			continue
		}
		out = append(out, s)
	}
	return out
}

// Create posts a new story owned by the session user.
func (t *TaskClient) Create(ctx context.Context, draft story.Draft) error {
	_, err := t.client.do(ctx, call{
		endpoint: "tasks.create",
		method:   http.MethodPost,
		url:      resolve(t.base, "create", nil),
		body:     draft,
		want:     http.StatusCreated,
	})
	return err
}

// Delete removes the story with id.
func (t *TaskClient) Delete(ctx context.Context, id string) error {
	if id == "" || strings.ContainsAny(id, "/?#") {
		return apperr.New(apperr.Unknown, 0, "", fmt.Errorf("invalid story id %q", id))
	}
	_, err := t.client.do(ctx, call{
		endpoint: "tasks.delete",
		method:   http.MethodDelete,
		url:      resolve(t.base, id, nil),
		want:     http.StatusOK,
	})
	return err
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/tesso57/storyterm/internal/domain/apperr"
	"github.com/tesso57/storyterm/internal/domain/story"
	"github.com/tesso57/storyterm/internal/infrastructure/logx"
)

// ErrSuperseded is returned by a fetch whose result was discarded because a
// newer fetch was issued while it was in flight.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

const (
	createFallback  = "Failed to create story"
	deleteFallback  = "Failed to delete story"
	requiredFields  = "Title and description are required"
	missingStoryID  = "No story selected"
	fetchAllFailed  = "Failed to fetch all stories"
	fetchMineFailed = "Failed to fetch your stories"
)

// FeedManager owns the paginated story listing for one view.
// It is safe for concurrent use; the most recently issued fetch always
// determines the final state, whatever order responses arrive in.
type FeedManager struct {
	Stories StoryGateway

	mu    sync.RWMutex
	seq   uint64
	state story.FeedState

	// last attempted query, which differs from state.View/Page after a failure
	wantView story.View
	wantPage int
}

// NewFeedManager constructs a FeedManager showing page 1 of the public feed.
func NewFeedManager(stories StoryGateway) *FeedManager {
	return &FeedManager{
		Stories: stories,
		state: story.FeedState{
			View:     story.AllView,
			Page:     1,
			PageSize: story.PageSize,
		},
		wantView: story.AllView,
		wantPage: 1,
	}
}

// State returns a snapshot of the feed.
func (m *FeedManager) State() story.FeedState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	s.Items = slices.Clone(m.state.Items)
	return s
}

// Fetch replaces the current page with page of view. Items are exactly what
// the service returned. On failure the previous items are kept and LastError is set.
func (m *FeedManager) Fetch(ctx context.Context, view story.View, page int) error {
	if !view.Valid() {
		return fmt.Errorf("invalid view %q", view)
	}
	if page < 1 {
		return fmt.Errorf("invalid page %d", page)
	}

	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.state.Loading = true
	m.state.LastError = nil
	m.wantView, m.wantPage = view, page
	m.mu.Unlock()

	items, err := m.Stories.List(ctx, view, page, story.PageSize)

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.seq {
		logx.Debug("discarding stale feed response", "view", string(view), "page", page)
		return ErrSuperseded
	}
	m.state.Loading = false

	if err != nil {
		fallback := fetchAllFailed
		if view == story.MineView {
			fallback = fetchMineFailed
		}
		classified := apperr.Reclassify(err, apperr.FetchFailed, fallback)
		if classified.Kind == apperr.FetchFailed {
			// Listing failures always show the view-specific message.
			classified.Message = fallback
		}
		m.state.LastError = classified
		logx.Warn("feed fetch failed", "view", string(view), "page", page, "kind", classified.Kind.String())
		return classified
	}

	if items == nil {
		items = []story.Story{}
	}
	m.state.Items = items
	m.state.View = view
	m.state.Page = page
	m.state.PageSize = story.PageSize
	m.state.HasMore = story.PageHasMore(len(items), story.PageSize)
	m.state.LastError = nil
	return nil
}

// Refresh reloads the current view from the first page.
func (m *FeedManager) Refresh(ctx context.Context) error {
	return m.Fetch(ctx, m.currentView(), 1)
}

// Retry re-issues the last attempted query, including one that failed.
func (m *FeedManager) Retry(ctx context.Context) error {
	m.mu.RLock()
	view, page := m.wantView, m.wantPage
	m.mu.RUnlock()
	return m.Fetch(ctx, view, page)
}

// ChangePage loads page n of the current view. Pages below 1 are ignored.
func (m *FeedManager) ChangePage(ctx context.Context, n int) error {
	if n < 1 {
		return nil
	}
	return m.Fetch(ctx, m.currentView(), n)
}

// SwitchView loads the first page of view.
func (m *FeedManager) SwitchView(ctx context.Context, view story.View) error {
	return m.Fetch(ctx, view, 1)
}

// Reset applies the default-view policy for identity and loads its first page.
func (m *FeedManager) Reset(ctx context.Context, identity *story.User) error {
	return m.Fetch(ctx, story.DefaultView(identity), 1)
}

// Create submits a new story and reloads the first page of the current view.
func (m *FeedManager) Create(ctx context.Context, draft story.Draft) Result {
	if !draft.Validate() {
		return Fail(apperr.New(apperr.MutationFailed, 0, requiredFields, nil))
	}
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)

	if err := m.Stories.Create(ctx, draft); err != nil {
		logx.Info("create story rejected", "kind", apperr.KindOf(err).String())
		return Fail(apperr.Reclassify(err, apperr.MutationFailed, createFallback))
	}
	m.reload(ctx, m.currentView(), 1)
	return Ok()
}

// Delete removes a story and reloads the current page without backfilling.
func (m *FeedManager) Delete(ctx context.Context, id string) Result {
	id = strings.TrimSpace(id)
	if id == "" {
		return Fail(apperr.New(apperr.MutationFailed, 0, missingStoryID, nil))
	}
	if err := m.Stories.Delete(ctx, id); err != nil {
		logx.Info("delete story rejected", "kind", apperr.KindOf(err).String())
		return Fail(apperr.Reclassify(err, apperr.MutationFailed, deleteFallback))
	}
	s := m.State()
	m.reload(ctx, s.View, s.Page)
	return Ok()
}

// reload follows a successful mutation; its errors land in LastError.
func (m *FeedManager) reload(ctx context.Context, view story.View, page int) {
	if err := m.Fetch(ctx, view, page); err != nil && !errors.Is(err, ErrSuperseded) {
		logx.Debug("reload after mutation failed", "error", err.Error())
	}
}

func (m *FeedManager) currentView() story.View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.View
}

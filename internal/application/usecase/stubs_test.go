package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/tesso57/storyterm/internal/domain/story"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Me(ctx context.Context) (*story.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*story.User)
	return user, args.Error(1)
}

func (m *mockAuth) SignIn(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}

func (m *mockAuth) SignUp(ctx context.Context, req SignupRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuth) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockStories struct {
	mock.Mock
}

func (m *mockStories) List(ctx context.Context, view story.View, page, limit int) ([]story.Story, error) {
	args := m.Called(ctx, view, page, limit)
	items, _ := args.Get(0).([]story.Story)
	return items, args.Error(1)
}

func (m *mockStories) Create(ctx context.Context, draft story.Draft) error {
	return m.Called(ctx, draft).Error(0)
}

func (m *mockStories) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// gatedStories blocks List for gated pages until the gate is closed.
type gatedStories struct {
	mu      sync.Mutex
	pages   map[int][]story.Story
	gates   map[int]chan struct{}
	fail    map[int]error
	started chan int
}

func newGatedStories(pages map[int][]story.Story) *gatedStories {
	return &gatedStories{
		pages:   pages,
		gates:   make(map[int]chan struct{}),
		fail:    make(map[int]error),
		started: make(chan int, 4),
	}
}

func (g *gatedStories) gate(page int) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.gates[page] = ch
	return ch
}

// failOnce makes the next List of page return err.
func (g *gatedStories) failOnce(page int, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail[page] = err
}

func (g *gatedStories) List(_ context.Context, _ story.View, page, _ int) ([]story.Story, error) {
	g.mu.Lock()
	gate := g.gates[page]
	err := g.fail[page]
	delete(g.fail, page)
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if gate != nil {
		g.started <- page
		<-gate
	}
	return g.pages[page], nil
}

func (g *gatedStories) Create(context.Context, story.Draft) error { return nil }

func (g *gatedStories) Delete(context.Context, string) error { return nil }

func stories(prefix string, n int) []story.Story {
	out := make([]story.Story, n)
	for i := range out {
		out[i] = story.Story{
			ID:          prefix + string(rune('a'+i)),
			Title:       prefix + " title",
			Description: prefix + " description",
		}
	}
	return out
}

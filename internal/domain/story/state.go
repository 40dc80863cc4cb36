package story

// Session is the client-side view of the authenticated session.
type Session struct {
	Identity  *User
	Resolving bool
}

// SignedIn reports whether an identity has been resolved.
func (s Session) SignedIn() bool {
	return s.Identity != nil
}

// FeedState is the current page of stories and the query that produced it.
type FeedState struct {
	Items     []Story
	View      View
	Page      int
	PageSize  int
	HasMore   bool
	Loading   bool
	LastError error
}

// HasPrev reports whether a previous page exists.
func (s FeedState) HasPrev() bool {
	return s.Page > 1
}

// Empty reports whether a settled, error-free fetch returned nothing.
func (s FeedState) Empty() bool {
	return !s.Loading && s.LastError == nil && len(s.Items) == 0
}

// PageHasMore applies the full-page heuristic: a page holding exactly pageSize
// items is assumed to have a successor.
func PageHasMore(count, pageSize int) bool {
	return pageSize > 0 && count == pageSize
}

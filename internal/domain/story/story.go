// Package story defines the core story-sharing models.
package story

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PageSize is the fixed number of stories requested per page.
const PageSize = 5

// User is the authenticated account as reported by the user service.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UnmarshalJSON accepts both "_id" and "id" for the identifier.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.plain)
	if u.ID == "" {
		u.ID = raw.MongoID
	}
	return nil
}

// DisplayName returns "First Last", falling back to the email address.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Email
	}
	return name
}

// Story is a user-authored post.
type Story struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        Tags   `json:"tags"`
	OwnerID     string `json:"owner,omitempty"`
}

// UnmarshalJSON accepts the identifier and owner under the names used by the task service.
func (s *Story) UnmarshalJSON(data []byte) error {
	type plain Story
	var raw struct {
		plain
		MongoID string `json:"_id"`
		UserID  string `json:"userId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Story(raw.plain)
	if s.ID == "" {
		s.ID = raw.MongoID
	}
	if s.OwnerID == "" {
		s.OwnerID = raw.UserID
	}
	return nil
}

// Tags is the ordered tag list of a story.
// The task service may return it either as an array or as the raw space-separated string
// it was submitted with; both decode to the same slice.
type Tags []string

// UnmarshalJSON decodes a JSON array or a space-separated string.
func (t *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = SplitTags(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	out := make([]string, 0, len(list))
	for _, tag := range list {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	*t = out
	return nil
}

// SplitTags splits a free-text tag string on whitespace.
func SplitTags(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Draft is the payload submitted when creating a story.
// Tags is sent to the task service exactly as typed.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

// Validate reports whether the required fields are present.
func (d Draft) Validate() bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.Description) != ""
}

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", RateLimit(nil))

	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.False(t, errors.Is(err, ErrFetchFailed))
	assert.Equal(t, RateLimited, KindOf(err))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "bad password", Message(New(AuthFailure, 400, "bad password", nil), "fallback"))
	assert.Equal(t, "fallback", Message(New(AuthFailure, 400, "", nil), "fallback"))
}

func TestReclassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    Kind
		wantMsg string
		want    Kind
	}{
		{name: "plain error", err: errors.New("dial tcp"), kind: FetchFailed, wantMsg: "Failed", want: FetchFailed},
		{name: "server message kept", err: New(Unknown, 400, "Title taken", nil), kind: MutationFailed, wantMsg: "Title taken", want: MutationFailed},
		{name: "empty message uses fallback", err: New(Unknown, 500, "", nil), kind: MutationFailed, wantMsg: "Failed", want: MutationFailed},
		{name: "rate limit preserved", err: RateLimit(nil), kind: AuthFailure, wantMsg: RateLimitMessage, want: RateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reclassify(tt.err, tt.kind, "Failed")
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}

	assert.Nil(t, Reclassify(nil, FetchFailed, "x"))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "rate_limited (HTTP 429): "+RateLimitMessage, RateLimit(nil).Error())
	assert.Equal(t, "fetch_failed: dial tcp", (&Error{Kind: FetchFailed, Err: errors.New("dial tcp")}).Error())
}

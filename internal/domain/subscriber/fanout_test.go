package subscriber

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/arianshop/backend/internal/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSender captures every dispatch and fails the addresses it is
// told to fail.
type recordingSender struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (r *recordingSender) SendNewsletter(ctx context.Context, to, subject string, data email.NewsletterData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, to)
	if err, ok := r.failFor[to]; ok {
		return err
	}
	return nil
}

func TestFanOutAllSucceed(t *testing.T) {
	subs := []Subscriber{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
		{Email: "c@example.com"},
	}
	sender := &recordingSender{}

	results := FanOut(context.Background(), subs, "Hello", email.NewsletterData{Message: "hi"}, sender)

	require.Len(t, results, 3)
	for i, result := range results {
		assert.Equal(t, subs[i].Email, result.Email, "results must be index-aligned")
		assert.Equal(t, "success", result.Status)
		assert.Empty(t, result.Error)
	}
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com", "c@example.com"}, sender.sent)
}

func TestFanOutOneFailureDoesNotAbortBatch(t *testing.T) {
	subs := []Subscriber{
		{Email: "a@example.com"},
		{Email: "broken@example.com"},
		{Email: "c@example.com"},
	}
	sender := &recordingSender{
		failFor: map[string]error{"broken@example.com": errors.New("mailbox unavailable")},
	}

	results := FanOut(context.Background(), subs, "Hello", email.NewsletterData{Message: "hi"}, sender)

	require.Len(t, results, 3)

	var failed, succeeded int
	for _, result := range results {
		switch result.Status {
		case "failed":
			failed++
			assert.Equal(t, "broken@example.com", result.Email)
			assert.Contains(t, result.Error, "mailbox unavailable")
		case "success":
			succeeded++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, succeeded)
	assert.Len(t, sender.sent, 3, "every address must be attempted")
}

func TestFanOutEmpty(t *testing.T) {
	sender := &recordingSender{}
	results := FanOut(context.Background(), nil, "Hello", email.NewsletterData{}, sender)
	assert.Empty(t, results)
	assert.Empty(t, sender.sent)
}

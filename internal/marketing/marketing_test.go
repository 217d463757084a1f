package marketing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	subs     map[string]Subscription
	messages []ContactMessage
	err      error
}

func newMockRepository() *mockRepository {
	return &mockRepository{subs: make(map[string]Subscription)}
}

func (m *mockRepository) AddSubscription(_ context.Context, sub Subscription) error {
	if m.err != nil {
		return m.err
	}
	m.subs[sub.Email] = sub
	return nil
}

func (m *mockRepository) HasSubscription(_ context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.subs[email]
	return ok, nil
}

func (m *mockRepository) AddContactMessage(_ context.Context, msg ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func TestSubscribe_NormalizesAddress(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo)

	err := sut.Subscribe(context.Background(), "  Lydia@Example.COM ")
	require.NoError(t, err)

	_, ok := repo.subs["lydia@example.com"]
	assert.True(t, ok)
}

func TestSubscribe_DuplicateIsSilentSuccess(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo)

	require.NoError(t, sut.Subscribe(context.Background(), "lydia@example.com"))
	require.NoError(t, sut.Subscribe(context.Background(), "lydia@example.com"))

	assert.Len(t, repo.subs, 1)
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	sut := NewService(newMockRepository())

	for _, email := range []string{"", "not-an-email", "lydia@", "@example.com"} {
		err := sut.Subscribe(context.Background(), email)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestSubscribe_RepositoryError(t *testing.T) {
	repo := newMockRepository()
	repo.err = fmt.Errorf("database error")
	sut := NewService(repo)

	err := sut.Subscribe(context.Background(), "lydia@example.com")
	require.ErrorContains(t, err, "database error")
}

func TestContact_StoresValidMessage(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo)
	sut.now = func() time.Time { return time.UnixMilli(1700000000000) }

	err := sut.Contact(context.Background(), " Lydia ", "lydia@example.com", "Sizing", "Does the M run small?")
	require.NoError(t, err)

	require.Len(t, repo.messages, 1)
	msg := repo.messages[0]
	assert.Equal(t, int64(1700000000000), msg.ID)
	assert.Equal(t, "Lydia", msg.Name)
	assert.Equal(t, "Sizing", msg.Subject)
}

func TestContact_RejectsShortMessage(t *testing.T) {
	sut := NewService(newMockRepository())

	err := sut.Contact(context.Background(), "Lydia", "lydia@example.com", "Hi", "hey")
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestContact_RejectsBlankFields(t *testing.T) {
	sut := NewService(newMockRepository())

	cases := []struct {
		name, subject string
	}{
		{"", "Sizing"},
		{"   ", "Sizing"},
		{"Lydia", ""},
	}
	for _, tc := range cases {
		err := sut.Contact(context.Background(), tc.name, "lydia@example.com", tc.subject, "long enough message")
		assert.ErrorIs(t, err, ErrInvalidMessage)
	}
}

func TestContact_RejectsInvalidEmail(t *testing.T) {
	sut := NewService(newMockRepository())

	err := sut.Contact(context.Background(), "Lydia", "nope", "Sizing", "long enough message")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xaenox/guardian-bot/internal/models"
	"github.com/xaenox/guardian-bot/internal/storage"
)

type sentMessage struct {
	channelID int64
	text      string
}

// fakeTransport records transport calls and fails on demand.
type fakeTransport struct {
	mu            sync.Mutex
	deleted       []int
	sent          []sentMessage
	deleteErr     error
	sendErr       map[int64]error // per-channel send failures
	missingChats  map[int64]bool
	mentions      map[int64]string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		sendErr:      make(map[int64]error),
		missingChats: make(map[int64]bool),
		mentions:     make(map[int64]string),
	}
}

func (f *fakeTransport) DeleteMessage(ctx context.Context, channelID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeTransport) SendText(ctx context.Context, channelID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.sendErr[channelID]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentMessage{channelID: channelID, text: text})
	return nil
}

func (f *fakeTransport) GetChannel(ctx context.Context, channelID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.missingChats[channelID], nil
}

func (f *fakeTransport) GetRoleMention(ctx context.Context, guildID, roleID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mentions[roleID], nil
}

func (f *fakeTransport) sentTo(channelID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var texts []string
	for _, m := range f.sent {
		if m.channelID == channelID {
			texts = append(texts, m.text)
		}
	}
	return texts
}

// failingStore always errors, standing in for unavailable storage.
type failingStore struct{}

func (failingStore) GetConfig(ctx context.Context, guildID int64) (models.GuildPolicy, error) {
	return models.GuildPolicy{GuildID: guildID}, errors.New("storage unavailable")
}

func (failingStore) SetConfig(ctx context.Context, guildID int64, modRoleID, modChannelID *int64) error {
	return errors.New("storage unavailable")
}

func (failingStore) Close() error { return nil }

func testMessage() *models.Message {
	return &models.Message{
		ID:         1001,
		ChannelID:  42,
		GuildID:    42,
		AuthorID:   7,
		AuthorName: "alice",
		Content:    "offending text",
	}
}

func testResult() *models.ModerationResult {
	return &models.ModerationResult{
		Violations: []models.Violation{{Category: "hate_and_discrimination", Score: 0.92}},
		ResponseID: "r1",
		Latency:    400 * time.Millisecond,
	}
}

func int64p(v int64) *int64 { return &v }

func TestHandleViolationHappyPath(t *testing.T) {
	ctx := context.Background()
	transport := newFakeTransport()
	transport.mentions[500] = "@mods"

	store := storage.NewMemoryStore()
	require.NoError(t, store.SetConfig(ctx, 42, int64p(500), int64p(900)))

	c := NewCoordinator(transport, store, nil, nil, zap.NewNop())
	c.HandleViolation(ctx, testMessage(), testResult())

	assert.Equal(t, []int{1001}, transport.deleted)

	notices := transport.sentTo(42)
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "alice")
	assert.Contains(t, notices[0], "Hate or discrimination: 92.0%")
	assert.Contains(t, notices[0], "Violation ID: r1")

	reports := transport.sentTo(900)
	require.Len(t, reports, 1)
	assert.True(t, strings.HasPrefix(reports[0], "@mods\n"))

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(reports[0], "@mods\n")), &report))
	assert.Equal(t, "r1", report["response_id"])
	assert.Equal(t, "alice", report["user"])
	assert.Equal(t, "offending text", report["message"])
	assert.InDelta(t, 0.4, report["latency_seconds"], 1e-9)
	assert.NotEmpty(t, report["incident_id"])
}

func TestHandleViolationDeleteFailureStillNotifies(t *testing.T) {
	ctx := context.Background()
	transport := newFakeTransport()
	transport.deleteErr = errors.New("message already deleted")

	store := storage.NewMemoryStore()
	require.NoError(t, store.SetConfig(ctx, 42, nil, int64p(900)))

	c := NewCoordinator(transport, store, nil, nil, zap.NewNop())
	c.HandleViolation(ctx, testMessage(), testResult())

	assert.Empty(t, transport.deleted)
	assert.Len(t, transport.sentTo(42), 1)
	assert.Len(t, transport.sentTo(900), 1)
}

func TestHandleViolationNoModeratorChannel(t *testing.T) {
	ctx := context.Background()
	transport := newFakeTransport()

	c := NewCoordinator(transport, storage.NewMemoryStore(), nil, nil, zap.NewNop())
	c.HandleViolation(ctx, testMessage(), testResult())

	// Only the user notice goes out; the report has no destination.
	assert.Len(t, transport.sent, 1)
	assert.Equal(t, int64(42), transport.sent[0].channelID)
}

func TestHandleViolationUnresolvableChannelDropsReport(t *testing.T) {
	ctx := context.Background()
	transport := newFakeTransport()
	transport.missingChats[900] = true

	store := storage.NewMemoryStore()
	require.NoError(t, store.SetConfig(ctx, 42, nil, int64p(900)))

	c := NewCoordinator(transport, store, nil, nil, zap.NewNop())
	c.HandleViolation(ctx, testMessage(), testResult())

	assert.Len(t, transport.sentTo(42), 1)
	assert.Empty(t, transport.sentTo(900))
}

func TestHandleViolationReportWithoutRoleMention(t *testing.T) {
	ctx := context.Background()
	transport := newFakeTransport()

	store := storage.NewMemoryStore()
	require.NoError(t, store.SetConfig(ctx, 42, nil, int64p(900)))

	c := NewCoordinator(transport, store, nil, nil, zap.NewNop())
	c.HandleViolation(ctx, testMessage(), testResult())

	reports := transport.sentTo(900)
	require.Len(t, reports, 1)
	assert.True(t, strings.HasPrefix(reports[0], "{"), "report should carry no mention prefix")
}

func TestHandleViolationStoreFailureFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	transport := newFakeTransport()

	c := NewCoordinator(transport, failingStore{}, int64p(500), int64p(901), zap.NewNop())
	c.HandleViolation(ctx, testMessage(), testResult())

	assert.Len(t, transport.sentTo(42), 1)
	assert.Len(t, transport.sentTo(901), 1)
}

func TestHandleViolationReportFailureDoesNotAffectOtherMessages(t *testing.T) {
	ctx := context.Background()
	transport := newFakeTransport()
	transport.sendErr[900] = errors.New("send rejected")

	store := storage.NewMemoryStore()
	require.NoError(t, store.SetConfig(ctx, 42, nil, int64p(900)))
	require.NoError(t, store.SetConfig(ctx, 43, nil, int64p(901)))

	c := NewCoordinator(transport, store, nil, nil, zap.NewNop())

	other := &models.Message{ID: 2002, ChannelID: 43, GuildID: 43, AuthorID: 8, AuthorName: "bob", Content: "other"}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.HandleViolation(ctx, testMessage(), testResult())
	}()
	go func() {
		defer wg.Done()
		c.HandleViolation(ctx, other, testResult())
	}()
	wg.Wait()

	// M's user notice went out despite its report failing; N's full
	// sequence is untouched.
	assert.Len(t, transport.sentTo(42), 1)
	assert.Empty(t, transport.sentTo(900))
	assert.Len(t, transport.sentTo(43), 1)
	assert.Len(t, transport.sentTo(901), 1)
}

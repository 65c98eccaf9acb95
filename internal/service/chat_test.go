package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdo754/soccer-team-hub/internal/assistant"
	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/fixtures"
	"github.com/abdo754/soccer-team-hub/internal/i18n"
	"github.com/abdo754/soccer-team-hub/internal/repository/memory"
)

// fakeGateway скриптует ответы шлюза по порядку вызовов
type fakeGateway struct {
	mu        sync.Mutex
	calls     int
	replies   []string
	errs      []error
	lastQuery assistant.Query
	started   chan struct{} // закрывается при входе в Ask, если задан
	release   chan struct{} // блокирует Ask до закрытия, если задан
}

func (f *fakeGateway) Ask(_ context.Context, q assistant.Query) (string, error) {
	f.mu.Lock()
	idx := f.calls
	f.calls++
	f.lastQuery = q
	started := f.started
	release := f.release
	f.mu.Unlock()

	if started != nil {
		close(started)
		f.mu.Lock()
		f.started = nil
		f.mu.Unlock()
	}
	if release != nil {
		<-release
	}

	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	if err != nil {
		return "", err
	}
	reply := "ok"
	if idx < len(f.replies) {
		reply = f.replies[idx]
	}
	return reply, nil
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newChatService(gw assistant.Gateway, canSelect bool) *ChatService {
	seed := fixtures.Default(i18n.New("en"))
	return NewChatService(
		memory.NewMessageRepository(seed.Messages),
		memory.NewEventRepository(seed.Events),
		memory.NewUserRepository(seed.Users),
		gw,
		canSelect,
	)
}

func historyLen(t *testing.T, svc *ChatService) int {
	t.Helper()
	messages, err := svc.Messages(context.Background())
	require.NoError(t, err)
	return len(messages)
}

func TestChatService_PlainMessage(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	svc := newChatService(gw, false)
	before := historyLen(t, svc)

	result, err := svc.Send(ctx, "user-2", "Good practice!", i18n.New("en"))
	require.NoError(t, err)

	require.NotNil(t, result.Message)
	assert.Equal(t, "user-2", result.Message.UserID)
	assert.Nil(t, result.AssistantMessage)
	assert.Equal(t, before+1, historyLen(t, svc), "plain text appends exactly one message")
	assert.Zero(t, gw.callCount(), "plain text must not invoke the gateway")
}

func TestChatService_EmptyMessageIsNoop(t *testing.T) {
	gw := &fakeGateway{}
	svc := newChatService(gw, false)
	before := historyLen(t, svc)

	result, err := svc.Send(context.Background(), "user-2", "   ", i18n.New("en"))
	require.NoError(t, err)

	assert.Nil(t, result.Message)
	assert.Equal(t, before, historyLen(t, svc))
}

func TestChatService_AssistantSuccess(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{replies: []string{"Saturday is the game vs. Eagles! ⚽"}}
	svc := newChatService(gw, false)
	before := historyLen(t, svc)

	result, err := svc.Send(ctx, "user-2", "@assistant what's on Saturday?", i18n.New("en"))
	require.NoError(t, err)

	require.NotNil(t, result.Message)
	require.NotNil(t, result.AssistantMessage)
	assert.Equal(t, domain.AssistantUserID, result.AssistantMessage.UserID)
	assert.Equal(t, "Saturday is the game vs. Eagles! ⚽", result.AssistantMessage.Text)
	assert.Equal(t, assistant.ProblemNone, result.Problem)
	assert.Equal(t, before+2, historyLen(t, svc), "user message plus one assistant reply")

	// Шлюз получает вопрос без префикса, имя спрашивающего и снимок данных
	assert.Equal(t, "what's on Saturday?", gw.lastQuery.Text)
	assert.Equal(t, "Alex Johnson", gw.lastQuery.AskerName)
	assert.NotEmpty(t, gw.lastQuery.Events)
	assert.NotEmpty(t, gw.lastQuery.Users)
	assert.False(t, svc.Pending("user-2"), "successful reply clears the retained query")
}

func TestChatService_BareAssistantPrefixIsPlainMessage(t *testing.T) {
	gw := &fakeGateway{}
	svc := newChatService(gw, false)
	before := historyLen(t, svc)

	result, err := svc.Send(context.Background(), "user-2", "@assistant   ", i18n.New("en"))
	require.NoError(t, err)

	require.NotNil(t, result.Message)
	assert.Equal(t, before+1, historyLen(t, svc))
	assert.Zero(t, gw.callCount())
}

func TestChatService_CredentialFailureRetainsQueryForRetry(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		errs:    []error{assistant.ErrCredentialMissing},
		replies: []string{"", "The next practice is on Tuesday."},
	}
	svc := newChatService(gw, true)
	before := historyLen(t, svc)

	result, err := svc.Send(ctx, "user-2", "@assistant when is the next practice?", i18n.New("en"))
	require.NoError(t, err)

	assert.Equal(t, assistant.ProblemKeyMissing, result.Problem)
	assert.True(t, result.Retryable)
	assert.True(t, result.CanSelectKey)
	assert.Nil(t, result.AssistantMessage)
	assert.Equal(t, before+1, historyLen(t, svc), "only the user message is appended on credential failure")
	assert.True(t, svc.Pending("user-2"))

	// Повтор не добавляет исходное сообщение пользователя заново
	retried, err := svc.Retry(ctx, "user-2", i18n.New("en"))
	require.NoError(t, err)

	require.NotNil(t, retried.AssistantMessage)
	assert.Equal(t, "The next practice is on Tuesday.", retried.AssistantMessage.Text)
	assert.Equal(t, before+2, historyLen(t, svc), "retry appends only the assistant reply")
	assert.Equal(t, "when is the next practice?", gw.lastQuery.Text)
	assert.False(t, svc.Pending("user-2"))
}

func TestChatService_RetryWithoutPendingQuery(t *testing.T) {
	svc := newChatService(&fakeGateway{}, false)

	_, err := svc.Retry(context.Background(), "user-2", i18n.New("en"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestChatService_RepeatedCredentialFailureKeepsQuery(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{errs: []error{assistant.ErrCredentialNotSelected, assistant.ErrCredentialInvalid}}
	svc := newChatService(gw, true)

	result, err := svc.Send(ctx, "user-2", "@assistant who plays goalkeeper?", i18n.New("en"))
	require.NoError(t, err)
	assert.Equal(t, assistant.ProblemKeyNotSelected, result.Problem)

	// Повтор снова упирается в проблему с ключом: вопрос остается удержанным
	retried, err := svc.Retry(ctx, "user-2", i18n.New("en"))
	require.NoError(t, err)
	assert.Equal(t, assistant.ProblemKeyInvalid, retried.Problem)
	assert.True(t, svc.Pending("user-2"))
}

func TestChatService_ServiceErrorAppendsApology(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{errs: []error{assistant.ErrService}}
	svc := newChatService(gw, false)
	before := historyLen(t, svc)

	result, err := svc.Send(ctx, "user-2", "@assistant what's the score?", i18n.New("en"))
	require.NoError(t, err)

	assert.Equal(t, assistant.ProblemService, result.Problem)
	assert.False(t, result.Retryable)
	require.NotNil(t, result.AssistantMessage)
	assert.Contains(t, result.AssistantMessage.Text, "Alex Johnson")
	assert.Equal(t, before+2, historyLen(t, svc), "apology joins the shared history")
	assert.False(t, svc.Pending("user-2"), "service errors do not retain the query")
}

func TestChatService_ConcurrentAssistantRefused(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newChatService(gw, false)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Send(ctx, "user-2", "@assistant first question", i18n.New("en"))
		done <- err
	}()

	<-gw.started

	// Второй запрос к ассистенту, пока первый в полете, отклоняется
	_, err := svc.Send(ctx, "user-3", "@assistant second question", i18n.New("en"))
	assert.ErrorIs(t, err, domain.ErrAssistantBusy)

	// Обычные сообщения при этом проходят
	result, err := svc.Send(ctx, "user-3", "still here!", i18n.New("en"))
	require.NoError(t, err)
	assert.NotNil(t, result.Message)

	close(gw.release)
	require.NoError(t, <-done)
}

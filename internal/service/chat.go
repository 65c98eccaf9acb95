package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abdo754/soccer-team-hub/internal/assistant"
	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/i18n"
	"github.com/abdo754/soccer-team-hub/internal/metrics"
	"github.com/abdo754/soccer-team-hub/internal/repository"
)

// assistantPrefix is the reserved token that routes a message to the assistant
const assistantPrefix = "@assistant"

// ChatService handles the shared chat room and the assistant interaction flow.
// The room has a single assistant slot: while a query is outstanding the slot
// refuses a second assistant trigger, though plain messages still flow. After
// a credential failure the original query is retained so a single retry can
// re-invoke the gateway without re-appending the user's message.
type ChatService struct {
	msgRepo      repository.MessageRepository
	eventRepo    repository.EventRepository
	userRepo     repository.UserRepository
	gateway      assistant.Gateway
	canSelectKey bool

	mu           sync.Mutex
	busy         bool
	pendingQuery string
	pendingAsker string
}

// NewChatService creates a new ChatService. canSelectKey mirrors whether the
// host environment supports interactive credential selection; it controls the
// retry affordance exposed to the client.
func NewChatService(
	msgRepo repository.MessageRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	gateway assistant.Gateway,
	canSelectKey bool,
) *ChatService {
	return &ChatService{
		msgRepo:      msgRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		gateway:      gateway,
		canSelectKey: canSelectKey,
	}
}

// SendResult describes the outcome of a send operation
type SendResult struct {
	// Message is the appended user message; nil when the send was a no-op
	Message *domain.ChatMessage `json:"message,omitempty"`

	// AssistantMessage is the appended assistant reply, if any
	AssistantMessage *domain.ChatMessage `json:"assistant_message,omitempty"`

	// Problem classifies an assistant failure; empty on success
	Problem assistant.Problem `json:"problem,omitempty"`

	// Retryable reports whether a one-shot retry after remediation is appropriate
	Retryable bool `json:"retryable,omitempty"`

	// CanSelectKey reports whether the environment offers interactive key selection
	CanSelectKey bool `json:"can_select_key,omitempty"`
}

// Send appends a chat message and, when the text carries the assistant prefix,
// drives the assistant flow. An empty message after trimming is a no-op.
func (s *ChatService) Send(ctx context.Context, userID, text string, tr *i18n.Translator) (*SendResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &SendResult{}, nil
	}

	query := ""
	if strings.HasPrefix(trimmed, assistantPrefix) {
		query = strings.TrimSpace(trimmed[len(assistantPrefix):])
	}

	// A bare "@assistant" with no question falls through as a plain message
	if query == "" {
		msg, err := s.appendMessage(ctx, userID, text)
		if err != nil {
			return nil, err
		}
		return &SendResult{Message: msg}, nil
	}

	if err := s.acquireSlot(query, userID); err != nil {
		return nil, err
	}

	msg, err := s.appendMessage(ctx, userID, text)
	if err != nil {
		s.releaseSlot()
		return nil, err
	}

	result, err := s.askAssistant(ctx, userID, query, tr)
	if err != nil {
		return nil, err
	}
	result.Message = msg
	return result, nil
}

// Retry re-invokes the gateway with the retained query after credential
// remediation. The user's original message is not appended again, so history
// carries no duplicate entry.
func (s *ChatService) Retry(ctx context.Context, userID string, tr *i18n.Translator) (*SendResult, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, domain.ErrAssistantBusy
	}
	if s.pendingQuery == "" || s.pendingAsker != userID {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: no pending assistant query", domain.ErrValidation)
	}
	query := s.pendingQuery
	s.busy = true
	s.mu.Unlock()

	return s.askAssistant(ctx, userID, query, tr)
}

// Messages returns the full chat history in insertion order
func (s *ChatService) Messages(ctx context.Context) ([]*domain.ChatMessage, error) {
	return s.msgRepo.List(ctx)
}

// Pending reports whether a retained query awaits a retry for the given user
func (s *ChatService) Pending(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingQuery != "" && s.pendingAsker == userID
}

// acquireSlot marks the assistant slot busy and retains the query for retry
func (s *ChatService) acquireSlot(query, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return domain.ErrAssistantBusy
	}
	s.busy = true
	s.pendingQuery = query
	s.pendingAsker = userID
	return nil
}

// releaseSlot frees the assistant slot without touching the retained query
func (s *ChatService) releaseSlot() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// askAssistant snapshots events and users, invokes the gateway and folds the
// outcome back into chat history. The call runs on a context detached from the
// request: navigation away from the chat does not cancel an outstanding query,
// and the reply is appended to shared history whenever it resolves.
func (s *ChatService) askAssistant(ctx context.Context, userID, query string, tr *i18n.Translator) (*SendResult, error) {
	defer s.releaseSlot()

	asker, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	detached := context.WithoutCancel(ctx)
	reply, askErr := s.gateway.Ask(detached, assistant.Query{
		Text:      query,
		AskerName: asker.Name,
		Events:    events,
		Users:     users,
	})

	if askErr == nil {
		metrics.AssistantRequests.WithLabelValues("ok").Inc()
		assistantMsg, err := s.appendMessage(detached, domain.AssistantUserID, reply)
		if err != nil {
			return nil, err
		}
		s.clearPending()
		return &SendResult{AssistantMessage: assistantMsg}, nil
	}

	problem := assistant.Classify(askErr)
	metrics.AssistantRequests.WithLabelValues(string(problem)).Inc()

	if assistant.IsCredentialProblem(askErr) {
		// The query stays retained for a one-shot retry after remediation
		return &SendResult{
			Problem:      problem,
			Retryable:    true,
			CanSelectKey: s.canSelectKey,
		}, nil
	}

	// Any other failure turns into a generic apology in the shared history
	apology := tr.Lookup(i18n.KeyAPIGenericError, map[string]string{"name": asker.Name})
	assistantMsg, err := s.appendMessage(detached, domain.AssistantUserID, apology)
	if err != nil {
		return nil, err
	}
	s.clearPending()
	return &SendResult{
		AssistantMessage: assistantMsg,
		Problem:          problem,
	}, nil
}

// clearPending drops the retained query
func (s *ChatService) clearPending() {
	s.mu.Lock()
	s.pendingQuery = ""
	s.pendingAsker = ""
	s.mu.Unlock()
}

// appendMessage builds a message with a fresh id and timestamp and appends it
func (s *ChatService) appendMessage(ctx context.Context, userID, text string) (*domain.ChatMessage, error) {
	msg := &domain.ChatMessage{
		ID:        "msg-" + uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.msgRepo.Append(ctx, msg); err != nil {
		return nil, err
	}
	metrics.MessagesPosted.Inc()
	return msg, nil
}

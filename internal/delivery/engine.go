// Package delivery runs the simulated send pipeline: append a pending
// message, wait out a randomized network delay, draw an outcome against
// the current safety flags, resolve the message status once, update the
// aggregate metrics, and occasionally schedule a canned customer reply.
package delivery

import (
	"errors"
	"log"
	"math/rand"
	"strings"
	"time"

	"whatsapp-console/internal/config"
	"whatsapp-console/internal/models"
	"whatsapp-console/internal/simulate"
	"whatsapp-console/internal/state"
	"whatsapp-console/internal/template"
)

var (
	ErrKillSwitchActive = errors.New("messaging is disabled: kill switch is active")
	ErrEmptyMessage     = errors.New("message text is empty")
	ErrChatNotFound     = errors.New("chat not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateOnly     = errors.New("chat accepts template messages only until the contact replies")
)

// Notifier receives state events for the UI. The websocket hub satisfies
// this; tests pass a recorder.
type Notifier interface {
	BroadcastEvent(eventType string, data interface{})
}

type noopNotifier struct{}

func (noopNotifier) BroadcastEvent(string, interface{}) {}

// Engine drives delivery simulation against one state store.
type Engine struct {
	store *state.Store
	cfg   *config.Config
	hub   Notifier
	sched *Scheduler
}

func NewEngine(store *state.Store, cfg *config.Config, hub Notifier) *Engine {
	if hub == nil {
		hub = noopNotifier{}
	}
	return &Engine{
		store: store,
		cfg:   cfg,
		hub:   hub,
		sched: NewScheduler(),
	}
}

// Scheduler exposes the engine's task scheduler, mainly so tests can watch
// pending reply jobs.
func (e *Engine) Scheduler() *Scheduler {
	return e.sched
}

// SendText sends a free-text message to the chat and blocks until its
// delivery resolves. The rest of the system keeps running during the
// simulated delay; only this caller waits.
func (e *Engine) SendText(chatID, text string) (models.Message, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, "", ErrEmptyMessage
	}
	if !e.store.IsMessagingAllowed() {
		return models.Message{}, "", ErrKillSwitchActive
	}

	chat, ok := e.store.GetChat(chatID)
	if !ok {
		return models.Message{}, "", ErrChatNotFound
	}
	if chat.IsCampaignOnly {
		return models.Message{}, "", ErrTemplateOnly
	}

	msg := models.Message{
		ID:        models.NewID(),
		Type:      models.MessageOutgoing,
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    models.StatusSent,
	}
	e.store.AddMessage(chatID, msg)
	e.hub.BroadcastEvent("message_sent", msg)

	outcome := e.resolve(chatID, msg.ID)
	if updated, ok := e.store.GetChat(chatID); ok {
		for _, m := range updated.Messages {
			if m.ID == msg.ID {
				msg = m
			}
		}
	}
	return msg, outcome, nil
}

// SendTemplate renders the template against the bindings (defaulting
// {{name}} to the contact's first name) and sends it through the same
// pipeline as free text. Template sends are allowed on campaign-only chats.
func (e *Engine) SendTemplate(chatID, templateID string, bindings map[string]interface{}) (models.Message, string, error) {
	if !e.store.IsMessagingAllowed() {
		return models.Message{}, "", ErrKillSwitchActive
	}

	chat, ok := e.store.GetChat(chatID)
	if !ok {
		return models.Message{}, "", ErrChatNotFound
	}
	tmpl, ok := e.store.GetTemplate(templateID)
	if !ok {
		return models.Message{}, "", ErrTemplateNotFound
	}

	if bindings == nil {
		bindings = map[string]interface{}{}
	}
	if _, ok := bindings["name"]; !ok {
		bindings["name"] = strings.SplitN(chat.Name, " ", 2)[0]
	}

	label := tmpl.Signature
	if label == "" {
		label = tmpl.Name
	}

	msg := models.Message{
		ID:           models.NewID(),
		Type:         models.MessageOutgoing,
		IsTemplate:   true,
		TemplateName: label,
		Text:         template.Render(tmpl.Content, bindings),
		Buttons:      append([]string(nil), tmpl.Buttons...),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Status:       models.StatusSent,
	}
	e.store.AddMessage(chatID, msg)
	e.hub.BroadcastEvent("message_sent", msg)

	outcome := e.resolve(chatID, msg.ID)
	if updated, ok := e.store.GetChat(chatID); ok {
		for _, m := range updated.Messages {
			if m.ID == msg.ID {
				msg = m
			}
		}
	}
	return msg, outcome, nil
}

// resolve waits out the simulated network delay, draws the outcome and
// applies it. The status write happens before the metrics increment, and
// the store skips messages that already resolved.
func (e *Engine) resolve(chatID, messageID string) string {
	time.Sleep(simulate.Delay(e.cfg.DelayMinMs, e.cfg.DelayMaxMs))

	outcome := simulate.Outcome(e.store.GetSafetyFlags())

	if msg, ok := e.store.ResolveMessage(chatID, messageID, outcome); ok {
		e.hub.BroadcastEvent("message_status", msg)
	}
	e.store.IncrementMessageCount(outcome)
	e.hub.BroadcastEvent("metrics_update", e.store.GetMetrics())

	if outcome == models.OutcomeDelivered && rand.Float64() < e.cfg.ReplyProbability {
		e.sched.After(time.Duration(e.cfg.ReplyDelayMs)*time.Millisecond, func() {
			e.simulateReply(chatID)
		})
	}
	return outcome
}

// simulateReply appends a canned incoming reply, which also unlocks
// free-text sending for the chat.
func (e *Engine) simulateReply(chatID string) {
	msg := models.Message{
		ID:        models.NewID(),
		Type:      models.MessageIncoming,
		Text:      simulate.CannedReply(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    models.StatusReceived,
	}
	if !e.store.AddMessage(chatID, msg) {
		log.Printf("Dropping simulated reply for unknown chat %s", chatID)
		return
	}
	e.hub.BroadcastEvent("incoming_message", map[string]interface{}{
		"chatId":  chatID,
		"message": msg,
	})
}

// SimulateBatch draws count outcomes against the current flags and feeds
// them straight into the metrics, skipping per-message bookkeeping.
func (e *Engine) SimulateBatch(count int) map[string]int {
	breakdown := map[string]int{
		models.OutcomeDelivered: 0,
		models.OutcomeFailed:    0,
		models.OutcomeBlocked:   0,
	}
	for i := 0; i < count; i++ {
		outcome := simulate.Outcome(e.store.GetSafetyFlags())
		e.store.IncrementMessageCount(outcome)
		breakdown[outcome]++
	}
	e.hub.BroadcastEvent("metrics_update", e.store.GetMetrics())
	return breakdown
}

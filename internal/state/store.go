// Package state owns the canonical console state: chats, campaigns,
// templates, safety flags and metrics. Every mutation is applied in memory
// first and then written back through the persistence adapter; a failed
// write never rolls the mutation back.
package state

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"whatsapp-console/internal/governor"
	"whatsapp-console/internal/models"
	"whatsapp-console/internal/simulate"
	"whatsapp-console/internal/storage"
)

type Store struct {
	mu  sync.Mutex
	kv  *storage.KV
	key string
	app models.AppState
}

// NewStore loads persisted state from kv under key, falling back to the
// seed data set on first run, and persists the result.
func NewStore(kv *storage.KV, key string) *Store {
	s := &Store{kv: kv, key: key}

	var raw map[string]json.RawMessage
	if s.kv.Get(s.key, &raw) {
		s.app = mergeOverBase(raw)
	} else {
		s.app = seedState()
	}
	s.persist()
	return s
}

// mergeOverBase applies the stored blob over the base defaults one
// top-level key at a time. A key present in storage wins wholesale; a key
// missing (or unreadable) keeps its default. The merge is deliberately
// shallow so fields added in newer builds pick up their defaults.
func mergeOverBase(raw map[string]json.RawMessage) models.AppState {
	app := baseState()

	mergeField(raw, "activeChat", &app.ActiveChat)
	mergeField(raw, "chats", &app.Chats)
	mergeField(raw, "campaigns", &app.Campaigns)
	mergeField(raw, "templates", &app.Templates)
	mergeField(raw, "safetyFlags", &app.SafetyFlags)
	mergeField(raw, "metrics", &app.Metrics)
	mergeField(raw, "preferences", &app.Preferences)

	return app
}

func mergeField(raw map[string]json.RawMessage, key string, out interface{}) {
	blob, ok := raw[key]
	if !ok {
		return
	}
	if err := json.Unmarshal(blob, out); err != nil {
		log.Printf("Ignoring stored %s: %v", key, err)
	}
}

// persist writes the full aggregate back. Failures are logged by the
// adapter; the in-memory state stands either way. Callers must hold mu.
func (s *Store) persist() {
	s.kv.Set(s.key, s.app)
}

func (s *Store) findChat(chatID string) *models.Chat {
	for i := range s.app.Chats {
		if s.app.Chats[i].ID == chatID {
			return &s.app.Chats[i]
		}
	}
	return nil
}

func (s *Store) findCampaign(campaignID string) *models.Campaign {
	for i := range s.app.Campaigns {
		if s.app.Campaigns[i].ID == campaignID {
			return &s.app.Campaigns[i]
		}
	}
	return nil
}

// Snapshot returns a deep copy of the whole aggregate.
func (s *Store) Snapshot() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.app)
}

// ==================== CHATS ====================

func (s *Store) GetChats() []models.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneChats(s.app.Chats)
}

func (s *Store) GetChat(chatID string) (models.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat := s.findChat(chatID)
	if chat == nil {
		return models.Chat{}, false
	}
	return cloneChat(*chat), true
}

func (s *Store) GetActiveChat() (models.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.app.ActiveChat == nil {
		return models.Chat{}, false
	}
	chat := s.findChat(*s.app.ActiveChat)
	if chat == nil {
		return models.Chat{}, false
	}
	return cloneChat(*chat), true
}

func (s *Store) SetActiveChat(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findChat(chatID) == nil {
		return false
	}
	s.app.ActiveChat = &chatID
	s.persist()
	return true
}

// AddMessage appends a message to the chat and refreshes the last-message
// cache. An incoming message permanently unlocks free-text sending for the
// chat; nothing ever reverses that.
func (s *Store) AddMessage(chatID string, msg models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat := s.findChat(chatID)
	if chat == nil {
		return false
	}

	chat.Messages = append(chat.Messages, msg)
	chat.LastMessage = msg.Text
	chat.LastMessageTime = msg.Timestamp

	if msg.Type == models.MessageIncoming {
		chat.HasReplied = true
		chat.IsCampaignOnly = false
	}

	s.persist()
	return true
}

// ResolveMessage applies the simulated outcome to a pending outgoing
// message. Only a message still in "sent" transitions; anything already
// resolved is left alone, so a delivery can never fire twice.
func (s *Store) ResolveMessage(chatID, messageID, outcome string) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat := s.findChat(chatID)
	if chat == nil {
		return models.Message{}, false
	}

	for i := range chat.Messages {
		msg := &chat.Messages[i]
		if msg.ID != messageID {
			continue
		}
		if msg.Status != models.StatusSent {
			return models.Message{}, false
		}
		if outcome == models.OutcomeDelivered {
			msg.Status = models.StatusDelivered
		} else {
			msg.Status = models.StatusFailed
		}
		s.persist()
		return cloneMessage(*msg), true
	}
	return models.Message{}, false
}

// UpdateChatTags replaces the chat's tags. Tags are trimmed and
// whitespace-only entries dropped.
func (s *Store) UpdateChatTags(chatID string, tags []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat := s.findChat(chatID)
	if chat == nil {
		return false
	}

	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			clean = append(clean, tag)
		}
	}
	chat.Tags = clean
	s.persist()
	return true
}

// AddChatNote appends a trimmed note to the chat. Whitespace-only text is
// rejected without touching state.
func (s *Store) AddChatNote(chatID, text string) (models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Note{}, false
	}
	chat := s.findChat(chatID)
	if chat == nil {
		return models.Note{}, false
	}
	note := models.Note{
		ID:        models.NewID(),
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	chat.Notes = append(chat.Notes, note)
	s.persist()
	return note, true
}

// ==================== CAMPAIGNS ====================

func (s *Store) GetCampaigns() []models.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Campaign(nil), s.app.Campaigns...)
}

func (s *Store) GetCampaign(campaignID string) (models.Campaign, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign := s.findCampaign(campaignID)
	if campaign == nil {
		return models.Campaign{}, false
	}
	return *campaign, true
}

// UpdateCampaignStatus applies an operator action. A stopped campaign is
// terminal and cannot be moved again.
func (s *Store) UpdateCampaignStatus(campaignID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign := s.findCampaign(campaignID)
	if campaign == nil || campaign.Status == models.CampaignStopped {
		return false
	}
	campaign.Status = status
	s.persist()
	return true
}

// CampaignCounts is a partial counters update; nil fields keep their value.
type CampaignCounts struct {
	MessagesSent *int `json:"messagesSent"`
	Blocked      *int `json:"blocked"`
	Failed       *int `json:"failed"`
}

// UpdateCampaignMetrics merges the counts update into the campaign and
// runs the auto-governor over the result. Stopped campaigns still take the
// counts but stay stopped; the governor never moves a terminal campaign.
func (s *Store) UpdateCampaignMetrics(campaignID string, counts CampaignCounts) (models.Campaign, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign := s.findCampaign(campaignID)
	if campaign == nil {
		return models.Campaign{}, false
	}

	if counts.MessagesSent != nil {
		campaign.MessagesSent = *counts.MessagesSent
	}
	if counts.Blocked != nil {
		campaign.Blocked = *counts.Blocked
	}
	if counts.Failed != nil {
		campaign.Failed = *counts.Failed
	}

	if campaign.Status != models.CampaignStopped {
		if status, autoAction, changed := governor.Evaluate(*campaign); changed {
			campaign.Status = status
			campaign.AutoAction = autoAction
		}
	}

	s.persist()
	return *campaign, true
}

// ==================== SAFETY FLAGS ====================

func (s *Store) GetSafetyFlags() models.SafetyFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.SafetyFlags
}

// SetSafetyGate toggles one gate by its UI slug. Activating the kill switch
// also pauses every running campaign with the "Kill Switch" auto-action;
// deactivating it never resumes them.
func (s *Store) SetSafetyGate(gate string, enabled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	flag, ok := models.FlagByGate(&s.app.SafetyFlags, gate)
	if !ok {
		return false
	}
	*flag = enabled

	if gate == models.GateKillSwitch && enabled {
		for i := range s.app.Campaigns {
			if s.app.Campaigns[i].Status == models.CampaignRunning {
				s.app.Campaigns[i].Status = models.CampaignPaused
				s.app.Campaigns[i].AutoAction = models.AutoActionKillSwitch
			}
		}
	}

	s.persist()
	return true
}

// IsMessagingAllowed reports whether outbound sends are currently allowed.
func (s *Store) IsMessagingAllowed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.app.SafetyFlags.KillSwitch
}

// ==================== METRICS ====================

func (s *Store) GetMetrics() models.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.Metrics
}

// MetricsUpdate is a partial metrics update; nil fields keep their value.
type MetricsUpdate struct {
	TotalSent      *int `json:"totalSent"`
	TotalDelivered *int `json:"totalDelivered"`
	TotalFailed    *int `json:"totalFailed"`
	TotalBlocked   *int `json:"totalBlocked"`
	DailyLimit     *int `json:"dailyLimit"`
}

func (s *Store) UpdateMetrics(update MetricsUpdate) models.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	if update.TotalSent != nil {
		s.app.Metrics.TotalSent = *update.TotalSent
	}
	if update.TotalDelivered != nil {
		s.app.Metrics.TotalDelivered = *update.TotalDelivered
	}
	if update.TotalFailed != nil {
		s.app.Metrics.TotalFailed = *update.TotalFailed
	}
	if update.TotalBlocked != nil {
		s.app.Metrics.TotalBlocked = *update.TotalBlocked
	}
	if update.DailyLimit != nil {
		s.app.Metrics.DailyLimit = *update.DailyLimit
	}
	s.persist()
	return s.app.Metrics
}

// IncrementMessageCount bumps TotalSent and the counter matching the
// outcome. Every simulated outcome counts toward TotalSent exactly once.
func (s *Store) IncrementMessageCount(outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.Metrics.TotalSent++

	switch outcome {
	case models.OutcomeDelivered:
		s.app.Metrics.TotalDelivered++
	case models.OutcomeFailed:
		s.app.Metrics.TotalFailed++
	case models.OutcomeBlocked:
		s.app.Metrics.TotalBlocked++
	}

	s.persist()
}

// GetCalculatedRates derives the dashboard percentages and health score
// from the cumulative counters. Pure read; calling it twice without a
// mutation in between yields the same result.
func (s *Store) GetCalculatedRates() models.CalculatedRates {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.app.Metrics
	var blockedRate, failedRate float64
	if m.TotalSent > 0 {
		blockedRate = float64(m.TotalBlocked) / float64(m.TotalSent) * 100
		failedRate = float64(m.TotalFailed) / float64(m.TotalSent) * 100
	}

	health := simulate.HealthScore(blockedRate, failedRate)
	return models.CalculatedRates{
		BlockedRate: fmt.Sprintf("%.1f", blockedRate),
		FailedRate:  fmt.Sprintf("%.1f", failedRate),
		Score:       health.Score,
		Status:      health.Status,
		StatusClass: health.StatusClass,
	}
}

// ==================== TEMPLATES ====================

func (s *Store) GetTemplates() []models.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTemplates(s.app.Templates)
}

func (s *Store) GetTemplate(templateID string) (models.Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.app.Templates {
		if t.ID == templateID {
			return cloneTemplate(t), true
		}
	}
	return models.Template{}, false
}

// SearchTemplates matches the query case-insensitively against template
// names and content.
func (s *Store) SearchTemplates(query string) []models.Template {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(query)
	matches := []models.Template{}
	for _, t := range s.app.Templates {
		if strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Content), needle) {
			matches = append(matches, cloneTemplate(t))
		}
	}
	return matches
}

// ==================== PREFERENCES ====================

func (s *Store) GetPreferences() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.Preferences
}

func (s *Store) UpdatePreferences(prefs models.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.Preferences = prefs
	s.persist()
}

// ==================== RESET ====================

// Reset drops the persisted blob and reseeds the demo data.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv.Remove(s.key)
	s.app = seedState()
	s.persist()
}

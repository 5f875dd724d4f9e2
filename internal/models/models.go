package models

// Message direction.
const (
	MessageOutgoing = "outgoing"
	MessageIncoming = "incoming"
)

// Message delivery status.
const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
	StatusReceived  = "received"
)

// Simulated delivery outcome.
const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeBlocked   = "blocked"
)

// Campaign lifecycle status.
const (
	CampaignRunning   = "running"
	CampaignPaused    = "paused"
	CampaignThrottled = "throttled"
	CampaignStopped   = "stopped"
)

// Auto-action labels recorded on campaigns when a governance rule fires.
const (
	AutoActionNone       = "None"
	AutoActionThrottled  = "Throttled"
	AutoActionStopped    = "Stopped"
	AutoActionKillSwitch = "Kill Switch"
)

// Message represents one turn in a chat. Outgoing messages start as "sent"
// and transition exactly once to "delivered" or "failed"; incoming messages
// are "received" immediately.
type Message struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Text         string   `json:"text"`
	Timestamp    string   `json:"timestamp"`
	Status       string   `json:"status"`
	IsTemplate   bool     `json:"isTemplate,omitempty"`
	TemplateName string   `json:"templateName,omitempty"`
	Buttons      []string `json:"buttons,omitempty"`
}

// Note is an operator annotation attached to a chat.
type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Chat is a conversation thread with one contact. A chat that has only
// received campaign sends stays template-only until the contact replies.
type Chat struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Avatar          string    `json:"avatar,omitempty"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime string    `json:"lastMessageTime"`
	UnreadCount     int       `json:"unreadCount"`
	IsCampaignOnly  bool      `json:"isCampaignOnly"`
	HasReplied      bool      `json:"hasReplied"`
	Tags            []string  `json:"tags"`
	Notes           []Note    `json:"notes"`
	CxScore         string    `json:"cxScore"`
	Channel         string    `json:"channel"`
	Messages        []Message `json:"messages"`
}

// Campaign is a bulk-send job under safety monitoring.
type Campaign struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MessageType  string `json:"messageType"`
	MessagesSent int    `json:"messagesSent"`
	Blocked      int    `json:"blocked"`
	Failed       int    `json:"failed"`
	Status       string `json:"status"`
	AutoAction   string `json:"autoAction"`
	CreatedAt    string `json:"createdAt"`
}

// Delivered derives the delivered count from the cumulative counters.
func (c Campaign) Delivered() int {
	return c.MessagesSent - c.Blocked - c.Failed
}

// Template is a reusable outbound message pattern with {{name}}-style
// placeholders.
type Template struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Content   string   `json:"content"`
	Buttons   []string `json:"buttons,omitempty"`
	Signature string   `json:"signature,omitempty"`
}

// SafetyFlags are the six independent safety gates. KillSwitch additionally
// blocks all sending and cascades to running campaigns.
type SafetyFlags struct {
	OptInValidation     bool `json:"optInValidation"`
	SessionRule24h      bool `json:"sessionRule24h"`
	WarmupMode          bool `json:"warmupMode"`
	TemplateEnforcement bool `json:"templateEnforcement"`
	RateLimiter         bool `json:"rateLimiter"`
	KillSwitch          bool `json:"killSwitch"`
}

// Metrics are process-wide cumulative counters. TotalSent counts every
// simulated outcome; the other counters split it by outcome.
type Metrics struct {
	TotalSent      int `json:"totalSent"`
	TotalDelivered int `json:"totalDelivered"`
	TotalFailed    int `json:"totalFailed"`
	TotalBlocked   int `json:"totalBlocked"`
	DailyLimit     int `json:"dailyLimit"`
}

// Preferences are user-facing display settings carried in the same blob.
type Preferences struct {
	DarkMode     bool `json:"darkMode"`
	SoundEnabled bool `json:"soundEnabled"`
}

// AppState is the full persisted aggregate. It is serialized as one JSON
// blob under a single storage key.
type AppState struct {
	ActiveChat  *string     `json:"activeChat"`
	Chats       []Chat      `json:"chats"`
	Campaigns   []Campaign  `json:"campaigns"`
	Templates   []Template  `json:"templates"`
	SafetyFlags SafetyFlags `json:"safetyFlags"`
	Metrics     Metrics     `json:"metrics"`
	Preferences Preferences `json:"preferences"`
}

// CalculatedRates is the derived dashboard view of Metrics: blocked/failed
// percentages plus the health score for the sending number.
type CalculatedRates struct {
	BlockedRate string `json:"blockedRate"`
	FailedRate  string `json:"failedRate"`
	Score       int    `json:"score"`
	Status      string `json:"status"`
	StatusClass string `json:"statusClass"`
}

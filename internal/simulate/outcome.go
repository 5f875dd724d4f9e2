package simulate

import (
	"math"
	"math/rand"
	"time"

	"whatsapp-console/internal/models"
)

// Base delivery probabilities with every safety gate engaged.
const (
	baseDelivered = 0.92
	baseFailed    = 0.05
	baseBlocked   = 0.03
)

// Outcome draws a delivery outcome for one message under the given safety
// flags. The kill switch dominates everything else.
func Outcome(flags models.SafetyFlags) string {
	return outcomeAt(flags, rand.Float64())
}

// outcomeAt resolves the outcome for a fixed uniform draw in [0,1).
//
// Disabled gates shift probability mass additively and the result is not
// renormalized, so with several gates off the bands may not sum to exactly 1.
// That matches the legacy behavior and is kept on purpose.
func outcomeAt(flags models.SafetyFlags, draw float64) string {
	if flags.KillSwitch {
		return models.OutcomeBlocked
	}

	delivered, failed, _ := probabilities(flags)

	if draw < delivered {
		return models.OutcomeDelivered
	}
	if draw < delivered+failed {
		return models.OutcomeFailed
	}
	return models.OutcomeBlocked
}

func probabilities(flags models.SafetyFlags) (delivered, failed, blocked float64) {
	delivered = baseDelivered
	failed = baseFailed
	blocked = baseBlocked

	if !flags.WarmupMode {
		delivered -= 0.05
		failed += 0.03
		blocked += 0.02
	}
	if !flags.RateLimiter {
		delivered -= 0.03
		blocked += 0.03
	}
	if !flags.OptInValidation {
		delivered -= 0.02
		blocked += 0.02
	}
	return delivered, failed, blocked
}

// Health classifies the sending number from its blocked/failed percentages.
type Health struct {
	Score       int    `json:"score"`
	Status      string `json:"status"`
	StatusClass string `json:"statusClass"`
}

// HealthScore deducts 10 points per blocked percent and 5 per failed
// percent from 100, clamped to [0,100].
func HealthScore(blockedRate, failedRate float64) Health {
	score := 100 - blockedRate*10 - failedRate*5
	score = math.Max(0, math.Min(100, math.Round(score)))

	h := Health{Score: int(score)}
	switch {
	case h.Score >= 90:
		h.Status = "Excellent"
		h.StatusClass = "excellent"
	case h.Score >= 70:
		h.Status = "Good"
		h.StatusClass = "low-risk"
	case h.Score >= 50:
		h.Status = "Monitor Closely"
		h.StatusClass = "monitor"
	default:
		h.Status = "At Risk"
		h.StatusClass = "danger"
	}
	return h
}

// Delay returns a randomized network latency between min and max,
// inclusive, for the delivery simulation.
func Delay(minMs, maxMs int) time.Duration {
	if maxMs < minMs {
		maxMs = minMs
	}
	ms := rand.Intn(maxMs-minMs+1) + minMs
	return time.Duration(ms) * time.Millisecond
}

var cannedReplies = []string{
	"Thanks for the information!",
	"I'll think about it and get back to you.",
	"Can you tell me more about the pricing?",
	"When can we schedule a call?",
	"That sounds interesting!",
	"I have a few questions...",
}

// CannedReply picks a random simulated customer reply.
func CannedReply() string {
	return cannedReplies[rand.Intn(len(cannedReplies))]
}

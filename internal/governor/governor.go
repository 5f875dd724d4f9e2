// Package governor applies automatic lifecycle actions to campaigns based
// on their cumulative block and fail rates. It only ever moves a campaign
// toward a more restrictive state; resuming is an operator action.
package governor

import "whatsapp-console/internal/models"

// Thresholds, in percent, above which an auto-action fires.
const (
	BlockRateLimit = 5.0
	FailRateLimit  = 3.0
)

// Rates computes a campaign's block and fail percentages. A campaign with
// no sends reports zero rates rather than dividing by zero.
func Rates(c models.Campaign) (blockRate, failRate float64) {
	if c.MessagesSent <= 0 {
		return 0, 0
	}
	blockRate = float64(c.Blocked) / float64(c.MessagesSent) * 100
	failRate = float64(c.Failed) / float64(c.MessagesSent) * 100
	return blockRate, failRate
}

// Evaluate returns the status and auto-action the campaign should carry
// after a counts update. The block-rate rule wins over the fail-rate rule;
// below both thresholds the campaign is left as it is.
func Evaluate(c models.Campaign) (status, autoAction string, changed bool) {
	blockRate, failRate := Rates(c)

	if blockRate > BlockRateLimit {
		return models.CampaignPaused, models.AutoActionStopped, true
	}
	if failRate > FailRateLimit {
		return models.CampaignThrottled, models.AutoActionThrottled, true
	}
	return c.Status, c.AutoAction, false
}

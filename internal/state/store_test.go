package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whatsapp-console/internal/models"
	"whatsapp-console/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	return NewStore(kv, "appState")
}

func intp(n int) *int { return &n }

func TestFirstRunSeedsDefaults(t *testing.T) {
	s := newTestStore(t)

	chats := s.GetChats()
	require.Len(t, chats, 7)
	assert.Equal(t, "chat_1", chats[0].ID)
	assert.True(t, chats[0].HasReplied)
	assert.True(t, chats[1].IsCampaignOnly)

	assert.Len(t, s.GetCampaigns(), 5)
	assert.Len(t, s.GetTemplates(), 5)

	flags := s.GetSafetyFlags()
	assert.True(t, flags.OptInValidation)
	assert.False(t, flags.KillSwitch)

	active, ok := s.GetActiveChat()
	require.True(t, ok)
	assert.Equal(t, "chat_1", active.ID)

	assert.Equal(t, 8500, s.GetMetrics().TotalSent)
}

func TestRoundTripAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	kv, err := storage.OpenSQLite(path)
	require.NoError(t, err)

	first := NewStore(kv, "appState")
	first.SetSafetyGate(models.GateWarmup, false)
	first.UpdateChatTags("chat_3", []string{"VIP"})
	first.IncrementMessageCount(models.OutcomeBlocked)
	before := first.Snapshot()

	kv2, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	second := NewStore(kv2, "appState")

	assert.Equal(t, before, second.Snapshot())
}

func TestLoadShallowMergesOverDefaults(t *testing.T) {
	kv, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)

	// A stored blob that only carries metrics: present keys win wholesale,
	// absent keys take the base defaults, not the demo seed.
	require.True(t, kv.Set("appState", map[string]interface{}{
		"metrics": models.Metrics{TotalSent: 42, DailyLimit: 99},
	}))

	s := NewStore(kv, "appState")

	assert.Equal(t, 42, s.GetMetrics().TotalSent)
	assert.Equal(t, 99, s.GetMetrics().DailyLimit)
	assert.Empty(t, s.GetChats())
	assert.Empty(t, s.GetCampaigns())
	assert.True(t, s.GetSafetyFlags().RateLimiter)

	_, ok := s.GetActiveChat()
	assert.False(t, ok)
}

func TestAddMessageUpdatesLastMessageCache(t *testing.T) {
	s := newTestStore(t)

	msg := models.Message{
		ID:        models.NewID(),
		Type:      models.MessageOutgoing,
		Text:      "hello there",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    models.StatusSent,
	}
	require.True(t, s.AddMessage("chat_2", msg))

	chat, ok := s.GetChat("chat_2")
	require.True(t, ok)
	assert.Equal(t, "hello there", chat.LastMessage)
	assert.Equal(t, msg.Timestamp, chat.LastMessageTime)
	assert.Equal(t, msg.ID, chat.Messages[len(chat.Messages)-1].ID)

	assert.False(t, s.AddMessage("missing", msg))
}

func TestIncomingMessageUnlocksChatPermanently(t *testing.T) {
	s := newTestStore(t)

	chat, _ := s.GetChat("chat_2")
	require.True(t, chat.IsCampaignOnly)
	require.False(t, chat.HasReplied)

	reply := models.Message{
		ID:        models.NewID(),
		Type:      models.MessageIncoming,
		Text:      "count me in",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    models.StatusReceived,
	}
	require.True(t, s.AddMessage("chat_2", reply))

	chat, _ = s.GetChat("chat_2")
	assert.True(t, chat.HasReplied)
	assert.False(t, chat.IsCampaignOnly)

	// Further outgoing traffic never re-locks the chat.
	s.AddMessage("chat_2", models.Message{
		ID: models.NewID(), Type: models.MessageOutgoing,
		Text: "great!", Status: models.StatusSent,
	})
	s.UpdateChatTags("chat_2", []string{"Customer"})
	s.SetSafetyGate(models.GateKillSwitch, true)
	s.SetSafetyGate(models.GateKillSwitch, false)

	chat, _ = s.GetChat("chat_2")
	assert.True(t, chat.HasReplied)
	assert.False(t, chat.IsCampaignOnly)
}

func TestResolveMessageFiresAtMostOnce(t *testing.T) {
	s := newTestStore(t)

	msg := models.Message{
		ID: "m1", Type: models.MessageOutgoing,
		Text: "pending", Status: models.StatusSent,
	}
	require.True(t, s.AddMessage("chat_1", msg))

	resolved, ok := s.ResolveMessage("chat_1", "m1", models.OutcomeDelivered)
	require.True(t, ok)
	assert.Equal(t, models.StatusDelivered, resolved.Status)

	// A second resolution attempt is rejected and the status stands.
	_, ok = s.ResolveMessage("chat_1", "m1", models.OutcomeFailed)
	assert.False(t, ok)

	chat, _ := s.GetChat("chat_1")
	last := chat.Messages[len(chat.Messages)-1]
	assert.Equal(t, models.StatusDelivered, last.Status)
}

func TestResolveMessageBlockedMarksFailed(t *testing.T) {
	s := newTestStore(t)

	require.True(t, s.AddMessage("chat_1", models.Message{
		ID: "m2", Type: models.MessageOutgoing, Text: "x", Status: models.StatusSent,
	}))

	resolved, ok := s.ResolveMessage("chat_1", "m2", models.OutcomeBlocked)
	require.True(t, ok)
	assert.Equal(t, models.StatusFailed, resolved.Status)
}

func TestAddChatNote(t *testing.T) {
	s := newTestStore(t)

	note, ok := s.AddChatNote("chat_1", "interested in JEE batch")
	require.True(t, ok)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "interested in JEE batch", note.Text)

	chat, _ := s.GetChat("chat_1")
	require.Len(t, chat.Notes, 1)
	assert.Equal(t, note.ID, chat.Notes[0].ID)

	_, ok = s.AddChatNote("missing", "nope")
	assert.False(t, ok)
}

func TestAddChatNoteTrimsAndRejectsBlankText(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.AddChatNote("chat_1", "   \t ")
	assert.False(t, ok)

	note, ok := s.AddChatNote("chat_1", "  follow up Friday  ")
	require.True(t, ok)
	assert.Equal(t, "follow up Friday", note.Text)

	chat, _ := s.GetChat("chat_1")
	assert.Len(t, chat.Notes, 1)
}

func TestUpdateChatTagsDropsBlankTags(t *testing.T) {
	s := newTestStore(t)

	require.True(t, s.UpdateChatTags("chat_1", []string{"  VIP ", "   ", "", "Pune"}))

	chat, _ := s.GetChat("chat_1")
	assert.Equal(t, []string{"VIP", "Pune"}, chat.Tags)
}

func TestUpdateCampaignMetricsRunsGovernor(t *testing.T) {
	s := newTestStore(t)

	// camp_1 starts healthy and running; push block rate over 5%.
	campaign, ok := s.UpdateCampaignMetrics("camp_1", CampaignCounts{
		MessagesSent: intp(1000),
		Blocked:      intp(60),
	})
	require.True(t, ok)
	assert.Equal(t, models.CampaignPaused, campaign.Status)
	assert.Equal(t, models.AutoActionStopped, campaign.AutoAction)

	// camp_5 gets a fail rate over 3%.
	campaign, ok = s.UpdateCampaignMetrics("camp_5", CampaignCounts{
		MessagesSent: intp(1000),
		Failed:       intp(40),
	})
	require.True(t, ok)
	assert.Equal(t, models.CampaignThrottled, campaign.Status)
	assert.Equal(t, models.AutoActionThrottled, campaign.AutoAction)

	// Healthy counts leave status alone.
	campaign, ok = s.UpdateCampaignMetrics("camp_3", CampaignCounts{
		MessagesSent: intp(100000),
	})
	require.True(t, ok)
	assert.Equal(t, models.CampaignRunning, campaign.Status)

	_, ok = s.UpdateCampaignMetrics("missing", CampaignCounts{})
	assert.False(t, ok)
}

func TestUpdateCampaignStatusStoppedIsTerminal(t *testing.T) {
	s := newTestStore(t)

	require.True(t, s.UpdateCampaignStatus("camp_1", models.CampaignStopped))
	assert.False(t, s.UpdateCampaignStatus("camp_1", models.CampaignRunning))

	campaign, _ := s.GetCampaign("camp_1")
	assert.Equal(t, models.CampaignStopped, campaign.Status)

	// Manual resume from paused is allowed.
	require.True(t, s.UpdateCampaignStatus("camp_4", models.CampaignRunning))
	campaign, _ = s.GetCampaign("camp_4")
	assert.Equal(t, models.CampaignRunning, campaign.Status)
}

func TestUpdateCampaignMetricsLeavesStoppedCampaignStopped(t *testing.T) {
	s := newTestStore(t)

	require.True(t, s.UpdateCampaignStatus("camp_1", models.CampaignStopped))

	// Counts that would normally pause the campaign still land, but the
	// governor never moves a stopped campaign.
	campaign, ok := s.UpdateCampaignMetrics("camp_1", CampaignCounts{
		MessagesSent: intp(1000),
		Blocked:      intp(100),
	})
	require.True(t, ok)
	assert.Equal(t, models.CampaignStopped, campaign.Status)
	assert.Equal(t, 1000, campaign.MessagesSent)
	assert.Equal(t, 100, campaign.Blocked)

	campaign, _ = s.GetCampaign("camp_1")
	assert.Equal(t, models.CampaignStopped, campaign.Status)
}

func TestKillSwitchCascadePausesOnlyRunningCampaigns(t *testing.T) {
	s := newTestStore(t)

	require.True(t, s.UpdateCampaignStatus("camp_3", models.CampaignStopped))
	// Now: camp_1 running, camp_2 throttled, camp_3 stopped, camp_4 paused,
	// camp_5 running.

	require.True(t, s.SetSafetyGate(models.GateKillSwitch, true))
	assert.False(t, s.IsMessagingAllowed())

	expect := map[string]struct {
		status     string
		autoAction string
	}{
		"camp_1": {models.CampaignPaused, models.AutoActionKillSwitch},
		"camp_2": {models.CampaignThrottled, models.AutoActionThrottled},
		"camp_3": {models.CampaignStopped, models.AutoActionNone},
		"camp_4": {models.CampaignPaused, models.AutoActionStopped},
		"camp_5": {models.CampaignPaused, models.AutoActionKillSwitch},
	}
	for id, want := range expect {
		campaign, ok := s.GetCampaign(id)
		require.True(t, ok, id)
		assert.Equal(t, want.status, campaign.Status, id)
		assert.Equal(t, want.autoAction, campaign.AutoAction, id)
	}

	// Deactivating the switch restores sending but resumes nothing.
	require.True(t, s.SetSafetyGate(models.GateKillSwitch, false))
	assert.True(t, s.IsMessagingAllowed())
	campaign, _ := s.GetCampaign("camp_1")
	assert.Equal(t, models.CampaignPaused, campaign.Status)
}

func TestSetSafetyGateUnknownGate(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.SetSafetyGate("no-such-gate", true))
}

func TestIncrementMessageCountDistribution(t *testing.T) {
	s := newTestStore(t)
	before := s.GetMetrics()

	for i := 0; i < 70; i++ {
		s.IncrementMessageCount(models.OutcomeDelivered)
	}
	for i := 0; i < 20; i++ {
		s.IncrementMessageCount(models.OutcomeFailed)
	}
	for i := 0; i < 10; i++ {
		s.IncrementMessageCount(models.OutcomeBlocked)
	}

	after := s.GetMetrics()
	assert.Equal(t, before.TotalSent+100, after.TotalSent)
	assert.Equal(t, before.TotalDelivered+70, after.TotalDelivered)
	assert.Equal(t, before.TotalFailed+20, after.TotalFailed)
	assert.Equal(t, before.TotalBlocked+10, after.TotalBlocked)
	assert.Equal(t, before.DailyLimit, after.DailyLimit)
}

func TestGetCalculatedRatesIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	first := s.GetCalculatedRates()
	second := s.GetCalculatedRates()
	assert.Equal(t, first, second)

	// Seed metrics: 43/8500 blocked, 102/8500 failed.
	assert.Equal(t, "0.5", first.BlockedRate)
	assert.Equal(t, "1.2", first.FailedRate)
	assert.Equal(t, 89, first.Score)
	assert.Equal(t, "Good", first.Status)
}

func TestGetCalculatedRatesZeroSent(t *testing.T) {
	s := newTestStore(t)
	s.UpdateMetrics(MetricsUpdate{
		TotalSent:    intp(0),
		TotalBlocked: intp(0),
		TotalFailed:  intp(0),
	})

	rates := s.GetCalculatedRates()
	assert.Equal(t, "0.0", rates.BlockedRate)
	assert.Equal(t, "0.0", rates.FailedRate)
	assert.Equal(t, 100, rates.Score)
	assert.Equal(t, "Excellent", rates.Status)
}

func TestSearchTemplates(t *testing.T) {
	s := newTestStore(t)

	byName := s.SearchTemplates("welcome")
	require.Len(t, byName, 1)
	assert.Equal(t, "tmpl_2", byName[0].ID)

	byContent := s.SearchTemplates("ORDER")
	require.Len(t, byContent, 1)
	assert.Equal(t, "tmpl_3", byContent[0].ID)

	assert.Empty(t, s.SearchTemplates("zzz-no-match"))
}

func TestUpdatePreferences(t *testing.T) {
	s := newTestStore(t)

	s.UpdatePreferences(models.Preferences{DarkMode: true, SoundEnabled: false})
	prefs := s.GetPreferences()
	assert.True(t, prefs.DarkMode)
	assert.False(t, prefs.SoundEnabled)
}

func TestResetRestoresSeedData(t *testing.T) {
	s := newTestStore(t)

	s.SetSafetyGate(models.GateKillSwitch, true)
	s.UpdateChatTags("chat_1", []string{"scrambled"})
	s.IncrementMessageCount(models.OutcomeBlocked)

	s.Reset()

	assert.False(t, s.GetSafetyFlags().KillSwitch)
	assert.Equal(t, 8500, s.GetMetrics().TotalSent)
	chat, _ := s.GetChat("chat_1")
	assert.Equal(t, []string{"Student", "JEE Aspirant", "Pune", "Marketing Campaign"}, chat.Tags)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := newTestStore(t)

	chat, _ := s.GetChat("chat_1")
	chat.Tags[0] = "mutated"
	chat.Messages[0].Text = "mutated"

	fresh, _ := s.GetChat("chat_1")
	assert.Equal(t, "Student", fresh.Tags[0])
	assert.Equal(t, "Hello Zanke, how are you today?", fresh.Messages[0].Text)
}

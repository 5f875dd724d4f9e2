package state

import (
	"time"

	"whatsapp-console/internal/models"
)

// baseState returns the zero-value aggregate the persisted blob is merged
// over: empty collections, gates engaged, kill switch off.
func baseState() models.AppState {
	return models.AppState{
		ActiveChat: nil,
		Chats:      []models.Chat{},
		Campaigns:  []models.Campaign{},
		Templates:  []models.Template{},
		SafetyFlags: models.SafetyFlags{
			OptInValidation:     true,
			SessionRule24h:      true,
			WarmupMode:          true,
			TemplateEnforcement: true,
			RateLimiter:         true,
			KillSwitch:          false,
		},
		Metrics: models.Metrics{
			TotalSent:      8500,
			TotalDelivered: 7820,
			TotalFailed:    102,
			TotalBlocked:   43,
			DailyLimit:     10000,
		},
		Preferences: models.Preferences{
			DarkMode:     false,
			SoundEnabled: true,
		},
	}
}

// seedState returns the first-run demo data set.
func seedState() models.AppState {
	s := baseState()
	now := time.Now().UTC()
	ts := func(d time.Duration) string { return now.Add(-d).Format(time.RFC3339) }

	campaignChat := func(id, name, phone string, age time.Duration) models.Chat {
		return models.Chat{
			ID:              id,
			Name:            name,
			Phone:           phone,
			LastMessage:     "Hi 🔥 We not...",
			LastMessageTime: ts(age),
			IsCampaignOnly:  true,
			HasReplied:      false,
			Tags:            []string{"Campaign"},
			Notes:           []models.Note{},
			CxScore:         "New",
			Channel:         "whatsapp",
			Messages:        []models.Message{},
		}
	}

	s.Chats = []models.Chat{
		{
			ID:              "chat_1",
			Name:            "ZANKE SAMYAK PRAKASH",
			Phone:           "+917028682379",
			LastMessage:     "Yes, I am looking for coaching for JEE this year.",
			LastMessageTime: now.Format(time.RFC3339),
			IsCampaignOnly:  false,
			HasReplied:      true,
			Tags:            []string{"Student", "JEE Aspirant", "Pune", "Marketing Campaign"},
			Notes:           []models.Note{},
			CxScore:         "New",
			Channel:         "whatsapp",
			Messages: []models.Message{
				{
					ID:        "msg_1",
					Type:      models.MessageOutgoing,
					Text:      "Hello Zanke, how are you today?",
					Timestamp: "2025-12-22T08:30:00Z",
					Status:    models.StatusDelivered,
				},
				{
					ID:        "msg_2",
					Type:      models.MessageOutgoing,
					Text:      "Are you ready for your next big step in education?",
					Timestamp: "2025-12-22T08:30:00Z",
					Status:    models.StatusFailed,
				},
				{
					ID:        "msg_3",
					Type:      models.MessageIncoming,
					Text:      "I am good, thank you! I saw your message about ARMS Academy. I am interested.",
					Timestamp: "2025-12-22T08:35:00Z",
					Status:    models.StatusReceived,
				},
				{
					ID:           "msg_4",
					Type:         models.MessageOutgoing,
					IsTemplate:   true,
					TemplateName: "ARMS Academy Introduction",
					Text:         "Hi 👋\nWe noticed you showed interest in ARMS Academy — one of Pune's trusted institutes for JEE, NEET, MHT-CET & 11th-12th Coaching. Before we share the details, a quick question 👇\nAre you (or your child) preparing for JEE/NEET/MHT-CET or 11th-12th Science this year?",
					Buttons:      []string{"Yes", "No"},
					Timestamp:    "2025-12-22T09:00:00Z",
					Status:       models.StatusDelivered,
				},
				{
					ID:        "msg_5",
					Type:      models.MessageIncoming,
					Text:      "Yes, I am looking for coaching for JEE this year.",
					Timestamp: "2025-12-22T09:05:00Z",
					Status:    models.StatusReceived,
				},
				{
					ID:        "msg_6",
					Type:      models.MessageOutgoing,
					Text:      "Great! We have excellent programs for JEE. Let me share some details.",
					Timestamp: "2025-12-22T09:10:00Z",
					Status:    models.StatusDelivered,
				},
			},
		},
		campaignChat("chat_2", "RELAN GAI", "+919876543210", time.Hour),
		campaignChat("chat_3", "MAHALE N", "+919876543211", time.Hour+100*time.Second),
		campaignChat("chat_4", "ZANKE SAI", "+919876543212", time.Hour+200*time.Second),
		campaignChat("chat_5", "PATIL TANI", "+919876543213", time.Hour+300*time.Second),
		campaignChat("chat_6", "BAGALE NI", "+919876543214", time.Hour+400*time.Second),
		campaignChat("chat_7", "TADASE DA", "+919876543215", time.Hour+500*time.Second),
	}

	// chat_2 starts with a single delivered campaign template.
	s.Chats[1].Messages = []models.Message{
		{
			ID:           "msg_r1",
			Type:         models.MessageOutgoing,
			IsTemplate:   true,
			TemplateName: "Welcome Campaign",
			Text:         "Hi 🔥 We noticed you showed interest...",
			Timestamp:    ts(time.Hour),
			Status:       models.StatusDelivered,
		},
	}

	s.Campaigns = []models.Campaign{
		{
			ID:           "camp_1",
			Name:         "Product Launch Q1",
			MessageType:  "Template",
			MessagesSent: 120000,
			Blocked:      120,
			Failed:       600,
			Status:       models.CampaignRunning,
			AutoAction:   models.AutoActionNone,
			CreatedAt:    "2025-01-01T00:00:00Z",
		},
		{
			ID:           "camp_2",
			Name:         "Customer Re-engagement",
			MessageType:  "Text",
			MessagesSent: 50000,
			Blocked:      750,
			Failed:       1000,
			Status:       models.CampaignThrottled,
			AutoAction:   models.AutoActionThrottled,
			CreatedAt:    "2025-01-15T00:00:00Z",
		},
		{
			ID:           "camp_3",
			Name:         "Holiday Promo 2024",
			MessageType:  "Template",
			MessagesSent: 250000,
			Blocked:      750,
			Failed:       2000,
			Status:       models.CampaignRunning,
			AutoAction:   models.AutoActionNone,
			CreatedAt:    "2024-12-01T00:00:00Z",
		},
		{
			ID:           "camp_4",
			Name:         "Service Update Alert",
			MessageType:  "Text",
			MessagesSent: 10000,
			Blocked:      520,
			Failed:       710,
			Status:       models.CampaignPaused,
			AutoAction:   models.AutoActionStopped,
			CreatedAt:    "2025-01-20T00:00:00Z",
		},
		{
			ID:           "camp_5",
			Name:         "Feedback Survey",
			MessageType:  "Template",
			MessagesSent: 30000,
			Blocked:      0,
			Failed:       30,
			Status:       models.CampaignRunning,
			AutoAction:   models.AutoActionNone,
			CreatedAt:    "2025-01-25T00:00:00Z",
		},
	}

	s.Templates = []models.Template{
		{
			ID:        "tmpl_1",
			Name:      "ARMS Academy Introduction",
			Category:  "Marketing",
			Content:   "Hi {{name}} 👋\nWe noticed you showed interest in ARMS Academy — one of Pune's trusted institutes for JEE, NEET, MHT-CET & 11th-12th Coaching. Before we share the details, a quick question 👇\nAre you (or your child) preparing for JEE/NEET/MHT-CET or 11th-12th Science this year?",
			Buttons:   []string{"Yes", "No"},
			Signature: "ARMS Academy Assistant",
		},
		{
			ID:        "tmpl_2",
			Name:      "Welcome Message",
			Category:  "Utility",
			Content:   "Welcome to our service, {{name}}! We're excited to have you on board. Reply with \"HELP\" if you need any assistance.",
			Buttons:   []string{"Get Started", "Learn More"},
			Signature: "Customer Support",
		},
		{
			ID:        "tmpl_3",
			Name:      "Order Confirmation",
			Category:  "Transaction",
			Content:   "Hi {{name}}, your order #{{orderId}} has been confirmed! Expected delivery: {{deliveryDate}}. Track your order anytime.",
			Buttons:   []string{"Track Order"},
			Signature: "Order Updates",
		},
		{
			ID:        "tmpl_4",
			Name:      "Appointment Reminder",
			Category:  "Utility",
			Content:   "Hi {{name}}, this is a reminder for your appointment on {{date}} at {{time}}. Please confirm your attendance.",
			Buttons:   []string{"Confirm", "Reschedule"},
			Signature: "Appointment System",
		},
		{
			ID:        "tmpl_5",
			Name:      "Feedback Request",
			Category:  "Marketing",
			Content:   "Hi {{name}}, we hope you enjoyed your recent experience with us! Would you mind sharing your feedback? It helps us serve you better.",
			Buttons:   []string{"Leave Feedback", "Not Now"},
			Signature: "Quality Team",
		},
	}

	first := s.Chats[0].ID
	s.ActiveChat = &first
	return s
}

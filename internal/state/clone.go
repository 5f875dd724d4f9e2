package state

import "whatsapp-console/internal/models"

// Accessors hand out copies so callers can serialize or inspect results
// without holding the store lock.

func cloneMessage(m models.Message) models.Message {
	m.Buttons = append([]string(nil), m.Buttons...)
	return m
}

func cloneChat(c models.Chat) models.Chat {
	c.Tags = append([]string(nil), c.Tags...)
	c.Notes = append([]models.Note(nil), c.Notes...)
	messages := make([]models.Message, len(c.Messages))
	for i, m := range c.Messages {
		messages[i] = cloneMessage(m)
	}
	c.Messages = messages
	return c
}

func cloneChats(chats []models.Chat) []models.Chat {
	out := make([]models.Chat, len(chats))
	for i, c := range chats {
		out[i] = cloneChat(c)
	}
	return out
}

func cloneTemplate(t models.Template) models.Template {
	t.Buttons = append([]string(nil), t.Buttons...)
	return t
}

func cloneTemplates(templates []models.Template) []models.Template {
	out := make([]models.Template, len(templates))
	for i, t := range templates {
		out[i] = cloneTemplate(t)
	}
	return out
}

func cloneState(app models.AppState) models.AppState {
	app.Chats = cloneChats(app.Chats)
	app.Campaigns = append([]models.Campaign(nil), app.Campaigns...)
	app.Templates = cloneTemplates(app.Templates)
	if app.ActiveChat != nil {
		id := *app.ActiveChat
		app.ActiveChat = &id
	}
	return app
}

package handler

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash severities. Rendered as css classes, so keep them lowercase.
const (
	flashSuccess = "success"
	flashError   = "error"
)

// flashMessage is a one-time notification for the next rendered response.
type flashMessage struct {
	Level string
	Text  string
}

// addFlash queues a message on the session. Messages are encoded as
// "level|text" so the cookie store only has to gob-encode strings.
func addFlash(c *gin.Context, level, text string) {
	session := sessions.Default(c)
	session.AddFlash(level + "|" + text)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
}

// takeFlashes drains the queued messages. Reading clears them, so each
// message is delivered exactly once.
func takeFlashes(c *gin.Context) []flashMessage {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}

	messages := make([]flashMessage, 0, len(raw))
	for _, entry := range raw {
		encoded, ok := entry.(string)
		if !ok {
			continue
		}
		level, text, found := strings.Cut(encoded, "|")
		if !found {
			level, text = flashSuccess, encoded
		}
		messages = append(messages, flashMessage{Level: level, Text: text})
	}
	return messages
}

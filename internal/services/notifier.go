package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/jobscout/internal/domain/events"
	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/maxaizer/jobscout/internal/logger"
	log "github.com/sirupsen/logrus"
)

type telegramApi interface {
	Send(c botApi.Chattable) (botApi.Message, error)
}

// Notifier sends a Telegram message for every stored posting scoring at least minScore.
type Notifier struct {
	api      telegramApi
	chatID   int64
	minScore float64
}

func NewNotifier(bus EventBus.Bus, api telegramApi, chatID int64, minScore float64) (*Notifier, error) {
	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	if api == nil {
		return nil, errors.New("telegram api is nil")
	}

	n := &Notifier{api: api, chatID: chatID, minScore: minScore}
	if err := bus.Subscribe(events.JobMatchedTopic, n.onJobMatched); err != nil {
		return nil, err
	}
	log.Infof("notifier started, min score: %.0f", minScore)
	return n, nil
}

func (n *Notifier) onJobMatched(event events.JobMatched) {
	if event.Job.MatchScore == nil || *event.Job.MatchScore < n.minScore {
		return
	}

	msg := botApi.NewMessage(n.chatID, formatJobMessage(event.Job))
	msg.DisableWebPagePreview = true
	if _, err := n.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("error occurred while sending message: %v", err)
	}
}

func formatJobMessage(job models.Job) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%.0f%% match: %s at %s\n", *job.MatchScore, job.Title, job.Company)
	if job.Location != "" {
		sb.WriteString(job.Location + "\n")
	}
	if job.SalaryRange != nil {
		sb.WriteString(*job.SalaryRange + "\n")
	}
	if len(job.MatchingSkills) > 0 {
		sb.WriteString("Matching: " + strings.Join(job.MatchingSkills, ", ") + "\n")
	}
	if job.Fallback() {
		sb.WriteString("Scored by keyword overlap\n")
	}
	sb.WriteString(job.URL)
	return sb.String()
}

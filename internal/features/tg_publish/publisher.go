package tg_publish

// Sends the chart preview to a Telegram chat
// Falls back to a text message when the photo cannot be sent

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "langchart/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of *tgbotapi.BotAPI used here.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Publisher struct {
	bot    Sender
	chatID int64
}

// NewBot connects to the Bot API with token.
func NewBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	log.LogInfo("Telegram bot authorized", zap.String("username", bot.Self.UserName))
	return bot, nil
}

func NewPublisher(bot Sender, chatID string) (*Publisher, error) {
	id, err := parseChatID(chatID)
	if err != nil {
		return nil, err
	}
	return &Publisher{bot: bot, chatID: id}, nil
}

func parseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}
	return id, nil
}

// PublishChart sends the PNG at chartPath with caption. If the file is missing
// or the photo upload fails, the caption is sent as a plain message instead.
func (p *Publisher) PublishChart(chartPath, caption string) error {
	if chartPath == "" {
		return p.sendText(caption)
	}

	if _, err := os.Stat(chartPath); err != nil {
		log.LogError("Chart file does not exist", zap.String("chartPath", chartPath), zap.Error(err))
		return p.sendText(caption)
	}

	photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FilePath(chartPath))
	photo.Caption = caption

	if _, err := p.bot.Send(photo); err != nil {
		log.LogError("Failed to send chart photo", zap.Error(err))
		return p.sendText(caption)
	}

	log.LogSuccess("Chart sent to Telegram", zap.Int64("chatID", p.chatID))
	return nil
}

func (p *Publisher) sendText(text string) error {
	msg := tgbotapi.NewMessage(p.chatID, text)
	if _, err := p.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	log.LogSuccess("Chart summary sent to Telegram as text", zap.Int64("chatID", p.chatID))
	return nil
}

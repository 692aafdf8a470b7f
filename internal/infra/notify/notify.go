package notify

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Attachment struct {
	Name string
	Data []byte
}

// Report содержит итог запуска для администратора.
type Report struct {
	Tool  string
	Lines []string
	Files []Attachment
}

func (r Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: готово", r.Tool)
	for _, l := range r.Lines {
		b.WriteString("\n")
		b.WriteString(l)
	}
	return b.String()
}

type Notifier interface {
	Notify(ctx context.Context, r Report) error
}

type Nop struct{}

func (Nop) Notify(context.Context, Report) error { return nil }

// New возвращает Telegram-уведомитель, если заданы токен и чат, иначе Nop.
func New(token string, chatID int64) (Notifier, error) {
	if token == "" || chatID == 0 {
		return Nop{}, nil
	}
	return NewTelegram(token, tgbotapi.APIEndpoint, chatID)
}

type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram; endpoint в формате tgbotapi.APIEndpoint ("…/bot%s/%s").
func NewTelegram(token, endpoint string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

// Notify шлёт текст отчёта, затем каждый файл отдельным документом.
func (t *Telegram) Notify(ctx context.Context, r Report) error {
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, r.Text())); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	for _, f := range r.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc := tgbotapi.NewDocument(t.chatID, tgbotapi.FileBytes{Name: filepath.Base(f.Name), Bytes: f.Data})
		if _, err := t.api.Send(doc); err != nil {
			return fmt.Errorf("send %s: %w", f.Name, err)
		}
	}
	return nil
}

package reporter

import (
	"fmt"

	"go-jobradar-crawler/internal/config"
	"go-jobradar-crawler/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramReporter pushes newly saved jobs and the run summary to a chat.
// Reporting is best-effort: send failures are logged by callers and never
// affect the crawl outcome.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendJob(job models.Job) error {
	text := fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"🏢 %s\n"+
			"📅 %s\n"+
			"🔗 <a href=\"%s\">Apply Now</a>",
		job.Title,
		job.Company,
		job.PostedDate.Format("2006-01-02"),
		job.URL,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendSummary(found, saved, skipped, errored int) error {
	text := fmt.Sprintf(
		"📊 <b>Crawl finished</b>\n"+
			"Found: %d\nSaved: %d\nSkipped: %d\nErrors: %d",
		found, saved, skipped, errored,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Crawler Error</b>:\n%v", errReq)
	return t.SendMessage(text)
}

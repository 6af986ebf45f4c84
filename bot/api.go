package bot

import (
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"substitution-plan-notifier/configuration"
	"substitution-plan-notifier/dto"
	"substitution-plan-notifier/util"
)

type Api struct {
	client      *tgbotapi.BotAPI
	updatesChan tgbotapi.UpdatesChannel
}

func NewApi(cfg configuration.Configuration) (*Api, error) {
	client, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)

	if err != nil {
		return nil, err
	}

	return &Api{client: client}, nil
}

// FormatNotification renders the digest as Telegram HTML. Cell texts and plan
// urls may contain markup characters, so everything outside the tags is escaped.
func FormatNotification(notification dto.NotificationDto) string {
	return fmt.Sprintf(
		"There are changes in schedule on %s:\n<pre>%s</pre>\nSource: %s",
		util.ConvertToGermanWeek(notification.Weekday),
		html.EscapeString(notification.Digest),
		html.EscapeString(notification.SourceUrl))
}

func newNotificationMessage(notification dto.NotificationDto) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(notification.ChatId, FormatNotification(notification))
	msg.ParseMode = tgbotapi.ModeHTML

	return msg
}

func (a *Api) SendNotification(notification dto.NotificationDto) error {
	return a.executeMessage(newNotificationMessage(notification))
}

func (a *Api) StartServe() error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	upd, err := a.client.GetUpdatesChan(updateConfig)

	if err != nil {
		return err
	}

	a.updatesChan = upd

	return nil
}

func (a *Api) executeMessage(config tgbotapi.MessageConfig) error {
	_, err := a.client.Send(config)
	return err
}

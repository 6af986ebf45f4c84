package bot

import (
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/stretchr/testify/assert"

	"substitution-plan-notifier/commands"
	"substitution-plan-notifier/configuration"
	"substitution-plan-notifier/dto"
	"substitution-plan-notifier/exceptions"
	"substitution-plan-notifier/util"
)

type fakeSubscriptionService struct {
	registered map[int64][]string
	whitelist  map[string]bool
	failWith   error
}

func (f *fakeSubscriptionService) Register(class string, chatId int64) (string, error) {
	class, err := util.SanitizeClassName(class)

	if err != nil {
		return "", err
	}

	if f.failWith != nil {
		return class, f.failWith
	}

	if !f.whitelist[class] {
		return class, exceptions.NotWhitelisted
	}

	f.registered[chatId] = append(f.registered[chatId], class)

	return class, nil
}

func (f *fakeSubscriptionService) Unregister(class string, chatId int64) (string, bool, error) {
	class, err := util.SanitizeClassName(class)

	if err != nil {
		return "", false, err
	}

	for i, c := range f.registered[chatId] {
		if c == class {
			f.registered[chatId] = append(f.registered[chatId][:i], f.registered[chatId][i+1:]...)
			return class, true, nil
		}
	}

	return class, false, nil
}

func (f *fakeSubscriptionService) GetClasses(chatId int64) []string {
	return f.registered[chatId]
}

func (f *fakeSubscriptionService) AddToWhitelist(class string) (string, error) {
	class, err := util.SanitizeClassName(class)

	if err != nil {
		return "", err
	}

	f.whitelist[class] = true

	return class, nil
}

func newTestHandler() (*Handler, *fakeSubscriptionService) {
	service := &fakeSubscriptionService{registered: map[int64][]string{}, whitelist: map[string]bool{"10A": true}}
	cfg := configuration.Default()
	cfg.Telegram.Owners = []int64{42}

	return NewHandler(service, cfg, nil), service
}

func TestHandleCommand_Register(t *testing.T) {
	h, service := newTestHandler()

	assert.Contains(t, h.handleCommand(1, commands.RegisterCommand, " 10a "), "Registered you for class 10A")
	assert.Equal(t, []string{"10A"}, service.registered[1])

	assert.Contains(t, h.handleCommand(1, commands.RegisterCommand, "11B"), "not on the whitelist")
	assert.Contains(t, h.handleCommand(1, commands.RegisterCommand, ""), "valid class")

	service.failWith = errors.New("disk full")
	assert.Contains(t, h.handleCommand(1, commands.RegisterCommand, "10A"), "Something went wrong")
}

func TestHandleCommand_ClassesAndUnregister(t *testing.T) {
	h, _ := newTestHandler()

	assert.Contains(t, h.handleCommand(1, commands.ClassesCommand, ""), "haven't registered")

	h.handleCommand(1, commands.RegisterCommand, "10A")
	assert.Equal(t, "You are registered for: 10A", h.handleCommand(1, commands.ClassesCommand, ""))

	assert.Equal(t, "Unregistered you from class 10A.", h.handleCommand(1, commands.UnregisterCommand, "10a"))
	assert.Contains(t, h.handleCommand(1, commands.UnregisterCommand, "10A"), "were not registered")
}

func TestHandleCommand_WhitelistIsOwnerOnly(t *testing.T) {
	h, service := newTestHandler()

	assert.Contains(t, h.handleCommand(1, commands.WhitelistCommand, "11B"), "Only owners")
	assert.False(t, service.whitelist["11B"])

	assert.Equal(t, "Added 11B to the whitelist.", h.handleCommand(42, commands.WhitelistCommand, "11b"))
	assert.True(t, service.whitelist["11B"])
}

func TestHandleCommand_HelpAndUnknown(t *testing.T) {
	h, _ := newTestHandler()

	assert.Equal(t, helpText, h.handleCommand(1, commands.HelpCommand, ""))
	assert.Equal(t, helpText, h.handleCommand(1, commands.StartCommand, ""))
	assert.Contains(t, h.handleCommand(1, commands.CommandType("nope"), ""), "Unknown command")
}

func TestFormatNotification(t *testing.T) {
	text := FormatNotification(dto.NotificationDto{
		ChatId:    1,
		Weekday:   time.Tuesday,
		Digest:    "TABLE",
		SourceUrl: "https://example.org/di.pdf",
	})

	assert.Equal(t, "There are changes in schedule on Dienstag:\n<pre>TABLE</pre>\nSource: https://example.org/di.pdf", text)
}

func TestNotificationMessage_DefaultSourceIsSafeMarkup(t *testing.T) {
	msg := newNotificationMessage(dto.NotificationDto{
		ChatId:    7,
		Weekday:   time.Monday,
		Digest:    "│ 1: 08:00 │ <Raum> & B_12 │",
		SourceUrl: configuration.Default().Source.Url(time.Monday),
	})

	assert.Equal(t, int64(7), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "VertretungsplanA4_Montag.pdf")
	assert.Contains(t, msg.Text, "&lt;Raum&gt; &amp; B_12")
	assert.NotContains(t, msg.Text, "```")

	withoutTags := strings.NewReplacer("<pre>", "", "</pre>", "").Replace(msg.Text)
	assert.NotContains(t, withoutTags, "<")
	assert.NotContains(t, withoutTags, ">")
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/sirupsen/logrus"

	"substitution-plan-notifier/abstractions"
	"substitution-plan-notifier/commands"
	"substitution-plan-notifier/configuration"
	"substitution-plan-notifier/exceptions"
)

const helpText = "/register <class> - get a message when the plan of the class changes\n" +
	"/unregister <class> - stop the messages for the class\n" +
	"/classes - list the classes you registered for\n" +
	"/help - show this text"

type Handler struct {
	subscriptions abstractions.ISubscriptionService
	cfg           configuration.Configuration
	api           *Api
}

func NewHandler(subscriptions abstractions.ISubscriptionService, cfg configuration.Configuration, api *Api) *Handler {
	return &Handler{subscriptions: subscriptions, cfg: cfg, api: api}
}

func (h *Handler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-h.api.updatesChan:
			if !ok {
				return
			}

			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			chatId := update.Message.Chat.ID
			answer := h.handleCommand(chatId, commands.CommandType(update.Message.Command()), update.Message.CommandArguments())

			if err := h.api.executeMessage(tgbotapi.NewMessage(chatId, answer)); err != nil {
				logrus.Errorln("Failed to answer command: ", err.Error())
			}
		}
	}
}

func (h *Handler) handleCommand(chatId int64, command commands.CommandType, args string) string {
	switch command {
	case commands.RegisterCommand:
		return h.handleRegister(chatId, args)
	case commands.UnregisterCommand:
		return h.handleUnregister(chatId, args)
	case commands.ClassesCommand:
		return h.handleClasses(chatId)
	case commands.WhitelistCommand:
		return h.handleWhitelist(chatId, args)
	case commands.HelpCommand, commands.StartCommand:
		return helpText
	default:
		return "Unknown command.\n" + helpText
	}
}

func (h *Handler) handleRegister(chatId int64, args string) string {
	class, err := h.subscriptions.Register(args, chatId)

	switch {
	case errors.Is(err, exceptions.InvalidClassName):
		return "Please give a valid class, for example /register BGYM191"
	case errors.Is(err, exceptions.NotWhitelisted):
		return fmt.Sprintf("Sorry, %s is not on the whitelist. Please contact us to request it.", class)
	case err != nil:
		logrus.Errorln("Failed to register: ", err.Error())
		return "Something went wrong, please try again later."
	}

	logrus.Infof("Registered chat %d for class %s", chatId, class)

	return fmt.Sprintf("Registered you for class %s.\n"+
		"You might not receive an update for today or tomorrow if it was published before you registered.", class)
}

func (h *Handler) handleUnregister(chatId int64, args string) string {
	class, removed, err := h.subscriptions.Unregister(args, chatId)

	switch {
	case errors.Is(err, exceptions.InvalidClassName):
		return "Please give a valid class, for example /unregister BGYM191"
	case err != nil:
		logrus.Errorln("Failed to unregister: ", err.Error())
		return "Something went wrong, please try again later."
	case !removed:
		return fmt.Sprintf("You were not registered for class %s.", class)
	}

	return fmt.Sprintf("Unregistered you from class %s.", class)
}

func (h *Handler) handleClasses(chatId int64) string {
	classes := h.subscriptions.GetClasses(chatId)

	if len(classes) == 0 {
		return "You haven't registered for updates for any class."
	}

	return "You are registered for: " + strings.Join(classes, ", ")
}

func (h *Handler) handleWhitelist(chatId int64, args string) string {
	if !h.cfg.Telegram.IsOwner(chatId) {
		return "Only owners may change the whitelist."
	}

	class, err := h.subscriptions.AddToWhitelist(args)

	if err != nil {
		return "Could not add the class: " + err.Error()
	}

	return fmt.Sprintf("Added %s to the whitelist.", class)
}

package services

import (
	"substitution-plan-notifier/abstractions"
	"substitution-plan-notifier/exceptions"
	"substitution-plan-notifier/util"
)

type SubscriptionService struct {
	provider  abstractions.ISubscriptionProvider
	whitelist abstractions.IWhitelistProvider
}

func NewSubscriptionService(provider abstractions.ISubscriptionProvider, whitelist abstractions.IWhitelistProvider) *SubscriptionService {
	return &SubscriptionService{provider: provider, whitelist: whitelist}
}

// Register returns the sanitized class the chat was subscribed to.
func (s SubscriptionService) Register(input string, chatId int64) (string, error) {
	class, err := util.SanitizeClassName(input)

	if err != nil {
		return "", err
	}

	ok, err := s.whitelist.IsWhitelisted(class)

	if err != nil {
		return "", err
	}

	if !ok {
		return class, exceptions.NotWhitelisted
	}

	return class, s.provider.Subscribe(class, chatId)
}

func (s SubscriptionService) Unregister(input string, chatId int64) (string, bool, error) {
	class, err := util.SanitizeClassName(input)

	if err != nil {
		return "", false, err
	}

	removed, err := s.provider.Unsubscribe(class, chatId)

	return class, removed, err
}

func (s SubscriptionService) GetClasses(chatId int64) []string {
	return s.provider.GetUserClasses(chatId)
}

func (s SubscriptionService) AddToWhitelist(input string) (string, error) {
	class, err := util.SanitizeClassName(input)

	if err != nil {
		return "", err
	}

	return class, s.whitelist.UpdateWhitelist([]string{class})
}

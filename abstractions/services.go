package abstractions

import (
	"context"
	"substitution-plan-notifier/dto"
	"time"
)

type IFetcher interface {
	FetchWeekday(ctx context.Context, weekday time.Weekday) ([]byte, error)
	SourceUrl(weekday time.Weekday) string
}

type IExtractor interface {
	Extract(ctx context.Context, pdf []byte) (dto.ExtractionResult, error)
}

type INotifier interface {
	SendNotification(notification dto.NotificationDto) error
}

type ISubscriptionService interface {
	Register(class string, chatId int64) (string, error)
	Unregister(class string, chatId int64) (string, bool, error)
	GetClasses(chatId int64) []string
	AddToWhitelist(class string) (string, error)
}

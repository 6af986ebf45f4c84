package abstractions

import (
	"substitution-plan-notifier/dao"
	"time"
)

type IScheduleProvider interface {
	GetSchedule(weekday time.Weekday) (*dao.Schedule, error)
	StoreSchedule(weekday time.Weekday, schedule *dao.Schedule) error
	DeleteSchedule(weekday time.Weekday) error
}

type ISubscriptionProvider interface {
	Subscribe(class string, chatId int64) error
	Unsubscribe(class string, chatId int64) (bool, error)
	GetUserClasses(chatId int64) []string
	Snapshot() dao.SubscriberRegistry
}

type IWhitelistProvider interface {
	UpdateWhitelist(classes []string) error
	GetWhitelist() ([]string, error)
	IsWhitelisted(class string) (bool, error)
}

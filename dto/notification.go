package dto

import "time"

type NotificationDto struct {
	ChatId    int64
	Weekday   time.Weekday
	Digest    string
	SourceUrl string
	Classes   []string
}

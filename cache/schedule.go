package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"substitution-plan-notifier/dao"
	"substitution-plan-notifier/exceptions"
)

// Schedules expire after a week; by then the weekday's plan has been replaced.
const scheduleExpiration = 7 * 24 * time.Hour

const scheduleKeyPattern = "schedule:%s"

type ScheduleCacheProvider struct {
	common *CommonProvider
}

func NewScheduleCacheProvider(common *CommonProvider) *ScheduleCacheProvider {
	return &ScheduleCacheProvider{common: common}
}

func scheduleKey(weekday time.Weekday) string {
	return fmt.Sprintf(scheduleKeyPattern, strings.ToLower(weekday.String()))
}

func (s *ScheduleCacheProvider) GetSchedule(weekday time.Weekday) (*dao.Schedule, error) {
	data, err := s.common.getValueByKey(scheduleKey(weekday))

	if err != nil {
		return nil, err
	}

	var schedule dao.Schedule

	if err = json.Unmarshal([]byte(data), &schedule); err != nil {
		return nil, exceptions.InternalError
	}

	return &schedule, nil
}

func (s *ScheduleCacheProvider) StoreSchedule(weekday time.Weekday, schedule *dao.Schedule) error {
	data, err := json.Marshal(schedule)

	if err != nil {
		return exceptions.InternalError
	}

	return s.common.saveKeyValue(scheduleKey(weekday), string(data), scheduleExpiration)
}

func (s *ScheduleCacheProvider) DeleteSchedule(weekday time.Weekday) error {
	return s.common.removeKey(scheduleKey(weekday))
}

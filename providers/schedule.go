package providers

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"substitution-plan-notifier/dao"
	"substitution-plan-notifier/exceptions"
)

// ScheduleProvider keeps the last schedule of every weekday in its own JSON file.
type ScheduleProvider struct {
	commons map[time.Weekday]*CommonProvider
	mutex   *sync.RWMutex
}

func NewScheduleProvider(directory string) (*ScheduleProvider, error) {
	commons := map[time.Weekday]*CommonProvider{}

	for day := time.Sunday; day <= time.Saturday; day++ {
		common, err := newCommonProvider(filepath.Join(directory, "schedules"), strings.ToLower(day.String()))

		if err != nil {
			return nil, err
		}

		commons[day] = common
	}

	return &ScheduleProvider{commons: commons, mutex: &sync.RWMutex{}}, nil
}

func (s *ScheduleProvider) GetSchedule(weekday time.Weekday) (*dao.Schedule, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, err := s.commons[weekday].getAllDataFromStorage()

	if errors.Is(err, fs.ErrNotExist) {
		return nil, exceptions.NotFound
	}

	if err != nil {
		return nil, err
	}

	var schedule dao.Schedule

	if err = json.Unmarshal(data, &schedule); err != nil {
		return nil, fmt.Errorf("decode %s schedule: %w", weekday, err)
	}

	return &schedule, nil
}

func (s *ScheduleProvider) StoreSchedule(weekday time.Weekday, schedule *dao.Schedule) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := json.MarshalIndent(schedule, "", "  ")

	if err != nil {
		return err
	}

	return s.commons[weekday].saveAllDataToStorage(data)
}

func (s *ScheduleProvider) DeleteSchedule(weekday time.Weekday) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.commons[weekday].removeStorage()
}

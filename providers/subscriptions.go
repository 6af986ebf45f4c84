package providers

import (
	"sync"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"substitution-plan-notifier/dao"
)

type SubscriptionProvider struct {
	common   *CommonProvider
	registry dao.SubscriberRegistry
	mutex    *sync.RWMutex
}

func NewSubscriptionProvider(directory string) (*SubscriptionProvider, error) {
	common, err := newCommonProvider(directory, "subscriptions")

	if err != nil {
		return nil, err
	}

	registry := dao.SubscriberRegistry{}

	data, err := common.getAllDataFromStorage()

	if err == nil {
		var stored map[string][]int64

		if err = json.Unmarshal(data, &stored); err != nil {
			logrus.Errorln("Failed to read subscriptions, starting empty: ", err.Error())
		}

		for class, ids := range stored {
			if len(ids) == 0 {
				continue
			}

			registry[class] = dao.NewSubscriberSet(ids...)
		}
	}

	return &SubscriptionProvider{common: common, registry: registry, mutex: &sync.RWMutex{}}, nil
}

func (s *SubscriptionProvider) Subscribe(class string, chatId int64) (err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	set, existed := s.registry[class]

	if existed && set.Contains(chatId) {
		return nil
	}

	if !existed {
		set = dao.SubscriberSet{}
		s.registry[class] = set
	}

	set[chatId] = struct{}{}

	defer func() {
		if err != nil {
			delete(set, chatId)

			if len(set) == 0 {
				delete(s.registry, class)
			}
		}
	}()

	return s.save()
}

// Unsubscribe reports whether the chat was subscribed to the class.
func (s *SubscriptionProvider) Unsubscribe(class string, chatId int64) (removed bool, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	set, ok := s.registry[class]

	if !ok || !set.Contains(chatId) {
		return false, nil
	}

	delete(set, chatId)

	if len(set) == 0 {
		delete(s.registry, class)
	}

	defer func() {
		if err != nil {
			set[chatId] = struct{}{}
			s.registry[class] = set
		}
	}()

	if err = s.save(); err != nil {
		return false, err
	}

	return true, nil
}

func (s *SubscriptionProvider) GetUserClasses(chatId int64) []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.registry.ClassesOf(chatId)
}

func (s *SubscriptionProvider) Snapshot() dao.SubscriberRegistry {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.registry.Copy()
}

func (s *SubscriptionProvider) save() error {
	stored := make(map[string][]int64, len(s.registry))

	for class, set := range s.registry {
		stored[class] = set.Sorted()
	}

	data, err := json.Marshal(stored)

	if err != nil {
		return err
	}

	return s.common.saveAllDataToStorage(data)
}

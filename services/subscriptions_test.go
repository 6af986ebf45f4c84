package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"substitution-plan-notifier/dao"
	"substitution-plan-notifier/exceptions"
)

type memorySubscriptions struct {
	registry dao.SubscriberRegistry
}

func (m *memorySubscriptions) Subscribe(class string, chatId int64) error {
	if m.registry[class] == nil {
		m.registry[class] = dao.SubscriberSet{}
	}

	m.registry[class][chatId] = struct{}{}

	return nil
}

func (m *memorySubscriptions) Unsubscribe(class string, chatId int64) (bool, error) {
	if !m.registry[class].Contains(chatId) {
		return false, nil
	}

	delete(m.registry[class], chatId)

	if len(m.registry[class]) == 0 {
		delete(m.registry, class)
	}

	return true, nil
}

func (m *memorySubscriptions) GetUserClasses(chatId int64) []string {
	return m.registry.ClassesOf(chatId)
}

func (m *memorySubscriptions) Snapshot() dao.SubscriberRegistry {
	return m.registry.Copy()
}

type setWhitelist map[string]bool

func (s setWhitelist) UpdateWhitelist(classes []string) error {
	for _, class := range classes {
		s[class] = true
	}

	return nil
}

func (s setWhitelist) GetWhitelist() ([]string, error) { return nil, nil }

func (s setWhitelist) IsWhitelisted(class string) (bool, error) { return s[class], nil }

func TestSubscriptionService(t *testing.T) {
	subscriptions := &memorySubscriptions{registry: dao.SubscriberRegistry{}}
	whitelist := setWhitelist{"BGYM191": true}
	service := NewSubscriptionService(subscriptions, whitelist)

	class, err := service.Register(" bgym191", 7)
	require.NoError(t, err)
	assert.Equal(t, "BGYM191", class)
	assert.Equal(t, []string{"BGYM191"}, service.GetClasses(7))

	_, err = service.Register("FOS201", 7)
	assert.True(t, errors.Is(err, exceptions.NotWhitelisted))

	_, err = service.Register("FOS 201", 7)
	assert.True(t, errors.Is(err, exceptions.InvalidClassName))

	class, err = service.AddToWhitelist("fos201")
	require.NoError(t, err)
	assert.Equal(t, "FOS201", class)

	_, err = service.Register("FOS201", 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"BGYM191", "FOS201"}, service.GetClasses(7))

	class, removed, err := service.Unregister("bgym191", 7)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, "BGYM191", class)
	assert.Equal(t, []string{"FOS201"}, service.GetClasses(7))
}

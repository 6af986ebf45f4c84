package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"substitution-plan-notifier/configuration"
)

func TestNewScheduleProvider_File(t *testing.T) {
	config := configuration.Default()
	config.Storage.Backend = "file"
	config.Storage.Directory = t.TempDir()

	provider, closeProvider, err := newScheduleProvider(config)
	require.NoError(t, err)
	require.NotNil(t, provider)

	_, err = provider.GetSchedule(time.Monday)
	assert.Error(t, err)
	assert.NoError(t, closeProvider())
}

func TestNewScheduleProvider_RedisUnreachable(t *testing.T) {
	config := configuration.Default()
	config.Storage.Backend = "redis"
	config.Storage.RedisAddress = "127.0.0.1:1"

	_, closeProvider, err := newScheduleProvider(config)
	assert.Error(t, err)
	assert.Nil(t, closeProvider)
}

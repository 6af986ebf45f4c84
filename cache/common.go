package cache

import (
	"time"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"

	"substitution-plan-notifier/exceptions"
)

type CommonProvider struct {
	client *redis.Client
}

func NewCommonProvider(conString string) (*CommonProvider, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conString,
		Password: "",
		DB:       0,
	})

	err := client.Ping().Err()

	if err != nil {
		return nil, err
	}

	return &CommonProvider{client: client}, nil
}

func (c *CommonProvider) saveKeyValue(key string, value interface{}, expire time.Duration) error {
	err := c.client.Set(key, value, expire).Err()

	if err != nil {
		logrus.Errorln("Failed save key: ", err.Error())
		return exceptions.InternalError
	}

	return nil
}

func (c *CommonProvider) getValueByKey(key string) (string, error) {
	value, err := c.client.Get(key).Result()

	if err == redis.Nil {
		return "", exceptions.NotFound
	}

	if err != nil {
		logrus.Errorln("Failed get key: ", err.Error())
		return "", exceptions.InternalError
	}

	return value, nil
}

func (c *CommonProvider) removeKey(key string) error {
	err := c.client.Del(key).Err()

	if err != nil {
		logrus.Errorln("Failed remove key: ", err.Error())
		return exceptions.InternalError
	}

	return nil
}

func (c *CommonProvider) Close() error {
	return c.client.Close()
}

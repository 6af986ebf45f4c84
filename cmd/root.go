package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"substitution-plan-notifier/abstractions"
	"substitution-plan-notifier/bot"
	"substitution-plan-notifier/cache"
	"substitution-plan-notifier/configuration"
	"substitution-plan-notifier/extraction"
	"substitution-plan-notifier/metrics"
	"substitution-plan-notifier/providers"
	"substitution-plan-notifier/services"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "substitution-plan-notifier",
	Short: "Sends Telegram messages when a class's substitution plan changes",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "./configs/config.yml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func setupLogging(settings configuration.LoggingSettings) error {
	level, err := logrus.ParseLevel(settings.Level)

	if err != nil {
		return err
	}

	logrus.SetLevel(level)

	if settings.Json {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	return nil
}

// newScheduleProvider returns the configured schedule store and a function
// releasing its connection.
func newScheduleProvider(config configuration.Configuration) (abstractions.IScheduleProvider, func() error, error) {
	if config.Storage.Backend == "redis" {
		common, err := cache.NewCommonProvider(config.Storage.RedisAddress)

		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}

		return cache.NewScheduleCacheProvider(common), common.Close, nil
	}

	provider, err := providers.NewScheduleProvider(config.Storage.Directory)

	return provider, func() error { return nil }, err
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := configuration.Load(cfgPath)

	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err = setupLogging(config.Logging); err != nil {
		return err
	}

	schedulesProvider, closeSchedules, err := newScheduleProvider(config)

	if err != nil {
		return err
	}

	defer func() {
		if err := closeSchedules(); err != nil {
			logrus.Errorln("Failed to close schedule storage: ", err.Error())
		}
	}()

	subscriptionsProvider, err := providers.NewSubscriptionProvider(config.Storage.Directory)

	if err != nil {
		return err
	}

	whitelistProvider, err := providers.NewWhitelistProvider(config.Storage.Directory)

	if err != nil {
		return err
	}

	if err = whitelistProvider.UpdateWhitelist(config.Whitelist); err != nil {
		logrus.Errorln("Failed to load configured whitelist: ", err.Error())
	}

	collector, err := metrics.NewCollector(nil)

	if err != nil {
		return err
	}

	if config.Metrics.ListenAddress != "" {
		go func() {
			if err := metrics.Serve(config.Metrics.ListenAddress); err != nil {
				logrus.Errorln("Metrics server stopped: ", err.Error())
			}
		}()
	}

	api, err := bot.NewApi(config)

	if err != nil {
		return err
	}

	if err = api.StartServe(); err != nil {
		return err
	}

	subscriptionService := services.NewSubscriptionService(subscriptionsProvider, whitelistProvider)
	pollService := services.NewPollService(
		extraction.NewFetcher(config.Source),
		extraction.NewTabulaExtractor(config.Extraction),
		schedulesProvider,
		subscriptionsProvider,
		whitelistProvider,
		api,
		services.NewTableReconstructor(services.PrefixTerminator(config.Reconstruction.BlockTerminatorPrefix)),
		collector,
		config.Polling.Interval)

	handler := bot.NewHandler(subscriptionService, config, api)
	go handler.Run(ctx)

	logrus.Infoln("Starting loop")
	pollService.Run(ctx)

	return nil
}

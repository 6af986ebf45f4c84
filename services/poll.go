package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"substitution-plan-notifier/abstractions"
	"substitution-plan-notifier/dao"
	"substitution-plan-notifier/dto"
	"substitution-plan-notifier/exceptions"
	"substitution-plan-notifier/metrics"
	"substitution-plan-notifier/util"
)

// PollService checks the plans of the next two school days on every tick and
// notifies the subscribers of classes whose substitutions changed.
type PollService struct {
	fetcher       abstractions.IFetcher
	extractor     abstractions.IExtractor
	schedules     abstractions.IScheduleProvider
	subscriptions abstractions.ISubscriptionProvider
	whitelist     abstractions.IWhitelistProvider
	notifier      abstractions.INotifier
	reconstructor *TableReconstructor
	renderer      *DigestRenderer
	metrics       *metrics.Collector
	interval      time.Duration
	now           func() time.Time

	mutex    sync.Mutex
	inFlight map[time.Weekday]bool
}

func NewPollService(
	fetcher abstractions.IFetcher,
	extractor abstractions.IExtractor,
	schedules abstractions.IScheduleProvider,
	subscriptions abstractions.ISubscriptionProvider,
	whitelist abstractions.IWhitelistProvider,
	notifier abstractions.INotifier,
	reconstructor *TableReconstructor,
	collector *metrics.Collector,
	interval time.Duration) *PollService {

	return &PollService{
		fetcher:       fetcher,
		extractor:     extractor,
		schedules:     schedules,
		subscriptions: subscriptions,
		whitelist:     whitelist,
		notifier:      notifier,
		reconstructor: reconstructor,
		renderer:      NewDigestRenderer(),
		metrics:       collector,
		interval:      interval,
		now:           time.Now,
		inFlight:      map[time.Weekday]bool{},
	}
}

func (p *PollService) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		p.poll(ctx, &wg)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *PollService) poll(ctx context.Context, wg *sync.WaitGroup) {
	next := util.NextSchoolDay(p.now().Weekday())

	for _, day := range []time.Weekday{next, util.SchoolDayAfter(next)} {
		if !p.tryStart(day) {
			logrus.WithField("weekday", day.String()).Debugln("Previous check still running")
			continue
		}

		wg.Add(1)

		go func(day time.Weekday) {
			defer wg.Done()
			defer p.finish(day)

			if err := p.CheckWeekday(ctx, day); err != nil {
				logrus.WithField("weekday", day.String()).Errorln(err.Error())
			}
		}(day)
	}
}

func (p *PollService) tryStart(day time.Weekday) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.inFlight[day] {
		return false
	}

	p.inFlight[day] = true

	return true
}

func (p *PollService) finish(day time.Weekday) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	delete(p.inFlight, day)
}

// CheckWeekday runs one cycle for the weekday. The stored schedule is only
// replaced after the new one was reconstructed successfully.
func (p *PollService) CheckWeekday(ctx context.Context, day time.Weekday) error {
	log := logrus.WithField("weekday", day.String())
	log.Infoln("Checking plan")

	schedule, err := p.buildSchedule(ctx, day)

	if err != nil {
		p.metrics.RecordCycle(day.String(), metrics.ResultFailed)
		return fmt.Errorf("could not process the plan for %s: %w", day, err)
	}

	if schedule.IsStale(p.now()) {
		log.Infoln("Deleting outdated plan from ", schedule.CreationDate.Format("2006-01-02"))
		p.metrics.RecordCycle(day.String(), metrics.ResultStale)

		return p.schedules.DeleteSchedule(day)
	}

	if err = p.whitelist.UpdateWhitelist(schedule.Classes()); err != nil {
		log.Errorln("Failed to update whitelist: ", err.Error())
	}

	previous, err := p.schedules.GetSchedule(day)

	if err != nil {
		if !errors.Is(err, exceptions.NotFound) {
			log.Errorln("Failed to load previous plan, treating every class as changed: ", err.Error())
		}

		previous = nil
	}

	registry := p.subscriptions.Snapshot()
	changed := ChangedClasses(previous, schedule, registry)
	notified := DiffSchedules(previous, schedule, registry)

	for _, notification := range p.prepareNotifications(day, schedule, registry, changed, notified) {
		if err = p.notifier.SendNotification(notification); err != nil {
			log.WithField("chat", notification.ChatId).Errorln("Failed to deliver digest: ", err.Error())
			continue
		}

		p.metrics.RecordNotification(day.String())
	}

	if len(notified) == 0 {
		p.metrics.RecordCycle(day.String(), metrics.ResultUnchanged)
	} else {
		p.metrics.RecordCycle(day.String(), metrics.ResultNotified)
	}

	return p.schedules.StoreSchedule(day, schedule)
}

func (p *PollService) buildSchedule(ctx context.Context, day time.Weekday) (*dao.Schedule, error) {
	pdf, err := p.fetcher.FetchWeekday(ctx, day)

	if err != nil {
		return nil, err
	}

	result, err := p.extractor.Extract(ctx, pdf)

	if err != nil {
		return nil, err
	}

	return p.reconstructor.Reconstruct(result.Pages, result.CreationDate)
}

// prepareNotifications renders one digest per subscriber holding the changed
// classes that subscriber follows.
func (p *PollService) prepareNotifications(
	day time.Weekday,
	schedule *dao.Schedule,
	registry dao.SubscriberRegistry,
	changed []string,
	notified dao.SubscriberSet) []dto.NotificationDto {

	changedSet := make(map[string]struct{}, len(changed))

	for _, class := range changed {
		changedSet[class] = struct{}{}
	}

	var result []dto.NotificationDto

	for _, chatId := range notified.Sorted() {
		classSubstitutions := map[string]dao.Substitutions{}
		var classes []string

		for _, class := range registry.ClassesOf(chatId) {
			if _, ok := changedSet[class]; !ok {
				continue
			}

			substitutions, _ := schedule.GetSubstitutions(class)
			classSubstitutions[class] = substitutions
			classes = append(classes, class)
		}

		result = append(result, dto.NotificationDto{
			ChatId:    chatId,
			Weekday:   day,
			Digest:    p.renderer.Render(classSubstitutions),
			SourceUrl: p.fetcher.SourceUrl(day),
			Classes:   classes,
		})
	}

	return result
}

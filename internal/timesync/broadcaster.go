package timesync

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/vantran/live-auction-BE/internal/clock"
	"github.com/vantran/live-auction-BE/internal/event"
)

// Broadcaster periodically pushes the authoritative server clock to every
// connected client, so countdown timers rendered remotely agree with the
// clock the server uses for its end-of-auction decisions.
type Broadcaster struct {
	notifier  event.Notifier
	clock     clock.Clock
	interval  time.Duration
	scheduler gocron.Scheduler
}

func NewBroadcaster(notifier event.Notifier, clk clock.Clock, interval time.Duration) (*Broadcaster, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		notifier:  notifier,
		clock:     clk,
		interval:  interval,
		scheduler: scheduler,
	}, nil
}

// Start schedules the clock tick and begins broadcasting.
func (b *Broadcaster) Start() error {
	_, err := b.scheduler.NewJob(
		gocron.DurationJob(b.interval),
		gocron.NewTask(
			func() {
				b.notifier.Broadcast(event.Event{
					Type: event.TypeServerTime,
					Data: map[string]int64{"serverTime": b.clock.Now().UnixMilli()},
				})
			},
		),
	)
	if err != nil {
		return err
	}

	b.scheduler.Start()
	log.Info().Dur("interval", b.interval).Msg("server time broadcaster started")
	return nil
}

// Stop shuts the scheduler down.
func (b *Broadcaster) Stop() error {
	return b.scheduler.Shutdown()
}

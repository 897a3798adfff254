package otp

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Purger periodically drops expired entries from a MemoryStore. Entries are
// already treated as absent once expired; purging only bounds memory use.
type Purger struct {
	cron *cron.Cron
}

// StartPurger schedules store.Purge with a cron spec such as "@every 1m".
func StartPurger(store *MemoryStore, spec string, now Clock, log zerolog.Logger) (*Purger, error) {
	if now == nil {
		now = time.Now
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if n := store.Purge(now()); n > 0 {
			log.Debug().Int("removed", n).Msg("Purged expired OTP entries")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid OTP purge schedule %q: %w", spec, err)
	}

	c.Start()
	log.Info().Str("schedule", spec).Msg("OTP purge job started")
	return &Purger{cron: c}, nil
}

// Stop halts the schedule and waits for a running purge to finish.
func (p *Purger) Stop() {
	if p == nil {
		return
	}
	<-p.cron.Stop().Done()
}

package config

import "time"

// PollingConfig reúne os tempos do acompanhamento de análises.
type PollingConfig struct {
	Interval          time.Duration // análise individual
	Timeout           time.Duration // prazo absoluto da análise individual
	BatchInitialDelay time.Duration
	BatchInterval     time.Duration
	BatchMaxTicks     int
	BatchTimeout      time.Duration // 0 = só BatchMaxTicks limita
	BatchConcurrency  int           // 0 = sem limite
}

func loadPolling(fc fileConfig) PollingConfig {
	p := fc.Polling
	return PollingConfig{
		Interval:          parseDuration("POLL_INTERVAL", durationOr(p.Interval, 3*time.Second)),
		Timeout:           parseDuration("POLL_TIMEOUT", durationOr(p.Timeout, 5*time.Minute)),
		BatchInitialDelay: parseDuration("BATCH_INITIAL_DELAY", durationOr(p.BatchInitialDelay, 3*time.Second)),
		BatchInterval:     parseDuration("BATCH_INTERVAL", durationOr(p.BatchInterval, 5*time.Second)),
		BatchMaxTicks:     parseInt("BATCH_MAX_TICKS", intOr(p.BatchMaxTicks, 60)),
		BatchTimeout:      parseDuration("BATCH_TIMEOUT", durationOr(p.BatchTimeout, 0)),
		BatchConcurrency:  parseInt("BATCH_CONCURRENCY", p.BatchConcurrency),
	}
}

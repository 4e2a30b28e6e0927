package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"tokenomics/domain"

	"github.com/rs/zerolog/log"
)

const DefaultAttackProbability = 0.05

// MonitorInteractor scans for flash loan attack patterns. It is meant to run
// from the scheduler rather than from caller code.
type MonitorInteractor struct {
	guard       *LiquidityInteractor
	random      domain.RandomSource
	sink        domain.NotificationSink
	clock       func() time.Time
	probability float64
}

func NewMonitorInteractor(guard *LiquidityInteractor,
	random domain.RandomSource,
	sink domain.NotificationSink,
	clock func() time.Time,
	probability float64) *MonitorInteractor {
	if clock == nil {
		clock = time.Now
	}
	return &MonitorInteractor{
		guard:       guard,
		random:      random,
		sink:        sink,
		clock:       clock,
		probability: probability,
	}
}

// Scan checks every known pattern independently and applies countermeasures
// when at least one of them is flagged.
func (interactor *MonitorInteractor) Scan() []domain.DetectedPattern {
	now := interactor.clock()
	detected := make([]domain.DetectedPattern, 0)
	for _, name := range domain.FlashLoanPatterns {
		if interactor.random.Float64() < interactor.probability {
			detected = append(detected, domain.DetectedPattern{Name: name, DetectedAt: now})
		}
	}

	if len(detected) == 0 {
		log.Debug().Msg("flash loan scan clean")
		return detected
	}

	names := make([]string, len(detected))
	for i, pattern := range detected {
		names[i] = pattern.Name
	}
	actions := interactor.guard.ApplyCountermeasures(detected)
	interactor.sink.Notify(domain.NotifyWarning, "Flash loan attack pattern detected",
		fmt.Sprintf("Detected: %v. Countermeasures: %v", strings.Join(names, ", "), strings.Join(actions, ", ")))

	return detected
}

// Task adapts Scan to the scheduler.
func (interactor *MonitorInteractor) Task(ctx context.Context) error {
	interactor.Scan()
	return nil
}

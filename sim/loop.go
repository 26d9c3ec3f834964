package sim

import (
	"sync"
	"time"

	cfg "github.com/automoto/slide2d/config"
	"github.com/sirupsen/logrus"
)

// Loop steps a World on a ticker. Other goroutines reach the world only
// through Do, whose functions run between ticks.
type Loop struct {
	world    *World
	tickRate int
	maxTicks uint64

	// OnTick, if set, runs after every step on the loop goroutine.
	OnTick func(w *World)

	commands chan func(w *World)
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewLoop returns a loop running world at tickRate steps per second.
// maxTicks of zero runs until Stop.
func NewLoop(world *World, tickRate int, maxTicks uint64) *Loop {
	if tickRate <= 0 {
		tickRate = cfg.Sim.TickRate
	}
	return &Loop{
		world:    world,
		tickRate: tickRate,
		maxTicks: maxTicks,
		commands: make(chan func(w *World), 16),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run blocks until Stop is called or maxTicks steps were taken.
func (l *Loop) Run() {
	defer close(l.done)

	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	l.world.Log.WithField("tick_rate", l.tickRate).Info("sim: loop started")

	for {
		select {
		case <-l.stopChan:
			l.world.Log.WithField("tick", l.world.Tick()).Info("sim: loop stopped")
			return
		case fn := <-l.commands:
			fn(l.world)
		case <-ticker.C:
			l.tick()
			if l.maxTicks > 0 && l.world.Tick() >= l.maxTicks {
				l.world.Log.WithFields(logrus.Fields{
					"tick":   l.world.Tick(),
					"digest": l.world.Digest(),
				}).Info("sim: loop finished")
				return
			}
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Do queues fn to run on the loop goroutine between ticks. It returns false
// once the loop has ended.
func (l *Loop) Do(fn func(w *World)) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.commands <- fn:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) tick() {
	l.world.Step()
	if l.OnTick != nil {
		l.OnTick(l.world)
	}
}

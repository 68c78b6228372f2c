package treasury

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// SignalProvider supplies the market signals the rules consume as external input.
type SignalProvider interface {
	// Momentum returns the ETH and BTC momentum readings used by the ML rule.
	Momentum(now time.Time) (eth, btc float64)
	// Sentiment returns a sentiment reading in -50..50 and a fear/greed index in 0..100.
	Sentiment(ctx context.Context) (sentiment, fearGreed float64)
	// Uniform returns a value in [0, 1).
	Uniform() float64
}

const millisPerDay = 86400000

// ClockMomentum derives the two pseudo-momentum signals from the wall clock.
func ClockMomentum(now time.Time) (eth, btc float64) {
	days := float64(now.UnixMilli()) / millisPerDay
	return math.Sin(days)*0.3 + 0.1, math.Cos(days)*0.2 + 0.05
}

// RandomSignals is the default provider: clock momentum plus seeded pseudo-randomness.
// It is safe for concurrent use.
type RandomSignals struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSignals creates a RandomSignals seeded with seed.
func NewRandomSignals(seed uint64) *RandomSignals {
	return &RandomSignals{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *RandomSignals) Momentum(now time.Time) (float64, float64) {
	return ClockMomentum(now)
}

func (r *RandomSignals) Sentiment(_ context.Context) (float64, float64) {
	return -50 + r.Uniform()*100, r.Uniform() * 100
}

func (r *RandomSignals) Uniform() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// StaticSignals returns fixed readings. Value is returned by every Uniform call.
type StaticSignals struct {
	ETHMomentum    float64
	BTCMomentum    float64
	SentimentValue float64
	FearGreed      float64
	Value          float64
}

func (s StaticSignals) Momentum(time.Time) (float64, float64) {
	return s.ETHMomentum, s.BTCMomentum
}

func (s StaticSignals) Sentiment(context.Context) (float64, float64) {
	return s.SentimentValue, s.FearGreed
}

func (s StaticSignals) Uniform() float64 {
	return s.Value
}

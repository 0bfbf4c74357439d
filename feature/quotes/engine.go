package quotes

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Provider describes one abstract provider's pricing characteristics.
type Provider struct {
	Name string

	// Multiplier shifts the base price; Variance is the half-width of the
	// uniform price variation band.
	Multiplier float64
	Variance   float64

	DeliveryMinDays int
	DeliveryMaxDays int

	ReliabilityMin float64
	ReliabilityMax float64

	// Simulated response latency window.
	LatencyMinMS int
	LatencyMaxMS int
}

// DefaultProviders returns the built-in provider table: A undercuts with a
// wide band, B is the baseline, C is pricier but tighter and more reliable.
func DefaultProviders() []Provider {
	return []Provider{
		{
			Name:       "ProviderA",
			Multiplier: 0.95, Variance: 0.15,
			DeliveryMinDays: 3, DeliveryMaxDays: 7,
			ReliabilityMin: 85, ReliabilityMax: 95,
			LatencyMinMS: 500, LatencyMaxMS: 1500,
		},
		{
			Name:       "ProviderB",
			Multiplier: 1.00, Variance: 0.20,
			DeliveryMinDays: 5, DeliveryMaxDays: 10,
			ReliabilityMin: 75, ReliabilityMax: 90,
			LatencyMinMS: 1000, LatencyMaxMS: 2500,
		},
		{
			Name:       "ProviderC",
			Multiplier: 1.05, Variance: 0.10,
			DeliveryMinDays: 7, DeliveryMaxDays: 14,
			ReliabilityMin: 90, ReliabilityMax: 99,
			LatencyMinMS: 800, LatencyMaxMS: 3000,
		},
	}
}

// Quote is one provider's computed offer.
type Quote struct {
	ProviderName     string  `json:"provider_name"`
	Price            float64 `json:"price"`
	DeliveryDays     int     `json:"delivery_days"`
	ReliabilityScore float64 `json:"reliability_score"`
	ResponseTimeMS   int64   `json:"response_time_ms"`
}

// Engine computes quotes across all providers. The random source is
// injected so tests can pin a seed.
type Engine struct {
	providers []Provider

	mu  sync.Mutex
	rng *rand.Rand

	sleep func(time.Duration)
}

// NewEngine creates a quote engine over the given providers.
func NewEngine(providers []Provider, rng *rand.Rand) *Engine {
	return &Engine{
		providers: providers,
		rng:       rng,
		sleep:     time.Sleep,
	}
}

// Quotes fans out one simulated provider call per configured provider and
// waits for all of them. The full set is always returned together: no
// partial results, no per-provider timeout, no cancellation.
func (e *Engine) Quotes(quantity int, basePrice float64) []Quote {
	quotes := make([]Quote, len(e.providers))

	var wg sync.WaitGroup
	for i, p := range e.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			quotes[i] = e.quote(p, quantity, basePrice)
		}(i, p)
	}
	wg.Wait()

	return quotes
}

func (e *Engine) quote(p Provider, quantity int, basePrice float64) Quote {
	latency := time.Duration(e.uniform(float64(p.LatencyMinMS), float64(p.LatencyMaxMS))) * time.Millisecond
	e.sleep(latency)

	price := basePrice * p.Multiplier * (1 + e.uniform(-p.Variance, p.Variance)) * float64(quantity)

	return Quote{
		ProviderName:     p.Name,
		Price:            round2(price),
		DeliveryDays:     int(math.Round(e.uniform(float64(p.DeliveryMinDays), float64(p.DeliveryMaxDays)))),
		ReliabilityScore: round2(e.uniform(p.ReliabilityMin, p.ReliabilityMax)),
		ResponseTimeMS:   latency.Milliseconds(),
	}
}

// uniform samples U(min, max). The shared rand source is not safe for the
// concurrent provider goroutines, hence the lock.
func (e *Engine) uniform(min, max float64) float64 {
	e.mu.Lock()
	v := e.rng.Float64()
	e.mu.Unlock()
	return min + v*(max-min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

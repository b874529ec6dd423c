package usecase

import (
	"math/rand/v2"
	"sync"
	"time"

	"smartpark/internal/data/entity"
)

// InventorySeeder synthesizes the first availability record for a venue.
type InventorySeeder interface {
	Seed(venue entity.Venue) entity.AvailabilityRecord
}

const (
	minSeedSlots = 50
	maxSeedSlots = 300
	minSeedPrice = 20
	maxSeedPrice = 80
)

// RandomSeeder draws total slots in [50,300] unless the venue capacity is known,
// available slots in [0,total] and an hourly price in [20,80].
type RandomSeeder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomSeeder(seed uint64) *RandomSeeder {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomSeeder{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (s *RandomSeeder) Seed(venue entity.Venue) entity.AvailabilityRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := venue.Capacity
	if total <= 0 {
		total = minSeedSlots + s.rng.IntN(maxSeedSlots-minSeedSlots+1)
	}

	return entity.AvailabilityRecord{
		TotalSlots:     total,
		AvailableSlots: s.rng.IntN(total + 1),
		Price:          minSeedPrice + s.rng.IntN(maxSeedPrice-minSeedPrice+1),
	}
}

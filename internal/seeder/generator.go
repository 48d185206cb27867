package seeder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/stagebook/internal/domain/board"
	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/pkg/logger"
)

// Budget generation range, in rupees.
const (
	budgetMin  = 2_000
	budgetMax  = 60_000
	budgetStep = 500
	maxDaysOut = 90
)

var (
	locations      = []string{"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Pune", "Chennai", "Kolkata", "Jaipur", "Goa"}
	occasions      = []string{"wedding reception", "corporate dinner", "college fest", "birthday party", "product launch", "rooftop party", "charity gala"}
	requiredFields = []string{"title", "category", "date", "location", "budget", "contact"}
)

// Generate creates cfg.Count requests. A share of cfg.InvalidRatio has one
// required field blanked so the board rejects it.
func Generate(ctx context.Context, cfg *Config, now time.Time) ([]Request, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	logger.Get().Info(ctx, "generating requirements",
		logger.Int("count", cfg.Count),
		logger.Float64("invalidRatio", cfg.InvalidRatio))

	out := make([]Request, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled: %w", err)
		}
		req := generateOne(rng, i, now)
		if rng.Float64() < cfg.InvalidRatio {
			blank(&req.Input, requiredFields[rng.IntN(len(requiredFields))])
			req.Valid = false
		}
		out = append(out, req)
	}
	return out, nil
}

func generateOne(rng *rand.Rand, index int, now time.Time) Request {
	categories := model.Categories()
	category := categories[rng.IntN(len(categories))]
	occasion := occasions[rng.IntN(len(occasions))]
	location := locations[rng.IntN(len(locations))]

	budget := budgetMin + rng.IntN((budgetMax-budgetMin)/budgetStep+1)*budgetStep
	date := now.AddDate(0, 0, 1+rng.IntN(maxDaysOut)).Format(time.DateOnly)

	return Request{
		Key: uuid.NewString(),
		Input: board.Input{
			Title:       fmt.Sprintf("%s needed for %s", category, occasion),
			Description: fmt.Sprintf("Looking for a %s for a %s in %s.", category, occasion, location),
			Category:    string(category),
			Date:        date,
			Location:    location,
			Budget:      strconv.Itoa(budget),
			Contact:     "organizer" + strconv.Itoa(index) + "@example.com",
		},
		Valid: true,
	}
}

func blank(in *board.Input, field string) {
	switch field {
	case "title":
		in.Title = ""
	case "category":
		in.Category = ""
	case "date":
		in.Date = ""
	case "location":
		in.Location = ""
	case "budget":
		in.Budget = ""
	case "contact":
		in.Contact = ""
	}
}

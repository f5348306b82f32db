package contracts

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/RomaniOSDev/17PaperRoost/internal/models"
)

const SampleCount = 50

var sampleCompanies = []string{
	"Apple Inc.", "Microsoft Corp.", "Google LLC", "Amazon.com", "Tesla Inc.",
	"Netflix Inc.", "Meta Platforms", "NVIDIA Corp.", "Adobe Inc.", "Salesforce Inc.",
	"IBM Corp.", "Oracle Corp.", "Intel Corp.", "Cisco Systems", "Zoom Video",
}

var sampleNames = []string{
	"John Smith", "Emma Johnson", "Michael Brown", "Sarah Davis", "David Wilson",
	"Lisa Anderson", "Robert Taylor", "Jennifer Martinez", "William Garcia", "Amanda Rodriguez",
	"Christopher Lee", "Jessica White", "Daniel Clark", "Ashley Lewis", "Matthew Hall",
}

const day = 24 * time.Hour

func pick[T any](r *rand.Rand, list []T) T {
	return list[r.IntN(len(list))]
}

// generateSamples builds SampleCount demo contracts numbered from 1. Each
// starts 0-365 days before now and runs 30-730 days.
func generateSamples(r *rand.Rand, now time.Time) []models.Contract {
	out := make([]models.Contract, 0, SampleCount)
	for i := 1; i <= SampleCount; i++ {
		kind := pick(r, models.SampleTypes)
		start := now.Add(-time.Duration(r.IntN(366)) * day)
		end := start.Add(time.Duration(30+r.IntN(701)) * day)

		out = append(out, models.Contract{
			ID:           uuid.NewString(),
			Title:        fmt.Sprintf("Contract #%03d - %s", i, kind),
			ContractType: kind,
			StartDate:    start,
			EndDate:      end,
			Participants: pick(r, sampleNames) + " & " + pick(r, sampleCompanies),
			Notes:        fmt.Sprintf("Sample contract for testing purposes. This is contract number %d with %s type.", i, kind),
			Status:       pick(r, models.Statuses),
			CreatedAt:    now,
		})
	}
	return out
}

package usecase

import (
	"context"

	"ekanwe/internal/domain/repository"
)

// RatingUseCase derives influencer ratings from the reviews embedded in deal
// documents. There is no stored aggregate; every read folds over the deals
// collection so the value can never drift from its source.
type RatingUseCase struct {
	dealRepo repository.DealRepository
}

func NewRatingUseCase(dealRepo repository.DealRepository) *RatingUseCase {
	return &RatingUseCase{dealRepo: dealRepo}
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// AverageFor folds the reviewed candidatures of one influencer across all
// deals. A zero count means the influencer has no rating yet, not an error.
func (uc *RatingUseCase) AverageFor(ctx context.Context, influenceurID string) (float64, int, error) {
	deals, err := uc.dealRepo.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	var sum, count int
	for _, deal := range deals {
		for _, candidature := range deal.Candidatures {
			if candidature.InfluenceurID != influenceurID || candidature.InfluReview == nil {
				continue
			}
			sum += candidature.InfluReview.Rating
			count++
		}
	}

	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// AverageAll computes every influencer's summary in a single pass, for
// screens that list many candidates at once.
func (uc *RatingUseCase) AverageAll(ctx context.Context) (map[string]RatingSummary, error) {
	deals, err := uc.dealRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, deal := range deals {
		for _, candidature := range deal.Candidatures {
			if candidature.InfluReview == nil {
				continue
			}
			sums[candidature.InfluenceurID] += candidature.InfluReview.Rating
			counts[candidature.InfluenceurID]++
		}
	}

	summaries := make(map[string]RatingSummary, len(counts))
	for id, count := range counts {
		summaries[id] = RatingSummary{
			Average: float64(sums[id]) / float64(count),
			Count:   count,
		}
	}
	return summaries, nil
}

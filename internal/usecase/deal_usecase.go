package usecase

import (
	"context"
	"fmt"
	"time"

	"ekanwe/internal/domain/entity"
	"ekanwe/internal/domain/repository"
	"ekanwe/pkg/errors"
	"ekanwe/pkg/logger"
)

// DealUseCase owns the deal/candidature lifecycle. Every transition writes
// the deal first, then fans out through the chat synchronizer and the
// notification dispatcher. There is no cross-document transaction: the deal
// write must be durable before any side effect is attempted, and side
// effects are idempotent so a replay cannot duplicate them.
type DealUseCase struct {
	dealRepo repository.DealRepository
	userRepo repository.UserRepository
	chat     *ChatUseCase
	notifier *NotificationUseCase
	rating   *RatingUseCase
}

func NewDealUseCase(
	dealRepo repository.DealRepository,
	userRepo repository.UserRepository,
	chat *ChatUseCase,
	notifier *NotificationUseCase,
	rating *RatingUseCase,
) *DealUseCase {
	return &DealUseCase{
		dealRepo: dealRepo,
		userRepo: userRepo,
		chat:     chat,
		notifier: notifier,
		rating:   rating,
	}
}

type CreateDealInput struct {
	Title          string
	Description    string
	ValidUntil     string
	Conditions     string
	Interests      []string
	TypeOfContent  []string
	ImageURL       string
	LocationCoords entity.Coordinates
	LocationName   string
}

// Create publishes a new deal and broadcasts a push toward every influencer
// with a stored token. The broadcast is best-effort.
func (uc *DealUseCase) Create(ctx context.Context, merchantID string, input CreateDealInput) (*entity.Deal, error) {
	deal := &entity.Deal{
		Title:          input.Title,
		Description:    input.Description,
		ValidUntil:     input.ValidUntil,
		Conditions:     input.Conditions,
		Interests:      input.Interests,
		TypeOfContent:  input.TypeOfContent,
		ImageURL:       input.ImageURL,
		LocationCoords: input.LocationCoords,
		LocationName:   input.LocationName,
		MerchantID:     merchantID,
		Status:         entity.DealStatusActive,
		Candidatures:   []entity.Candidature{},
		CreatedAt:      time.Now(),
	}

	if err := uc.dealRepo.Create(ctx, deal); err != nil {
		return nil, err
	}

	uc.notifier.BroadcastToRole(ctx, entity.RoleInfluenceur,
		"Nouveau deal disponible 🎉",
		"Un commerçant a publié une nouvelle opportunité !",
		map[string]interface{}{
			"screen": "DealsSeeMoreInfluenceur",
			"dealId": deal.ID,
		})

	return deal, nil
}

// Apply records one influencer's candidature on a deal. At most one
// candidature may exist per (deal, influencer) pair; a second attempt fails
// with ALREADY_APPLIED and leaves the list untouched. Once the deal write
// commits the side effects run in order: greeting message, merchant
// notification, merchant push. Their failures are logged and swallowed.
func (uc *DealUseCase) Apply(ctx context.Context, influenceurID, dealID string) (*entity.Candidature, error) {
	candidature := entity.Candidature{
		InfluenceurID: influenceurID,
		Status:        entity.CandidatureSent,
	}

	// Membership check and append commit as one unit, so two concurrent
	// applicants cannot overwrite each other's entry.
	deal, err := uc.dealRepo.Mutate(ctx, dealID, func(deal *entity.Deal) error {
		if deal.MerchantID == influenceurID {
			return errors.Forbidden("You cannot apply to your own deal", nil)
		}
		if deal.CandidatureFor(influenceurID) != nil {
			return errors.AlreadyApplied(dealID)
		}
		deal.Candidatures = append(deal.Candidatures, candidature)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.chat.SendGreeting(ctx, influenceurID, deal.MerchantID, deal.Title); err != nil {
		logger.LogSideEffectError("apply-greeting", dealID, err)
	}

	uc.notifier.Notify(ctx, NotifyInput{
		ToUserID:      deal.MerchantID,
		Message:       "Un influenceur a postulé à votre deal !",
		Type:          entity.NotificationTypeApplication,
		FromUserID:    influenceurID,
		RelatedDealID: dealID,
		TargetRoute:   "DealsCandidates",
		DealID:        dealID,
		InfluenceurID: influenceurID,
		EventKey:      fmt.Sprintf("application-%s-%s", dealID, influenceurID),
	})

	uc.notifier.PushToUser(ctx, deal.MerchantID,
		"Nouvelle candidature !",
		"Un influenceur a postulé à votre deal !",
		map[string]interface{}{
			"screen": "DealsCandidates",
			"dealId": dealID,
		})

	return &candidature, nil
}

// SetStatus moves a candidature along the state graph:
// Envoyé → {Accepté, Refusé}, Refusé → Accepté, Accepté → Terminé.
// Only the deal's merchant may transition, and an invalid move fails with
// INVALID_TRANSITION leaving the stored status unchanged.
func (uc *DealUseCase) SetStatus(ctx context.Context, merchantID, dealID, influenceurID, newStatus string) (*entity.Candidature, error) {
	if !entity.ValidCandidatureStatus(newStatus) {
		return nil, errors.BadRequest(fmt.Sprintf("Unknown candidature status %q", newStatus), nil)
	}

	// Transition check and replacement commit as one unit against the
	// current stored status.
	deal, err := uc.dealRepo.Mutate(ctx, dealID, func(deal *entity.Deal) error {
		if deal.MerchantID != merchantID {
			return errors.Forbidden("Only the deal's merchant can update candidatures", nil)
		}

		candidature := deal.CandidatureFor(influenceurID)
		if candidature == nil {
			return errors.NotFound("Candidature", nil)
		}
		if !entity.CanTransition(candidature.Status, newStatus) {
			return errors.InvalidTransition(candidature.Status, newStatus)
		}

		candidature.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}
	candidature := deal.CandidatureFor(influenceurID)

	message := statusUpdateMessage(newStatus)

	uc.notifier.Notify(ctx, NotifyInput{
		ToUserID:      influenceurID,
		Message:       message,
		Type:          entity.NotificationTypeStatusUpdate,
		FromUserID:    merchantID,
		RelatedDealID: dealID,
		TargetRoute:   "DealsDetailsInfluenceur",
		DealID:        dealID,
		ReceiverID:    influenceurID,
		EventKey:      fmt.Sprintf("status-%s-%s-%s", dealID, influenceurID, newStatus),
	})

	uc.notifier.PushToUser(ctx, influenceurID,
		"Mise à jour de votre candidature",
		message,
		map[string]interface{}{
			"screen":     "DealsDetailsInfluenceur",
			"dealId":     dealID,
			"receiverId": influenceurID,
		})

	return candidature, nil
}

func statusUpdateMessage(status string) string {
	switch status {
	case entity.CandidatureAccepted:
		return "Votre candidature a été acceptée."
	case entity.CandidatureRefused:
		return "Votre candidature a été refusée."
	default:
		return fmt.Sprintf("Votre candidature est passée au statut %s.", status)
	}
}

type UpdateDealInput struct {
	Title          string
	Description    string
	ValidUntil     string
	Conditions     string
	Interests      []string
	TypeOfContent  []string
	ImageURL       string
	LocationCoords entity.Coordinates
	LocationName   string
}

func (uc *DealUseCase) Update(ctx context.Context, merchantID, dealID string, input UpdateDealInput) (*entity.Deal, error) {
	deal, err := uc.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.MerchantID != merchantID {
		return nil, errors.Forbidden("Only the deal's merchant can edit it", nil)
	}

	deal.Title = input.Title
	deal.Description = input.Description
	deal.ValidUntil = input.ValidUntil
	deal.Conditions = input.Conditions
	deal.Interests = input.Interests
	deal.TypeOfContent = input.TypeOfContent
	deal.ImageURL = input.ImageURL
	deal.LocationCoords = input.LocationCoords
	deal.LocationName = input.LocationName

	if err := uc.dealRepo.Update(ctx, deal); err != nil {
		return nil, err
	}

	return deal, nil
}

// Delete removes a deal. Refused once anyone has applied: candidature
// history must survive.
func (uc *DealUseCase) Delete(ctx context.Context, merchantID, dealID string) error {
	deal, err := uc.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return err
	}
	if deal.MerchantID != merchantID {
		return errors.Forbidden("Only the deal's merchant can delete it", nil)
	}
	if len(deal.Candidatures) > 0 {
		return errors.Conflict("This deal already has candidatures and cannot be deleted")
	}

	return uc.dealRepo.Delete(ctx, dealID)
}

// Close marks the deal closed. Candidatures are left untouched; transitions
// on them remain possible.
func (uc *DealUseCase) Close(ctx context.Context, merchantID, dealID string) (*entity.Deal, error) {
	deal, err := uc.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.MerchantID != merchantID {
		return nil, errors.Forbidden("Only the deal's merchant can close it", nil)
	}

	deal.Status = entity.DealStatusClosed

	if err := uc.dealRepo.Update(ctx, deal); err != nil {
		return nil, err
	}

	return deal, nil
}

func (uc *DealUseCase) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	return uc.dealRepo.GetByID(ctx, id)
}

func (uc *DealUseCase) List(ctx context.Context) ([]*entity.Deal, error) {
	return uc.dealRepo.List(ctx)
}

func (uc *DealUseCase) ListByMerchant(ctx context.Context, merchantID string) ([]*entity.Deal, error) {
	return uc.dealRepo.ListByMerchant(ctx, merchantID)
}

// CandidateView is one row of the merchant's candidate list: the candidature
// plus the influencer's profile and aggregated rating.
type CandidateView struct {
	Candidature entity.Candidature `json:"candidature"`
	User        *entity.User       `json:"user,omitempty"`
	Rating      float64            `json:"rating"`
	RatingCount int                `json:"rating_count"`
}

// Candidates assembles the merchant's view of a deal's applicants, embedding
// each influencer's average rating across all deals.
func (uc *DealUseCase) Candidates(ctx context.Context, merchantID, dealID string) ([]CandidateView, error) {
	deal, err := uc.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.MerchantID != merchantID {
		return nil, errors.Forbidden("Only the deal's merchant can list candidates", nil)
	}

	averages, err := uc.rating.AverageAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CandidateView, 0, len(deal.Candidatures))
	for _, candidature := range deal.Candidatures {
		view := CandidateView{Candidature: candidature}

		if avg, ok := averages[candidature.InfluenceurID]; ok {
			view.Rating = avg.Average
			view.RatingCount = avg.Count
		}

		user, err := uc.userRepo.GetByID(ctx, candidature.InfluenceurID)
		if err == nil {
			view.User = user
		} else {
			logger.Warn("Candidate profile missing: deal=%s, influenceur=%s, error=%v", dealID, candidature.InfluenceurID, err)
		}

		views = append(views, view)
	}

	return views, nil
}

// AverageRatingFor delegates to the rating aggregator.
func (uc *DealUseCase) AverageRatingFor(ctx context.Context, influenceurID string) (float64, int, error) {
	return uc.rating.AverageFor(ctx, influenceurID)
}

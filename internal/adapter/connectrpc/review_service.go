package connectrpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/eslsoft/studyhub/internal/adapter/identity"
	"github.com/eslsoft/studyhub/internal/adapter/mapping"
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/usecase"
)

const (
	// ReviewServiceName is the fully-qualified name of the review service.
	ReviewServiceName = "studyhub.v1.ReviewService"

	RecordReviewProcedure = "/" + ReviewServiceName + "/RecordReview"
	ListDueCardsProcedure = "/" + ReviewServiceName + "/ListDueCards"
	GetStreakProcedure    = "/" + ReviewServiceName + "/GetStreak"
)

type RecordReviewRequest struct {
	FlashcardID uuid.UUID `json:"flashcard_id"`
	mapping.ReviewCreate
}

type RecordReviewResponse struct {
	Review mapping.Review `json:"review"`
}

type ListDueCardsRequest struct {
	Skip  *int `json:"skip"`
	Limit *int `json:"limit"`
}

type ListDueCardsResponse struct {
	Cards []mapping.Flashcard `json:"cards"`
}

type GetStreakRequest struct{}

type GetStreakResponse struct {
	Streak mapping.Streak `json:"streak"`
}

// ReviewServiceServer exposes review scheduling over the Connect protocol,
// sharing usecases with the REST surface.
type ReviewServiceServer struct {
	reviews  usecase.ReviewUsecase
	cards    usecase.FlashcardUsecase
	progress usecase.ProgressUsecase
	limits   mapping.PageLimits
}

func NewReviewServiceServer(reviews usecase.ReviewUsecase, cards usecase.FlashcardUsecase, progress usecase.ProgressUsecase, limits mapping.PageLimits) *ReviewServiceServer {
	return &ReviewServiceServer{reviews: reviews, cards: cards, progress: progress, limits: limits}
}

func (s *ReviewServiceServer) RecordReview(ctx context.Context, req *connect.Request[RecordReviewRequest]) (*connect.Response[RecordReviewResponse], error) {
	userID, err := identity.Require(ctx)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	if req.Msg.FlashcardID == uuid.Nil {
		return nil, mapping.ToConnectError(entity.ErrInvalidFlashcardID)
	}
	review, err := s.reviews.RecordReview(ctx, userID, req.Msg.FlashcardID, mapping.FromReviewCreate(req.Msg.ReviewCreate))
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&RecordReviewResponse{Review: mapping.ToReview(review)}), nil
}

func (s *ReviewServiceServer) ListDueCards(ctx context.Context, req *connect.Request[ListDueCardsRequest]) (*connect.Response[ListDueCardsResponse], error) {
	userID, err := identity.Require(ctx)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	page, err := s.limits.Page(req.Msg.Skip, req.Msg.Limit)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	cards, err := s.cards.ListDueFlashcards(ctx, userID, page)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&ListDueCardsResponse{
		Cards: lo.Map(cards, func(c entity.Flashcard, _ int) mapping.Flashcard { return mapping.ToFlashcard(&c) }),
	}), nil
}

func (s *ReviewServiceServer) GetStreak(ctx context.Context, _ *connect.Request[GetStreakRequest]) (*connect.Response[GetStreakResponse], error) {
	userID, err := identity.Require(ctx)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	streak, err := s.progress.GetStreak(ctx, userID)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&GetStreakResponse{Streak: mapping.ToStreak(streak)}), nil
}

// NewReviewServiceHandler builds an HTTP handler serving every procedure of the
// review service, in the shape of generated connect handlers.
func NewReviewServiceHandler(svc *ReviewServiceServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	recordReview := connect.NewUnaryHandler(RecordReviewProcedure, svc.RecordReview, opts...)
	listDueCards := connect.NewUnaryHandler(ListDueCardsProcedure, svc.ListDueCards, opts...)
	getStreak := connect.NewUnaryHandler(GetStreakProcedure, svc.GetStreak, opts...)

	return "/" + ReviewServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RecordReviewProcedure:
			recordReview.ServeHTTP(w, r)
		case ListDueCardsProcedure:
			listDueCards.ServeHTTP(w, r)
		case GetStreakProcedure:
			getStreak.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

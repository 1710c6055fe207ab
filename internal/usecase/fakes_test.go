package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

// fakeStore keeps every aggregate in memory and serialises transactions.
type fakeStore struct {
	txMu sync.Mutex

	mu       sync.RWMutex
	decks    map[uuid.UUID]*entity.FlashcardDeck
	cards    map[uuid.UUID]*entity.Flashcard
	reviews  []entity.FlashcardReview
	progress map[uuid.UUID]*entity.DailyProgress
	sessions map[uuid.UUID]*entity.StudySession

	failReviewCreate error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		decks:    make(map[uuid.UUID]*entity.FlashcardDeck),
		cards:    make(map[uuid.UUID]*entity.Flashcard),
		progress: make(map[uuid.UUID]*entity.DailyProgress),
		sessions: make(map[uuid.UUID]*entity.StudySession),
	}
}

// WithinTx restores the previous state when fn fails.
func (s *fakeStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapDecks := make(map[uuid.UUID]entity.FlashcardDeck, len(s.decks))
	for k, v := range s.decks {
		snapDecks[k] = *v
	}
	snapCards := make(map[uuid.UUID]entity.Flashcard, len(s.cards))
	for k, v := range s.cards {
		snapCards[k] = *v
	}
	snapReviews := len(s.reviews)
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.decks = make(map[uuid.UUID]*entity.FlashcardDeck, len(snapDecks))
		for k, v := range snapDecks {
			v := v
			s.decks[k] = &v
		}
		s.cards = make(map[uuid.UUID]*entity.Flashcard, len(snapCards))
		for k, v := range snapCards {
			v := v
			s.cards[k] = &v
		}
		s.reviews = s.reviews[:snapReviews]
		s.mu.Unlock()
		return err
	}
	return nil
}

type fakeDeckRepo struct{ s *fakeStore }

func (r fakeDeckRepo) Create(ctx context.Context, deck *entity.FlashcardDeck) (*entity.FlashcardDeck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *deck
	r.s.decks[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r fakeDeckRepo) Update(ctx context.Context, deck *entity.FlashcardDeck) (*entity.FlashcardDeck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.decks[deck.ID]
	if !ok || existing.UserID != deck.UserID {
		return nil, entity.ErrDeckNotFound
	}
	stored := *deck
	r.s.decks[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r fakeDeckRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.FlashcardDeck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	deck, ok := r.s.decks[id]
	if !ok || deck.UserID != userID {
		return nil, entity.ErrDeckNotFound
	}
	out := *deck
	return &out, nil
}

func (r fakeDeckRepo) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*entity.FlashcardDeck, error) {
	return r.GetByID(ctx, userID, id)
}

func (r fakeDeckRepo) List(ctx context.Context, query *repository.ListDeckQuery) ([]entity.FlashcardDeck, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.FlashcardDeck
	for _, d := range r.s.decks {
		if d.UserID != query.UserID {
			continue
		}
		if query.IsArchived != nil && d.IsArchived != *query.IsArchived {
			continue
		}
		if query.SubjectID != nil && (d.SubjectID == nil || *d.SubjectID != *query.SubjectID) {
			continue
		}
		matched = append(matched, *d)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, query.Pagination), int64(len(matched)), nil
}

func (r fakeDeckRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	deck, ok := r.s.decks[id]
	if !ok || deck.UserID != userID {
		return entity.ErrDeckNotFound
	}
	delete(r.s.decks, id)
	for cid, c := range r.s.cards {
		if c.DeckID == id {
			delete(r.s.cards, cid)
		}
	}
	return nil
}

type fakeFlashcardRepo struct{ s *fakeStore }

func (r fakeFlashcardRepo) Create(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *card
	r.s.cards[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r fakeFlashcardRepo) Update(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cards[card.ID]; !ok {
		return nil, entity.ErrFlashcardNotFound
	}
	stored := *card
	r.s.cards[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r fakeFlashcardRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	card, ok := r.s.cards[id]
	if !ok {
		return nil, entity.ErrFlashcardNotFound
	}
	deck, ok := r.s.decks[card.DeckID]
	if !ok || deck.UserID != userID {
		return nil, entity.ErrFlashcardNotFound
	}
	out := *card
	return &out, nil
}

func (r fakeFlashcardRepo) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*entity.Flashcard, error) {
	return r.GetByID(ctx, userID, id)
}

func (r fakeFlashcardRepo) List(ctx context.Context, query *repository.ListFlashcardQuery) ([]entity.Flashcard, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.Flashcard
	for _, c := range r.s.storageOrderLocked(query.UserID) {
		if c.DeckID != query.DeckID {
			continue
		}
		if query.IsSuspended != nil && c.IsSuspended != *query.IsSuspended {
			continue
		}
		matched = append(matched, c)
	}
	return paginate(matched, query.Pagination), int64(len(matched)), nil
}

func (r fakeFlashcardRepo) ListDue(ctx context.Context, userID uuid.UUID, asOf time.Time, page repository.Pagination) ([]entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return entity.SelectDueCards(r.s.storageOrderLocked(userID), asOf, page.Skip, page.Limit), nil
}

func (r fakeFlashcardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cards[id]; !ok {
		return entity.ErrFlashcardNotFound
	}
	delete(r.s.cards, id)
	return nil
}

func (s *fakeStore) storageOrderLocked(userID uuid.UUID) []entity.Flashcard {
	var out []entity.Flashcard
	for _, c := range s.cards {
		if deck, ok := s.decks[c.DeckID]; ok && deck.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
	})
	return out
}

type fakeReviewRepo struct{ s *fakeStore }

func (r fakeReviewRepo) Create(ctx context.Context, review *entity.FlashcardReview) (*entity.FlashcardReview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.s.failReviewCreate != nil {
		return nil, r.s.failReviewCreate
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reviews = append(r.s.reviews, *review)
	out := *review
	return &out, nil
}

func (r fakeReviewRepo) ListByFlashcard(ctx context.Context, userID, flashcardID uuid.UUID, page repository.Pagination) ([]entity.FlashcardReview, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.FlashcardReview
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		rv := r.s.reviews[i]
		if rv.UserID == userID && rv.FlashcardID == flashcardID {
			matched = append(matched, rv)
		}
	}
	return paginate(matched, page), int64(len(matched)), nil
}

type fakeProgressRepo struct{ s *fakeStore }

func (r fakeProgressRepo) Create(ctx context.Context, p *entity.DailyProgress) (*entity.DailyProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.progress {
		if existing.UserID == p.UserID && existing.Date.Equal(p.Date) {
			return nil, entity.ErrDuplicateDailyProgress
		}
	}
	stored := *p
	r.s.progress[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r fakeProgressRepo) Update(ctx context.Context, p *entity.DailyProgress) (*entity.DailyProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.progress[p.ID]; !ok {
		return nil, entity.ErrDailyProgressNotFound
	}
	stored := *p
	r.s.progress[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r fakeProgressRepo) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.DailyProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.progress {
		if p.UserID == userID && p.Date.Equal(date) {
			out := *p
			return &out, nil
		}
	}
	return nil, entity.ErrDailyProgressNotFound
}

func (r fakeProgressRepo) List(ctx context.Context, query *repository.ListDailyProgressQuery) ([]entity.DailyProgress, int64, error) {
	rows, err := r.ListRecent(ctx, query.UserID, -1)
	if err != nil {
		return nil, 0, err
	}
	return paginate(rows, query.Pagination), int64(len(rows)), nil
}

func (r fakeProgressRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]entity.DailyProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []entity.DailyProgress
	for _, p := range r.s.progress {
		if p.UserID == userID {
			rows = append(rows, *p)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r fakeProgressRepo) ListUserIDsByDate(ctx context.Context, date time.Time) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []uuid.UUID
	for _, p := range r.s.progress {
		if p.Date.Equal(date) {
			ids = append(ids, p.UserID)
		}
	}
	return ids, nil
}

func (r fakeProgressRepo) UpdateStreakSnapshot(ctx context.Context, userID uuid.UUID, date time.Time, streakDays int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.progress {
		if p.UserID == userID && p.Date.Equal(date) {
			p.StreakDays = streakDays
			return nil
		}
	}
	return entity.ErrDailyProgressNotFound
}

type fakeSessionRepo struct{ s *fakeStore }

func (r fakeSessionRepo) Create(ctx context.Context, session *entity.StudySession) (*entity.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *session
	r.s.sessions[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r fakeSessionRepo) Update(ctx context.Context, session *entity.StudySession) (*entity.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.sessions[session.ID]
	if !ok || existing.UserID != session.UserID {
		return nil, entity.ErrStudySessionNotFound
	}
	stored := *session
	r.s.sessions[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r fakeSessionRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	session, ok := r.s.sessions[id]
	if !ok || session.UserID != userID {
		return nil, entity.ErrStudySessionNotFound
	}
	out := *session
	return &out, nil
}

func (r fakeSessionRepo) List(ctx context.Context, query *repository.ListStudySessionQuery) ([]entity.StudySession, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.StudySession
	for _, s := range r.s.sessions {
		if s.UserID != query.UserID {
			continue
		}
		if query.SessionType != nil && (s.SessionType == nil || *s.SessionType != *query.SessionType) {
			continue
		}
		if query.SubjectID != nil && (s.SubjectID == nil || *s.SubjectID != *query.SubjectID) {
			continue
		}
		matched = append(matched, *s)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].StartedAt.After(matched[j].StartedAt) })
	return paginate(matched, query.Pagination), int64(len(matched)), nil
}

func (r fakeSessionRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[id]
	if !ok || session.UserID != userID {
		return entity.ErrStudySessionNotFound
	}
	delete(r.s.sessions, id)
	for i := range r.s.reviews {
		if rv := &r.s.reviews[i]; rv.SessionID != nil && *rv.SessionID == id {
			rv.SessionID = nil
		}
	}
	return nil
}

func paginate[T any](items []T, page repository.Pagination) []T {
	out := []T{}
	if page.Limit <= 0 || page.Skip >= len(items) {
		return out
	}
	end := page.Skip + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return append(out, items[page.Skip:end]...)
}

type scriptStripper struct{}

func (scriptStripper) Sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "<script>", ""), "</script>", "")
}

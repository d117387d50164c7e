// Package votes — service.go содержит машину состояний голосования.
//
// Для каждой пары (пользователь, объект) три состояния: NONE, UPVOTED,
// DOWNVOTED. Нажатие «вверх» из DOWNVOTED перекидывает в UPVOTED
// (качание счётчика на +2), из NONE — в UPVOTED (+1), из UPVOTED —
// обратно в NONE (−1, снятие голоса). Нажатие «вниз» зеркально.
//
// Оба документа читаются вместе до вычисления (согласованная пара
// чтений), затем пишутся последовательно: сначала личный леджер,
// потом агрегат объекта. Это две независимые записи без транзакции —
// упавший между ними процесс оставляет расхождение, которое
// самоизлечивается при следующем нажатии любым пользователем,
// потому что netvotes каждый раз выводится из множеств заново.
package votes

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tsonthalia/travel-guardians/internal/common"
	"github.com/tsonthalia/travel-guardians/internal/features/scams"
	"github.com/tsonthalia/travel-guardians/internal/features/users"
)

// Service — движок голосования.
type Service struct {
	scamsRepo *scams.Repository
	usersRepo *users.Repository
}

// NewService создаёт движок голосования.
func NewService(scamsRepo *scams.Repository, usersRepo *users.Repository) *Service {
	return &Service{scamsRepo: scamsRepo, usersRepo: usersRepo}
}

// ScamVoteState возвращает текущее состояние пары (пользователь, пост)
// по личному леджеру — леджер, а не агрегат, является источником истины
// о том, голосовал ли пользователь.
func ScamVoteState(p *users.Profile, scamID string) State {
	if users.HasScamVote(p.UpvotedScams, scamID) {
		return StateUpvoted
	}
	if users.HasScamVote(p.DownvotedScams, scamID) {
		return StateDownvoted
	}
	return StateNone
}

// CommentVoteState — то же для пары (пользователь, комментарий).
func CommentVoteState(p *users.Profile, scamID, commentID string) State {
	if users.HasCommentVote(p.UpvotedComments, scamID, commentID) {
		return StateUpvoted
	}
	if users.HasCommentVote(p.DownvotedComments, scamID, commentID) {
		return StateDownvoted
	}
	return StateNone
}

// PressUpvote обрабатывает нажатие «вверх» на посте.
func (s *Service) PressUpvote(ctx context.Context, scamID, userID string) (*ScamVoteResult, error) {
	return s.pressScamVote(ctx, scamID, userID, true)
}

// PressDownvote обрабатывает нажатие «вниз» на посте.
func (s *Service) PressDownvote(ctx context.Context, scamID, userID string) (*ScamVoteResult, error) {
	return s.pressScamVote(ctx, scamID, userID, false)
}

// pressScamVote — общий переключатель для поста. upPressed выбирает
// направление, логика зеркальная.
func (s *Service) pressScamVote(ctx context.Context, scamID, userID string, upPressed bool) (*ScamVoteResult, error) {
	// Согласованная пара чтений: агрегат и леджер берутся вместе,
	// новое состояние не собирается из разновременных данных.
	scam, err := s.scamsRepo.Get(ctx, scamID)
	if err != nil {
		return nil, err
	}
	profile, err := s.usersRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	newUpRefs := profile.UpvotedScams
	newDownRefs := profile.DownvotedScams
	newUpvoters := scam.Upvoters
	newDownvoters := scam.Downvoters

	// Множества «своего» и «чужого» направления относительно нажатой кнопки.
	pressedRefs, otherRefs := newUpRefs, newDownRefs
	pressedSet, otherSet := newUpvoters, newDownvoters
	if !upPressed {
		pressedRefs, otherRefs = newDownRefs, newUpRefs
		pressedSet, otherSet = newDownvoters, newUpvoters
	}

	var pressedActive bool
	switch {
	case users.HasScamVote(otherRefs, scamID):
		// Противоположный голос стоял — переворачиваем (качание на 2)
		otherRefs = users.RemoveScamVote(otherRefs, scamID)
		pressedRefs = append(pressedRefs, users.ScamVoteRef{ScamID: scamID, VotedAt: now})
		otherSet = scams.RemoveVote(otherSet, userID)
		pressedSet = append(pressedSet, scams.VoteRecord{UserID: userID, VotedAt: now})
		pressedActive = true

	case users.HasScamVote(pressedRefs, scamID):
		// Повторное нажатие того же направления — снятие голоса
		pressedRefs = users.RemoveScamVote(pressedRefs, scamID)
		pressedSet = scams.RemoveVote(pressedSet, userID)
		pressedActive = false

	default:
		// Голоса не было — ставим
		pressedRefs = append(pressedRefs, users.ScamVoteRef{ScamID: scamID, VotedAt: now})
		pressedSet = append(pressedSet, scams.VoteRecord{UserID: userID, VotedAt: now})
		pressedActive = true
	}

	if upPressed {
		newUpRefs, newDownRefs = pressedRefs, otherRefs
		newUpvoters, newDownvoters = pressedSet, otherSet
	} else {
		newDownRefs, newUpRefs = pressedRefs, otherRefs
		newDownvoters, newUpvoters = pressedSet, otherSet
	}

	// netvotes всегда выводится из множеств, не из прежнего счётчика.
	net := len(newUpvoters) - len(newDownvoters)

	// Сначала личный леджер, потом агрегат.
	if err := s.usersRepo.SetScamVoteLedgers(ctx, userID, newUpRefs, newDownRefs); err != nil {
		return nil, err
	}
	if err := s.scamsRepo.SetVotes(ctx, scamID, newUpvoters, newDownvoters, net); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"scam_id":  scamID,
		"user_id":  userID,
		"pressed":  direction(upPressed),
		"netvotes": net,
	}).Debug("Голос за пост обработан")

	return &ScamVoteResult{
		IsUpvoted:      upPressed && pressedActive,
		IsDownvoted:    !upPressed && pressedActive,
		UpvotedScams:   newUpRefs,
		DownvotedScams: newDownRefs,
		Upvoters:       newUpvoters,
		Downvoters:     newDownvoters,
		NetVotes:       net,
	}, nil
}

// PressCommentUpvote обрабатывает нажатие «вверх» на комментарии.
func (s *Service) PressCommentUpvote(ctx context.Context, scamID, commentID, userID string) (*CommentVoteResult, error) {
	return s.pressCommentVote(ctx, scamID, commentID, userID, true)
}

// PressCommentDownvote обрабатывает нажатие «вниз» на комментарии.
func (s *Service) PressCommentDownvote(ctx context.Context, scamID, commentID, userID string) (*CommentVoteResult, error) {
	return s.pressCommentVote(ctx, scamID, commentID, userID, false)
}

// pressCommentVote — та же машина состояний, но по составному ключу
// (пост, комментарий): запись леджера обязана помнить оба id,
// комментарий без родительского поста не адресуется.
func (s *Service) pressCommentVote(ctx context.Context, scamID, commentID, userID string, upPressed bool) (*CommentVoteResult, error) {
	scam, err := s.scamsRepo.Get(ctx, scamID)
	if err != nil {
		return nil, err
	}
	idx := scam.FindComment(commentID)
	if idx < 0 {
		return nil, common.ErrCommentNotFound
	}
	profile, err := s.usersRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := scam.Comments[idx]

	newUpRefs := profile.UpvotedComments
	newDownRefs := profile.DownvotedComments
	newUpvoters := comment.Upvoters
	newDownvoters := comment.Downvoters

	pressedRefs, otherRefs := newUpRefs, newDownRefs
	pressedSet, otherSet := newUpvoters, newDownvoters
	if !upPressed {
		pressedRefs, otherRefs = newDownRefs, newUpRefs
		pressedSet, otherSet = newDownvoters, newUpvoters
	}

	var pressedActive bool
	switch {
	case users.HasCommentVote(otherRefs, scamID, commentID):
		otherRefs = users.RemoveCommentVote(otherRefs, scamID, commentID)
		pressedRefs = append(pressedRefs, users.CommentVoteRef{ScamID: scamID, CommentID: commentID, VotedAt: now})
		otherSet = scams.RemoveVote(otherSet, userID)
		pressedSet = append(pressedSet, scams.VoteRecord{UserID: userID, VotedAt: now})
		pressedActive = true

	case users.HasCommentVote(pressedRefs, scamID, commentID):
		pressedRefs = users.RemoveCommentVote(pressedRefs, scamID, commentID)
		pressedSet = scams.RemoveVote(pressedSet, userID)
		pressedActive = false

	default:
		pressedRefs = append(pressedRefs, users.CommentVoteRef{ScamID: scamID, CommentID: commentID, VotedAt: now})
		pressedSet = append(pressedSet, scams.VoteRecord{UserID: userID, VotedAt: now})
		pressedActive = true
	}

	if upPressed {
		newUpRefs, newDownRefs = pressedRefs, otherRefs
		newUpvoters, newDownvoters = pressedSet, otherSet
	} else {
		newDownRefs, newUpRefs = pressedRefs, otherRefs
		newDownvoters, newUpvoters = pressedSet, otherSet
	}

	net := len(newUpvoters) - len(newDownvoters)

	if err := s.usersRepo.SetCommentVoteLedgers(ctx, userID, newUpRefs, newDownRefs); err != nil {
		return nil, err
	}

	// Комментарий живёт внутри документа поста: переписываем массив
	// комментариев с обновлённым агрегатом, счётчик комментариев не трогаем.
	scam.Comments[idx].Upvoters = newUpvoters
	scam.Comments[idx].Downvoters = newDownvoters
	scam.Comments[idx].NetVotes = net
	if err := s.scamsRepo.SetComments(ctx, scamID, scam.Comments, scam.CommentCount); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"scam_id":    scamID,
		"comment_id": commentID,
		"user_id":    userID,
		"pressed":    direction(upPressed),
		"netvotes":   net,
	}).Debug("Голос за комментарий обработан")

	return &CommentVoteResult{
		IsUpvoted:         upPressed && pressedActive,
		IsDownvoted:       !upPressed && pressedActive,
		UpvotedComments:   newUpRefs,
		DownvotedComments: newDownRefs,
		Upvoters:          newUpvoters,
		Downvoters:        newDownvoters,
		NetVotes:          net,
	}, nil
}

func direction(up bool) string {
	if up {
		return "up"
	}
	return "down"
}

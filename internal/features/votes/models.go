// Package votes реализует движок голосования: тройной переключатель
// голоса пользователя за пост или комментарий с синхронным обновлением
// личного леджера и агрегата объекта. models.go описывает состояния
// и результаты нажатий.
package votes

import (
	"github.com/tsonthalia/travel-guardians/internal/features/scams"
	"github.com/tsonthalia/travel-guardians/internal/features/users"
)

// State — состояние пары (пользователь, объект).
type State string

const (
	StateNone      State = "NONE"
	StateUpvoted   State = "UPVOTED"
	StateDownvoted State = "DOWNVOTED"
)

// ScamVoteResult — обновлённое состояние после нажатия на посте:
// свежие леджеры действующего пользователя и свежий агрегат поста.
type ScamVoteResult struct {
	IsUpvoted   bool `json:"isUpvoted"`
	IsDownvoted bool `json:"isDownvoted"`

	UpvotedScams   []users.ScamVoteRef `json:"upvotedScams"`
	DownvotedScams []users.ScamVoteRef `json:"downvotedScams"`

	Upvoters   []scams.VoteRecord `json:"upvoters"`
	Downvoters []scams.VoteRecord `json:"downvoters"`
	NetVotes   int                `json:"netvotes"`
}

// CommentVoteResult — то же для нажатия на комментарии.
type CommentVoteResult struct {
	IsUpvoted   bool `json:"isUpvoted"`
	IsDownvoted bool `json:"isDownvoted"`

	UpvotedComments   []users.CommentVoteRef `json:"upvotedComments"`
	DownvotedComments []users.CommentVoteRef `json:"downvotedComments"`

	Upvoters   []scams.VoteRecord `json:"upvoters"`
	Downvoters []scams.VoteRecord `json:"downvoters"`
	NetVotes   int                `json:"netvotes"`
}

// Package activity собирает сводку активности пользователя:
// по одной записи на каждый пост, с которым у него есть хоть какая-то
// связь. models.go описывает консолидированную запись.
package activity

import "github.com/tsonthalia/travel-guardians/internal/features/scams"

// Record — консолидированная активность пользователя по одному посту.
// Несколько связей с одним постом (автор И проголосовал) сливаются
// в одну запись, дублей не бывает.
type Record struct {
	ScamID string      `json:"scamId"`
	Scam   *scams.Scam `json:"scam"`

	Comments []scams.Comment `json:"comments"` // созданные пользователем

	IsUpvoted   bool `json:"isUpvoted"`
	IsDownvoted bool `json:"isDownvoted"`

	UpvotedComments   []scams.Comment `json:"upvotedComments"`
	DownvotedComments []scams.Comment `json:"downvotedComments"`

	IsAuthor bool `json:"isPostedByUser"`
}

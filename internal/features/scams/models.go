// Package scams управляет постами («скамами»): создание, лента,
// комментарии. models.go описывает документ поста.
// JSON-имена полей повторяют исторический формат документов
// (uid, user, date, netvotes), чтобы не мигрировать данные.
package scams

import (
	"time"

	"github.com/tsonthalia/travel-guardians/internal/features/locations"
)

// VoteRecord — запись агрегата голосов на посте или комментарии.
// Инвариант: один userId состоит максимум в одном из двух множеств.
type VoteRecord struct {
	UserID  string    `json:"userId"`
	VotedAt time.Time `json:"votedAt"`
}

// Comment — комментарий, вложенный в документ родительского поста.
// Комментарии не адресуются глобально: только парой (пост, комментарий).
type Comment struct {
	ID         string       `json:"id"`
	AuthorID   string       `json:"uid"`
	AuthorName string       `json:"user"`
	Text       string       `json:"comment"`
	CreatedAt  time.Time    `json:"timestamp"`
	Upvoters   []VoteRecord `json:"upvoters"`
	Downvoters []VoteRecord `json:"downvoters"`
	// NetVotes всегда пересчитывается из множеств, никогда
	// не инкрементируется отдельно.
	NetVotes int `json:"netvotes"`
}

// Scam — документ поста в коллекции scams.
type Scam struct {
	ID          string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    string    `json:"uid"`
	AuthorName  string    `json:"user"`
	CreatedAt   time.Time `json:"date"`

	Locations []locations.Resolved `json:"locations"` // минимум одна

	CommentCount int       `json:"commentCount"`
	Comments     []Comment `json:"comments"`

	Upvoters   []VoteRecord `json:"upvoters"`
	Downvoters []VoteRecord `json:"downvoters"`
	NetVotes   int          `json:"netvotes"`
}

// FindComment возвращает индекс комментария в посте или -1.
func (s *Scam) FindComment(commentID string) int {
	for i := range s.Comments {
		if s.Comments[i].ID == commentID {
			return i
		}
	}
	return -1
}

// HasVote проверяет членство пользователя в множестве голосов.
func HasVote(set []VoteRecord, userID string) bool {
	for _, v := range set {
		if v.UserID == userID {
			return true
		}
	}
	return false
}

// RemoveVote возвращает множество без голоса пользователя.
func RemoveVote(set []VoteRecord, userID string) []VoteRecord {
	out := make([]VoteRecord, 0, len(set))
	for _, v := range set {
		if v.UserID != userID {
			out = append(out, v)
		}
	}
	return out
}

// PopularLocation — строка рейтинга популярных направлений на главной.
type PopularLocation struct {
	City      string `json:"city"`
	Country   string `json:"country"`
	ScamCount int    `json:"scamCount"`
}

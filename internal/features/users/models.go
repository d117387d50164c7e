// Package users управляет профилями пользователей и их личными леджерами
// голосов. models.go описывает структуру документа профиля.
package users

import "time"

// Profile — документ профиля в коллекции users.
// Id документа равен внешнему id системы аутентификации,
// сервис сам никого не аутентифицирует.
//
// Четыре леджера голосов обязаны зеркалить агрегаты на постах и
// комментариях по членству (не по значению таймстемпа): каждая пара
// (пользователь, объект) из личного леджера имеет запись в агрегате
// объекта, и наоборот.
type Profile struct {
	ID        string `json:"-"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	CreatedScams []string `json:"createdScams"` // id созданных постов

	UpvotedScams   []ScamVoteRef `json:"upvotedScams"`
	DownvotedScams []ScamVoteRef `json:"downvotedScams"`

	UpvotedComments   []CommentVoteRef `json:"upvotedComments"`
	DownvotedComments []CommentVoteRef `json:"downvotedComments"`

	Comments []CommentRef `json:"comments"` // созданные комментарии
}

// ScamVoteRef — запись личного леджера о голосе за пост.
// Таймстемп — аудит-метаданные, в сравнениях не участвует.
type ScamVoteRef struct {
	ScamID  string    `json:"scamId"`
	VotedAt time.Time `json:"votedAt"`
}

// CommentVoteRef — запись леджера о голосе за комментарий.
// Комментарии адресуются только вместе с родительским постом,
// поэтому ключ составной.
type CommentVoteRef struct {
	ScamID    string    `json:"scamId"`
	CommentID string    `json:"commentId"`
	VotedAt   time.Time `json:"votedAt"`
}

// CommentRef — ссылка на созданный пользователем комментарий.
type CommentRef struct {
	ScamID    string    `json:"scamId"`
	CommentID string    `json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName возвращает отображаемое имя пользователя.
// Если есть username — возвращает его, иначе — имя + фамилию.
func (p *Profile) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	name := p.FirstName
	if p.LastName != "" {
		name += " " + p.LastName
	}
	return name
}

// HasScamVote проверяет членство поста в леджере.
func HasScamVote(refs []ScamVoteRef, scamID string) bool {
	for _, r := range refs {
		if r.ScamID == scamID {
			return true
		}
	}
	return false
}

// RemoveScamVote возвращает леджер без записи о посте.
func RemoveScamVote(refs []ScamVoteRef, scamID string) []ScamVoteRef {
	out := make([]ScamVoteRef, 0, len(refs))
	for _, r := range refs {
		if r.ScamID != scamID {
			out = append(out, r)
		}
	}
	return out
}

// HasCommentVote проверяет членство комментария в леджере.
func HasCommentVote(refs []CommentVoteRef, scamID, commentID string) bool {
	for _, r := range refs {
		if r.ScamID == scamID && r.CommentID == commentID {
			return true
		}
	}
	return false
}

// RemoveCommentVote возвращает леджер без записи о комментарии.
func RemoveCommentVote(refs []CommentVoteRef, scamID, commentID string) []CommentVoteRef {
	out := make([]CommentVoteRef, 0, len(refs))
	for _, r := range refs {
		if r.ScamID == scamID && r.CommentID == commentID {
			continue
		}
		out = append(out, r)
	}
	return out
}

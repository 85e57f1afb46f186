package server

import (
	"time"

	"socialposts/internal/models"
)

type postSummaryResponse struct {
	ID        uint      `json:"id"`
	Owner     string    `json:"owner"`
	Text      string    `json:"text"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

type likeResponse struct {
	ID        uint      `json:"id"`
	Post      uint      `json:"post"`
	Like      string    `json:"like"`
	CreatedAt time.Time `json:"created_at"`
}

type postDetailResponse struct {
	ID        uint           `json:"id"`
	Text      string         `json:"text"`
	Likes     []likeResponse `json:"likes"`
	CreatedAt time.Time      `json:"created_at"`
}

type userResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func presentPostSummary(p *models.Post) postSummaryResponse {
	return postSummaryResponse{
		ID:        p.ID,
		Owner:     p.User.Email,
		Text:      p.Text,
		Likes:     p.LikesCount,
		CreatedAt: p.CreatedAt,
	}
}

func presentPostSummaries(posts []*models.Post) []postSummaryResponse {
	out := make([]postSummaryResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, presentPostSummary(p))
	}
	return out
}

func presentLike(l *models.Like) likeResponse {
	return likeResponse{
		ID:        l.ID,
		Post:      l.PostID,
		Like:      l.User.Email,
		CreatedAt: l.CreatedAt,
	}
}

func presentPostDetail(p *models.Post) postDetailResponse {
	likes := make([]likeResponse, 0, len(p.Likes))
	for i := range p.Likes {
		likes = append(likes, presentLike(&p.Likes[i]))
	}
	return postDetailResponse{
		ID:        p.ID,
		Text:      p.Text,
		Likes:     likes,
		CreatedAt: p.CreatedAt,
	}
}

func presentUser(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email}
}

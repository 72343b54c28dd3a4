package producthunt

import (
	"time"
)

// Docs: https://api.producthunt.com/v1/docs

type User struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	TwitterUsername string `json:"twitter_username"`
	ProfileURL      string `json:"profile_url"`
}

type Product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Vote struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	User      User      `json:"user"`
}

func (v *Vote) Timestamp() time.Time {
	if v == nil {
		return time.Time{}
	}
	return v.CreatedAt
}

type Comment struct {
	ID              int64     `json:"id"`
	Body            string    `json:"body"`
	CreatedAt       time.Time `json:"created_at"`
	URL             string    `json:"url"`
	PostID          int64     `json:"post_id"`
	ParentCommentID *int64    `json:"parent_comment_id"`
	User            User      `json:"user"`
	// Only direct replies are inlined by the API listing.
	ChildComments []*Comment `json:"child_comments"`
}

func (c *Comment) Timestamp() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.CreatedAt
}

type userResponse struct {
	User struct {
		MakerOf []Product `json:"maker_of"`
	} `json:"user"`
}

type votesResponse struct {
	Votes []*Vote `json:"votes"`
}

type commentsResponse struct {
	Comments []*Comment `json:"comments"`
}

package model

import (
	"time"
)

type Post struct {
	Id      int64     `json:"id"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pubDate"`
	// Image is the storage blob name, empty when the post has no image
	Image  string `json:"image,omitempty"`
	Author *User  `json:"author"`
	// Group is nil when the post does not belong to a group
	Group *Group `json:"group,omitempty"`
}

// CanEdit reports whether user may edit or delete the post
func (p *Post) CanEdit(user *User) bool {
	return user != nil && p.Author != nil && user.Id == p.Author.Id
}

func (p *Post) GroupId() int64 {
	if p.Group == nil {
		return 0
	}
	return p.Group.Id
}

type Comment struct {
	Id      int64     `json:"id"`
	PostId  int64     `json:"postId"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
	Author  *User     `json:"author"`
}

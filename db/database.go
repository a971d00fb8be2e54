package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/navbryce/yatube/model"
)

// Database is the application's view of persistence. Lookups by id, slug or
// username return (nil, nil) when no row matches.
type Database interface {
	PostDatabase
	GroupDatabase
	UserDatabase
	FollowDatabase
	GetSQLDB() *sql.DB
	Close() error
}

type CreatePost struct {
	AuthorId int64
	Text     string
	GroupId  int64 // 0 for no group
	Image    string
	PubDate  time.Time
}

type UpdatePost struct {
	Text    string
	GroupId int64
	Image   string
}

type CreateComment struct {
	PostId   int64
	AuthorId int64
	Text     string
	Created  time.Time
}

// PostsListQuery filters a post listing. Zero values disable a filter.
type PostsListQuery struct {
	GroupId    int64
	AuthorId   int64
	FollowedBy int64 // only posts by authors this user follows
}

// PageRequest selects a 1-based page of Size entries
type PageRequest struct {
	Number uint
	Size   uint
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	UpdatePost(ctx context.Context, id int64, req *UpdatePost) error
	DeletePost(ctx context.Context, id int64) error
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetPosts(ctx context.Context, query *PostsListQuery, page *PageRequest) ([]*model.Post, error)
	CountPosts(ctx context.Context, query *PostsListQuery) (uint64, error)
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error)
}

type GroupDatabase interface {
	CreateGroup(ctx context.Context, group *model.Group) (groupId int64, err error)
	GetGroupById(ctx context.Context, id int64) (*model.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error)
	GetGroups(ctx context.Context) ([]*model.Group, error)
	// DeleteGroup detaches the group's posts before removing it
	DeleteGroup(ctx context.Context, id int64) error
}

type UserDatabase interface {
	CreateUser(ctx context.Context, user *model.User) (userId int64, err error)
	GetUser(ctx context.Context, firebaseId string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type FollowDatabase interface {
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, follow *model.Follow) error
	IsFollowing(ctx context.Context, userId, authorId int64) (bool, error)
	GetFollowsForUser(ctx context.Context, userId int64) ([]*model.Follow, error)
}

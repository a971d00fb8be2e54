package app

import (
	"context"
	"errors"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
)

var ErrNoUser = errors.New("a user is required for this feed")

type PageOpts struct {
	PageSize uint
}

func (opts *PageOpts) size() uint {
	if opts == nil || opts.PageSize == 0 {
		return 10
	}
	return opts.PageSize
}

func GetAllPosts(ctx context.Context, lister PostLister, rawPage string, opts *PageOpts) (*Page, error) {
	return PaginatePosts(ctx, lister, &appDb.PostsListQuery{}, rawPage, opts.size())
}

func GetGroupPosts(ctx context.Context, lister PostLister, group *model.Group, rawPage string, opts *PageOpts) (*Page, error) {
	return PaginatePosts(ctx, lister, &appDb.PostsListQuery{GroupId: group.Id}, rawPage, opts.size())
}

func GetAuthorPosts(ctx context.Context, lister PostLister, author *model.User, rawPage string, opts *PageOpts) (*Page, error) {
	return PaginatePosts(ctx, lister, &appDb.PostsListQuery{AuthorId: author.Id}, rawPage, opts.size())
}

// GetFeedForUser pages through posts by the authors user follows
func GetFeedForUser(ctx context.Context, lister PostLister, user *model.User, rawPage string, opts *PageOpts) (*Page, error) {
	if user == nil {
		return nil, ErrNoUser
	}
	return PaginatePosts(ctx, lister, &appDb.PostsListQuery{FollowedBy: user.Id}, rawPage, opts.size())
}

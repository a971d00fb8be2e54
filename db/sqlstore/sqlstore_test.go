package sqlstore_test

import (
	"context"
	"testing"
	"time"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDB_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, database, "leo")
	group := testutil.CreateGroup(t, database, "cats")

	id, err := database.CreatePost(ctx, &appDb.CreatePost{
		AuthorId: author.Id,
		Text:     "first post",
		GroupId:  group.Id,
		Image:    "posts/cat.gif",
	})
	require.NoError(t, err)

	post, err := database.GetPostById(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "first post", post.Text)
	assert.Equal(t, "posts/cat.gif", post.Image)
	assert.Equal(t, author.Id, post.Author.Id)
	assert.Equal(t, "leo", post.Author.Username)
	require.NotNil(t, post.Group)
	assert.Equal(t, group.Slug, post.Group.Slug)
	assert.Equal(t, group.Title, post.Group.Title)
	assert.False(t, post.PubDate.IsZero())
}

func TestPostDB_GetMissingPost(t *testing.T) {
	database := testutil.NewTestDB(t)

	post, err := database.GetPostById(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, post)
}

func TestPostDB_PostWithoutGroup(t *testing.T) {
	database := testutil.NewTestDB(t)
	author := testutil.CreateUser(t, database, "leo")
	id := testutil.CreatePost(t, database, author, nil, "no group", time.Now())

	post, err := database.GetPostById(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, post.Group)
	assert.Equal(t, int64(0), post.GroupId())
}

func TestPostDB_GetPostsNewestFirstAndPaged(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, database, "leo")
	ids := testutil.CreatePosts(t, database, author, nil, "post", 13)

	first, err := database.GetPosts(ctx, &appDb.PostsListQuery{}, &appDb.PageRequest{Number: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, ids[12], first[0].Id)
	assert.Equal(t, ids[3], first[9].Id)

	second, err := database.GetPosts(ctx, &appDb.PostsListQuery{}, &appDb.PageRequest{Number: 2, Size: 10})
	require.NoError(t, err)
	require.Len(t, second, 3)
	assert.Equal(t, ids[0], second[2].Id)
}

func TestPostDB_Filters(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	leo := testutil.CreateUser(t, database, "leo")
	mia := testutil.CreateUser(t, database, "mia")
	cats := testutil.CreateGroup(t, database, "cats")
	testutil.CreatePosts(t, database, leo, cats, "leo cats", 2)
	testutil.CreatePosts(t, database, leo, nil, "leo", 3)
	testutil.CreatePosts(t, database, mia, cats, "mia cats", 4)

	for name, tc := range map[string]struct {
		query    *appDb.PostsListQuery
		expected uint64
	}{
		"all":          {&appDb.PostsListQuery{}, 9},
		"group":        {&appDb.PostsListQuery{GroupId: cats.Id}, 6},
		"author":       {&appDb.PostsListQuery{AuthorId: leo.Id}, 5},
		"group+author": {&appDb.PostsListQuery{GroupId: cats.Id, AuthorId: mia.Id}, 4},
	} {
		t.Run(name, func(t *testing.T) {
			count, err := database.CountPosts(ctx, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, count)

			posts, err := database.GetPosts(ctx, tc.query, &appDb.PageRequest{Number: 1, Size: 20})
			require.NoError(t, err)
			assert.Len(t, posts, int(tc.expected))
		})
	}
}

func TestPostDB_FollowedBy(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	reader := testutil.CreateUser(t, database, "reader")
	followed := testutil.CreateUser(t, database, "followed")
	other := testutil.CreateUser(t, database, "other")
	followedPosts := testutil.CreatePosts(t, database, followed, nil, "followed", 2)
	testutil.CreatePosts(t, database, other, nil, "other", 2)
	require.NoError(t, database.CreateFollow(ctx, &model.Follow{UserId: reader.Id, AuthorId: followed.Id}))

	query := &appDb.PostsListQuery{FollowedBy: reader.Id}
	posts, err := database.GetPosts(ctx, query, &appDb.PageRequest{Number: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, post := range posts {
		assert.Equal(t, followed.Id, post.Author.Id)
	}
	assert.Equal(t, followedPosts[1], posts[0].Id)

	count, err := database.CountPosts(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestPostDB_UpdatePost(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, database, "leo")
	cats := testutil.CreateGroup(t, database, "cats")
	id := testutil.CreatePost(t, database, author, cats, "before", time.Now())

	require.NoError(t, database.UpdatePost(ctx, id, &appDb.UpdatePost{Text: "after", GroupId: 0, Image: "posts/new.gif"}))

	post, err := database.GetPostById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "after", post.Text)
	assert.Nil(t, post.Group)
	assert.Equal(t, "posts/new.gif", post.Image)
	assert.Equal(t, author.Id, post.Author.Id)
}

func TestPostDB_Comments(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, database, "leo")
	commenter := testutil.CreateUser(t, database, "mia")
	id := testutil.CreatePost(t, database, author, nil, "post", time.Now())
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := database.CreateComment(ctx, &appDb.CreateComment{PostId: id, AuthorId: commenter.Id, Text: "second", Created: start.Add(time.Hour)})
	require.NoError(t, err)
	_, err = database.CreateComment(ctx, &appDb.CreateComment{PostId: id, AuthorId: author.Id, Text: "first", Created: start})
	require.NoError(t, err)

	comments, err := database.GetCommentsForPost(ctx, id)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "leo", comments[0].Author.Username)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "mia", comments[1].Author.Username)
}

func TestPostDB_DeletePostRemovesComments(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, database, "leo")
	id := testutil.CreatePost(t, database, author, nil, "post", time.Now())
	_, err := database.CreateComment(ctx, &appDb.CreateComment{PostId: id, AuthorId: author.Id, Text: "comment"})
	require.NoError(t, err)

	require.NoError(t, database.DeletePost(ctx, id))

	post, err := database.GetPostById(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, post)
	comments, err := database.GetCommentsForPost(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestGroupDB_Lookups(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	dogs := testutil.CreateGroup(t, database, "dogs")
	cats := testutil.CreateGroup(t, database, "cats")

	bySlug, err := database.GetGroupBySlug(ctx, "dogs")
	require.NoError(t, err)
	assert.Equal(t, dogs, bySlug)

	byId, err := database.GetGroupById(ctx, cats.Id)
	require.NoError(t, err)
	assert.Equal(t, cats, byId)

	missing, err := database.GetGroupBySlug(ctx, "birds")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	groups, err := database.GetGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "cats", groups[0].Slug)
	assert.Equal(t, "dogs", groups[1].Slug)
}

func TestGroupDB_DuplicateSlug(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.CreateGroup(t, database, "cats")

	_, err := database.CreateGroup(context.Background(), &model.Group{Title: "Cats again", Slug: "cats"})
	require.Error(t, err)
	assert.True(t, appDb.IsDupKeyErr(err))
}

func TestGroupDB_DeleteGroupKeepsPosts(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, database, "leo")
	cats := testutil.CreateGroup(t, database, "cats")
	id := testutil.CreatePost(t, database, author, cats, "in a group", time.Now())

	require.NoError(t, database.DeleteGroup(ctx, cats.Id))

	post, err := database.GetPostById(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Nil(t, post.Group)
	group, err := database.GetGroupById(ctx, cats.Id)
	require.NoError(t, err)
	assert.Nil(t, group)
}

func TestUserDB(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	leo := testutil.CreateUser(t, database, "leo")

	byFirebaseId, err := database.GetUser(ctx, "uid-leo")
	require.NoError(t, err)
	require.NotNil(t, byFirebaseId)
	assert.Equal(t, leo.Id, byFirebaseId.Id)
	assert.Equal(t, "leo", byFirebaseId.Username)

	byUsername, err := database.GetUserByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, leo.Id, byUsername.Id)

	missing, err := database.GetUser(ctx, "uid-nobody")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = database.CreateUser(ctx, &model.User{FirebaseId: "uid-other", Username: "leo"})
	assert.True(t, appDb.IsDupKeyErr(err))
}

func TestFollowDB(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	reader := testutil.CreateUser(t, database, "reader")
	author := testutil.CreateUser(t, database, "author")
	follow := &model.Follow{UserId: reader.Id, AuthorId: author.Id}

	following, err := database.IsFollowing(ctx, reader.Id, author.Id)
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, database.CreateFollow(ctx, follow))
	// following twice is a no-op
	require.NoError(t, database.CreateFollow(ctx, follow))

	follows, err := database.GetFollowsForUser(ctx, reader.Id)
	require.NoError(t, err)
	require.Len(t, follows, 1)
	assert.Equal(t, reader.Id, follows[0].UserId)
	assert.Equal(t, author.Id, follows[0].AuthorId)

	following, err = database.IsFollowing(ctx, reader.Id, author.Id)
	require.NoError(t, err)
	assert.True(t, following)
	following, err = database.IsFollowing(ctx, author.Id, reader.Id)
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, database.DeleteFollow(ctx, follow))
	require.NoError(t, database.DeleteFollow(ctx, follow))
	follows, err = database.GetFollowsForUser(ctx, reader.Id)
	require.NoError(t, err)
	assert.Empty(t, follows)
}

package sqlstore

import (
	"context"
	"database/sql"
	"time"

	db2 "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/dao"
	"github.com/navbryce/yatube/model"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, post *db2.CreatePost) (int64, error) {
	pubDate := post.PubDate
	if pubDate.IsZero() {
		pubDate = time.Now().UTC()
	}
	res, err := pdb.sess.WithContext(ctx).SQL().
		InsertInto("post").
		Columns("text", "pub_date", "image", "author_id", "group_id").
		Values(post.Text, pubDate, post.Image, post.AuthorId, dao.NewNullInt64(post.GroupId).NullInt64).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (pdb *PostDB) UpdatePost(ctx context.Context, id int64, post *db2.UpdatePost) error {
	return pdb.sess.WithContext(ctx).
		Collection("post").
		Find(db.Cond{"id": id}).
		Update(map[string]interface{}{
			"text":     post.Text,
			"group_id": dao.NewNullInt64(post.GroupId).NullInt64,
			"image":    post.Image,
		})
}

// DeletePost removes the post together with its comments
func (pdb *PostDB) DeletePost(ctx context.Context, id int64) error {
	return pdb.sess.TxContext(ctx, func(sess db.Session) error {
		if err := sess.Collection("comment").Find(db.Cond{"post_id": id}).Delete(); err != nil {
			return err
		}
		return sess.Collection("post").Find(db.Cond{"id": id}).Delete()
	}, nil)
}

type flattenedPost struct {
	Id               int64          `db:"id"`
	Text             string         `db:"text"`
	PubDate          time.Time      `db:"pub_date"`
	Image            string         `db:"image"`
	AuthorId         int64          `db:"author_id"`
	AuthorUsername   string         `db:"author_username"`
	GroupId          sql.NullInt64  `db:"group_id"`
	GroupTitle       sql.NullString `db:"group_title"`
	GroupSlug        sql.NullString `db:"group_slug"`
	GroupDescription sql.NullString `db:"group_description"`
}

var postColumns = columns(
	"p.id",
	"p.text",
	"p.pub_date",
	"p.image",
	"p.author_id",
	"a.username AS author_username",
	"p.group_id",
	"g.title AS group_title",
	"g.slug AS group_slug",
	"g.description AS group_description",
)

// selectPosts builds the post listing query for the given filters
func (pdb *PostDB) selectPosts(ctx context.Context, query *db2.PostsListQuery, cols ...interface{}) db.Selector {
	sel := pdb.sess.WithContext(ctx).SQL().
		Select(cols...).
		From("post AS p").
		Join("person AS a").On("p.author_id = a.id").
		LeftJoin("post_group AS g").On("p.group_id = g.id")
	if query.FollowedBy != 0 {
		sel = sel.Join("follow AS f").On("f.author_id = p.author_id AND f.user_id = ?", query.FollowedBy)
	}

	cond := db.Cond{}
	if query.GroupId != 0 {
		cond["p.group_id"] = query.GroupId
	}
	if query.AuthorId != 0 {
		cond["p.author_id"] = query.AuthorId
	}
	if len(cond) > 0 {
		sel = sel.Where(cond)
	}
	return sel
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.selectPosts(ctx, &db2.PostsListQuery{}, postColumns...).
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return buildPostFromFlattened(&post), nil
}

// GetPosts returns one page of posts, newest first
func (pdb *PostDB) GetPosts(ctx context.Context, query *db2.PostsListQuery, page *db2.PageRequest) ([]*model.Post, error) {
	var flattenedPosts []flattenedPost
	if err := pdb.selectPosts(ctx, query, postColumns...).
		OrderBy("p.pub_date DESC", "p.id DESC").
		Paginate(page.Size).
		Page(page.Number).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(flattenedPosts))
	for i := range flattenedPosts {
		posts[i] = buildPostFromFlattened(&flattenedPosts[i])
	}
	return posts, nil
}

func (pdb *PostDB) CountPosts(ctx context.Context, query *db2.PostsListQuery) (uint64, error) {
	var count struct {
		Total uint64 `db:"total"`
	}
	if err := pdb.selectPosts(ctx, query, db.Raw("COUNT(1) AS total")).
		IteratorContext(ctx).
		One(&count); err != nil {
		return 0, err
	}
	return count.Total, nil
}

func buildPostFromFlattened(post *flattenedPost) *model.Post {
	var group *model.Group
	if groupId := (dao.NullInt64{NullInt64: post.GroupId}).AsInt(); groupId != 0 {
		group = &model.Group{
			Id:          groupId,
			Title:       post.GroupTitle.String,
			Slug:        post.GroupSlug.String,
			Description: post.GroupDescription.String,
		}
	}
	return &model.Post{
		Id:      post.Id,
		Text:    post.Text,
		PubDate: post.PubDate,
		Image:   post.Image,
		Author: &model.User{
			Id:       post.AuthorId,
			Username: post.AuthorUsername,
		},
		Group: group,
	}
}

func (pdb *PostDB) CreateComment(ctx context.Context, req *db2.CreateComment) (int64, error) {
	created := req.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := pdb.sess.WithContext(ctx).SQL().
		InsertInto("comment").
		Columns("post_id", "author_id", "text", "created").
		Values(req.PostId, req.AuthorId, req.Text, created).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedComment struct {
	Id             int64     `db:"id"`
	PostId         int64     `db:"post_id"`
	Text           string    `db:"text"`
	Created        time.Time `db:"created"`
	AuthorId       int64     `db:"author_id"`
	AuthorUsername string    `db:"author_username"`
}

var commentColumns = columns(
	"c.id",
	"c.post_id",
	"c.text",
	"c.created",
	"c.author_id",
	"a.username AS author_username",
)

// GetCommentsForPost returns the post's comments, oldest first
func (pdb *PostDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := pdb.sess.WithContext(ctx).SQL().
		Select(commentColumns...).
		From("comment AS c").
		Join("person AS a").On("c.author_id = a.id").
		Where("c.post_id = ?", postId).
		OrderBy("c.created", "c.id").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, len(flattenedComments))
	for i, comment := range flattenedComments {
		comments[i] = &model.Comment{
			Id:      comment.Id,
			PostId:  comment.PostId,
			Text:    comment.Text,
			Created: comment.Created,
			Author: &model.User{
				Id:       comment.AuthorId,
				Username: comment.AuthorUsername,
			},
		}
	}
	return comments, nil
}

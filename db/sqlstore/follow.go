package sqlstore

import (
	"context"

	db2 "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/upper/db/v4"
)

type FollowDB struct {
	sess db.Session
}

func getFollowDB(sess db.Session) *FollowDB {
	return &FollowDB{sess}
}

// CreateFollow is idempotent: an existing follow is left as is
func (fdb *FollowDB) CreateFollow(ctx context.Context, follow *model.Follow) error {
	_, err := fdb.sess.WithContext(ctx).SQL().
		InsertInto("follow").
		Columns("user_id", "author_id").
		Values(follow.UserId, follow.AuthorId).
		ExecContext(ctx)
	if err != nil && db2.IsDupKeyErr(err) {
		return nil
	}
	return err
}

func (fdb *FollowDB) DeleteFollow(ctx context.Context, follow *model.Follow) error {
	return fdb.sess.WithContext(ctx).
		Collection("follow").
		Find("user_id = ? AND author_id = ?", follow.UserId, follow.AuthorId).
		Delete()
}

func (fdb *FollowDB) IsFollowing(ctx context.Context, userId, authorId int64) (bool, error) {
	count, err := fdb.sess.WithContext(ctx).
		Collection("follow").
		Find("user_id = ? AND author_id = ?", userId, authorId).
		Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (fdb *FollowDB) GetFollowsForUser(ctx context.Context, userId int64) ([]*model.Follow, error) {
	var follows []*model.Follow
	if err := fdb.sess.WithContext(ctx).
		Collection("follow").
		Find(db.Cond{"user_id": userId}).
		OrderBy("id").
		All(&follows); err != nil {
		return nil, err
	}
	return follows, nil
}

package sqlstore

import (
	"context"

	"github.com/navbryce/yatube/model"
	"github.com/upper/db/v4"
)

type GroupDB struct {
	sess db.Session
}

func getGroupDB(sess db.Session) *GroupDB {
	return &GroupDB{sess}
}

func (gdb *GroupDB) CreateGroup(ctx context.Context, group *model.Group) (int64, error) {
	res, err := gdb.sess.WithContext(ctx).SQL().
		InsertInto("post_group").
		Columns("title", "slug", "description").
		Values(group.Title, group.Slug, group.Description).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (gdb *GroupDB) GetGroupById(ctx context.Context, id int64) (*model.Group, error) {
	return gdb.getGroup(ctx, db.Cond{"id": id})
}

func (gdb *GroupDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return gdb.getGroup(ctx, db.Cond{"slug": slug})
}

func (gdb *GroupDB) getGroup(ctx context.Context, cond db.Cond) (*model.Group, error) {
	var group model.Group
	if err := gdb.sess.WithContext(ctx).
		Collection("post_group").
		Find(cond).
		One(&group); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (gdb *GroupDB) GetGroups(ctx context.Context) ([]*model.Group, error) {
	var groups []*model.Group
	if err := gdb.sess.WithContext(ctx).SQL().
		Select("id", "title", "slug", "description").
		From("post_group").
		OrderBy("title", "id").
		IteratorContext(ctx).
		All(&groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteGroup keeps the group's posts; they end up without a group
func (gdb *GroupDB) DeleteGroup(ctx context.Context, id int64) error {
	return gdb.sess.TxContext(ctx, func(sess db.Session) error {
		if _, err := sess.SQL().
			Update("post").
			Set("group_id", nil).
			Where("group_id = ?", id).
			Exec(); err != nil {
			return err
		}
		return sess.Collection("post_group").Find(db.Cond{"id": id}).Delete()
	}, nil)
}

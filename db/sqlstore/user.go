package sqlstore

import (
	"context"
	"time"

	"github.com/navbryce/yatube/model"
	"github.com/upper/db/v4"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := udb.sess.WithContext(ctx).SQL().
		InsertInto("person").
		Columns("firebase_id", "username", "created_at").
		Values(user.FirebaseId, user.Username, createdAt).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (udb *UserDB) GetUser(ctx context.Context, firebaseId string) (*model.User, error) {
	return udb.getUserWhere(ctx, "firebase_id = ?", firebaseId)
}

func (udb *UserDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return udb.getUserWhere(ctx, "username = ?", username)
}

func (udb *UserDB) getUserWhere(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	var user model.User
	if err := udb.sess.WithContext(ctx).SQL().
		Select("id", "firebase_id", "username", "created_at").
		From("person").
		Where(where, arg).
		IteratorContext(ctx).
		One(&user); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

package model

// Follow is a directed relationship: UserId receives AuthorId's posts in their feed
type Follow struct {
	Id       int64 `db:"id,omitempty" json:"id"`
	UserId   int64 `db:"user_id" json:"userId"`
	AuthorId int64 `db:"author_id" json:"authorId"`
}

package dao

import "time"

// Table definitions used to create the schema. Queries go through upper/db and
// read into the structs in the model package; these only describe columns and indexes.

type Person struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FirebaseId string    `gorm:"column:firebase_id;size:128;not null;uniqueIndex"`
	Username   string    `gorm:"column:username;size:150;not null;uniqueIndex"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (Person) TableName() string { return "person" }

type PostGroup struct {
	Id          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string `gorm:"column:title;size:200;not null"`
	Slug        string `gorm:"column:slug;size:50;not null;uniqueIndex"`
	Description string `gorm:"column:description;type:text;not null"`
}

func (PostGroup) TableName() string { return "post_group" }

type Post struct {
	Id       int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Text     string    `gorm:"column:text;type:text;not null"`
	PubDate  time.Time `gorm:"column:pub_date;not null;index"`
	Image    string    `gorm:"column:image;size:255;not null;default:''"`
	AuthorId int64     `gorm:"column:author_id;not null;index"`
	GroupId  *int64    `gorm:"column:group_id;index"`
}

func (Post) TableName() string { return "post" }

type Comment struct {
	Id       int64     `gorm:"column:id;primaryKey;autoIncrement"`
	PostId   int64     `gorm:"column:post_id;not null;index"`
	AuthorId int64     `gorm:"column:author_id;not null;index"`
	Text     string    `gorm:"column:text;type:text;not null"`
	Created  time.Time `gorm:"column:created;not null"`
}

func (Comment) TableName() string { return "comment" }

// Follow pairs are unique: following twice is a no-op
type Follow struct {
	Id       int64 `gorm:"column:id;primaryKey;autoIncrement"`
	UserId   int64 `gorm:"column:user_id;not null;uniqueIndex:follow_user_author"`
	AuthorId int64 `gorm:"column:author_id;not null;uniqueIndex:follow_user_author;index"`
}

func (Follow) TableName() string { return "follow" }

func Tables() []interface{} {
	return []interface{}{
		&Person{},
		&PostGroup{},
		&Post{},
		&Comment{},
		&Follow{},
	}
}

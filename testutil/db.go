// Package testutil provides a migrated SQLite database and fakes of the
// external services for tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/navbryce/yatube/config"
	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/migrate"
	"github.com/navbryce/yatube/db/sqlstore"
	"github.com/navbryce/yatube/model"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated SQLite database in a temp dir, closed at cleanup
func NewTestDB(t testing.TB) *sqlstore.SQLDB {
	t.Helper()
	database, err := sqlstore.Open(&config.DBConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "yatube.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, migrate.Run(context.Background(), database.Driver(), database.GetSQLDB()))
	return database
}

// CreateUser creates a user whose firebase UID is "uid-<username>"
func CreateUser(t testing.TB, database appDb.Database, username string) *model.User {
	t.Helper()
	user := &model.User{
		FirebaseId: "uid-" + username,
		Username:   username,
		CreatedAt:  time.Now().UTC(),
	}
	id, err := database.CreateUser(context.Background(), user)
	require.NoError(t, err)
	user.Id = id
	return user
}

func CreateGroup(t testing.TB, database appDb.Database, slug string) *model.Group {
	t.Helper()
	group := &model.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "Description of " + slug,
	}
	id, err := database.CreateGroup(context.Background(), group)
	require.NoError(t, err)
	group.Id = id
	return group
}

// CreatePost creates a post published at pubDate, group may be nil
func CreatePost(t testing.TB, database appDb.Database, author *model.User, group *model.Group, text string, pubDate time.Time) int64 {
	t.Helper()
	req := &appDb.CreatePost{
		AuthorId: author.Id,
		Text:     text,
		PubDate:  pubDate.UTC(),
	}
	if group != nil {
		req.GroupId = group.Id
	}
	id, err := database.CreatePost(context.Background(), req)
	require.NoError(t, err)
	return id
}

// CreatePosts creates n posts one minute apart, the last one newest. Texts are "<prefix> <i>".
func CreatePosts(t testing.TB, database appDb.Database, author *model.User, group *model.Group, prefix string, n int) []int64 {
	t.Helper()
	start := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		ids[i] = CreatePost(t, database, author, group, fmt.Sprintf("%v %v", prefix, i), start.Add(time.Duration(i)*time.Minute))
	}
	return ids
}

func CountPosts(t testing.TB, database appDb.Database) uint64 {
	t.Helper()
	count, err := database.CountPosts(context.Background(), &appDb.PostsListQuery{})
	require.NoError(t, err)
	return count
}

// SmallGIF is a valid 1x1 gif
var SmallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func SmallGIFReader() *bytes.Reader {
	return bytes.NewReader(SmallGIF)
}

package app

import (
	"context"
	"strconv"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
)

// PostLister is the subset of the database a paginated listing needs
type PostLister interface {
	GetPosts(ctx context.Context, query *appDb.PostsListQuery, page *appDb.PageRequest) ([]*model.Post, error)
	CountPosts(ctx context.Context, query *appDb.PostsListQuery) (uint64, error)
}

// Page is one page of a post listing. Number is 1-based.
type Page struct {
	Posts        []*model.Post
	Number       uint
	NumPages     uint
	TotalEntries uint64
	PageSize     uint
}

func (p *Page) Len() int {
	return len(p.Posts)
}

func (p *Page) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page) PreviousNumber() uint {
	return p.Number - 1
}

func (p *Page) NextNumber() uint {
	return p.Number + 1
}

// PageRange lists every page number, 1 through NumPages
func (p *Page) PageRange() []uint {
	pages := make([]uint, p.NumPages)
	for i := range pages {
		pages[i] = uint(i) + 1
	}
	return pages
}

// NumPages is never less than one, an empty listing still has a first page
func NumPages(total uint64, size uint) uint {
	if size == 0 || total == 0 {
		return 1
	}
	return uint((total + uint64(size) - 1) / uint64(size))
}

// ResolvePageNumber maps the raw ?page= value onto an existing page.
// A missing or non-numeric value selects the first page, an out of range
// number selects the last one.
func ResolvePageNumber(raw string, total uint64, size uint) (number uint, numPages uint) {
	numPages = NumPages(total, size)
	requested, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 1, numPages
	}
	if requested < 1 || uint64(requested) > uint64(numPages) {
		return numPages, numPages
	}
	return uint(requested), numPages
}

// PaginatePosts loads the page of query selected by rawPage
func PaginatePosts(ctx context.Context, lister PostLister, query *appDb.PostsListQuery, rawPage string, size uint) (*Page, error) {
	total, err := lister.CountPosts(ctx, query)
	if err != nil {
		return nil, err
	}
	number, numPages := ResolvePageNumber(rawPage, total, size)
	page := &Page{
		Number:       number,
		NumPages:     numPages,
		TotalEntries: total,
		PageSize:     size,
		Posts:        []*model.Post{},
	}
	if total == 0 {
		return page, nil
	}
	posts, err := lister.GetPosts(ctx, query, &appDb.PageRequest{Number: number, Size: size})
	if err != nil {
		return nil, err
	}
	page.Posts = posts
	return page, nil
}

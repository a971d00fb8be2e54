package controllers

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/logging"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
)

var log = logging.NewPackageLogger("controllers")

const GroupsUpdateInterval = time.Minute

// column sizes of the post_group table
const (
	MaxSlugLength  = 50
	MaxTitleLength = 200
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type groupList struct {
	groups    []*model.Group
	createdAt time.Time
}

// GroupController serves the group choices offered by the post form. Groups are
// managed from the command line, so the list is reloaded whenever the form is
// rendered and periodically in the background.
type GroupController struct {
	db             db.GroupDatabase
	cachedList     *groupList
	cachedListLock sync.RWMutex
}

// NewGroupController loads the groups and refreshes them until ctx is done
func NewGroupController(ctx context.Context, db db.GroupDatabase) (*GroupController, error) {
	controller := &GroupController{
		db: db,
	}
	if err := controller.updateCachedList(ctx); err != nil {
		return nil, err
	}

	updateTicker := time.NewTicker(GroupsUpdateInterval)
	go func() {
		defer updateTicker.Stop()
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("recovered while attempting to update cached groups")
			}
		}()
		for {
			select {
			case <-updateTicker.C:
				controller.attemptToUpdateCachedList(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	return controller, nil
}

// CreateGroup stores a new group. An empty slug is derived from the title.
func (gc *GroupController) CreateGroup(ctx context.Context, group *model.Group) (int64, *util.HTTPError) {
	if group.Slug == "" {
		group.Slug = slug.Make(group.Title)
	}
	if !slugPattern.MatchString(group.Slug) {
		return -1, &util.HTTPError{Status: http.StatusBadRequest, Message: fmt.Sprintf("%q is not a valid slug", group.Slug)}
	}
	if len(group.Slug) > MaxSlugLength {
		return -1, &util.HTTPError{Status: http.StatusBadRequest, Message: fmt.Sprintf("slug must be at most %d characters", MaxSlugLength)}
	}
	if len([]rune(group.Title)) > MaxTitleLength {
		return -1, &util.HTTPError{Status: http.StatusBadRequest, Message: fmt.Sprintf("title must be at most %d characters", MaxTitleLength)}
	}
	id, err := gc.db.CreateGroup(ctx, group)
	if err != nil {
		if db.IsDupKeyErr(err) {
			return -1, &util.HTTPError{Status: http.StatusConflict, Message: fmt.Sprintf("group %q already exists", group.Slug), Err: err}
		}
		return -1, util.BuildDbHTTPErr(err)
	}
	group.Id = id
	gc.attemptToUpdateCachedList(ctx)
	return id, nil
}

func (gc *GroupController) DeleteGroup(ctx context.Context, groupSlug string) *util.HTTPError {
	group, err := gc.db.GetGroupBySlug(ctx, groupSlug)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	if group == nil {
		return util.BuildNotFoundHTTPErr("group")
	}
	if err := gc.db.DeleteGroup(ctx, group.Id); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	gc.attemptToUpdateCachedList(ctx)
	return nil
}

// GetGroups reloads the groups so changes made from the command line show up in
// the post form. The last loaded list is returned when the reload fails. Do not
// modify the result.
func (gc *GroupController) GetGroups(ctx context.Context) []*model.Group {
	if err := gc.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("serving stale groups")
	}
	gc.cachedListLock.RLock()
	defer gc.cachedListLock.RUnlock()
	return gc.cachedList.groups
}

// GetGroupChoice resolves a submitted group id, nil for an unknown id
func (gc *GroupController) GetGroupChoice(ctx context.Context, id int64) (*model.Group, error) {
	return gc.db.GetGroupById(ctx, id)
}

// Refresh reloads the groups from the database
func (gc *GroupController) Refresh(ctx context.Context) error {
	return gc.updateCachedList(ctx)
}

func (gc *GroupController) attemptToUpdateCachedList(ctx context.Context) {
	if err := gc.updateCachedList(ctx); err != nil {
		log.Error().Err(err).Msg("an error occurred while updating the cached groups")
	}
}

func (gc *GroupController) updateCachedList(ctx context.Context) error {
	groups, err := gc.db.GetGroups(ctx)
	if err != nil {
		return err
	}
	newList := buildGroupList(groups)

	// start of cachedListLock
	gc.cachedListLock.Lock()
	defer gc.cachedListLock.Unlock()
	gc.cachedList = newList
	// end of cachedListLock
	return nil
}

func buildGroupList(groups []*model.Group) *groupList {
	if groups == nil {
		groups = []*model.Group{} // DON'T keep a nil slice
	}
	return &groupList{
		groups:    groups,
		createdAt: time.Now(),
	}
}

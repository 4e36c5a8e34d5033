package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogium/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrInvalidPostInput = errors.New("post is missing required fields")
	ErrInvalidFilter    = errors.New("unsupported listing constraint")
)

const defaultPerPage = 10

// PostService wraps post related database operations and enforces the
// visibility and authorship rules on every read and write path.
type PostService struct {
	db    *gorm.DB
	clock Clock
}

// PostFilter describes constraints for listing posts. CategorySlug
// and AuthorID narrow the result set by equality; Sort must name a
// known ordering key.
type PostFilter struct {
	CategorySlug string
	AuthorID     uint
	Sort         string
	Page         int
	PerPage      int
}

// PostFeedItem pairs a post with its comment count for feed views.
type PostFeedItem struct {
	db.Post
	CommentCount int64
}

// PostListResult aggregates paginated feed data.
type PostListResult struct {
	Posts      []PostFeedItem
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// PostInput represents fields accepted when creating or updating a post.
// Pointer fields distinguish "not provided" from a zero value.
type PostInput struct {
	Title       string
	Text        string
	CategoryID  *uint
	LocationID  *uint
	PubDate     *time.Time
	IsPublished *bool
}

// NewPostService creates a PostService using the system clock.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb, clock: SystemClock()}
}

// WithClock 允许在测试或特定场景下替换时间源。
func (s *PostService) WithClock(c Clock) *PostService {
	if c != nil {
		s.clock = c
	}
	return s
}

// Resolve fetches a post on behalf of an actor. The author always
// gets their own post back, published or not; everyone else only sees
// it if it is publicly visible right now. A missing id and a hidden
// post are deliberately indistinguishable: both return
// ErrPostNotFound, so outsiders cannot probe for existence.
func (s *PostService) Resolve(actorID, postID uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.
		Preload("User").
		Preload("Category").
		Preload("Location").
		First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if IsAuthor(actorID, &post) {
		return &post, nil
	}
	if IsPublic(&post, s.clock.Now()) {
		return &post, nil
	}
	return nil, ErrPostNotFound
}

// ListPublic returns the publicly visible posts at the current
// instant, newest publication first. The filter's equality
// constraints narrow the set and commute with the visibility scope.
func (s *PostService) ListPublic(filter PostFilter) (*PostListResult, error) {
	return s.list(filter, true)
}

// ListOwn returns every post the owner wrote, including drafts,
// scheduled posts and posts in hidden categories. Only the profile
// self-view goes through here.
func (s *PostService) ListOwn(ownerID uint, filter PostFilter) (*PostListResult, error) {
	filter.AuthorID = ownerID
	return s.list(filter, false)
}

// Create persists a post authored by the acting user. A zero PubDate
// means immediate publication.
func (s *PostService) Create(actorID uint, input PostInput) (*db.Post, error) {
	if actorID == AnonymousID {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Text) == "" {
		return nil, ErrInvalidPostInput
	}

	pubDate := s.clock.Now()
	if input.PubDate != nil && !input.PubDate.IsZero() {
		pubDate = *input.PubDate
	}
	isPublished := true
	if input.IsPublished != nil {
		isPublished = *input.IsPublished
	}

	post := db.Post{
		Title:       title,
		Text:        input.Text,
		PubDate:     pubDate,
		IsPublished: isPublished,
		UserID:      actorID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	return s.Resolve(actorID, post.ID)
}

// Update applies changes to a post on behalf of its author. A post
// the actor cannot even see stays a not-found; a visible post they do
// not own is a hard ErrForbidden.
func (s *PostService) Update(actorID, postID uint, input PostInput) (*db.Post, error) {
	post, err := s.Resolve(actorID, postID)
	if err != nil {
		return nil, err
	}
	if err := authorizeMutation(actorID, post); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Text) == "" {
		return nil, ErrInvalidPostInput
	}

	post.Title = title
	post.Text = input.Text
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID
	if input.PubDate != nil && !input.PubDate.IsZero() {
		post.PubDate = *input.PubDate
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}

	// Save would write the preloaded associations back; update columns only.
	if err := s.db.Model(&db.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":        post.Title,
		"text":         post.Text,
		"pub_date":     post.PubDate,
		"is_published": post.IsPublished,
		"category_id":  post.CategoryID,
		"location_id":  post.LocationID,
	}).Error; err != nil {
		return nil, err
	}

	return s.Resolve(actorID, post.ID)
}

// Delete removes a post and its comments on behalf of its author.
func (s *PostService) Delete(actorID, postID uint) error {
	post, err := s.Resolve(actorID, postID)
	if err != nil {
		return err
	}
	if err := authorizeMutation(actorID, post); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Post{}, post.ID).Error
	})
}

func (f *PostFilter) normalize() error {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = defaultPerPage
	}
	switch f.Sort {
	case "", "pub_date":
	default:
		return fmt.Errorf("%w: sort by %q", ErrInvalidFilter, f.Sort)
	}
	return nil
}

func (s *PostService) applyFilters(query *gorm.DB, filter PostFilter) *gorm.DB {
	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		query = query.Where(
			"posts.category_id IN (SELECT id FROM categories WHERE slug = ? AND deleted_at IS NULL)",
			slug,
		)
	}
	if filter.AuthorID != 0 {
		query = query.Where("posts.user_id = ?", filter.AuthorID)
	}
	return query
}

// list provides paginated, comment-count annotated posts. The
// ordering is pub_date descending with id ascending as tie-break, so
// repeated page requests over unchanged data are stable.
func (s *PostService) list(filter PostFilter, publicOnly bool) (*PostListResult, error) {
	if err := filter.normalize(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	build := func() *gorm.DB {
		query := s.db.Model(&db.Post{})
		if publicOnly {
			query = query.Scopes(PublicScope(now))
		}
		return s.applyFilters(query, filter)
	}

	result := &PostListResult{Page: filter.Page, PerPage: filter.PerPage}
	if err := build().Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.PerPage

	var posts []db.Post
	if err := build().
		Preload("User").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC, posts.id ASC").
		Limit(result.PerPage).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	items, err := s.annotateCommentCounts(posts)
	if err != nil {
		return nil, err
	}
	result.Posts = items

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage))
	}

	return result, nil
}

type commentCountRow struct {
	PostID uint
	Count  int64
}

// annotateCommentCounts 为一页文章补充评论数。
// 计数与文章读取之间不加锁，并发新增的评论允许在本次响应中缺席。
func (s *PostService) annotateCommentCounts(posts []db.Post) ([]PostFeedItem, error) {
	items := make([]PostFeedItem, 0, len(posts))
	if len(posts) == 0 {
		return items, nil
	}

	ids := make([]uint, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].ID)
	}

	var rows []commentCountRow
	if err := s.db.Model(&db.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}

	for i := range posts {
		items = append(items, PostFeedItem{Post: posts[i], CommentCount: counts[posts[i].ID]})
	}
	return items, nil
}

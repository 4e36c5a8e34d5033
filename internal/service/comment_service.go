package service

import (
	"errors"
	"strings"

	"github.com/blogium/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound     = errors.New("comment not found")
	ErrInvalidCommentInput = errors.New("comment text is required")
)

// CommentService wraps comment related database operations. Reading
// goes through the parent post's visibility; mutation goes through
// the shared authorship gate.
type CommentService struct {
	db    *gorm.DB
	posts *PostService
}

// NewCommentService creates a CommentService. The post service is
// needed to check the parent post's visibility on create.
func NewCommentService(gdb *gorm.DB, posts *PostService) *CommentService {
	return &CommentService{db: gdb, posts: posts}
}

// ListForPost returns every comment of a post in ascending creation
// order, equal timestamps broken by id. Comments are never filtered
// individually: whoever may see the post sees all of them.
func (s *CommentService) ListForPost(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Create adds a comment to a post the actor can currently see.
func (s *CommentService) Create(actorID, postID uint, text string) (*db.Comment, error) {
	if actorID == AnonymousID {
		return nil, ErrForbidden
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrInvalidCommentInput
	}

	post, err := s.posts.Resolve(actorID, postID)
	if err != nil {
		return nil, err
	}

	comment := db.Comment{Text: trimmed, PostID: post.ID, UserID: actorID}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update rewrites a comment's text on behalf of its author.
func (s *CommentService) Update(actorID, commentID uint, text string) (*db.Comment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrInvalidCommentInput
	}

	comment, err := s.get(commentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeMutation(actorID, comment); err != nil {
		return nil, err
	}

	if err := s.db.Model(&db.Comment{}).
		Where("id = ?", comment.ID).
		Update("text", trimmed).Error; err != nil {
		return nil, err
	}
	comment.Text = trimmed
	return comment, nil
}

// Delete removes a comment on behalf of its author.
func (s *CommentService) Delete(actorID, commentID uint) error {
	comment, err := s.get(commentID)
	if err != nil {
		return err
	}
	if err := authorizeMutation(actorID, comment); err != nil {
		return err
	}
	return s.db.Delete(&db.Comment{}, comment.ID).Error
}

// get 严格按评论自身的ID查找，绝不混用文章ID。
func (s *CommentService) get(commentID uint) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.Preload("User").First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

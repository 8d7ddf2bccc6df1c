package repositories

import (
	"context"
	"time"

	"postly/internal/models"

	"gorm.io/gorm"
)

const DefaultListLimit = 10

// PostWithLikes is the flat listing row: the post columns plus the live like
// count, without the nested owner record.
type PostWithLikes struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	OwnerID    uint      `json:"owner_id"`
	LikesCount int64     `json:"likes_count"`
}

// ListOptions is the window over the sorted, filtered, grouped listing.
// OwnerID nil means all posts; Search "" matches everything.
type ListOptions struct {
	Limit   int
	Offset  int
	Search  string
	OwnerID *uint
}

const likesSelect = "posts.id, posts.title, posts.content, posts.created_at, posts.owner_id, count(votes.post_id) AS likes_count"

func postsWithLikes(ctx context.Context) *gorm.DB {
	// Left outer join: posts with zero votes must still appear with count 0.
	return DB.WithContext(ctx).
		Model(&models.Post{}).
		Select(likesSelect).
		Joins("LEFT JOIN votes ON votes.post_id = posts.id")
}

// ListPosts returns posts annotated with like counts, most liked first.
// Pagination applies after filtering, grouping and sorting. Post id breaks
// ties so windows are stable across pages.
func ListPosts(ctx context.Context, opts ListOptions) ([]PostWithLikes, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	query := postsWithLikes(ctx)
	if opts.OwnerID != nil {
		query = query.Where("posts.owner_id = ?", *opts.OwnerID)
	}
	if opts.Search != "" {
		query = query.Where("posts.title LIKE ?", "%"+opts.Search+"%")
	}

	rows := make([]PostWithLikes, 0, opts.Limit)
	err := query.
		Group("posts.id").
		Order("likes_count DESC, posts.id ASC").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOwnedPost fetches one post with its like count under the combined
// existence+ownership rule: a post owned by someone else is ErrNotFound,
// same as a post that does not exist.
func GetOwnedPost(ctx context.Context, ownerID, postID uint) (*PostWithLikes, error) {
	var row PostWithLikes
	err := postsWithLikes(ctx).
		Where("posts.id = ? AND posts.owner_id = ?", postID, ownerID).
		Group("posts.id").
		Take(&row).Error
	switch err {
	case nil:
		return &row, nil
	case gorm.ErrRecordNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

// CreatePost inserts a post owned by ownerID and returns it with the owner
// record attached, matching the single-post response shape.
func CreatePost(ctx context.Context, ownerID uint, title, content string, published bool) (*models.Post, error) {
	db := DB.WithContext(ctx)

	post := models.Post{
		Title:     title,
		Content:   content,
		Published: published,
		OwnerID:   ownerID,
	}
	if err := db.Create(&post).Error; err != nil {
		return nil, err
	}

	var owner models.User
	if err := db.First(&owner, ownerID).Error; err != nil {
		return nil, err
	}
	post.Owner = &owner
	return &post, nil
}

// UpdatePost overwrites title, content and published unconditionally; there
// are no partial patch semantics.
func UpdatePost(ctx context.Context, ownerID, postID uint, title, content string, published bool) (*models.Post, error) {
	db := DB.WithContext(ctx)

	var post models.Post
	err := db.Where("id = ? AND owner_id = ?", postID, ownerID).First(&post).Error
	switch err {
	case nil:
	case gorm.ErrRecordNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}

	updates := map[string]interface{}{
		"title":     title,
		"content":   content,
		"published": published,
	}
	if err := db.Model(&post).Updates(updates).Error; err != nil {
		return nil, err
	}
	post.Title = title
	post.Content = content
	post.Published = published

	var owner models.User
	if err := db.First(&owner, ownerID).Error; err != nil {
		return nil, err
	}
	post.Owner = &owner
	return &post, nil
}

// DeletePost removes an owned post in one statement; votes cascade at the
// database level.
func DeletePost(ctx context.Context, ownerID, postID uint) error {
	result := DB.WithContext(ctx).
		Where("id = ? AND owner_id = ?", postID, ownerID).
		Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

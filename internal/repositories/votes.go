package repositories

import (
	"context"
	"errors"

	"postly/internal/models"

	"gorm.io/gorm"
)

// Vote directions. A like inserts the (user, post) row, a dislike removes
// it; the pair is a strict toggle, never an upsert.
const (
	DirectionDislike = 0
	DirectionLike    = 1
)

// CastVote applies one vote action. Check order matches the read side of the
// invariants: post first, then the defensive user re-check, then the
// (user, post) pair. A like that races another like loses on the composite
// primary key and comes back as ErrAlreadyLiked either way.
func CastVote(ctx context.Context, userID, postID uint, direction int) error {
	db := DB.WithContext(ctx)

	var post models.Post
	err := db.First(&post, postID).Error
	switch err {
	case nil:
	case gorm.ErrRecordNotFound:
		return ErrNotFound
	default:
		return err
	}

	var user models.User
	err = db.First(&user, userID).Error
	switch err {
	case nil:
	case gorm.ErrRecordNotFound:
		return ErrUserNotFound
	default:
		return err
	}

	var existing models.Vote
	err = db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
	found := true
	switch err {
	case nil:
	case gorm.ErrRecordNotFound:
		found = false
	default:
		return err
	}

	if direction == DirectionLike {
		if found {
			return ErrAlreadyLiked
		}
		vote := models.Vote{UserID: userID, PostID: postID}
		if err := db.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyLiked
			}
			return err
		}
		return nil
	}

	if !found {
		return ErrLikeNotFound
	}
	return db.Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Vote{}).Error
}

package models

import "time"

// Vote is the (user, post) like relation. Absence of a row means neutral;
// there is no stored "dislike" state.
type Vote struct {
	UserID  uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID  uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	LikedAt time.Time `json:"liked_at" gorm:"autoCreateTime"`
	User    *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Post    *Post     `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

package repositories

import (
	"context"
	"errors"

	"postly/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser registers a new account. Email and username are independent
// uniqueness domains: the email check runs first and each yields its own
// conflict error. A concurrent insert that slips between the checks and the
// write is caught by the unique indexes and surfaced as ErrUserExists.
func CreateUser(ctx context.Context, email, username, password, phoneNumber string) (*models.User, error) {
	db := DB.WithContext(ctx)

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	switch err {
	case nil:
		return nil, ErrEmailTaken
	case gorm.ErrRecordNotFound:
	default:
		return nil, err
	}

	err = db.Where("username = ?", username).First(&existing).Error
	switch err {
	case nil:
		return nil, ErrUsernameTaken
	case gorm.ErrRecordNotFound:
	default:
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:       email,
		Username:    username,
		Password:    string(hashed),
		PhoneNumber: phoneNumber,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	user.Password = ""
	return &user, nil
}

// FindUserByUsername returns the stored record including the password hash;
// login needs it for the bcrypt comparison.
func FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch err {
	case nil:
		return &user, nil
	case gorm.ErrRecordNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := DB.WithContext(ctx).First(&user, id).Error
	switch err {
	case nil:
		return &user, nil
	case gorm.ErrRecordNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

package user

import (
	"io"
	"math"
	"time"
)

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	AvatarURL    *string   `gorm:"type:text"`
	HeightCm     *float64  `gorm:"column:height_cm;type:numeric(5,1)"`
	WeightKg     *float64  `gorm:"column:weight_kg;type:numeric(5,1)"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// BodyFat estimates body fat percentage from BMI. The profile stores neither
// age nor sex, so the adult BMI formula is used without those terms.
func (u User) BodyFat() *float64 {
	if u.HeightCm == nil || u.WeightKg == nil || *u.HeightCm <= 0 {
		return nil
	}
	meters := *u.HeightCm / 100
	bmi := *u.WeightKg / (meters * meters)
	estimate := math.Max(0, 1.2*bmi-5.4)
	rounded := math.Round(estimate*10) / 10
	return &rounded
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput carries height and weight as the numeric strings the
// client submits.
type UpdateProfileInput struct {
	UserID string
	Name   string
	Height string
	Weight string
	Avatar *AvatarUpload
}

type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

type AvatarUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

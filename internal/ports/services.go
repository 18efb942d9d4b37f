package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pruefungsplaner/core/internal/domain/calendar"
	"github.com/pruefungsplaner/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// ExamService interface covering the per-user exam engine: the CRUD
// operations of the store plus the calendar and upcoming projections.
type ExamService interface {
	ListExams(ctx context.Context, userID uuid.UUID) ([]entities.Exam, error)
	CreateExam(ctx context.Context, userID uuid.UUID, req ExamRequest) (*entities.Exam, error)
	UpdateExam(ctx context.Context, userID uuid.UUID, id string, req ExamRequest) (*entities.Exam, error)
	DeleteExam(ctx context.Context, userID uuid.UUID, id string) error
	MonthView(ctx context.Context, userID uuid.UUID, year int, month time.Month, firstWeekday time.Weekday) ([]calendar.DayView, error)
	Upcoming(ctx context.Context, userID uuid.UUID, today entities.ExamDate, windowDays int) ([]entities.Exam, error)
}

// Request/Response Types

// Auth related types
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

// ExamRequest is the draft payload for creating or replacing an exam record.
// The date accepts a plain ISO day or a full timestamp; only the day is kept.
type ExamRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Subject     string `json:"subject" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

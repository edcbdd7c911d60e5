package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/maxempolk/bank-card-interface/internal/domain"
)

var cardNumberPattern = regexp.MustCompile(`^\d{11,16}$`)

// UserUseCase handles card registration and user lookup.
type UserUseCase struct {
	userRepo UserRepository
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// RegisterInput represents input for registering a card.
type RegisterInput struct {
	TelegramUserID string
	CardNumber     string
}

// Register stores or replaces the card number for a Telegram user.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	cardNumber := strings.ReplaceAll(input.CardNumber, " ", "")
	if !cardNumberPattern.MatchString(cardNumber) {
		return nil, domain.ErrInvalidCardNumber
	}

	now := time.Now().UTC()

	user := &domain.User{
		TelegramUserID: input.TelegramUserID,
		CardNumber:     cardNumber,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a registered user by Telegram user ID.
func (uc *UserUseCase) Get(ctx context.Context, telegramUserID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, telegramUserID)
}

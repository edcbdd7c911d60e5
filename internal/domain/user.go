package domain

import "time"

// User links a Telegram identity to a registered card number.
type User struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	TelegramUserID string
	CardNumber     string
}

// AccountNumber derives the upstream account number from the card number
// by dropping the trailing check digit.
func (u *User) AccountNumber() string {
	return AccountNumberFromCard(u.CardNumber)
}

// AccountNumberFromCard derives the account number for a raw card number.
func AccountNumberFromCard(cardNumber string) string {
	if len(cardNumber) == 0 {
		return ""
	}
	return cardNumber[:len(cardNumber)-1]
}

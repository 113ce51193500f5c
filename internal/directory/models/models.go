package models

import id "mandate/pkg/domain"

// Recipient is who a reminder is addressed to.
type Recipient struct {
	UserID      id.UserID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
}

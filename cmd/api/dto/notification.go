package dto

// DismissNotificationRequestDTO identifies the notification to drop.
type DismissNotificationRequestDTO struct {
	ID string `json:"id" binding:"required"`
}

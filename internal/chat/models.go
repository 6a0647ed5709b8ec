package chat

import "time"

const (
	SenderUser = "user"
	SenderIdol = "idol"
)

// Message is one side of a conversation turn. Rows are append-only:
// there is no update or delete path.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_chat_msg_user_idol,priority:1" json:"-"`
	IdolID    string    `gorm:"type:varchar(64);not null;index:idx_chat_msg_user_idol,priority:2" json:"idol_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Sender    string    `gorm:"type:varchar(8);not null" json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

func (Message) TableName() string { return "chat_messages" }

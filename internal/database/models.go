package database

// Message is one persisted group-chat message. Rows are append-only:
// once assigned, an id is never updated and rows are never deleted.
type Message struct {
	ID          int64  `db:"id"`
	UserID      int64  `db:"user_id"`
	Username    string `db:"username"`
	ChatID      int64  `db:"chat_id"`
	ChatTitle   string `db:"chat_title"`
	MessageText string `db:"message_text"`
	Date        int64  `db:"date"`
	ChatType    string `db:"chat_type"`
}

// ChatLine is the projection used when materializing a conversation:
// the grouping title plus the message text, in store insertion order.
type ChatLine struct {
	ChatTitle   string `db:"chat_title"`
	MessageText string `db:"message_text"`
}

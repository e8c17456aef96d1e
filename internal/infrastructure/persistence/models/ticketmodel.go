package models

// TicketModel is the gorm persistence model for tickets.
type TicketModel struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	Summary        string `gorm:"size:500;not null"`
	Status         string `gorm:"size:32;not null;index"`
	Owner          string `gorm:"size:255"`
	Resolution     string `gorm:"size:64"`
	Component      string `gorm:"size:255;index"`
	Priority       string `gorm:"size:32"`
	Keywords       string `gorm:"size:1000"`
	PeerLink       string `gorm:"size:500"`
	ExpectedPoints *int
	ActualPoints   *int
	Description    string `gorm:"type:text"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:milli"`
}

func (TicketModel) TableName() string {
	return "tickets"
}

// TicketChangeModel journals an attributed ticket change: who saved and the
// comment recorded with the save. This is the feed the ticket-changed
// listener direction consumes.
type TicketChangeModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	TicketID  uint   `gorm:"not null;index"`
	Author    string `gorm:"size:255"`
	Comment   string `gorm:"type:text"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
}

func (TicketChangeModel) TableName() string {
	return "ticket_changes"
}

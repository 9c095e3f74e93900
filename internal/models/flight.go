package models

import "time"

// Flight is the persisted flight record. Status is deliberately not a
// column; it is derived from DepartureTime on every read.
type Flight struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	FlightNumber  string    `gorm:"column:flight_number;uniqueIndex;not null"`
	Destination   string    `gorm:"column:destination;not null"`
	DepartureTime time.Time `gorm:"column:departure_time;not null"`
	Gate          string    `gorm:"column:gate;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

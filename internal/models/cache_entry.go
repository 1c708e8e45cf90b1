package models

import "time"

// CachedEntry is a persisted cache value. Payload holds the JSON encoding of
// a PriceQuote or ExchangeRateSnapshot.
type CachedEntry struct {
	ID        string    `json:"id" gorm:"type:varchar(36);uniqueIndex"`
	Key       string    `json:"key" gorm:"primaryKey;type:varchar(128)"`
	Payload   string    `json:"payload" gorm:"type:text;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CachedEntry) TableName() string { return "cached_prices" }

// RequestCounter counts paid API calls for one calendar month.
type RequestCounter struct {
	Month     int       `json:"month" gorm:"primaryKey;autoIncrement:false"`
	Year      int       `json:"year" gorm:"primaryKey;autoIncrement:false"`
	Count     int64     `json:"count" gorm:"not null;default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RequestCounter) TableName() string { return "request_counters" }

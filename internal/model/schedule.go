package model

import "time"

// SportID identifies a sport in the catalog
type SportID int64

// SessionID identifies a scheduled sports session (the domain event,
// not an authentication session)
type SessionID int64

// Sport is a catalog entry created by an admin
type Sport struct {
	ID        SportID
	Name      string
	CreatedAt time.Time
}

// Session is a scheduled sporting event
type Session struct {
	ID                SessionID
	SportID           SportID
	CreatorID         UserID
	Team1             string
	Team2             string
	AdditionalPlayers string
	Date              time.Time
	Venue             string
	CreatedAt         time.Time
}

// SessionDetail is a session joined with its sport name and creator name,
// as listed on the dashboards
type SessionDetail struct {
	Session
	SportName   string
	CreatorName string
}

// SportPopularity is one row of the per-sport session count aggregate
type SportPopularity struct {
	SportName    string
	SessionCount int
}

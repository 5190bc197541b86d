package models

import "time"

type Session struct {
	ID            string    `bson:"_id" json:"id"`
	UserName      string    `bson:"userName" json:"userName"`
	Token         string    `bson:"token" json:"-"` // never expose
	Authenticated bool      `bson:"isAuthenticated" json:"isAuthenticated"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	ExpiresAt     time.Time `bson:"expiresAt" json:"expiresAt"`
}

func (s *Session) Active(now time.Time) bool {
	return s != nil && s.Authenticated && now.Before(s.ExpiresAt)
}

package domain

import "time"

// Link represents a shortened URL.
//
// ShortCode is always generated and globally unique. CustomAlias is
// user-chosen, optional, and unique across both the alias and short-code
// namespaces: no alias may equal another link's short code and vice versa.
type Link struct {
	ID          int64     `json:"id"`
	OwnerID     *int64    `json:"owner_id,omitempty"`
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	CustomAlias string    `json:"custom_alias,omitempty"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
}

// Code returns the effective resolution code: the custom alias when one was
// chosen, otherwise the generated short code.
func (l *Link) Code() string {
	if l.CustomAlias != "" {
		return l.CustomAlias
	}
	return l.ShortCode
}

// OwnedBy reports whether the link belongs to the given user.
func (l *Link) OwnedBy(userID int64) bool {
	return l.OwnerID != nil && *l.OwnerID == userID
}

// Package modellink provides locally used types and their structure for link handling between modules.
package modellink

import (
	"regexp"
	"time"
)

var shortRe = regexp.MustCompile("^[0-9a-zA-Z]+$")

// Link mirrors a shortened URL as served by the backend.
type Link struct {
	Short   string    `json:"Short"`
	Long    string    `json:"Long"`
	Created time.Time `json:"Created"`
	Clicks  int       `json:"Clicks"`
}

// Statistics mirrors the click statistics of one link as served by the backend.
// Hour keys are formatted as YYYYMMDDHH or YYYYMMDDHHMM.
type Statistics struct {
	Short       string         `json:"Short"`
	Clicks      int            `json:"Clicks"`
	LastUpdated time.Time      `json:"LastUpdated"`
	Referrers   map[string]int `json:"Referrers"`
	Browsers    map[string]int `json:"Browsers"`
	Countries   map[string]int `json:"Countries"`
	Platforms   map[string]int `json:"Platforms"`
	Hours       map[string]int `json:"Hours"`
}

// User is the identity the backend reports for the current credentials.
type User struct {
	Email     string `json:"Email"`
	Nickname  string `json:"Nickname"`
	Admin     bool   `json:"Admin"`
	LogoutURL string `json:"LogoutURL"`
}

// Name returns the most readable identifier of the user.
func (u *User) Name() string {
	if u == nil {
		return ""
	}
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Email
}

// ValidShort reports whether s is a well-formed short code.
func ValidShort(s string) bool {
	return shortRe.MatchString(s)
}

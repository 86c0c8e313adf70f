package types

import (
	"encoding/json"
	"time"
)

type UserResponse struct {
	ID       uint   `json:"id"`
	PublicID string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
	Frame    string `json:"frame"`
	Credits  int64  `json:"credits"`
	Level    int    `json:"level"`
}

// UserSummary is the reduced shape used in relationship lists and search
// results.
type UserSummary struct {
	PublicID string `json:"userId"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Level    int    `json:"level"`
	Credits  int64  `json:"credits"`
}

type MainProfileResponse struct {
	User        UserResponse    `json:"user"`
	Country     string          `json:"country"`
	Gender      string          `json:"gender"`
	Age         int             `json:"age"`
	Charisma    int64           `json:"charisma"`
	Level       int             `json:"level"`
	GroupName   string          `json:"groupName"`
	VipLevel    int             `json:"vipLevel"`
	ProExpires  *time.Time      `json:"proExpiresAt"`
	ChargeLevel json.RawMessage `json:"chargeLevel"`
	Info        json.RawMessage `json:"info"`
	Gifts       json.RawMessage `json:"gifts"`
	Badges      json.RawMessage `json:"badges"`
	CurrentRoom string          `json:"currentRoom"`
}

package models

import "time"

type User struct {
	UserID       string    `json:"userid" bson:"userid"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name,omitempty" bson:"name,omitempty"`
	Password     string    `json:"-" bson:"password"`
	PasswordHash string    `json:"-" bson:"password_hash"`

	// RolePreset is a display/bulk-assignment label only. Authorization
	// always evaluates Permissions, never this tag.
	RolePreset  string   `json:"rolePreset,omitempty" bson:"role_preset,omitempty"`
	Permissions []string `json:"permissions" bson:"permissions"`

	// Scoping context for non-universal actors.
	ClubID    string   `json:"clubId,omitempty" bson:"club_id,omitempty"`
	TeamIDs   []string `json:"teamIds,omitempty" bson:"team_ids,omitempty"`
	PlayerIDs []string `json:"playerIds,omitempty" bson:"player_ids,omitempty"`

	IsActive      bool      `json:"isActive" bson:"is_active"`
	AuthProvider  string    `json:"authProvider,omitempty" bson:"auth_provider,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	CreatedBy     string    `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	RefreshToken  string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refreshexp,omitempty"`
}

// PendingUser is a user document created by an admin before the matching
// identity-provider account exists.
type PendingUser struct {
	PendingID    string    `json:"pendingId" bson:"pending_id"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	RolePreset   string    `json:"rolePreset" bson:"role_preset"`
	Permissions  []string  `json:"permissions" bson:"permissions"`
	ClubID       string    `json:"clubId,omitempty" bson:"club_id,omitempty"`
	AuthProvider string    `json:"authProvider" bson:"auth_provider"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	CreatedBy    string    `json:"createdBy" bson:"created_by"`
}

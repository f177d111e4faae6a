package models

import "time"

type Club struct {
	ClubID       string    `json:"clubId" bson:"club_id"`
	Name         string    `json:"name" bson:"name"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty" bson:"contact_email,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty" bson:"contact_phone,omitempty"`
	IsActive     bool      `json:"isActive" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	DeletedAt    time.Time `json:"-" bson:"deleted_at,omitempty"`
}

type Team struct {
	TeamID        string    `json:"teamId" bson:"team_id"`
	Name          string    `json:"name" bson:"name"`
	ClubID        string    `json:"clubId" bson:"club_id"`
	CoordinatorID string    `json:"coordinatorId,omitempty" bson:"coordinator_id,omitempty"`
	TrainerIDs    []string  `json:"trainerIds,omitempty" bson:"trainer_ids,omitempty"`
	AgeGroup      string    `json:"ageGroup,omitempty" bson:"age_group,omitempty"` // e.g. "U12", "Senior"
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	IsActive      bool      `json:"isActive" bson:"is_active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	CreatedBy     string    `json:"createdBy,omitempty" bson:"created_by,omitempty"`
}

type Player struct {
	PlayerID  string    `json:"playerId" bson:"player_id"`
	Name      string    `json:"name" bson:"name"`
	ClubID    string    `json:"clubId" bson:"club_id"`
	TeamID    string    `json:"teamId,omitempty" bson:"team_id,omitempty"`
	BirthYear int       `json:"birthYear,omitempty" bson:"birth_year,omitempty"`
	ParentIDs []string  `json:"parentIds,omitempty" bson:"parent_ids,omitempty"`
	IsActive  bool      `json:"isActive" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	CreatedBy string    `json:"createdBy,omitempty" bson:"created_by,omitempty"`
}

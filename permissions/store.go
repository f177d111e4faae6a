package permissions

import (
	"context"
	"time"

	"pitchbook/db"
	"pitchbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Storage-backed operations. Actor capabilities and context are re-read on
// every call so grants and revokes made by another actor are visible on
// the next request.

func loadUser(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserPermissions fetches the actor's resolved capability set.
func GetUserPermissions(ctx context.Context, userID string) ([]string, error) {
	u, err := loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Permissions, nil
}

// GetUserContext fetches the actor's scoping context.
func GetUserContext(ctx context.Context, userID string) (Context, error) {
	u, err := loadUser(ctx, userID)
	if err != nil {
		return Context{}, err
	}
	return Context{ClubID: u.ClubID, TeamIDs: u.TeamIDs, PlayerIDs: u.PlayerIDs}, nil
}

// loadTarget applies the uniform masking policy: a non-universal actor
// asking about a user it could not reach gets a scope denial whether or
// not the document exists.
func loadTarget(ctx context.Context, actorPerms []string, actorCtx Context, targetID string) (*models.User, error) {
	target, err := loadUser(ctx, targetID)
	if err == ErrNotFound && !IsUniversal(actorPerms) {
		return nil, DeniedScope("club")
	}
	if err != nil {
		return nil, err
	}
	if !IsUniversal(actorPerms) && target.ClubID != actorCtx.ClubID {
		return nil, DeniedScope("club")
	}
	return target, nil
}

// Grant adds capabilities to the target's set. Union semantics: granting
// an already-held capability is a no-op.
func Grant(ctx context.Context, actorID, targetID string, toGrant []string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	actor, err := loadUser(ctx, actorID)
	if err != nil {
		return err
	}
	actorCtx := Context{ClubID: actor.ClubID, TeamIDs: actor.TeamIDs, PlayerIDs: actor.PlayerIDs}

	target, err := loadTarget(ctx, actor.Permissions, actorCtx, targetID)
	if err != nil {
		return err
	}
	if err := CheckGrant(actor.Permissions, actorCtx, target.ClubID, toGrant); err != nil {
		return err
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": targetID},
		bson.M{
			"$addToSet": bson.M{"permissions": bson.M{"$each": toGrant}},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

// Revoke removes capabilities from the target's set. Set-difference
// semantics: revoking an absent capability is a no-op.
func Revoke(ctx context.Context, actorID, targetID string, toRevoke []string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	actor, err := loadUser(ctx, actorID)
	if err != nil {
		return err
	}
	actorCtx := Context{ClubID: actor.ClubID, TeamIDs: actor.TeamIDs, PlayerIDs: actor.PlayerIDs}

	target, err := loadTarget(ctx, actor.Permissions, actorCtx, targetID)
	if err != nil {
		return err
	}
	if err := CheckRevoke(actor.Permissions, actorCtx, target.ClubID); err != nil {
		return err
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": targetID},
		bson.M{
			"$pullAll": bson.M{"permissions": toRevoke},
			"$set":     bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

// SetRolePreset replaces the target's entire capability set with the
// preset's fixed list. Previously granted extras are dropped, not
// merged.
func SetRolePreset(ctx context.Context, actorID, targetID, preset string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	actor, err := loadUser(ctx, actorID)
	if err != nil {
		return err
	}
	actorCtx := Context{ClubID: actor.ClubID, TeamIDs: actor.TeamIDs, PlayerIDs: actor.PlayerIDs}

	target, err := loadTarget(ctx, actor.Permissions, actorCtx, targetID)
	if err != nil {
		return err
	}
	if err := CheckSetRolePreset(actor.Permissions, actorCtx, target.ClubID, preset); err != nil {
		return err
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": targetID},
		bson.M{"$set": bson.M{
			"role_preset": preset,
			"permissions": RolePresets[preset],
			"updated_at":  time.Now(),
		}},
	)
	return err
}

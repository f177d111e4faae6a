package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pitchbook/db"
	"pitchbook/globals"
	"pitchbook/middleware"
	"pitchbook/models"
	"pitchbook/permissions"
	"pitchbook/rdx"
	"pitchbook/users"
	"pitchbook/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour
	accessTokenTTL  = 15 * time.Minute
)

func generateAccessToken(u *models.User) (string, error) {
	claims := &middleware.Claims{
		Username: u.Username,
		UserID:   u.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register handles POST /api/auth/register. New accounts start inactive
// with the trainer preset; an administrator activates them and adjusts
// capabilities afterwards.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if input.Username == "" || input.Password == "" || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := db.UserCollection.FindOne(ctx, bson.M{"username": input.Username}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "user already exists")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	u := models.User{
		UserID:       "u-" + uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		RolePreset:   "trainer",
		Permissions:  permissions.RolePresets["trainer"],
		IsActive:     false,
		AuthProvider: "local",
		CreatedAt:    time.Now(),
	}
	// A pre-provisioned account activates immediately with whatever an
	// administrator set up for this email.
	if pending, err := users.AdoptPending(ctx, input.Email); err == nil && pending != nil {
		u.RolePreset = pending.RolePreset
		u.Permissions = pending.Permissions
		u.ClubID = pending.ClubID
		u.IsActive = true
		u.CreatedBy = pending.CreatedBy
	}
	if _, err := db.UserCollection.InsertOne(ctx, u); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	utils.SendResponse(w, http.StatusCreated, map[string]string{"userid": u.UserID},
		"Registered; awaiting activation", nil)
}

// Login handles POST /api/auth/login.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var stored models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"username": input.Username}).Decode(&stored); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if !stored.IsActive {
		utils.RespondWithError(w, http.StatusForbidden, "account not yet activated")
		return
	}

	tokenString, err := generateAccessToken(&stored)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate refresh token")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": stored.UserID},
		bson.M{"$set": bson.M{
			"refreshtoken": hashToken(refreshToken),
			"refreshexp":   time.Now().Add(refreshTokenTTL),
			"last_login":     time.Now(),
		}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to store refresh token")
		return
	}

	if err := rdx.RdxHset("tokki", stored.UserID, tokenString); err != nil {
		log.Printf("redis token storage failed: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userid":       stored.UserID,
	}, "Login successful", nil)
}

// RefreshToken handles POST /api/auth/refresh: trades a valid refresh
// token for a new access/refresh pair (rotation).
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		UserID       string `json:"userid"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.UserID == "" || input.RefreshToken == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var stored models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": input.UserID}).Decode(&stored); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	if stored.RefreshToken != hashToken(input.RefreshToken) || time.Now().After(stored.RefreshExpiry) {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	if !stored.IsActive {
		utils.RespondWithError(w, http.StatusForbidden, "account deactivated")
		return
	}

	tokenString, err := generateAccessToken(&stored)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	newRefresh, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate refresh token")
		return
	}
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": stored.UserID},
		bson.M{"$set": bson.M{
			"refreshtoken": hashToken(newRefresh),
			"refreshexp":   time.Now().Add(refreshTokenTTL),
		}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to rotate refresh token")
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":        tokenString,
		"refreshToken": newRefresh,
	}, "Token refreshed", nil)
}

// Logout handles POST /api/auth/logout: clears the stored refresh token
// and drops the cached session entry.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.ActorID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$unset": bson.M{"refreshtoken": "", "refreshexp": ""}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	if err := rdx.RdxHdel("tokki", userID); err != nil {
		log.Printf("redis token removal failed: %v", err)
	}
	utils.SendResponse(w, http.StatusOK, map[string]bool{"success": true}, "Logged out", nil)
}

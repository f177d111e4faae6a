package fields

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"pitchbook/db"
	"pitchbook/permissions"
	"pitchbook/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const fieldPhotoDir = "./static/fieldpic"

// UploadFieldPhoto handles POST /api/fields/:id/photo (multipart form,
// key "photo"). Saves the original and a 300px-wide thumbnail.
func UploadFieldPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	f, err := loadField(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "fields.write",
		permissions.ResourceContext{ClubID: f.ClubID}) {
		permissions.WriteError(w, permissions.Denied("fields.write"))
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "photo is required")
		return
	}
	defer file.Close()
	if !utils.ValidateImageFileType(w, header) {
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "unreadable image")
		return
	}
	if err := utils.EnsureDir(fieldPhotoDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	photoPath := filepath.Join(fieldPhotoDir, fmt.Sprintf("%s.jpg", f.FieldID))
	thumbPath := filepath.Join(fieldPhotoDir, fmt.Sprintf("%s-thumb.jpg", f.FieldID))
	if err := imaging.Save(img, photoPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save thumbnail")
		return
	}

	update := bson.M{"$set": bson.M{"photo": photoPath, "thumb": thumbPath}}
	if _, err := db.FieldsCollection.UpdateOne(ctx, bson.M{"field_id": f.FieldID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update field")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"photo": photoPath, "thumb": thumbPath})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/config"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetUsers(w http.ResponseWriter, r *http.Request) {
	encoder := json.NewEncoder(w)

	idParam := r.URL.Query().Get("id")
	if idParam != "" {
		id, err := strconv.Atoi(idParam)
		if err != nil || id <= 0 {

			w.WriteHeader(http.StatusBadRequest)
			encoder.Encode(gin.H{"Status": "invalid ID"})
			return
		}

		var user models.User
		result := config.DB.First(&user, id)
		if result.Error != nil {

			w.WriteHeader(http.StatusNotFound)
			encoder.Encode(gin.H{"Status": "User not found"})
			return
		}

		w.WriteHeader(http.StatusOK)
		encoder.Encode(gin.H{
			"User": user,
		})

	} else {
		var users []models.User
		result := config.DB.Find(&users)

		if result.Error != nil {
			encoder.Encode(gin.H{"Message": "Failed to retrieve users"})
			return
		}

		encoder.Encode(gin.H{"Users": users})

	}
}

func Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	decoder := json.NewDecoder(r.Body)
	encoder := json.NewEncoder(w)

	if err := decoder.Decode(&body); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if body.Name == "" || body.Password == "" {
		http.Error(w, "Invalid User", http.StatusBadRequest)
		return
	}

	access, refresh, user, err := Svcs.Auth.Login(body.Name, body.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	encoder.Encode(map[string]interface{}{
		"Status":       "Login successful",
		"Token":        access,
		"RefreshToken": refresh,
		"User":         user,
	})
}

func CreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	decoder := json.NewDecoder(r.Body)
	encoder := json.NewEncoder(w)

	if err := decoder.Decode(&body); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if body.Name == "" || body.Password == "" {
		http.Error(w, "Invalid User", http.StatusBadRequest)
		return
	}

	access, refresh, user, err := Svcs.Auth.Register(body.Name, body.Password)
	if err != nil {
		http.Error(w, "Error creating user: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	encoder.Encode(map[string]interface{}{
		"Status":       "User created successfully",
		"User":         user,
		"Token":        access,
		"RefreshToken": refresh,
	})
}

// RefreshTokens exchanges a valid refresh token for a new pair. The old access
// token may already be expired; only the refresh token is checked.
func RefreshTokens(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	decoder := json.NewDecoder(r.Body)
	encoder := json.NewEncoder(w)

	if err := decoder.Decode(&body); err != nil || body.RefreshToken == "" {
		http.Error(w, "Missing refresh token", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	claims, err := utils.ValidateJWTToken(body.RefreshToken)
	if err != nil {
		http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	userIDFloat, ok := claims["userID"].(float64)
	if !ok {
		http.Error(w, "Invalid token claims", http.StatusUnauthorized)
		return
	}
	username, _ := claims["username"].(string)

	access, err := utils.GenerateJWTToken(uint(userIDFloat), username)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}
	refresh, err := utils.GenerateRefreshToken(uint(userIDFloat), username)
	if err != nil {
		http.Error(w, "Error generating refresh token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	encoder.Encode(map[string]interface{}{
		"AccessToken":  access,
		"RefreshToken": refresh,
	})
}

func LogOut(w http.ResponseWriter, r *http.Request) {
	// Token storage lives on the client; the server just drops any cached claims.
	authHeader := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(authHeader, "Bearer "); found {
		utils.AuthCache.Delete(token)
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"Status": "Logged out succcessfully",
	})
}

func UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(uint)

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
		} else {
			http.Error(w, "Error updating user", http.StatusInternalServerError)
		}
		return
	}

	var userUpdate models.User
	decoder := json.NewDecoder(r.Body)
	encoder := json.NewEncoder(w)

	if err := decoder.Decode(&userUpdate); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if userUpdate.Name == "" || userUpdate.Password == "" {
		http.Error(w, "Missing attributes", http.StatusBadRequest)
		return
	}
	user.Name = userUpdate.Name

	hashedPassword, err := utils.HashPassword(userUpdate.Password)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	user.Password = hashedPassword

	config.DB.Save(&user)

	encoder.Encode(map[string]interface{}{
		"Status": "User Updated successfully",
		"User":   user,
	})
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/models"
	"github.com/petpalid/petcare-app/utils"
)

type PetController struct {
	DB *gorm.DB
}

func NewPetController(db *gorm.DB) *PetController {
	return &PetController{DB: db}
}

// GetMyPets -> daftar pet milik user yang login
func (pc *PetController) GetMyPets(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var pets []models.Pet
	if err := pc.DB.Where("owner_id = ?", userID).Find(&pets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My pets", pets)
}

// CreatePet -> daftarkan pet baru
func (pc *PetController) CreatePet(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		Name      string `json:"name" binding:"required"`
		Species   string `json:"species" binding:"required"`
		Breed     string `json:"breed"`
		AgeMonths int    `json:"age_months"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pet := models.Pet{
		OwnerID:   userID,
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		AgeMonths: req.AgeMonths,
	}
	if err := pc.DB.Create(&pet).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Pet registered", pet)
}

// UpdatePet -> hanya pemilik yang boleh mengubah
func (pc *PetController) UpdatePet(c *gin.Context) {
	userID, _, _ := currentUser(c)
	id, _ := strconv.Atoi(c.Param("pet_id"))

	var pet models.Pet
	if err := pc.DB.First(&pet, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if pet.OwnerID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		Name      *string `json:"name"`
		Breed     *string `json:"breed"`
		AgeMonths *int    `json:"age_months"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		pet.Name = *req.Name
	}
	if req.Breed != nil {
		pet.Breed = *req.Breed
	}
	if req.AgeMonths != nil {
		pet.AgeMonths = *req.AgeMonths
	}

	if err := pc.DB.Save(&pet).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Pet updated", pet)
}

// DeletePet -> hanya pemilik
func (pc *PetController) DeletePet(c *gin.Context) {
	userID, _, _ := currentUser(c)
	id, _ := strconv.Atoi(c.Param("pet_id"))

	var pet models.Pet
	if err := pc.DB.First(&pet, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if pet.OwnerID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if err := pc.DB.Delete(&pet).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Pet deleted", gin.H{"pet_id": id})
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/services"
	"github.com/petpalid/petcare-app/utils"
)

type CoinController struct {
	DB    *gorm.DB
	Coins *services.CoinService
}

func NewCoinController(db *gorm.DB, coins *services.CoinService) *CoinController {
	return &CoinController{DB: db, Coins: coins}
}

// GetBalance -> saldo koin user yang login
func (cc *CoinController) GetBalance(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	balance, err := cc.Coins.Balance(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Coin balance", gin.H{
		"balance":   balance,
		"formatted": utils.FormatRupiah(balance),
	})
}

// GetHistory -> riwayat mutasi koin user yang login
func (cc *CoinController) GetHistory(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	entries, err := cc.Coins.Entries(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Coin history", entries)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruiterpro/internal/models"
)

const walletHistoryLimit = 50

func (s *Server) handleWallet(c *gin.Context) {
	userID := currentUserID(c)

	balance, err := s.wallet.Balance(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	transactions, err := s.wallet.Transactions(c.Request.Context(), userID, walletHistoryLimit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{
		"balance":      balance,
		"transactions": transactions,
	})
}

package handlers

import (
	"errors"

	"github.com/ecosortapp/ecosort/internal/services"
	"github.com/ecosortapp/ecosort/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GamificationHandler handles points, level and leaderboard routes
type GamificationHandler struct {
	DB *gorm.DB
}

// GetPoints handles GET /api/points
// @Summary Get own points and level
// @Description Get the authenticated user's cumulative points and derived level
// @Tags Gamification
// @Produce json
// @Success 200 {object} services.AwardResult
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /points [get]
func (h *GamificationHandler) GetPoints(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	standing, err := services.GetUserPoints(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "gamification.points")
	}

	return utils.SuccessResponse(c, standing, fiber.StatusOK)
}

// GetTransactions handles GET /api/points/transactions
// @Summary Get own point transactions
// @Description List the authenticated user's point award history, newest first
// @Tags Gamification
// @Produce json
// @Param limit query int false "Maximum rows to return" default(50)
// @Success 200 {array} models.PointTransaction
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /points/transactions [get]
func (h *GamificationHandler) GetTransactions(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", 50)
	txs, err := services.GetPointTransactions(h.DB, userID, limit)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "gamification.transactions")
	}

	return utils.SuccessResponse(c, txs, fiber.StatusOK)
}

// GetLeaderboard handles GET /api/leaderboard
// @Summary Get the leaderboard
// @Description Top users by points, descending
// @Tags Gamification
// @Produce json
// @Success 200 {array} services.LeaderboardEntry
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leaderboard [get]
func (h *GamificationHandler) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := services.Leaderboard(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "gamification.leaderboard")
	}

	return utils.SuccessResponse(c, entries, fiber.StatusOK)
}

type verifyImplementationInput struct {
	UserID      string `json:"user_id"`
	ReferenceID string `json:"reference_id"`
}

// VerifyImplementation handles POST /api/admin/verify
// @Summary Award verified implementation points
// @Description Admin confirmation that a user implemented a suggested improvement
// @Tags Gamification
// @Accept json
// @Produce json
// @Param body body verifyImplementationInput true "Verification"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/verify [post]
func (h *GamificationHandler) VerifyImplementation(c *fiber.Ctx) error {
	var input verifyImplementationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "gamification.verify.body")
	}
	if input.UserID == "" {
		return utils.ErrorResponse(c, "user_id is required", fiber.StatusBadRequest, "gamification.verify.user")
	}

	result, err := services.AwardPoints(h.DB, input.UserID, services.ActionVerifiedImplementation, input.ReferenceID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownAction) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "gamification.verify.action")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "gamification.verify")
	}

	return utils.MutationSuccessResponse(c, result)
}

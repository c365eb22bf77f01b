package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/e3lany/e3lany_api/internal/service"
	"github.com/e3lany/e3lany_api/internal/utils"
)

// UserHandler handles the authenticated profile endpoints. Responses use the
// Arabic messages the web client displays verbatim.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile handles GET /user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		utils.Error(c, 401, "غير مصرح لك بالوصول")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.Error(c, 404, "المستخدم غير موجود")
			return
		}
		log.Error().Err(err).Msg("Failed to fetch user profile")
		utils.Error(c, 500, "حدث خطأ في الخادم")
		return
	}
	c.JSON(200, gin.H{"user": user})
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// UpdateProfile handles PATCH /user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		utils.Error(c, 401, "غير مصرح لك بالوصول")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "الاسم مطلوب")
		return
	}

	user, err := h.userService.UpdateName(c.Request.Context(), email, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNameRequired):
			utils.Error(c, 400, "الاسم مطلوب")
		case errors.Is(err, utils.ErrNameTooShort):
			utils.Error(c, 400, "الاسم يجب أن يحتوي على حرفين على الأقل")
		case errors.Is(err, utils.ErrNameTooLong):
			utils.Error(c, 400, "الاسم لا يجب أن يزيد عن 50 حرف")
		case errors.Is(err, utils.ErrUserNotFound):
			utils.Error(c, 404, "المستخدم غير موجود")
		default:
			log.Error().Err(err).Msg("Failed to update user profile")
			utils.Error(c, 500, "حدث خطأ في الخادم")
		}
		return
	}

	c.JSON(200, gin.H{
		"message": "تم تحديث الملف الشخصي بنجاح",
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"updatedAt": user.UpdatedAt,
		},
	})
}

package api

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"finance-guru/config"
	"finance-guru/database"
	"finance-guru/middleware"
	"finance-guru/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg    *config.Config
	alerts Alerts
	mailer Mailer
	now    func() time.Time
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config, alerts Alerts, mailer Mailer) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		alerts: alerts,
		mailer: mailer,
		now:    time.Now,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username       string  `json:"username" binding:"required,min=3,max=50" example:"saver"`
	Email          string  `json:"email" binding:"required,email" example:"saver@example.com"`
	Password       string  `json:"password" binding:"required,min=6,max=50" example:"password123"`
	InitialBalance float64 `json:"initial_balance" binding:"gte=0" example:"5000"`
}

// LoginRequest 登录请求（支持用户名或邮箱）
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"saver"` // 可为用户名或邮箱
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户账号，initial_balance 作为余额计算的起点
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} Response{data=models.User} "注册成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// 检查用户名或邮箱是否已存在
	var existing models.User
	err := database.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		if existing.Username == req.Username {
			BadRequest(c, "用户名已存在")
		} else {
			BadRequest(c, "邮箱已被注册")
		}
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c, err, "注册失败")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		Password:       string(hashedPassword),
		InitialBalance: decimal.NewFromFloat(req.InitialBalance).Round(2),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		serverError(c, err, "创建用户失败")
		return
	}

	ctx := c.Request.Context()
	h.alerts.Announce(ctx, user.ID,
		fmt.Sprintf("Welcome to Finance Guru, %s! Start by adding your first transaction.", user.Username),
		models.SeverityInfo)
	if user.InitialBalance.IsPositive() {
		h.alerts.Announce(ctx, user.ID,
			fmt.Sprintf("Your initial balance of %s has been set.", rupees(user.InitialBalance)),
			models.SeverityInfo)
	}

	SuccessWithMessage(c, "注册成功", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名或邮箱登录获取 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "用户名或密码错误"
// @Failure 429 {object} Response "登录尝试过于频繁"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	login := strings.TrimSpace(req.Username)
	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", login, strings.ToLower(login)).First(&user).Error; err != nil {
		Unauthorized(c, "用户名或密码错误")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "用户名或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	Success(c, LoginResponse{
		Token:    token,
		UserInfo: user,
	})
}

// GetProfile 获取用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	Success(c, user)
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Phone    string `json:"phone" binding:"max=20" example:"+91 98765 43210"`
	JobTitle string `json:"job_title" binding:"max=100" example:"Engineer"`
	Bio      string `json:"bio" binding:"max=1000" example:"Saving for a house"`
}

// UpdateProfile 更新用户资料
// @Summary 更新当前用户资料
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "资料"
// @Success 200 {object} Response{data=models.User} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	user.Phone = strings.TrimSpace(req.Phone)
	user.JobTitle = strings.TrimSpace(req.JobTitle)
	user.Bio = strings.TrimSpace(req.Bio)
	// map 更新允许把字段清空
	updates := map[string]interface{}{
		"phone":     user.Phone,
		"job_title": user.JobTitle,
		"bio":       user.Bio,
	}
	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		serverError(c, err, "更新资料失败")
		return
	}

	SuccessWithMessage(c, "资料已更新", user)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"oldpassword123"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50" example:"newpassword123"`
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "密码信息"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "原密码错误"
// @Router /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		Unauthorized(c, "原密码错误")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	if err := database.DB.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		InternalError(c, "更新密码失败")
		return
	}

	SuccessWithMessage(c, "密码修改成功", nil)
}

// DeleteAccountRequest 注销账号请求
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required" example:"password123"`
}

// DeleteAccount 注销账号，级联删除该用户的全部数据
// @Summary 注销账号
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteAccountRequest true "当前密码"
// @Success 200 {object} Response "账号已删除"
// @Failure 401 {object} Response "密码错误"
// @Router /api/v1/auth/account [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "密码错误")
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		serverError(c, err, "删除账号失败")
		return
	}

	SuccessWithMessage(c, "账号已删除", nil)
}

// ForgotPasswordRequest 忘记密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"saver@example.com"`
}

// ForgotPassword 发送密码重置邮件
// @Summary 忘记密码
// @Description 向注册邮箱发送重置链接，链接 30 分钟内有效。邮箱未注册时同样返回成功
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "注册邮箱"
// @Success 200 {object} Response "邮件已发送"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 503 {object} Response "邮件服务未启用"
// @Router /api/v1/auth/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请输入有效的邮箱地址")
		return
	}
	if !h.mailer.Enabled() {
		ServiceUnavailable(c, "邮件服务未启用，请联系管理员")
		return
	}

	const done = "如果该邮箱已注册，您将收到密码重置邮件"
	now := h.now()

	// 清理过期或已使用的令牌
	if err := database.DB.Where("expires_at < ? OR used = ?", now, true).Delete(&models.PasswordReset{}).Error; err != nil {
		serverError(c, err, "处理失败")
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		SuccessWithMessage(c, done, nil)
		return
	}

	reset, err := models.NewPasswordReset(&user, now)
	if err != nil {
		InternalError(c, "生成重置令牌失败")
		return
	}
	if err := database.DB.Create(reset).Error; err != nil {
		serverError(c, err, "创建重置令牌失败")
		return
	}

	if err := h.mailer.SendPasswordResetEmail(user.Email, user.Username, h.resetLink(reset.Token)); err != nil {
		database.DB.Delete(reset)
		serverError(c, err, "邮件发送失败")
		return
	}

	SuccessWithMessage(c, done, nil)
}

func (h *AuthHandler) resetLink(token string) string {
	base := strings.TrimRight(h.cfg.Server.BaseURL, "/")
	return base + "/reset-password?token=" + url.QueryEscape(token)
}

// VerifyResetToken 校验重置令牌
// @Summary 校验密码重置令牌
// @Tags 认证
// @Produce json
// @Param token query string true "重置令牌"
// @Success 200 {object} Response "令牌有效"
// @Failure 400 {object} Response "令牌无效或已过期"
// @Router /api/v1/auth/password/verify [get]
func (h *AuthHandler) VerifyResetToken(c *gin.Context) {
	if _, ok := h.findValidReset(c, c.Query("token")); !ok {
		return
	}
	SuccessWithMessage(c, "令牌有效", nil)
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required" example:"3f2a..."`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50" example:"newpassword123"`
}

// ResetPassword 使用令牌重置密码
// @Summary 重置密码
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "令牌与新密码"
// @Success 200 {object} Response "密码重置成功"
// @Failure 400 {object} Response "令牌无效或已过期"
// @Router /api/v1/auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	reset, ok := h.findValidReset(c, req.Token)
	if !ok {
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).Update("password", string(hashedPassword)).Error; err != nil {
			return err
		}
		// 该用户的全部令牌一并失效
		return tx.Model(&models.PasswordReset{}).Where("user_id = ?", reset.UserID).Update("used", true).Error
	})
	if err != nil {
		serverError(c, err, "重置密码失败")
		return
	}

	SuccessWithMessage(c, "密码重置成功，请使用新密码登录", nil)
}

// findValidReset 查找未使用且未过期的令牌，失败时已写入响应
func (h *AuthHandler) findValidReset(c *gin.Context, token string) (*models.PasswordReset, bool) {
	if token == "" {
		BadRequest(c, "缺少重置令牌")
		return nil, false
	}
	var reset models.PasswordReset
	if err := database.DB.Where("token = ?", token).First(&reset).Error; err != nil {
		BadRequest(c, "重置链接无效")
		return nil, false
	}
	switch err := reset.Check(h.now()); {
	case errors.Is(err, models.ErrResetUsed):
		BadRequest(c, "重置链接已被使用")
		return nil, false
	case errors.Is(err, models.ErrResetExpired):
		BadRequest(c, "重置链接已过期，请重新申请")
		return nil, false
	}
	return &reset, true
}

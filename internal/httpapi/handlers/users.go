package handlers

import (
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/idolchat/idolchat/internal/auth"
	"github.com/idolchat/idolchat/internal/billing"
	"github.com/idolchat/idolchat/internal/common"
	"github.com/idolchat/idolchat/internal/email"
	"github.com/idolchat/idolchat/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	captchaTTL   = 10 * time.Minute
	resetCodeTTL = 15 * time.Minute
	tokenTTL     = 24 * time.Hour
)

// generate an 11 digit random username
func randomUsername11() (string, error) {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	out := make([]byte, 11)
	for i := 0; i < 11; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		out[i] = letters[n.Int64()]
	}
	return string(out), nil
}

func randomCode6() (string, error) {
	const digits = "0123456789"
	out := make([]byte, 6)
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		out[i] = digits[n.Int64()]
	}
	return string(out), nil
}

type sendCaptchaReq struct {
	Email string `json:"email" binding:"required"`
}

func (h *Handler) SendCaptcha(c *gin.Context) {
	var req sendCaptchaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	code, err := randomCode6()
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20004, "failed to generate code")
		return
	}
	if err := h.Redis.SetCaptcha(c.Request.Context(), req.Email, code, captchaTTL); err != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "redis error")
		return
	}

	go func(to, code string) {
		subject := "IdolChat — seu código de verificação"
		body := "Olá,\n\nSeu código de verificação é: " + code + "\n\nEle expira em 10 minutos.\n\nIdolChat\n"
		if err := email.SendText(h.SMTPSetting, to, subject, body); err != nil {
			log.Printf("[SendCaptcha] mail failed to=%s err=%v", to, err)
		}
	}(req.Email, code)

	common.OK(c, gin.H{"sent": true})
}

type createUserReq struct {
	Email       string `json:"email"`
	Captcha     string `json:"captcha"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" || req.Captcha == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "email, captcha and password required")
		return
	}

	code, err := h.Redis.GetCaptcha(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			common.Fail(c, http.StatusBadRequest, 10020, "captcha expired or not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 20001, "redis error")
		return
	}
	if code != req.Captcha {
		common.Fail(c, http.StatusBadRequest, 10021, "invalid captcha")
		return
	}
	_ = h.Redis.DeleteCaptcha(c.Request.Context(), req.Email)

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20002, "failed to hash password")
		return
	}

	// generate username, retry on collision
	var username string
	for i := 0; i < 5; i++ {
		u, err := randomUsername11()
		if err != nil {
			common.Fail(c, http.StatusInternalServerError, 20004, "failed to generate username")
			return
		}

		var cnt int64
		if err := h.DB.Model(&models.User{}).Where("username = ?", u).Count(&cnt).Error; err != nil {
			common.Fail(c, http.StatusInternalServerError, 20005, "failed to check username")
			return
		}
		if cnt == 0 {
			username = u
			break
		}
	}
	if username == "" {
		common.Fail(c, http.StatusInternalServerError, 20006, "failed to allocate username")
		return
	}

	user := models.User{
		Email:        req.Email,
		Username:     username,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		common.Fail(c, http.StatusBadRequest, 10003, "failed to create user (maybe email already exists)")
		return
	}

	token, err := auth.SignJWT(user.ID, h.Cfg.JWTSecret, tokenTTL)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20003, "failed to sign token")
		return
	}

	// send welcome email
	go func(to, uname string) {
		subject := "Bem-vindo ao IdolChat — sua conta está pronta"
		body := "Olá,\n\n" +
			"Bem-vindo ao IdolChat. Sua conta foi criada com sucesso.\n\n" +
			"Usuário: " + uname + "\n\n" +
			"Se você não solicitou esta conta, entre em contato com o suporte.\n\n" +
			"IdolChat\n"
		_ = email.SendText(h.SMTPSetting, to, subject, body)
	}(user.Email, user.Username)

	common.OK(c, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
		"token":    token,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusUnauthorized, 40102, "invalid email or password")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		common.Fail(c, http.StatusUnauthorized, 40102, "invalid email or password")
		return
	}

	token, err := auth.SignJWT(user.ID, h.Cfg.JWTSecret, tokenTTL)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20003, "failed to sign token")
		return
	}
	common.OK(c, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
		"token":    token,
	})
}

func (h *Handler) Me(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var user models.User
	if err := h.DB.First(&user, uid).Error; err != nil {
		common.Fail(c, http.StatusNotFound, 40401, "user not found")
		return
	}

	tier := billing.TierNone
	subscribed := false
	if sub, err := h.BillingSvc.Get(c.Request.Context(), uid); err == nil {
		tier = sub.Tier
		subscribed = sub.Subscribed
	}

	common.OK(c, gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"tier":         tier,
		"subscribed":   subscribed,
		"created_at":   user.CreatedAt,
	})
}

type resetRequestReq struct {
	Email string `json:"email" binding:"required"`
}

func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req resetRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	// do not reveal whether the email exists
	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		common.OK(c, gin.H{"sent": true})
		return
	}

	code, err := randomCode6()
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20004, "failed to generate code")
		return
	}
	if err := h.Redis.SetResetCode(c.Request.Context(), req.Email, code, resetCodeTTL); err != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "redis error")
		return
	}

	go func(to, code string) {
		subject := "IdolChat — redefinição de senha"
		body := "Olá,\n\nSeu código para redefinir a senha é: " + code + "\n\nEle expira em 15 minutos. Se você não pediu a redefinição, ignore este email.\n\nIdolChat\n"
		if err := email.SendText(h.SMTPSetting, to, subject, body); err != nil {
			log.Printf("[RequestPasswordReset] mail failed to=%s err=%v", to, err)
		}
	}(req.Email, code)

	common.OK(c, gin.H{"sent": true})
}

type resetConfirmReq struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *Handler) ConfirmPasswordReset(c *gin.Context) {
	var req resetConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	code, err := h.Redis.GetResetCode(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			common.Fail(c, http.StatusBadRequest, 10022, "reset code expired or not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 20001, "redis error")
		return
	}
	if code != req.Code {
		common.Fail(c, http.StatusBadRequest, 10023, "invalid reset code")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20002, "failed to hash password")
		return
	}

	res := h.DB.Model(&models.User{}).
		Where("email = ?", req.Email).
		Update("password_hash", hash)
	if res.Error != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}
	if res.RowsAffected == 0 {
		common.Fail(c, http.StatusNotFound, 40401, "user not found")
		return
	}
	_ = h.Redis.DeleteResetCode(c.Request.Context(), req.Email)

	common.OK(c, gin.H{"reset": true})
}

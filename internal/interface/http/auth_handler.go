package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bloggramm/bloggramm/internal/application"
	"github.com/bloggramm/bloggramm/internal/interface/middleware"
	"github.com/bloggramm/bloggramm/pkg/apperr"
	"github.com/bloggramm/bloggramm/pkg/helpers"
	"github.com/bloggramm/bloggramm/pkg/validation"
)

type AuthHandler struct {
	*Renderer
	Auth    *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(r *Renderer, auth *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		Renderer: r,
		Auth:     auth,
		Logger:   logger,
		Cookies:  helpers.NewCookie(cookieDomain, cookieSecure),
	}
}

type loginForm struct {
	UserName string `form:"userName" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type registerForm struct {
	UserName  string `form:"userName" binding:"required,alphanum,min=3,max=32"`
	Password  string `form:"password" binding:"required,pwd"`
	Password2 string `form:"password2" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.HTML(c, http.StatusOK, "login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.HTML(c, http.StatusBadRequest, "login.html", gin.H{
			"ErrorMessage": validation.FirstDetail(err),
			"UserName":     c.PostForm("userName"),
		})
		return
	}

	u, err := h.Auth.Login(c.Request.Context(), application.LoginInput{
		UserName:  form.UserName,
		Password:  form.Password,
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindUserNotFound, apperr.KindInvalidCredentials:
			h.HTML(c, http.StatusUnauthorized, "login.html", gin.H{
				"ErrorMessage": apperrMessage(err),
				"UserName":     form.UserName,
			})
		default:
			h.FailPage(c, "Unable to log in right now")
		}
		return
	}

	token, exp, err := h.Auth.IssueSession(c.Request.Context(), u)
	if err != nil {
		h.FailPage(c, "Unable to create a session")
		return
	}
	h.Cookies.SetSession(c, token, exp)
	c.Redirect(http.StatusSeeOther, "/posts")
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.HTML(c, http.StatusOK, "register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		h.HTML(c, http.StatusBadRequest, "register.html", gin.H{
			"ErrorMessage": validation.FirstDetail(err),
			"UserName":     c.PostForm("userName"),
		})
		return
	}

	err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		UserName:        form.UserName,
		Password:        form.Password,
		PasswordConfirm: form.Password2,
		Email:           form.Email,
	})
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindValidation:
			h.HTML(c, http.StatusBadRequest, "register.html", gin.H{
				"ErrorMessage": apperrMessage(err),
				"UserName":     form.UserName,
			})
		case apperr.KindDuplicateUser:
			h.HTML(c, http.StatusConflict, "register.html", gin.H{
				"ErrorMessage": apperrMessage(err),
				"UserName":     form.UserName,
			})
		default:
			h.FailPage(c, "Unable to create the account")
		}
		return
	}

	h.HTML(c, http.StatusOK, "register.html", gin.H{"SuccessMessage": "User Created"})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(helpers.SessionCookieName); err == nil && token != "" {
		h.Auth.DropSession(c.Request.Context(), token)
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// UserHistory shows the login history of the signed-in user. Gated.
func (h *AuthHandler) UserHistory(c *gin.Context) {
	userName := c.GetString(middleware.CtxUserNameKey)
	history, err := h.Auth.UserHistory(c.Request.Context(), userName)
	if err != nil {
		h.FailPage(c, "Unable to load login history")
		return
	}
	h.HTML(c, http.StatusOK, "userHistory.html", gin.H{"History": history})
}

// apperrMessage extracts the inline message without the kind prefix.
func apperrMessage(err error) string {
	if e, ok := err.(*apperr.Error); ok {
		return e.Message()
	}
	return err.Error()
}

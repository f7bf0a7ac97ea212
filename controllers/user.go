package controllers

import (
	"errors"
	"net/http"

	"github.com/JasonChow320/DeeJay/forms"
	"github.com/JasonChow320/DeeJay/service"
	"github.com/gin-gonic/gin"
)

// UserController handles account login, registration and removal.
type UserController struct {
	user *service.UserService

	adminID string
}

var userForm = new(forms.UserForm)

func NewUserController(user *service.UserService, adminID string) *UserController {
	return &UserController{user: user, adminID: adminID}
}

// Login authenticates an account and returns its login session. A still
// valid session is extended rather than replaced.
func (ctrl UserController) Login(c *gin.Context) {
	var loginForm forms.LoginForm

	if validationErr := c.ShouldBindJSON(&loginForm); validationErr != nil {
		message := userForm.Login(validationErr)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
		return
	}

	sess, err := ctrl.user.Login(loginForm)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Error! Username or password is incorrect."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId":   sess.SessionID,
		"havespotify": sess.HaveSpotify,
		"error":       nil,
	})
}

// Register creates a new account and mints its first session.
func (ctrl UserController) Register(c *gin.Context) {
	var registerForm forms.RegisterForm

	if err := c.ShouldBindJSON(&registerForm); err != nil {
		message := userForm.Register(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": message})
		return
	}

	sess, err := ctrl.user.Register(registerForm)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User added successfully", "sessionId": sess.SessionID})
}

// Delete removes the account behind the username.
func (ctrl UserController) Delete(c *gin.Context) {
	username := c.Param("username")

	if err := ctrl.user.Delete(username); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Error in removing the user, please try again in a little!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully removed your account!"})
}

// SignOut invalidates the login session immediately.
func (ctrl UserController) SignOut(c *gin.Context) {
	sessionID := c.Param("sessionId")

	if err := ctrl.user.SignOut(sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully signed out"})
}

// Users lists every account. Requires the configured admin id; anything
// else falls through to a 404 so the route stays invisible.
func (ctrl UserController) Users(c *gin.Context) {
	if ctrl.adminID == "" || c.Param("id") != ctrl.adminID {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	accs, err := ctrl.user.Accounts()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, accs)
}

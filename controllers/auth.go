package controllers

import (
	"net/http"

	"paper-review-api/middleware"
	"paper-review-api/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, services.ValidationError("Please provide email and password."))
		return
	}

	result, err := services.NewAuthService(nil).Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  result.Token,
		"data": gin.H{
			"role": result.User.Role,
			"name": result.User.Name,
		},
	})
}

// Register creates an admin or reviewer account. Admin only.
func Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, services.ValidationError("Invalid request body"))
		return
	}

	user, err := services.NewUserService(nil).Register(c.Request.Context(), req)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"user": user.Response()},
	})
}

// GetUsers lists every account. Admin only.
func GetUsers(c *gin.Context) {
	users, err := services.NewUserService(nil).List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(users),
		"data":    gin.H{"users": services.SanitizedUsers(users)},
	})
}

// GetReviewers lists accounts with the reviewer role. Admin only.
func GetReviewers(c *gin.Context) {
	reviewers, err := services.NewUserService(nil).ListReviewers(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(reviewers),
		"data":    gin.H{"reviewers": services.SanitizedUsers(reviewers)},
	})
}

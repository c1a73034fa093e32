package controllers

import (
	"net/http"
	"strconv"

	"journal-review-api/repository"

	"github.com/gin-gonic/gin"
)

// GetUsers returns a paginated user listing (admin only).
func GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := repository.UserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	users, total, err := userService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"pagination": gin.H{
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
		},
	})
}

// GetUser returns one user (admin only).
func GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid user ID")
		return
	}

	user, svcErr := userService.Get(id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUserRole changes a user's role (admin only).
func UpdateUserRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid user ID")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	user, svcErr := userService.ChangeRole(id, req.Role)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeactivateUser soft-deactivates an account instead of deleting it.
func DeactivateUser(c *gin.Context) {
	setUserActive(c, false)
}

// ActivateUser re-enables a deactivated account.
func ActivateUser(c *gin.Context) {
	setUserActive(c, true)
}

func setUserActive(c *gin.Context, active bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid user ID")
		return
	}

	user, svcErr := userService.SetActive(id, active)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetReviewers lists active reviewers for the assignment picker (editor/admin).
func GetReviewers(c *gin.Context) {
	reviewers, err := userService.ListReviewers()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviewers": reviewers,
		"total":     len(reviewers),
	})
}

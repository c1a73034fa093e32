package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CreateVolume adds a new volume (admin/editor).
func CreateVolume(c *gin.Context) {
	var req struct {
		VolumeNumber int `json:"volume_number" binding:"required"`
		Year         int `json:"year" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	volume, err := publicationService.CreateVolume(req.VolumeNumber, req.Year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"volume": volume})
}

// GetVolumes lists all volumes (public).
func GetVolumes(c *gin.Context) {
	volumes, err := publicationService.ListVolumes()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"volumes": volumes,
		"total":   len(volumes),
	})
}

// CreateIssue adds an issue to a volume (admin/editor).
func CreateIssue(c *gin.Context) {
	volumeID, err := strconv.Atoi(c.Param("id"))
	if err != nil || volumeID <= 0 {
		respondValidation(c, "Invalid volume ID")
		return
	}

	var req struct {
		IssueNumber int    `json:"issue_number" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	issue, svcErr := publicationService.CreateIssue(volumeID, req.IssueNumber, req.Description)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"issue": issue})
}

// GetVolumeIssues lists the issues of one volume (public).
func GetVolumeIssues(c *gin.Context) {
	volumeID, err := strconv.Atoi(c.Param("id"))
	if err != nil || volumeID <= 0 {
		respondValidation(c, "Invalid volume ID")
		return
	}

	issues, svcErr := publicationService.ListIssues(volumeID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues": issues,
		"total":  len(issues),
	})
}

// PublishArticle publishes an accepted submission into an issue (admin only).
func PublishArticle(c *gin.Context) {
	issueID, err := strconv.Atoi(c.Param("id"))
	if err != nil || issueID <= 0 {
		respondValidation(c, "Invalid issue ID")
		return
	}

	var req struct {
		SubmissionID int `json:"submissionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	article, svcErr := publicationService.PublishArticle(issueID, req.SubmissionID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// GetIssueArticles lists the articles of one issue (public).
func GetIssueArticles(c *gin.Context) {
	issueID, err := strconv.Atoi(c.Param("id"))
	if err != nil || issueID <= 0 {
		respondValidation(c, "Invalid issue ID")
		return
	}

	articles, svcErr := publicationService.ListArticles(issueID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    len(articles),
	})
}

// GetArticle returns one published article (public).
func GetArticle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid article ID")
		return
	}

	article, svcErr := publicationService.GetArticle(id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

package controllers

import (
	"net/http"
	"strconv"

	"journal-review-api/services"

	"github.com/gin-gonic/gin"
)

// AssignReviewer creates a pending review assignment (editor/admin only).
func AssignReviewer(c *gin.Context) {
	var req struct {
		SubmissionID int `json:"submissionId" binding:"required"`
		ReviewerID   int `json:"reviewerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	role, _ := c.Get("role")

	review, err := reviewService.Assign(role.(string), req.SubmissionID, req.ReviewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review":  review,
		"message": "Reviewer assigned",
	})
}

// CreateReview records the authenticated reviewer's recommendation.
func CreateReview(c *gin.Context) {
	var req struct {
		SubmissionID         int    `json:"submissionId" binding:"required"`
		Comments             string `json:"comments"`
		ConfidentialComments string `json:"confidential_comments"`
		Recommendation       string `json:"recommendation"`
		Rating               *int   `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	userID, _ := c.Get("userID")

	review, err := reviewService.Submit(userID.(int), services.ReviewInput{
		SubmissionID:         req.SubmissionID,
		Comments:             req.Comments,
		ConfidentialComments: req.ConfidentialComments,
		Recommendation:       req.Recommendation,
		Rating:               req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// GetReviewerDashboard returns the reviewer's pending and completed work.
func GetReviewerDashboard(c *gin.Context) {
	userID, _ := c.Get("userID")

	dashboard, err := reviewService.GetDashboard(userID.(int))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetSubmissionReviews returns every review of a submission with the
// aggregate summary (editorial view, confidential comments included).
func GetSubmissionReviews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid submission ID")
		return
	}

	reviews, summary, svcErr := reviewService.ListForSubmission(id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"summary": summary,
	})
}

// GetSubmissionReviewSummary returns only the aggregate counts.
func GetSubmissionReviewSummary(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid submission ID")
		return
	}

	summary, svcErr := reviewService.Summary(id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

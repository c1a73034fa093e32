package controllers

import (
	"net/http"
	"strconv"

	"journal-review-api/repository"
	"journal-review-api/services"

	"github.com/gin-gonic/gin"
)

// CreateSubmission accepts a multipart manuscript submission: metadata fields
// plus the PDF. All validation runs before anything is written.
func CreateSubmission(c *gin.Context) {
	userID, _ := c.Get("userID")

	input := services.SubmissionInput{
		Title:     c.PostForm("title"),
		Abstract:  c.PostForm("abstract"),
		Keywords:  c.PostFormArray("keywords"),
		CoAuthors: c.PostFormArray("co_authors"),
	}

	file, err := c.FormFile("manuscript")
	if err != nil {
		respondValidation(c, "Manuscript file is required")
		return
	}

	submission, svcErr := submissionService.Create(userID.(int), input, file, func(dst string) error {
		return c.SaveUploadedFile(file, dst)
	})
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"submission": submission})
}

// GetMySubmissions returns the authenticated author's submissions.
func GetMySubmissions(c *gin.Context) {
	userID, _ := c.Get("userID")

	submissions, err := submissionService.ListMine(userID.(int))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetAllSubmissions returns a paginated editorial listing with filters.
func GetAllSubmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := repository.SubmissionFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	submissions, total, err := submissionService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"pagination": gin.H{
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
		},
	})
}

// GetSubmission returns one submission, subject to ownership and role rules.
func GetSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid submission ID")
		return
	}

	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	submission, svcErr := submissionService.Get(userID.(int), role.(string), id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// UpdateSubmissionStatus applies an editorial decision to a submission.
func UpdateSubmissionStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid submission ID")
		return
	}

	var req struct {
		Status         string  `json:"status" binding:"required"`
		EditorComments *string `json:"editor_comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	submission, svcErr := submissionService.UpdateStatus(id, req.Status, req.EditorComments)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// UpdateSubmission lets the owning author edit manuscript fields while the
// submission is still editable.
func UpdateSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid submission ID")
		return
	}

	var req struct {
		Title     string   `json:"title" binding:"required"`
		Abstract  string   `json:"abstract" binding:"required"`
		Keywords  []string `json:"keywords" binding:"required"`
		CoAuthors []string `json:"co_authors"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	userID, _ := c.Get("userID")

	submission, svcErr := submissionService.UpdateContent(userID.(int), id, services.SubmissionInput{
		Title:     req.Title,
		Abstract:  req.Abstract,
		Keywords:  req.Keywords,
		CoAuthors: req.CoAuthors,
	})
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// ResubmitManuscript handles the revisions_required -> under_review loop:
// the owning author uploads a revised PDF.
func ResubmitManuscript(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid submission ID")
		return
	}

	file, err := c.FormFile("manuscript")
	if err != nil {
		respondValidation(c, "Manuscript file is required")
		return
	}

	userID, _ := c.Get("userID")

	submission, svcErr := submissionService.Resubmit(userID.(int), id, file, func(dst string) error {
		return c.SaveUploadedFile(file, dst)
	})
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// DeleteSubmission withdraws a submission (author while submitted, admin any).
func DeleteSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid submission ID")
		return
	}

	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	if svcErr := submissionService.Delete(userID.(int), role.(string), id); svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted"})
}

// DownloadManuscript streams the stored PDF to authorized readers.
func DownloadManuscript(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid submission ID")
		return
	}

	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	file, svcErr := submissionService.ManuscriptFile(userID.(int), role.(string), id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.FileAttachment(file.StoredPath, file.OriginalName)
}

package controllers

import (
	"errors"
	"net/http"

	"paper-review-api/middleware"
	"paper-review-api/services"

	"github.com/gin-gonic/gin"
)

const paperFileField = "paperPdf"

func currentCaller(c *gin.Context) (services.Caller, bool) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		middleware.Fail(c, services.AuthError("You are not logged in! Please log in to get access."))
	}
	return caller, ok
}

// SubmitPaper accepts a public multipart submission with a single PDF.
func SubmitPaper(c *gin.Context) {
	var form services.SubmitInput
	if err := c.ShouldBind(&form); err != nil {
		middleware.Fail(c, services.ValidationError("Invalid submission form"))
		return
	}

	// A missing file is reported by Submit so that no record is created.
	file, err := c.FormFile(paperFileField)
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		middleware.Fail(c, services.ValidationError("Invalid submission form"))
		return
	}

	paper, err := services.NewPaperService(nil, nil).Submit(c.Request.Context(), form, file)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"paper": services.FullView(*paper)},
	})
}

// GetPapers lists all papers for admins and assigned, anonymized papers for reviewers.
func GetPapers(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	papers, err := services.NewPaperService(nil, nil).List(c.Request.Context(), caller)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(papers),
		"data":    gin.H{"papers": papers},
	})
}

// GetPaper returns one paper shaped for the caller's role.
func GetPaper(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	paper, err := services.NewPaperService(nil, nil).Get(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"paper": paper},
	})
}

// AssignReviewer attaches a reviewer to a paper. Admin only.
func AssignReviewer(c *gin.Context) {
	var req struct {
		ReviewerID string `json:"reviewerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, services.ValidationError("Invalid request body"))
		return
	}

	paper, err := services.NewReviewService(nil).AssignReviewer(c.Request.Context(), c.Param("id"), req.ReviewerID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"paper": services.FullView(*paper)},
	})
}

// SubmitReview records the calling reviewer's decision. Reviewer only.
func SubmitReview(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	var req services.SubmitReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, services.ValidationError("Invalid request body"))
		return
	}

	review, err := services.NewReviewService(nil).SubmitReview(c.Request.Context(), c.Param("id"), caller.ID, req)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"review": services.NewReviewView(*review)},
	})
}

// UpdatePaperStatus sets the admin-controlled overall status. Admin only.
func UpdatePaperStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, services.ValidationError("Invalid request body"))
		return
	}

	paper, err := services.NewPaperService(nil, nil).UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"paper": services.FullView(*paper)},
	})
}

// DeletePaper removes a paper with its reviews and file. Admin only.
func DeletePaper(c *gin.Context) {
	if err := services.NewPaperService(nil, nil).Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

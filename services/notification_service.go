package services

import (
	"fmt"
	"log"
	"time"

	"journal-review-api/models"
	"journal-review-api/repository"
)

// SendMailFunc matches config.SendMail so tests can swap the SMTP dialer out.
type SendMailFunc func(to []string, subject, html string) error

// NotificationService writes in-app notification rows and sends the matching
// workflow emails. Email failures are logged, never surfaced: notification is
// a side effect of the operation, not part of its contract.
type NotificationService struct {
	notifications repository.NotificationRepository
	sendMail      SendMailFunc
}

func NewNotificationService(notifications repository.NotificationRepository, sendMail SendMailFunc) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		sendMail:      sendMail,
	}
}

// List returns one page of a user's notifications plus total and unread counts.
func (s *NotificationService) List(userID, page, limit int) ([]models.Notification, int64, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, total, err := s.notifications.ListByUser(userID, page, limit)
	if err != nil {
		return nil, 0, 0, InternalError("Failed to fetch notifications", err)
	}

	unread, err := s.notifications.CountUnread(userID)
	if err != nil {
		return nil, 0, 0, InternalError("Failed to count unread notifications", err)
	}

	return notifications, total, unread, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(userID int, notificationID uint) error {
	if err := s.notifications.MarkRead(notificationID, userID, time.Now()); err != nil {
		return InternalError("Failed to mark notification read", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(userID int) error {
	if err := s.notifications.MarkAllRead(userID, time.Now()); err != nil {
		return InternalError("Failed to mark notifications read", err)
	}
	return nil
}

func (s *NotificationService) notify(userID int, submissionID *int, notifType, title, message string) {
	var related *uint
	if submissionID != nil {
		id := uint(*submissionID)
		related = &id
	}

	notification := models.Notification{
		UserID:              uint(userID),
		Title:               title,
		Message:             message,
		Type:                notifType,
		RelatedSubmissionID: related,
		CreateAt:            time.Now(),
	}

	if err := s.notifications.Create(&notification); err != nil {
		log.Printf("Failed to store notification for user %d: %v", userID, err)
	}
}

func (s *NotificationService) email(to, subject, html string) {
	if err := s.sendMail([]string{to}, subject, html); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
	}
}

// SubmissionReceived notifies the editorial staff about a new submission.
func (s *NotificationService) SubmissionReceived(editors []models.User, submission *models.Submission, author *models.User) {
	subject := "New manuscript submitted"
	message := fmt.Sprintf("%s submitted \"%s\"", author.FullName(), submission.Title)

	html := buildEmailTemplate(subject,
		[]string{"A new manuscript has been submitted and is awaiting reviewer assignment."},
		[]emailMetaItem{
			{Label: "Title", Value: submission.Title},
			{Label: "Author", Value: author.FullName()},
			{Label: "Submitted", Value: submission.SubmittedAt.Format("2 Jan 2006 15:04")},
		},
		"Open submission", submissionURL(submission.SubmissionID))

	for _, editor := range editors {
		s.notify(editor.UserID, &submission.SubmissionID, "info", subject, message)
		s.email(editor.Email, subject, html)
	}
}

// ReviewerAssigned notifies a reviewer about a new assignment.
func (s *NotificationService) ReviewerAssigned(reviewer *models.User, submission *models.Submission) {
	subject := "New review assignment"
	message := fmt.Sprintf("You have been assigned to review \"%s\"", submission.Title)

	html := buildEmailTemplate(subject,
		[]string{
			fmt.Sprintf("Dear %s,", reviewer.FullName()),
			"You have been assigned to review the following manuscript. Please submit your recommendation through the reviewer dashboard.",
		},
		[]emailMetaItem{
			{Label: "Title", Value: submission.Title},
			{Label: "Assigned", Value: time.Now().Format("2 Jan 2006")},
		},
		"Open reviewer dashboard", submissionURL(submission.SubmissionID))

	s.notify(reviewer.UserID, &submission.SubmissionID, "info", subject, message)
	s.email(reviewer.Email, subject, html)
}

var decisionSubjects = map[string]string{
	models.StatusUnderReview:       "Your manuscript is under review",
	models.StatusRevisionsRequired: "Revisions requested for your manuscript",
	models.StatusAccepted:          "Your manuscript has been accepted",
	models.StatusRejected:          "Decision on your manuscript",
}

// StatusChanged notifies the author about an editorial decision.
func (s *NotificationService) StatusChanged(author *models.User, submission *models.Submission, status string, editorComments string) {
	subject, ok := decisionSubjects[status]
	if !ok {
		subject = "Your manuscript status has changed"
	}
	message := fmt.Sprintf("\"%s\" is now %s", submission.Title, status)

	paragraphs := []string{
		fmt.Sprintf("Dear %s,", author.FullName()),
		fmt.Sprintf("The status of your manuscript \"%s\" has changed to %s.", submission.Title, status),
	}
	if editorComments != "" {
		paragraphs = append(paragraphs, "Editor comments:\n"+editorComments)
	}

	notifType := "info"
	switch status {
	case models.StatusAccepted:
		notifType = "success"
	case models.StatusRejected:
		notifType = "error"
	case models.StatusRevisionsRequired:
		notifType = "warning"
	}

	html := buildEmailTemplate(subject, paragraphs,
		[]emailMetaItem{
			{Label: "Title", Value: submission.Title},
			{Label: "Status", Value: status},
		},
		"View submission", submissionURL(submission.SubmissionID))

	s.notify(author.UserID, &submission.SubmissionID, notifType, subject, message)
	s.email(author.Email, subject, html)
}

// ArticlePublished notifies the author that their accepted submission is now
// part of a published issue.
func (s *NotificationService) ArticlePublished(author *models.User, submission *models.Submission, article *models.Article) {
	subject := "Your article has been published"
	message := fmt.Sprintf("\"%s\" has been published", article.Title)

	html := buildEmailTemplate(subject,
		[]string{
			fmt.Sprintf("Dear %s,", author.FullName()),
			"Congratulations! Your accepted manuscript has been published.",
		},
		[]emailMetaItem{
			{Label: "Title", Value: article.Title},
			{Label: "Published", Value: article.PublishedAt.Format("2 Jan 2006")},
		},
		"View article", submissionURL(submission.SubmissionID))

	s.notify(author.UserID, &submission.SubmissionID, "success", subject, message)
	s.email(author.Email, subject, html)
}

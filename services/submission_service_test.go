package services

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"journal-review-api/models"
)

type submissionFixture struct {
	users       *fakeUserRepo
	submissions *fakeSubmissionRepo
	files       *fakeFileRepo
	reviews     *fakeReviewRepo
	svc         *SubmissionService
	savedPaths  []string
}

func newSubmissionFixture() *submissionFixture {
	users := newFakeUserRepo()
	submissions := newFakeSubmissionRepo()
	files := newFakeFileRepo()
	reviews := newFakeReviewRepo(submissions)
	notifier := newTestNotifier(newFakeNotificationRepo())

	f := &submissionFixture{
		users:       users,
		submissions: submissions,
		files:       files,
		reviews:     reviews,
	}
	f.svc = NewSubmissionService(submissions, files, users, reviews, notifier, "uploads")
	return f
}

func (f *submissionFixture) save(dst string) error {
	f.savedPaths = append(f.savedPaths, dst)
	return nil
}

func (f *submissionFixture) addAuthor(id int) *models.User {
	return f.users.addUser(models.User{
		UserID:   id,
		Email:    "author@example.org",
		Role:     models.RoleAuthor,
		IsActive: true,
	})
}

func pdfHeader(size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "paper.pdf",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/pdf"}},
	}
}

func validInput() SubmissionInput {
	return SubmissionInput{
		Title:     "On the Reproducibility of Results",
		Abstract:  "We study reproducibility across several experimental settings.",
		Keywords:  []string{"reproducibility", "methodology", "experiments"},
		CoAuthors: []string{"J. Doe"},
	}
}

func TestCreateRoundTrip(t *testing.T) {
	f := newSubmissionFixture()
	f.addAuthor(1)

	created, err := f.svc.Create(1, validInput(), pdfHeader(2048), f.save)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	fetched, err := f.svc.Get(1, models.RoleAuthor, created.SubmissionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if fetched.Title != "On the Reproducibility of Results" {
		t.Errorf("title = %q", fetched.Title)
	}
	if fetched.Status != models.StatusSubmitted {
		t.Errorf("status = %q, want submitted", fetched.Status)
	}
	kws := fetched.KeywordList()
	if len(kws) != 3 || kws[0] != "reproducibility" {
		t.Errorf("keywords round-trip mismatch: %v", kws)
	}
	if len(f.savedPaths) != 1 {
		t.Fatalf("expected 1 file save, got %d", len(f.savedPaths))
	}
	if !strings.HasSuffix(f.savedPaths[0], ".pdf") {
		t.Errorf("stored file should keep the .pdf extension: %q", f.savedPaths[0])
	}
}

func TestCreateRejectsInvalidFileBeforeSave(t *testing.T) {
	f := newSubmissionFixture()
	f.addAuthor(1)

	docx := &multipart.FileHeader{
		Filename: "paper.docx",
		Size:     2048,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}},
	}

	_, err := f.svc.Create(1, validInput(), docx, f.save)
	svcErr, ok := AsServiceError(err)
	if !ok || svcErr.Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svcErr.Message != "Invalid file type" {
		t.Errorf("message = %q, want 'Invalid file type'", svcErr.Message)
	}
	if len(f.savedPaths) != 0 {
		t.Error("nothing may be written to storage when validation fails")
	}
}

func TestCreateRejectsOversizedFileBeforeSave(t *testing.T) {
	f := newSubmissionFixture()
	f.addAuthor(1)

	_, err := f.svc.Create(1, validInput(), pdfHeader(models.MaxManuscriptSize+1), f.save)
	svcErr, ok := AsServiceError(err)
	if !ok || svcErr.Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.savedPaths) != 0 {
		t.Error("nothing may be written to storage when validation fails")
	}
}

func TestCreateRejectsFieldViolations(t *testing.T) {
	f := newSubmissionFixture()
	f.addAuthor(1)

	longAbstract := strings.Repeat("word ", 501)

	tests := []struct {
		name  string
		mut   func(*SubmissionInput)
		field string
	}{
		{"title too long", func(in *SubmissionInput) { in.Title = strings.Repeat("x", 201) }, "title"},
		{"abstract too long", func(in *SubmissionInput) { in.Abstract = longAbstract }, "abstract"},
		{"too few keywords", func(in *SubmissionInput) { in.Keywords = []string{"one", "two"} }, "keywords"},
		{"too many keywords", func(in *SubmissionInput) {
			in.Keywords = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
		}, "keywords"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mut(&input)

			_, err := f.svc.Create(1, input, pdfHeader(1024), f.save)
			svcErr, ok := AsServiceError(err)
			if !ok || svcErr.Kind != KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}

			found := false
			for _, detail := range svcErr.Details {
				if detail.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a detail for field %q, got %v", tt.field, svcErr.Details)
			}
		})
	}

	if len(f.savedPaths) != 0 {
		t.Error("field validation failures must not reach storage")
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	f := newSubmissionFixture()
	f.addAuthor(1)
	f.users.addUser(models.User{UserID: 2, Role: models.RoleAuthor, IsActive: true})

	created, err := f.svc.Create(1, validInput(), pdfHeader(1024), f.save)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Another author cannot read it.
	_, err = f.svc.Get(2, models.RoleAuthor, created.SubmissionID)
	svcErr, ok := AsServiceError(err)
	if !ok || svcErr.Kind != KindForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	// Editors and admins can.
	for _, role := range []string{models.RoleEditor, models.RoleAdmin} {
		if _, err := f.svc.Get(42, role, created.SubmissionID); err != nil {
			t.Errorf("Get as %s failed: %v", role, err)
		}
	}

	// An unassigned reviewer cannot; an assigned one can.
	f.users.addUser(models.User{UserID: 3, Role: models.RoleReviewer, IsActive: true})
	if _, err := f.svc.Get(3, models.RoleReviewer, created.SubmissionID); err == nil {
		t.Error("unassigned reviewer should not read the submission")
	}
	f.reviews.Create(&models.Review{SubmissionID: created.SubmissionID, ReviewerID: 3})
	if _, err := f.svc.Get(3, models.RoleReviewer, created.SubmissionID); err != nil {
		t.Errorf("assigned reviewer should read the submission: %v", err)
	}
}

func TestUpdateStatusFollowsWorkflow(t *testing.T) {
	f := newSubmissionFixture()
	f.addAuthor(1)

	created, err := f.svc.Create(1, validInput(), pdfHeader(1024), f.save)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	comments := "Needs a stronger evaluation section."
	updated, err := f.svc.UpdateStatus(created.SubmissionID, models.StatusRevisionsRequired, &comments)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.StatusRevisionsRequired {
		t.Errorf("status = %q", updated.Status)
	}
	if updated.EditorComments == nil || *updated.EditorComments != comments {
		t.Error("editor comments not recorded")
	}

	// revisions_required -> accepted is off the graph for an editor decision.
	_, err = f.svc.UpdateStatus(created.SubmissionID, models.StatusAccepted, nil)
	svcErr, ok := AsServiceError(err)
	if !ok || svcErr.Kind != KindValidation {
		t.Fatalf("expected validation error for illegal edge, got %v", err)
	}
}

func TestUpdateStatusMissingSubmission(t *testing.T) {
	f := newSubmissionFixture()

	_, err := f.svc.UpdateStatus(404, models.StatusAccepted, nil)
	svcErr, ok := AsServiceError(err)
	if !ok || svcErr.Kind != KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestResubmitLoop(t *testing.T) {
	f := newSubmissionFixture()
	f.addAuthor(1)

	created, err := f.svc.Create(1, validInput(), pdfHeader(1024), f.save)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Not awaiting revisions yet.
	if _, err := f.svc.Resubmit(1, created.SubmissionID, pdfHeader(1024), f.save); err == nil {
		t.Fatal("resubmit should fail while still submitted")
	}

	comments := "revise"
	if _, err := f.svc.UpdateStatus(created.SubmissionID, models.StatusRevisionsRequired, &comments); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	// Only the owner may resubmit.
	if _, err := f.svc.Resubmit(2, created.SubmissionID, pdfHeader(1024), f.save); err == nil {
		t.Fatal("non-owner resubmit should fail")
	}

	updated, err := f.svc.Resubmit(1, created.SubmissionID, pdfHeader(1024), f.save)
	if err != nil {
		t.Fatalf("Resubmit failed: %v", err)
	}
	if updated.Status != models.StatusUnderReview {
		t.Errorf("status after resubmit = %q, want under_review", updated.Status)
	}
	if updated.FileID == created.FileID {
		t.Error("resubmission should reference the new manuscript file")
	}
}

func TestUpdateContentOnlyWhileEditable(t *testing.T) {
	f := newSubmissionFixture()
	f.addAuthor(1)

	created, err := f.svc.Create(1, validInput(), pdfHeader(1024), f.save)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	input := validInput()
	input.Title = "A Revised Title"
	updated, err := f.svc.UpdateContent(1, created.SubmissionID, input)
	if err != nil {
		t.Fatalf("UpdateContent failed: %v", err)
	}
	if updated.Title != "A Revised Title" {
		t.Errorf("title = %q", updated.Title)
	}

	if _, err := f.svc.UpdateStatus(created.SubmissionID, models.StatusAccepted, nil); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if _, err := f.svc.UpdateContent(1, created.SubmissionID, input); err == nil {
		t.Fatal("accepted submissions must not be editable")
	}
}

func TestDeleteRules(t *testing.T) {
	f := newSubmissionFixture()
	f.addAuthor(1)

	created, err := f.svc.Create(1, validInput(), pdfHeader(1024), f.save)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Non-owner author cannot withdraw.
	if err := f.svc.Delete(2, models.RoleAuthor, created.SubmissionID); err == nil {
		t.Fatal("non-owner delete should fail")
	}

	// Owner can withdraw while submitted.
	if err := f.svc.Delete(1, models.RoleAuthor, created.SubmissionID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := f.svc.Get(1, models.RoleAuthor, created.SubmissionID); err == nil {
		t.Fatal("deleted submission should not be found")
	}
}

package utils

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last@example.ac.th", "user+tag@sub.domain.org"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "plain", "missing@tld", "@no-local.com"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidateTitleLengthBounds(t *testing.T) {
	if ok, _ := ValidateTitle(strings.Repeat("a", MaxTitleLength)); !ok {
		t.Error("title of exactly 200 characters should be accepted")
	}
	if ok, _ := ValidateTitle(strings.Repeat("a", MaxTitleLength+1)); ok {
		t.Error("title of 201 characters should be rejected")
	}
	if ok, _ := ValidateTitle("   "); ok {
		t.Error("blank title should be rejected")
	}
}

func TestValidateAbstractWordBounds(t *testing.T) {
	words := make([]string, MaxAbstractWords)
	for i := range words {
		words[i] = "word"
	}

	if ok, _ := ValidateAbstract(strings.Join(words, " ")); !ok {
		t.Error("abstract of exactly 500 words should be accepted")
	}
	if ok, _ := ValidateAbstract(strings.Join(append(words, "extra"), " ")); ok {
		t.Error("abstract of 501 words should be rejected")
	}
	if ok, _ := ValidateAbstract(""); ok {
		t.Error("empty abstract should be rejected")
	}
}

func TestValidateKeywordsCountBounds(t *testing.T) {
	keywords := func(n int) []string {
		kws := make([]string, n)
		for i := range kws {
			kws[i] = "keyword"
		}
		return kws
	}

	tests := []struct {
		count int
		want  bool
	}{
		{2, false},
		{3, true},
		{10, true},
		{11, false},
	}

	for _, tt := range tests {
		if _, ok, _ := ValidateKeywords(keywords(tt.count)); ok != tt.want {
			t.Errorf("ValidateKeywords with %d items = %v, want %v", tt.count, ok, tt.want)
		}
	}
}

func TestValidateKeywordsDropsBlankEntries(t *testing.T) {
	cleaned, ok, _ := ValidateKeywords([]string{"one", "  ", "two", "", "three"})
	if !ok {
		t.Fatal("three non-blank keywords should be accepted")
	}
	if len(cleaned) != 3 {
		t.Fatalf("expected 3 cleaned keywords, got %d", len(cleaned))
	}
}

func manuscriptHeader(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "manuscript.pdf",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestValidateManuscriptFile(t *testing.T) {
	if ok, _ := ValidateManuscriptFile(manuscriptHeader("application/pdf", 1024)); !ok {
		t.Error("small PDF should be accepted")
	}

	if ok, msg := ValidateManuscriptFile(manuscriptHeader("application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024)); ok || msg != "Invalid file type" {
		t.Errorf("docx upload should be rejected with 'Invalid file type', got ok=%v msg=%q", ok, msg)
	}

	if ok, _ := ValidateManuscriptFile(manuscriptHeader("application/pdf", MaxManuscriptSize)); !ok {
		t.Error("PDF of exactly 10 MiB should be accepted")
	}
	if ok, _ := ValidateManuscriptFile(manuscriptHeader("application/pdf", MaxManuscriptSize+1)); ok {
		t.Error("PDF over 10 MiB should be rejected")
	}

	if ok, _ := ValidateManuscriptFile(nil); ok {
		t.Error("missing file should be rejected")
	}
}

package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Form structs are bound with gin's ShouldBind, so the binding tags below are
// the single place each entity's field rules live. All entities share the
// same error-surfacing shape via fieldErrors.

type ProjectForm struct {
	Title    string `form:"title" binding:"required,max=200"`
	Slug     string `form:"slug" binding:"omitempty,max=200"`
	Summary  string `form:"summary" binding:"max=500"`
	Content  string `form:"content"`
	ImageURL string `form:"image_url" binding:"omitempty,url"`
	RepoURL  string `form:"repo_url" binding:"omitempty,url"`
	DemoURL  string `form:"demo_url" binding:"omitempty,url"`
	Tags     string `form:"tags" binding:"max=300"`
}

type SkillForm struct {
	Name     string `form:"name" binding:"required,max=100"`
	Category string `form:"category" binding:"max=100"`
	Level    string `form:"level" binding:"omitempty,oneof=beginner intermediate advanced expert"`
	IconURL  string `form:"icon_url" binding:"omitempty,url"`
}

type ExperienceForm struct {
	Company     string `form:"company" binding:"required,max=200"`
	Role        string `form:"role" binding:"required,max=200"`
	Location    string `form:"location" binding:"max=200"`
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date"`
	Description string `form:"description"`
}

type EducationForm struct {
	School      string `form:"school" binding:"required,max=200"`
	Degree      string `form:"degree" binding:"required,max=200"`
	Field       string `form:"field" binding:"max=200"`
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date"`
	Description string `form:"description"`
}

type CertificateForm struct {
	Title         string `form:"title" binding:"required,max=200"`
	Issuer        string `form:"issuer" binding:"required,max=200"`
	IssueDate     string `form:"issue_date" binding:"required"`
	CredentialURL string `form:"credential_url" binding:"omitempty,url"`
	ImageURL      string `form:"image_url" binding:"omitempty,url"`
}

type PostForm struct {
	Title   string `form:"title" binding:"required,max=200"`
	Slug    string `form:"slug" binding:"omitempty,max=200"`
	Summary string `form:"summary" binding:"max=500"`
	Content string `form:"content"`
}

type SettingsForm struct {
	SiteTitle   string `form:"site_title" binding:"required,max=200"`
	Tagline     string `form:"tagline" binding:"max=300"`
	About       string `form:"about"`
	Email       string `form:"email" binding:"omitempty,email"`
	GithubURL   string `form:"github_url" binding:"omitempty,url"`
	LinkedinURL string `form:"linkedin_url" binding:"omitempty,url"`
	AvatarURL   string `form:"avatar_url" binding:"omitempty,url"`
}

// fieldErrors flattens a binding failure into a field -> message map for the
// templates. Non-validator errors (malformed body, type mismatch) end up
// under the "form" key.
func fieldErrors(err error) map[string]string {
	errs := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				errs[field] = "This field is required"
			case "url":
				errs[field] = "Must be a valid URL"
			case "email":
				errs[field] = "Must be a valid email address"
			case "max":
				errs[field] = "Too long (max " + fe.Param() + " characters)"
			case "oneof":
				errs[field] = "Must be one of: " + fe.Param()
			default:
				errs[field] = "Invalid value"
			}
		}
		return errs
	}

	errs["form"] = err.Error()
	return errs
}

// parseDate turns a form date into a nullable time; an empty string means
// the field was left blank and is stored as NULL.
func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func generateSlug(title string) string {
	slug := strings.ToLower(title)

	slug = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		if r == ' ' {
			return '-'
		}
		return -1
	}, slug)

	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return slug
}

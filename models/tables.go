package models

import "time"

type Admin struct {
	ID           int    `gorm:"primary_key;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // json:"-" prevents password from being exposed in API
}

// Settings is a single-row table holding the site-wide configuration shown on
// the public pages.
type Settings struct {
	ID          int    `gorm:"primary_key;autoIncrement" json:"id"`
	SiteTitle   string `gorm:"not null" json:"site_title"`
	Tagline     string `json:"tagline"`
	About       string `gorm:"type:text" json:"about"` // markdown
	Email       string `json:"email"`                  // contact notifications go here
	GithubURL   string `json:"github_url"`
	LinkedinURL string `json:"linkedin_url"`
	AvatarURL   string `json:"avatar_url"`
}

type Project struct {
	ID        int       `gorm:"primary_key;autoIncrement" json:"id"`
	OwnerID   int       `gorm:"not null;index" json:"owner_id"`
	Position  int       `gorm:"not null;default:0;index" json:"position"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `gorm:"not null;index" json:"slug"`
	Summary   string    `json:"summary"`
	Content   string    `gorm:"type:text" json:"content"` // markdown
	ImageURL  string    `json:"image_url"`
	RepoURL   string    `json:"repo_url"`
	DemoURL   string    `json:"demo_url"`
	Tags      string    `json:"tags"` // comma separated
	Published bool      `gorm:"default:false;index" json:"published"`
	Archived  bool      `gorm:"default:false" json:"archived"` // orthogonal to deletion
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Skill struct {
	ID        int    `gorm:"primary_key;autoIncrement" json:"id"`
	OwnerID   int    `gorm:"not null;index" json:"owner_id"`
	Position  int    `gorm:"not null;default:0;index" json:"position"`
	Name      string `gorm:"not null" json:"name"`
	Category  string `json:"category"`
	Level     string `json:"level"`
	IconURL   string `json:"icon_url"`
	Published bool   `gorm:"default:true;index" json:"published"`
}

type Experience struct {
	ID          int        `gorm:"primary_key;autoIncrement" json:"id"`
	OwnerID     int        `gorm:"not null;index" json:"owner_id"`
	Position    int        `gorm:"not null;default:0;index" json:"position"`
	Company     string     `gorm:"not null" json:"company"`
	Role        string     `gorm:"not null" json:"role"`
	Location    string     `json:"location"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"` // nil while current
	Description string     `gorm:"type:text" json:"description"`
	Published   bool       `gorm:"default:true;index" json:"published"`
}

type Education struct {
	ID          int        `gorm:"primary_key;autoIncrement" json:"id"`
	OwnerID     int        `gorm:"not null;index" json:"owner_id"`
	Position    int        `gorm:"not null;default:0;index" json:"position"`
	School      string     `gorm:"not null" json:"school"`
	Degree      string     `gorm:"not null" json:"degree"`
	Field       string     `json:"field"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `gorm:"type:text" json:"description"`
	Published   bool       `gorm:"default:true;index" json:"published"`
}

type Certificate struct {
	ID            int       `gorm:"primary_key;autoIncrement" json:"id"`
	OwnerID       int       `gorm:"not null;index" json:"owner_id"`
	Position      int       `gorm:"not null;default:0;index" json:"position"`
	Title         string    `gorm:"not null" json:"title"`
	Issuer        string    `gorm:"not null" json:"issuer"`
	IssueDate     time.Time `gorm:"not null" json:"issue_date"`
	CredentialURL string    `json:"credential_url"`
	ImageURL      string    `json:"image_url"`
	Published     bool      `gorm:"default:true;index" json:"published"`
}

type BlogPost struct {
	ID          int        `gorm:"primary_key;autoIncrement" json:"id"`
	OwnerID     int        `gorm:"not null;index" json:"owner_id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"not null;index" json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `gorm:"type:text" json:"content"` // markdown
	Published   bool       `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"` // set on first publish, kept on unpublish
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ContactMessage struct {
	ID        int       `gorm:"primary_key;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Read      bool      `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

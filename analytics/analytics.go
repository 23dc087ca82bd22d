package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PageEvent is one visit to a public page.
type PageEvent struct {
	ID        uint      `gorm:"primary_key;autoIncrement"`
	Path      string    `gorm:"not null;index"`
	CookieID  string    `gorm:"not null;index"`
	Event     string    `gorm:"not null;default:'visit'"`
	IP        string    `gorm:"not null"`
	Language  *string
	Browser   *string
	CreatedAt time.Time `gorm:"index"`
}

type AnalyticsModule struct {
	db *gorm.DB
}

// NewAnalyticsModule returns nil when no analytics database is configured;
// every method is nil-safe so callers never have to check.
func NewAnalyticsModule(db *gorm.DB) *AnalyticsModule {
	if db == nil {
		log.Println("Analytics DB is nil, analytics will be disabled")
		return nil
	}

	if err := db.AutoMigrate(&PageEvent{}); err != nil {
		log.Printf("Error migrating page_events table: %v", err)
		return nil
	}

	log.Println("Analytics module initialized successfully")
	return &AnalyticsModule{db: db}
}

// TrackVisit records a visit to the given page path. Repeat visits from the
// same visitor within 30 minutes are dropped so refreshes don't inflate the
// counts.
func (a *AnalyticsModule) TrackVisit(c *gin.Context, path string) {
	if a == nil || a.db == nil {
		return
	}

	cookieID := a.getOrCreateCookieID(c)

	thirtyMinutesAgo := time.Now().Add(-30 * time.Minute)

	var recentVisit PageEvent
	err := a.db.Where("cookie_id = ? AND path = ? AND created_at > ?",
		cookieID, path, thirtyMinutesAgo).First(&recentVisit).Error
	if err == nil {
		return
	}

	userAgent := c.Request.UserAgent()

	event := PageEvent{
		Path:      path,
		CookieID:  cookieID,
		Event:     "visit",
		IP:        a.getClientIP(c),
		Language:  a.extractLanguage(c),
		Browser:   a.extractBrowser(userAgent),
		CreatedAt: time.Now(),
	}

	// Insert asynchronously so tracking never delays the page response.
	go func() {
		if err := a.db.Create(&event).Error; err != nil {
			log.Printf("Error saving analytics event: %v", err)
		}
	}()
}

func (a *AnalyticsModule) getOrCreateCookieID(c *gin.Context) string {
	cookieName := "folio_visitor_id"

	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	data := time.Now().String() + c.ClientIP() + c.Request.UserAgent()
	hash := sha256.Sum256([]byte(data))
	cookieID := hex.EncodeToString(hash[:])

	c.SetCookie(
		cookieName,
		cookieID,
		60*60*24*365*2, // 2 years
		"/",
		"",
		false,
		true,
	)

	return cookieID
}

func (a *AnalyticsModule) getClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}

	return c.ClientIP()
}

func (a *AnalyticsModule) extractBrowser(userAgent string) *string {
	if userAgent == "" {
		return nil
	}

	ua := strings.ToLower(userAgent)
	var browser string

	// Order matters, check the more specific strings first.
	switch {
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome") && !strings.Contains(ua, "edg"):
		browser = "Chrome"
	case strings.Contains(ua, "safari") && !strings.Contains(ua, "chrome"):
		browser = "Safari"
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr"):
		browser = "Opera"
	default:
		browser = "Other"
	}

	return &browser
}

func (a *AnalyticsModule) extractLanguage(c *gin.Context) *string {
	acceptLang := c.GetHeader("Accept-Language")
	if acceptLang == "" {
		return nil
	}

	// "en-US,en;q=0.9" - keep only the preferred language
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(parts[0])
		lang = strings.Split(lang, ";")[0]
		return &lang
	}

	return nil
}

// DayVisits is the visit count for one day.
type DayVisits struct {
	Date  string
	Count int64
}

// PageVisits is the visit count for one page path.
type PageVisits struct {
	Path  string
	Count int64
}

// GetTotalVisits returns the all-time visit count.
func (a *AnalyticsModule) GetTotalVisits() int64 {
	if a == nil || a.db == nil {
		return 0
	}

	var count int64
	a.db.Model(&PageEvent{}).Count(&count)
	return count
}

// GetVisitsByDay returns visit counts for each of the last N days, zeros
// included for days without traffic.
func (a *AnalyticsModule) GetVisitsByDay(days int) []DayVisits {
	if a == nil || a.db == nil {
		return []DayVisits{}
	}

	startDate := time.Now().AddDate(0, 0, -days)

	var results []struct {
		Date  string
		Count int64
	}

	a.db.Model(&PageEvent{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", startDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&results)

	dayVisits := make([]DayVisits, days)
	for i := 0; i < days; i++ {
		date := time.Now().AddDate(0, 0, -(days - 1 - i))
		dayVisits[i] = DayVisits{
			Date:  date.Format("2006-01-02"),
			Count: 0,
		}
	}

	for _, result := range results {
		for i := range dayVisits {
			if dayVisits[i].Date == result.Date {
				dayVisits[i].Count = result.Count
				break
			}
		}
	}

	return dayVisits
}

// GetTopPages returns the most visited page paths over the last N days.
func (a *AnalyticsModule) GetTopPages(days int, limit int) []PageVisits {
	if a == nil || a.db == nil {
		return []PageVisits{}
	}

	startDate := time.Now().AddDate(0, 0, -days)

	var results []PageVisits
	a.db.Model(&PageEvent{}).
		Select("path, COUNT(*) as count").
		Where("created_at >= ?", startDate).
		Group("path").
		Order("count DESC").
		Limit(limit).
		Scan(&results)

	return results
}

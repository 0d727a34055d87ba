package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/models"
	"github.com/smartlink-app/smartlink/internal/repository"
)

// recentClickWindow is how many of the latest clicks feed the per-link
// breakdowns and the recent-clicks list.
const recentClickWindow = 100

// recentClickSample is how many clicks the per-link response includes verbatim.
const recentClickSample = 10

// LinkAnalytics aggregates the recorded clicks of one link for the dashboard.
type LinkAnalytics struct {
	LinkID         uint           `json:"linkId"`
	ShortCode      string         `json:"shortCode"`
	OriginalURL    string         `json:"originalUrl"`
	TotalClicks    int64          `json:"totalClicks"`
	UniqueVisitors int            `json:"uniqueVisitors"`
	ClicksByDate   map[string]int `json:"clicksByDate"`
	DeviceStats    map[string]int `json:"deviceStats"`
	BrowserStats   map[string]int `json:"browserStats"`
	LocationStats  map[string]int `json:"locationStats"`
	RecentClicks   []models.Click `json:"recentClicks"`
}

// DashboardStats summarizes all of a user's links.
type DashboardStats struct {
	TotalLinks     int     `json:"totalLinks"`
	TotalClicks    int64   `json:"totalClicks"`
	UniqueVisitors int     `json:"uniqueVisitors"`
	ConversionRate float64 `json:"conversionRate"`
}

// AnalyticsService derives aggregate statistics from recorded clicks.
type AnalyticsService struct {
	linkRepo  repository.LinkRepository
	clickRepo repository.ClickRepository
}

// NewAnalyticsService creates and returns a new instance of AnalyticsService.
func NewAnalyticsService(linkRepo repository.LinkRepository, clickRepo repository.ClickRepository) *AnalyticsService {
	return &AnalyticsService{
		linkRepo:  linkRepo,
		clickRepo: clickRepo,
	}
}

// GetLinkAnalytics aggregates the last clicks of one link owned by the user.
// The breakdowns intentionally cover only the most recent window of clicks
// while TotalClicks reflects the link's full counter.
func (s *AnalyticsService) GetLinkAnalytics(linkID, userID uint) (*LinkAnalytics, error) {
	link, err := s.linkRepo.GetLinkByID(linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLinkNotFound
		}
		return nil, err
	}
	if link.UserID != userID {
		return nil, apperrors.ErrLinkNotFound
	}

	clicks, err := s.clickRepo.GetRecentClicks(link.ID, recentClickWindow)
	if err != nil {
		return nil, err
	}

	uniqueIPs := make(map[string]struct{})
	clicksByDate := make(map[string]int)
	deviceStats := make(map[string]int)
	browserStats := make(map[string]int)
	locationStats := make(map[string]int)

	for _, c := range clicks {
		uniqueIPs[c.IPAddress] = struct{}{}
		clicksByDate[c.Timestamp.UTC().Format("2006-01-02")]++
		deviceStats[c.Device]++
		browserStats[c.Browser]++

		country := c.Country
		if country == "" {
			country = "Unknown"
		}
		locationStats[country]++
	}

	recent := clicks
	if len(recent) > recentClickSample {
		recent = recent[:recentClickSample]
	}

	return &LinkAnalytics{
		LinkID:         link.ID,
		ShortCode:      link.ShortCode,
		OriginalURL:    link.OriginalURL,
		TotalClicks:    link.Clicks,
		UniqueVisitors: len(uniqueIPs),
		ClicksByDate:   clicksByDate,
		DeviceStats:    deviceStats,
		BrowserStats:   browserStats,
		LocationStats:  locationStats,
		RecentClicks:   recent,
	}, nil
}

// GetDashboardStats summarizes every link the user owns. The conversion rate
// is the unique-visitor share of total clicks, as a percentage rounded to
// two decimals.
func (s *AnalyticsService) GetDashboardStats(userID uint) (*DashboardStats, error) {
	links, err := s.linkRepo.GetLinksByUser(userID)
	if err != nil {
		return nil, err
	}

	var totalClicks int64
	linkIDs := make([]uint, 0, len(links))
	for _, l := range links {
		totalClicks += l.Clicks
		linkIDs = append(linkIDs, l.ID)
	}

	clicks, err := s.clickRepo.GetClicksByLinkIDs(linkIDs)
	if err != nil {
		return nil, err
	}

	uniqueIPs := make(map[string]struct{})
	for _, c := range clicks {
		uniqueIPs[c.IPAddress] = struct{}{}
	}

	conversionRate := 0.0
	if totalClicks > 0 {
		conversionRate = float64(len(uniqueIPs)) / float64(totalClicks) * 100
		conversionRate = math.Round(conversionRate*100) / 100
	}

	return &DashboardStats{
		TotalLinks:     len(links),
		TotalClicks:    totalClicks,
		UniqueVisitors: len(uniqueIPs),
		ConversionRate: conversionRate,
	}, nil
}

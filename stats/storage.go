// Package stats keeps lightweight usage bookkeeping for the audit
// service, persisted as a JSON file per data directory.
package stats

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MonthlyStats aggregates audit activity for one month.
type MonthlyStats struct {
	Audits          int            `json:"audits"`
	Errors          int            `json:"errors"`
	TotalDurationMs float64        `json:"total_duration_ms"`
	PopularHosts    map[string]int `json:"popular_hosts"`
	LastUpdated     time.Time      `json:"last_updated"`
}

// Storage handles persistent storage of statistics.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
}

// NewStorage creates a statistics storage backed by dataDir/stats.json.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	// Write to a temporary file first, then rename atomically.
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			s.save()
			return
		}
	}
}

func getCurrentMonth() string {
	return time.Now().Format("2006-01")
}

func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// Write already pending.
	}
}

// hostOf reduces an audited URL to its host for the popularity counter,
// skipping local addresses.
func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	if host == "" || strings.Contains(host, "localhost") || strings.HasPrefix(host, "127.") {
		return ""
	}
	return strings.TrimPrefix(host, "www.")
}

// RecordAudit books one audit request into the current month.
func (s *Storage) RecordAudit(pageURL string, durationMs float64, hasError bool) {
	month := getCurrentMonth()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{PopularHosts: make(map[string]int)}
		s.stats[month] = stats
	}
	if stats.PopularHosts == nil {
		stats.PopularHosts = make(map[string]int)
	}

	stats.Audits++
	stats.TotalDurationMs += durationMs
	if hasError {
		stats.Errors++
	}
	if host := hostOf(pageURL); host != "" {
		stats.PopularHosts[host]++
	}
	stats.LastUpdated = time.Now()

	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// GetCurrentStats returns statistics for the current month.
func (s *Storage) GetCurrentStats() MonthlyStats {
	month := getCurrentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[month]; exists {
		return *stats
	}
	return MonthlyStats{}
}

// AverageDurationMs returns the mean audit duration for a month's stats.
func (m MonthlyStats) AverageDurationMs() float64 {
	if m.Audits == 0 {
		return 0
	}
	return m.TotalDurationMs / float64(m.Audits)
}

// ErrorRate returns the error percentage for a month's stats.
func (m MonthlyStats) ErrorRate() float64 {
	if m.Audits == 0 {
		return 0
	}
	return float64(m.Errors) / float64(m.Audits) * 100
}

// topHosts returns the n most audited hosts, most frequent first.
func (m MonthlyStats) topHosts(n int) map[string]int {
	type entry struct {
		host  string
		count int
	}
	entries := make([]entry, 0, len(m.PopularHosts))
	for host, count := range m.PopularHosts {
		entries = append(entries, entry{host, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].host < entries[j].host
	})

	result := make(map[string]int)
	for i, e := range entries {
		if i >= n {
			break
		}
		result[e.host] = e.count
	}
	return result
}

// Snapshot returns the current month as a response payload. Host-level
// detail is only included in dev mode.
func (s *Storage) Snapshot(devMode bool) map[string]interface{} {
	current := s.GetCurrentStats()

	snapshot := map[string]interface{}{
		"audits":            current.Audits,
		"errorRate":         current.ErrorRate(),
		"averageDurationMs": current.AverageDurationMs(),
	}
	if devMode {
		snapshot["popularHosts"] = current.topHosts(5)
	}
	return snapshot
}

// Cleanup drops everything except the current and previous month.
func (s *Storage) Cleanup() {
	now := time.Now()
	currentMonth := now.Format("2006-01")
	previousMonth := now.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key := range s.stats {
		if key != currentMonth && key != previousMonth {
			delete(s.stats, key)
		}
	}

	s.requestWrite()
}

// GetMonthlyStats returns statistics for a specific "YYYY-MM" month.
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// Shutdown stops the background writer after a final save.
func (s *Storage) Shutdown() error {
	close(s.done)
	return s.save()
}

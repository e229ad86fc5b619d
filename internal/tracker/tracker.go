// Package tracker models the JSON tracker files maintained by the job-hunt
// agent: job applications and cold emails.
package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tracker file names inside the repository root.
const (
	ApplicationsFile = "job_applications.json"
	ColdEmailsFile   = "cold_emails.json"
)

// ValidApplicationStatuses lists the allowed status values for a job application.
var ValidApplicationStatuses = []string{
	"applied", "interview_scheduled", "interviewed", "rejected", "offer", "accepted",
}

// ValidColdEmailStatuses lists the allowed status values for a cold email.
var ValidColdEmailStatuses = []string{
	"sent", "responded", "no_response", "follow_up_sent",
}

// Application is one tracked job application.
type Application struct {
	ID                   string   `json:"id"`
	Company              string   `json:"company"`
	Position             string   `json:"position"`
	Status               string   `json:"status"`
	DateApplied          string   `json:"date_applied"`
	ApplicationDeadline  string   `json:"application_deadline,omitempty"`
	JobDescription       string   `json:"job_description,omitempty"`
	CoverLetterGenerated bool     `json:"cover_letter_generated"`
	NextAction           string   `json:"next_action,omitempty"`
	Notes                string   `json:"notes,omitempty"`
	Contacts             []string `json:"contacts,omitempty"`
	LastUpdated          string   `json:"last_updated"`
}

// Applications is the document stored in job_applications.json.
type Applications struct {
	Applications []Application `json:"applications"`
}

// ColdEmail is one tracked outreach email.
type ColdEmail struct {
	ID             string   `json:"id"`
	RecipientName  string   `json:"recipient_name"`
	RecipientEmail string   `json:"recipient_email"`
	Institution    string   `json:"institution,omitempty"`
	Subject        string   `json:"subject,omitempty"`
	Purpose        string   `json:"purpose,omitempty"`
	DateSent       string   `json:"date_sent"`
	Status         string   `json:"status"`
	ResponseDate   *string  `json:"response_date"`
	FollowUpDates  []string `json:"follow_up_dates"`
	Notes          string   `json:"notes,omitempty"`
	LastUpdated    string   `json:"last_updated"`
}

// ColdEmails is the document stored in cold_emails.json.
type ColdEmails struct {
	Emails []ColdEmail `json:"emails"`
}

// LoadApplications reads job_applications.json from dir. A missing file is
// created with the empty document; a corrupt file is renamed to a timestamped
// backup and replaced with a fresh one.
func LoadApplications(dir string) (*Applications, error) {
	doc := &Applications{Applications: []Application{}}
	if err := loadDocument(filepath.Join(dir, ApplicationsFile), doc); err != nil {
		return nil, err
	}
	if doc.Applications == nil {
		doc.Applications = []Application{}
	}
	return doc, nil
}

// LoadColdEmails reads cold_emails.json from dir, with the same missing and
// corrupt file handling as LoadApplications.
func LoadColdEmails(dir string) (*ColdEmails, error) {
	doc := &ColdEmails{Emails: []ColdEmail{}}
	if err := loadDocument(filepath.Join(dir, ColdEmailsFile), doc); err != nil {
		return nil, err
	}
	if doc.Emails == nil {
		doc.Emails = []ColdEmail{}
	}
	return doc, nil
}

// loadDocument fills doc from path. doc must arrive holding the empty
// initial document, which is also what gets written for a new file.
func loadDocument(path string, doc interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return writeDocument(path, doc)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	if jsonErr := json.Unmarshal(data, doc); jsonErr != nil {
		// Corrupt tracker: keep the bytes around and start fresh.
		if err := backupCorrupt(path); err != nil {
			return err
		}
		return writeDocument(path, doc)
	}
	return nil
}

func writeDocument(path string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// backupCorrupt renames a corrupt tracker to <stem>_backup_<timestamp>.json.
func backupCorrupt(path string) error {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	backup := filepath.Join(filepath.Dir(path),
		fmt.Sprintf("%s_backup_%s.json", stem, time.Now().Format("20060102_150405")))
	if err := os.Rename(path, backup); err != nil {
		return fmt.Errorf("failed to back up corrupt tracker %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Summary aggregates tracker entries by status.
type Summary struct {
	Total    int
	ByStatus map[string]int
}

// Summarize returns the per-status counts for the applications document.
func (a *Applications) Summarize() Summary {
	s := Summary{ByStatus: map[string]int{}}
	for _, app := range a.Applications {
		s.Total++
		s.ByStatus[app.Status]++
	}
	return s
}

// Summarize returns the per-status counts for the cold emails document.
func (c *ColdEmails) Summarize() Summary {
	s := Summary{ByStatus: map[string]int{}}
	for _, email := range c.Emails {
		s.Total++
		s.ByStatus[email.Status]++
	}
	return s
}

// UnknownStatuses returns the statuses present in the document that are not
// in ValidApplicationStatuses, each reported once.
func (a *Applications) UnknownStatuses() []string {
	statuses := make([]string, 0, len(a.Applications))
	for _, app := range a.Applications {
		statuses = append(statuses, app.Status)
	}
	return unknownStatuses(statuses, ValidApplicationStatuses)
}

// UnknownStatuses returns the statuses present in the document that are not
// in ValidColdEmailStatuses, each reported once.
func (c *ColdEmails) UnknownStatuses() []string {
	statuses := make([]string, 0, len(c.Emails))
	for _, email := range c.Emails {
		statuses = append(statuses, email.Status)
	}
	return unknownStatuses(statuses, ValidColdEmailStatuses)
}

func unknownStatuses(statuses, valid []string) []string {
	validSet := make(map[string]struct{}, len(valid))
	for _, s := range valid {
		validSet[s] = struct{}{}
	}

	seen := map[string]struct{}{}
	var unknown []string
	for _, s := range statuses {
		if _, ok := validSet[s]; ok {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unknown = append(unknown, s)
	}
	return unknown
}

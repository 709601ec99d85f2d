// Package domain defines the persistence models for the interview-question
// catalog, per-user progress tracking, and company requests. These types are
// mapped with GORM and form the core data layer of the application.
package domain

import (
	"time"
)

// Difficulty levels accepted for a Question.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// ValidDifficulty reports whether d is one of the accepted difficulty levels.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question represents one catalog entry: a coding-interview question plus the
// companies known to have asked it. The pair (title, link) is the natural key
// and is unique across the table; the storage-assigned UUID never changes.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Title / Link: natural key; both required, trimmed at the edges.
//   - Difficulty: Easy, Medium, or Hard (enforced by DB constraint).
//   - Topics: unordered tag set, stored as a JSON text column.
//   - AcceptanceRate / Frequency: non-negative, default 0.
//   - Companies: tagging history, insertion-ordered; one row per company.
//   - IsActive: inactive rows are excluded from all reads but never deleted
//     by the ingestion path.
type Question struct {
	ID             string       `json:"id"             gorm:"type:char(36);primaryKey"`
	Title          string       `json:"title"          gorm:"type:varchar(512);not null;uniqueIndex:ux_questions_title_link,priority:1"`
	Difficulty     string       `json:"difficulty"     gorm:"type:varchar(16);not null;check:difficulty IN ('Easy','Medium','Hard')"`
	Topics         StringList   `json:"topics"         gorm:"type:text"`
	Link           string       `json:"link"           gorm:"type:varchar(1024);not null;uniqueIndex:ux_questions_title_link,priority:2"`
	AcceptanceRate float64      `json:"acceptanceRate" gorm:"not null;default:0"`
	Frequency      float64      `json:"frequency"      gorm:"not null;default:0"`
	IsActive       bool         `json:"isActive"       gorm:"not null;default:true"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`

	// Companies are cascade-deleted with their question.
	Companies []CompanyTag `json:"companies" gorm:"foreignKey:QuestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Question.
func (Question) TableName() string { return "questions" }

// CompanyTag links a Question to one company's interview history with it.
// A question carries at most one tag per company; uniqueness is enforced on
// (question_id, company_key) where CompanyKey is the case-folded name, so a
// concurrent "add tag if absent" resolves at the database rather than through
// an application-level read-modify-write.
//
// The display casing of Company is whatever was supplied when the tag was
// first created; later uploads never rewrite an existing tag.
type CompanyTag struct {
	ID            string       `json:"-"             gorm:"type:char(36);primaryKey"`
	QuestionID    string       `json:"-"             gorm:"type:char(36);not null;uniqueIndex:ux_company_tags_question_company,priority:1"`
	Company       string       `json:"company"       gorm:"type:varchar(128);not null"`
	CompanyKey    string       `json:"-"             gorm:"type:varchar(128);not null;index;uniqueIndex:ux_company_tags_question_company,priority:2"`
	LastAskedDate *time.Time   `json:"lastAskedDate"`
	AskedWithin   AskedWithin  `json:"askedWithin,omitempty" gorm:"type:varchar(16)"`
	Frequency     float64      `json:"frequency"     gorm:"not null;default:0"`
	CreatedAt     time.Time    `json:"-"`
}

// TableName returns the database table name for CompanyTag.
func (CompanyTag) TableName() string { return "company_tags" }

// Tracking records one user's progress on one question. The (user, question)
// pair is unique; solved and revise are independent toggles.
type Tracking struct {
	ID         string     `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID     string     `json:"userId"     gorm:"type:varchar(64);not null;uniqueIndex:ux_tracking_user_question,priority:1"`
	QuestionID string     `json:"questionId" gorm:"type:char(36);not null;index;uniqueIndex:ux_tracking_user_question,priority:2"`
	IsSolved   bool       `json:"isSolved"   gorm:"not null;default:false"`
	IsRevise   bool       `json:"isRevise"   gorm:"not null;default:false"`
	Notes      string     `json:"notes"      gorm:"type:varchar(1000)"`
	SolvedAt   *time.Time `json:"solvedAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// Question is preloaded for list/stats responses. Tracking rows are
	// cascade-deleted if the question is removed.
	Question *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Tracking.
func (Tracking) TableName() string { return "tracking" }

// Status collapses the two toggles into a single label for clients that still
// expect the legacy status field.
func (t Tracking) Status() string {
	switch {
	case t.IsSolved && t.IsRevise:
		return "both"
	case t.IsSolved:
		return "solved"
	case t.IsRevise:
		return "revisiting"
	}
	return "unsolved"
}

// Company-request lifecycle states.
const (
	RequestStatusPending   = "pending"
	RequestStatusCompleted = "completed"
	RequestStatusRejected  = "rejected"
)

// ValidRequestStatus reports whether s is an accepted request status.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusCompleted, RequestStatusRejected:
		return true
	}
	return false
}

// CompanyRequest is a user's ask to have a company's questions added to the
// catalog, carrying a lightweight message thread between the requester and
// admins.
type CompanyRequest struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"userId"    gorm:"type:varchar(64);not null;index"`
	Company   string    `json:"company"   gorm:"type:varchar(128);not null"`
	Status    string    `json:"status"    gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','completed','rejected')"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Messages are cascade-deleted with their request.
	Messages []RequestMessage `json:"messages" gorm:"foreignKey:RequestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for CompanyRequest.
func (CompanyRequest) TableName() string { return "company_requests" }

// RequestMessage is one entry in a request's thread. MaxRequestMessageLen caps
// the content length (enforced at the service layer).
type RequestMessage struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	RequestID string    `json:"-"         gorm:"type:char(36);not null;index"`
	SenderID  string    `json:"senderId"  gorm:"type:varchar(64);not null"`
	Content   string    `json:"content"   gorm:"type:varchar(500);not null"`
	IsSystem  bool      `json:"isSystemMessage" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the database table name for RequestMessage.
func (RequestMessage) TableName() string { return "request_messages" }

// MaxRequestMessageLen is the maximum rune length of a request message.
const MaxRequestMessageLen = 500

// MaxTrackingNotesLen is the maximum rune length of tracking notes.
const MaxTrackingNotesLen = 1000

// MetadataKeyQuestionsLastUpdated is the singleton key stamped after every
// successful catalog write. Clients poll it to invalidate their caches.
const MetadataKeyQuestionsLastUpdated = "questions_last_updated"

// Metadata is a process-wide keyed record. Exactly one logical row exists per
// key; values are unix-millisecond timestamps.
type Metadata struct {
	Key       string    `json:"key"       gorm:"type:varchar(64);primaryKey"`
	Value     int64     `json:"value"     gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Metadata.
func (Metadata) TableName() string { return "metadata" }

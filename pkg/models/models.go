package models

// Domain models matching the database schema in db/migrations/*/0001_init.sql

// Role is deliberately an open string type; no role validation is performed.
type Role string

const (
	RoleEmployee  Role = "employee"
	RoleRecruiter Role = "recruiter"
)

// ApplicationStatus is free text; StatusReceived is only the initial value.
type ApplicationStatus string

const StatusReceived ApplicationStatus = "Received"

type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password"`
	Role         Role   `json:"role" db:"role"`
	Name         string `json:"name" db:"name"`
	Tokens       int    `json:"tokens" db:"tokens"`
	// WalletBalance is nil unless the wallet feature is enabled.
	WalletBalance   *float64 `json:"wallet_balance,omitempty" db:"wallet_balance"`
	Company         string   `json:"company" db:"company"`
	Designation     string   `json:"designation" db:"designation"`
	ResumeText      *string  `json:"resume_text" db:"resume_text"`
	IsPhoneVerified bool     `json:"is_phone_verified" db:"is_phone_verified"`
	IsEmailVerified bool     `json:"is_email_verified" db:"is_email_verified"`
}

type Job struct {
	ID             int64  `json:"id" db:"id"`
	Title          string `json:"title" db:"title"`
	Company        string `json:"company" db:"company"`
	Location       string `json:"location" db:"location"`
	Salary         string `json:"salary" db:"salary"`
	Description    string `json:"description" db:"description"`
	Experience     string `json:"experience" db:"experience"`
	Skills         string `json:"skills" db:"skills"`
	ReferralBonus  int    `json:"referral_bonus" db:"referral_bonus"`
	RecruiterEmail string `json:"recruiter_email" db:"recruiter_email"`
	PostedDate     string `json:"posted_date" db:"posted_date"`
}

// Application keeps a snapshot of the job title and company taken at apply time.
type Application struct {
	ID            int64             `json:"id" db:"id"`
	JobID         int64             `json:"job_id" db:"job_id"`
	UserEmail     string            `json:"user_email" db:"user_email"`
	ReferrerEmail *string           `json:"referrer_email" db:"referrer_email"`
	JobTitle      string            `json:"job_title" db:"job_title"`
	Company       string            `json:"company" db:"company"`
	Status        ApplicationStatus `json:"status" db:"status"`
	Date          string            `json:"date" db:"date"`
	AIScore       int               `json:"ai_score" db:"ai_score"`
}

// Candidate is an application as seen by the recruiter owning the job.
type Candidate struct {
	Application
	ReferralBonus int `json:"referral_bonus" db:"referral_bonus"`
}

type NewsItem struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Source    string `json:"source" db:"source"`
	URL       string `json:"url" db:"url"`
	Summary   string `json:"summary" db:"summary"`
	Published string `json:"published" db:"published"`
}

type InterviewQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

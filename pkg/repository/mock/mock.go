// Package mock provides an in-memory implementation of the repository
// interfaces for handler and service tests.
package mock

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

var _ repository.UserRepo = (*Store)(nil)
var _ repository.JobRepo = (*Store)(nil)
var _ repository.ApplicationRepo = (*Store)(nil)
var _ repository.NewsRepo = (*Store)(nil)

// Store keeps every entity in memory behind one mutex. Setting Err makes
// every call fail with it.
type Store struct {
	mu sync.Mutex

	Err error

	users  map[string]*models.User
	jobs   map[int64]*models.Job
	apps   map[int64]*models.Application
	News   []models.NewsItem
	nextID int64
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*models.User),
		jobs:  make(map[int64]*models.Job),
		apps:  make(map[int64]*models.Application),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func today() string {
	return time.Now().Format(time.DateOnly)
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if _, ok := s.users[u.Email]; ok {
		return 0, repository.ErrDuplicateEmail
	}

	c := *u
	c.ID = s.id()
	s.users[u.Email] = &c
	return c.ID, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[email]
	if !ok {
		return nil, nil
	}

	c := *u
	var wallet float64
	if u.WalletBalance != nil {
		wallet = *u.WalletBalance
	}
	c.WalletBalance = &wallet
	return &c, nil
}

func (s *Store) SetResume(ctx context.Context, email, text string, credit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.ResumeText = &text
	u.Tokens += credit
	return nil
}

func (s *Store) CreditTokens(ctx context.Context, email string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Tokens += amount
	return nil
}

func (s *Store) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if j.PostedDate == "" {
		j.PostedDate = today()
	}
	j.ID = s.id()
	c := *j
	s.jobs[c.ID] = &c
	return c.ID, nil
}

func (s *Store) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	c := *j
	return &c, nil
}

func (s *Store) UpdateJob(ctx context.Context, j *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	cur, ok := s.jobs[j.ID]
	if !ok {
		return repository.ErrJobNotFound
	}
	cur.Title = j.Title
	cur.Location = j.Location
	cur.Salary = j.Salary
	cur.Description = j.Description
	cur.Experience = j.Experience
	cur.Skills = j.Skills
	cur.ReferralBonus = j.ReferralBonus
	return nil
}

func (s *Store) DeleteJob(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.jobs, id)
	return nil
}

func (s *Store) ListJobs(ctx context.Context, search string) ([]models.Job, error) {
	term := strings.ToLower(search)
	return s.listJobs(func(j *models.Job) bool {
		return term == "" || strings.Contains(strings.ToLower(j.Title), term) || strings.Contains(strings.ToLower(j.Company), term)
	})
}

func (s *Store) ListJobsByRecruiter(ctx context.Context, email string) ([]models.Job, error) {
	return s.listJobs(func(j *models.Job) bool { return j.RecruiterEmail == email })
}

func (s *Store) listJobs(keep func(*models.Job) bool) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Job{}
	for _, j := range s.jobs {
		if keep(j) {
			out = append(out, *j)
		}
	}
	slices.SortFunc(out, func(a, b models.Job) int { return int(b.ID - a.ID) })
	return out, nil
}

func (s *Store) SubmitApplication(ctx context.Context, a *models.Application, cost int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	u, ok := s.users[a.UserEmail]
	if !ok {
		return 0, repository.ErrUserNotFound
	}
	if u.Tokens < cost {
		return 0, repository.ErrInsufficientFunds
	}
	u.Tokens -= cost

	if a.Date == "" {
		a.Date = today()
	}
	if a.Status == "" {
		a.Status = models.StatusReceived
	}
	a.ID = s.id()
	c := *a
	s.apps[c.ID] = &c
	return c.ID, nil
}

func (s *Store) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.apps[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if a, ok := s.apps[id]; ok {
		a.Status = status
	}
	return nil
}

func (s *Store) ListApplicationsByUser(ctx context.Context, email string) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Application{}
	for _, a := range s.apps {
		if a.UserEmail == email {
			out = append(out, *a)
		}
	}
	slices.SortFunc(out, func(a, b models.Application) int { return int(b.ID - a.ID) })
	return out, nil
}

func (s *Store) ListCandidatesByRecruiter(ctx context.Context, email string) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Candidate{}
	for _, a := range s.apps {
		j, ok := s.jobs[a.JobID]
		if !ok || j.RecruiterEmail != email {
			continue
		}
		out = append(out, models.Candidate{Application: *a, ReferralBonus: j.ReferralBonus})
	}
	slices.SortFunc(out, func(a, b models.Candidate) int { return int(b.ID - a.ID) })
	return out, nil
}

func (s *Store) ListNews(ctx context.Context) ([]models.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return slices.Clone(s.News), nil
}

// Tokens returns the balance of email, or -1 when the user does not exist.
func (s *Store) Tokens(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return -1
	}
	return u.Tokens
}

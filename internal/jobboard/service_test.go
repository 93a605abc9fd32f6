package jobboard_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbfs "github.com/garnizeh/jobboard/db"
	"github.com/garnizeh/jobboard/internal/ai"
	"github.com/garnizeh/jobboard/internal/auth"
	dbpkg "github.com/garnizeh/jobboard/internal/db"
	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/internal/repository/sqlrepo"
	"github.com/garnizeh/jobboard/pkg/models"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(string, []byte) (string, error) { return f.text, f.err }

type fakeInterviewer struct {
	mu     sync.Mutex
	resume string
}

func (f *fakeInterviewer) Question(ctx context.Context, resumeText string) models.InterviewQuestion {
	f.mu.Lock()
	f.resume = resumeText
	f.mu.Unlock()
	return ai.FallbackQuestion()
}

type fixedScorer int

func (s fixedScorer) Score(string, int64) int { return int(s) }

type testEnv struct {
	svc  *jobboard.Service
	repo *sqlrepo.SQLRepo
	iv   *fakeInterviewer
}

func newEnv(t *testing.T, mutate func(*jobboard.Deps)) *testEnv {
	t.Helper()
	ctx := context.Background()

	d, err := dbpkg.New(ctx, dbpkg.DialectSQLite, filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, dbpkg.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles))

	repo := sqlrepo.New(d, nil)
	iv := &fakeInterviewer{}
	deps := jobboard.Deps{
		Users:        repo,
		Jobs:         repo,
		Applications: repo,
		News:         repo,
		Tokens:       auth.NewTokenIssuer("testsecret", time.Hour),
		Extractor:    fakeExtractor{text: "Go developer"},
		Interviewer:  iv,
	}
	if mutate != nil {
		mutate(&deps)
	}

	svc, err := jobboard.NewService(deps)
	require.NoError(t, err)
	return &testEnv{svc: svc, repo: repo, iv: iv}
}

func (e *testEnv) signup(t *testing.T, email string) {
	t.Helper()
	_, err := e.svc.Signup(context.Background(), jobboard.SignupInput{Email: email, Password: "pw", Role: models.RoleEmployee, Name: "Test"})
	require.NoError(t, err)
}

func (e *testEnv) tokens(t *testing.T, email string) int {
	t.Helper()
	u, err := e.svc.GetUser(context.Background(), email)
	require.NoError(t, err)
	return u.Tokens
}

// setTokens applies a signed delta to reach want.
func (e *testEnv) setTokens(t *testing.T, email string, want int) {
	t.Helper()
	require.NoError(t, e.repo.CreditTokens(context.Background(), email, want-e.tokens(t, email)))
}

func TestNewService_RequiresDeps(t *testing.T) {
	_, err := jobboard.NewService(jobboard.Deps{})
	assert.Error(t, err)
}

func TestSignup(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	sess, err := env.svc.Signup(ctx, jobboard.SignupInput{Email: "alice@example.com", Password: "pw", Role: models.RoleRecruiter, Name: "Alice", Company: "Acme"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, jobboard.SignupTokens, sess.User.Tokens)
	assert.Empty(t, sess.User.PasswordHash)
	assert.Nil(t, sess.User.WalletBalance, "wallet is hidden when the feature is off")

	_, err = env.svc.Signup(ctx, jobboard.SignupInput{Email: "alice@example.com", Password: "other", Name: "Mallory", Company: "Evil"})
	assert.ErrorIs(t, err, jobboard.ErrDuplicateEmail)

	u, err := env.svc.GetUser(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "Acme", u.Company)

	// original password still works, so the row was not touched
	_, err = env.svc.Login(ctx, "alice@example.com", "pw")
	assert.NoError(t, err)

	_, err = env.svc.Signup(ctx, jobboard.SignupInput{Email: "", Password: "pw"})
	assert.ErrorIs(t, err, jobboard.ErrInvalidInput)
}

func TestSignup_WalletEnabled(t *testing.T) {
	env := newEnv(t, func(d *jobboard.Deps) { d.WalletEnabled = true })

	sess, err := env.svc.Signup(context.Background(), jobboard.SignupInput{Email: "w@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, sess.User.WalletBalance)
	assert.Zero(t, *sess.User.WalletBalance)
}

func TestLogin(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	env.signup(t, "bob@example.com")

	sess, err := env.svc.Login(ctx, "bob@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", sess.User.Email)
	assert.Empty(t, sess.User.PasswordHash)

	email, err := auth.NewTokenIssuer("testsecret", time.Hour).Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)

	_, err = env.svc.Login(ctx, "bob@example.com", "wrong")
	assert.ErrorIs(t, err, jobboard.ErrInvalidCredentials)

	_, err = env.svc.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, jobboard.ErrInvalidCredentials)
}

func TestSignup_PasswordLength(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, jobboard.SignupInput{Email: "long@example.com", Password: strings.Repeat("p", 80)})
	assert.ErrorIs(t, err, jobboard.ErrInvalidInput)

	_, err = env.svc.GetUser(ctx, "long@example.com")
	assert.ErrorIs(t, err, jobboard.ErrUserNotFound, "rejected signup must not create the user")

	longest := strings.Repeat("p", 72)
	_, err = env.svc.Signup(ctx, jobboard.SignupInput{Email: "max@example.com", Password: longest})
	require.NoError(t, err)
	_, err = env.svc.Login(ctx, "max@example.com", longest)
	assert.NoError(t, err)
}

func TestEmailWhitespace(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	sess, err := env.svc.Signup(ctx, jobboard.SignupInput{Email: " pad@example.com ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "pad@example.com", sess.User.Email)

	_, err = env.svc.Login(ctx, " pad@example.com ", "pw")
	assert.NoError(t, err)

	u, err := env.svc.GetUser(ctx, "\tpad@example.com\n")
	require.NoError(t, err)
	assert.Equal(t, "pad@example.com", u.Email)

	msg, err := env.svc.SubmitInterviewAnswer(ctx, " pad@example.com", true)
	require.NoError(t, err)
	assert.Equal(t, jobboard.MsgCorrectAnswer, msg)
	assert.Equal(t, jobboard.SignupTokens+jobboard.InterviewCredit, env.tokens(t, "pad@example.com"))
}

func TestGetUser_NotFound(t *testing.T) {
	env := newEnv(t, nil)

	_, err := env.svc.GetUser(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, jobboard.ErrUserNotFound)
	assert.ErrorIs(t, err, jobboard.ErrNotFound)
}

func TestApplicationCost(t *testing.T) {
	tests := []struct {
		bonus int
		want  int
	}{
		{bonus: 0, want: 0},
		{bonus: 1, want: 6},
		{bonus: 5000, want: 6},
	}

	for _, tt := range tests {
		env := newEnv(t, nil)
		ctx := context.Background()
		env.signup(t, "cara@example.com")

		job, err := env.svc.CreateJob(ctx, models.Job{Title: "Dev", Company: "Acme", ReferralBonus: tt.bonus})
		require.NoError(t, err)

		res, err := env.svc.SubmitApplication(ctx, "cara@example.com", job.ID)
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Cost)
		assert.Equal(t, jobboard.SignupTokens-tt.want, env.tokens(t, "cara@example.com"), "bonus %d", tt.bonus)
	}
}

func TestSubmitApplication_InsufficientFunds(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	env.signup(t, "dan@example.com")
	env.setTokens(t, "dan@example.com", 5)

	job, err := env.svc.CreateJob(ctx, models.Job{Title: "Dev", Company: "Acme", ReferralBonus: 100})
	require.NoError(t, err)

	_, err = env.svc.SubmitApplication(ctx, "dan@example.com", job.ID)
	assert.ErrorIs(t, err, jobboard.ErrInsufficientFunds)
	assert.Equal(t, 5, env.tokens(t, "dan@example.com"))

	apps, err := env.svc.ListUserApplications(ctx, "dan@example.com")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestSubmitApplication_Errors(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	env.signup(t, "erin@example.com")

	_, err := env.svc.SubmitApplication(ctx, "erin@example.com", 999)
	assert.ErrorIs(t, err, jobboard.ErrJobNotFound)

	job, err := env.svc.CreateJob(ctx, models.Job{Title: "Dev", Company: "Acme"})
	require.NoError(t, err)
	_, err = env.svc.SubmitApplication(ctx, "ghost@example.com", job.ID)
	assert.ErrorIs(t, err, jobboard.ErrUserNotFound)

	_, err = env.svc.SubmitApplication(ctx, "", job.ID)
	assert.ErrorIs(t, err, jobboard.ErrInvalidInput)
}

func TestSubmitApplication_Record(t *testing.T) {
	env := newEnv(t, func(d *jobboard.Deps) { d.Scorer = fixedScorer(85) })
	ctx := context.Background()
	env.signup(t, "fay@example.com")

	job, err := env.svc.CreateJob(ctx, models.Job{Title: "Dev", Company: "Acme", RecruiterEmail: "r@acme.com", ReferralBonus: 10})
	require.NoError(t, err)

	res, err := env.svc.SubmitApplication(ctx, "fay@example.com", job.ID)
	require.NoError(t, err)
	assert.Equal(t, 85, res.Score)

	apps, err := env.svc.ListUserApplications(ctx, "fay@example.com")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, models.StatusReceived, apps[0].Status)
	assert.Equal(t, "Dev", apps[0].JobTitle)
	assert.Equal(t, "Acme", apps[0].Company)
	assert.Equal(t, time.Now().Format(time.DateOnly), apps[0].Date)

	cands, err := env.svc.ListRecruiterCandidates(ctx, "r@acme.com")
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, 10, cands[0].ReferralBonus)

	require.NoError(t, env.svc.UpdateApplicationStatus(ctx, res.ApplicationID, "Hired"))
	apps, err = env.svc.ListUserApplications(ctx, "fay@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatus("Hired"), apps[0].Status)
}

func TestSubmitApplication_Concurrent(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	env.signup(t, "gus@example.com")
	env.setTokens(t, "gus@example.com", jobboard.PremiumApplyCost)

	job, err := env.svc.CreateJob(ctx, models.Job{Title: "Dev", Company: "Acme", ReferralBonus: 1})
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.svc.SubmitApplication(ctx, "gus@example.com", job.ID)
		}()
	}
	wg.Wait()

	var ok, short int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, jobboard.ErrInsufficientFunds):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, short)
	assert.Equal(t, 0, env.tokens(t, "gus@example.com"))
}

func TestListJobs_Search(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	_, err := env.svc.CreateJob(ctx, models.Job{Title: "Senior Engineer", Company: "Acme"})
	require.NoError(t, err)
	_, err = env.svc.CreateJob(ctx, models.Job{Title: "Sales Rep", Company: "Acme"})
	require.NoError(t, err)
	_, err = env.svc.CreateJob(ctx, models.Job{Title: "Designer", Company: "Engineering Partners"})
	require.NoError(t, err)

	jobs, err := env.svc.ListJobs(ctx, "Engineer")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	for _, j := range jobs {
		assert.NotEqual(t, "Sales Rep", j.Title)
	}

	all, err := env.svc.ListJobs(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Designer", all[0].Title, "newest first")
}

func TestJobCRUD(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	_, err := env.svc.CreateJob(ctx, models.Job{Company: "Acme"})
	assert.ErrorIs(t, err, jobboard.ErrInvalidInput)

	job, err := env.svc.CreateJob(ctx, models.Job{Title: "Dev", Company: "Acme", RecruiterEmail: "r@acme.com", PostedDate: "1999-01-01"})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(time.DateOnly), job.PostedDate, "posted date is server-set")

	require.NoError(t, env.svc.UpdateJob(ctx, job.ID, models.Job{Title: "Lead Dev", Salary: "100k"}))
	mine, err := env.svc.ListRecruiterJobs(ctx, "r@acme.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Lead Dev", mine[0].Title)
	assert.Equal(t, "Acme", mine[0].Company)

	assert.ErrorIs(t, env.svc.UpdateJob(ctx, 999, models.Job{Title: "x"}), jobboard.ErrJobNotFound)

	require.NoError(t, env.svc.DeleteJob(ctx, job.ID))
	mine, err = env.svc.ListRecruiterJobs(ctx, "r@acme.com")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestDeleteJob_KeepsApplications(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	env.signup(t, "hal@example.com")

	job, err := env.svc.CreateJob(ctx, models.Job{Title: "Dev", Company: "Acme"})
	require.NoError(t, err)
	_, err = env.svc.SubmitApplication(ctx, "hal@example.com", job.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteJob(ctx, job.ID))

	apps, err := env.svc.ListUserApplications(ctx, "hal@example.com")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, job.ID, apps[0].JobID)
}

func TestUploadResume(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "short", text: "Go developer"},
		{name: "long", text: strings.Repeat("a", 9000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, func(d *jobboard.Deps) { d.Extractor = fakeExtractor{text: tt.text} })
			env.signup(t, "ivy@example.com")

			require.NoError(t, env.svc.UploadResume(context.Background(), "ivy@example.com", "cv.pdf", []byte("x")))
			assert.Equal(t, jobboard.SignupTokens+jobboard.ResumeCredit, env.tokens(t, "ivy@example.com"))

			u, err := env.svc.GetUser(context.Background(), "ivy@example.com")
			require.NoError(t, err)
			require.NotNil(t, u.ResumeText)
			assert.LessOrEqual(t, len([]rune(*u.ResumeText)), 5000)
		})
	}
}

func TestUploadResume_Failures(t *testing.T) {
	env := newEnv(t, func(d *jobboard.Deps) { d.Extractor = fakeExtractor{err: errors.New("corrupt")} })
	ctx := context.Background()
	env.signup(t, "jay@example.com")

	err := env.svc.UploadResume(ctx, "jay@example.com", "cv.pdf", []byte("x"))
	assert.ErrorIs(t, err, jobboard.ErrProcessingFailed)
	assert.Equal(t, jobboard.SignupTokens, env.tokens(t, "jay@example.com"))

	u, err := env.svc.GetUser(ctx, "jay@example.com")
	require.NoError(t, err)
	assert.Nil(t, u.ResumeText)

	env = newEnv(t, nil)
	assert.ErrorIs(t, env.svc.UploadResume(ctx, "ghost@example.com", "cv.txt", []byte("x")), jobboard.ErrUserNotFound)
}

func TestInterview(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	env.signup(t, "kim@example.com")

	q := env.svc.GenerateInterviewQuestion(ctx, "kim@example.com")
	assert.Equal(t, ai.FallbackQuestion(), q)
	assert.Empty(t, env.iv.resume, "no resume yet")

	require.NoError(t, env.svc.UploadResume(ctx, "kim@example.com", "cv.txt", []byte("x")))
	env.svc.GenerateInterviewQuestion(ctx, "kim@example.com")
	assert.Equal(t, "Go developer", env.iv.resume)

	before := env.tokens(t, "kim@example.com")
	msg, err := env.svc.SubmitInterviewAnswer(ctx, "kim@example.com", true)
	require.NoError(t, err)
	assert.Equal(t, "Correct! +5 Credits", msg)
	assert.Equal(t, before+5, env.tokens(t, "kim@example.com"))

	msg, err = env.svc.SubmitInterviewAnswer(ctx, "kim@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, "Incorrect.", msg)
	assert.Equal(t, before+5, env.tokens(t, "kim@example.com"))

	_, err = env.svc.SubmitInterviewAnswer(ctx, "ghost@example.com", true)
	assert.ErrorIs(t, err, jobboard.ErrUserNotFound)
}

func TestExportAndNews(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	b, err := env.svc.ExportRecruiterCandidates(ctx, "r@acme.com")
	require.NoError(t, err)
	assert.NotEmpty(t, b)

	news, err := env.svc.ListNews(ctx)
	require.NoError(t, err)
	assert.Len(t, news, 4)
}

func TestHashScorer(t *testing.T) {
	var s jobboard.HashScorer
	for id := int64(1); id <= 200; id++ {
		got := s.Score("user@example.com", id)
		assert.GreaterOrEqual(t, got, 70)
		assert.LessOrEqual(t, got, 95)
		assert.Equal(t, got, s.Score("user@example.com", id), "score must be stable")
	}
}

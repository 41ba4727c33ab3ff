package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/usecase"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/auth"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) CountByRole(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockSeekerProfileRepo struct {
	mock.Mock
}

func (m *MockSeekerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}
func (m *MockSeekerProfileRepo) Upsert(ctx context.Context, profile *domain.JobSeekerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockProviderProfileRepo struct {
	mock.Mock
}

func (m *MockProviderProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.JobProviderProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobProviderProfile), args.Error(1)
}
func (m *MockProviderProfileRepo) GetByID(ctx context.Context, id int64) (*domain.JobProviderProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobProviderProfile), args.Error(1)
}
func (m *MockProviderProfileRepo) Upsert(ctx context.Context, profile *domain.JobProviderProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockProviderProfileRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) (bool, error) {
	args := m.Called(ctx, job)
	return args.Bool(0), args.Error(1)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) UpdateStatus(ctx context.Context, job *domain.Job, newStatus string) error {
	return m.Called(ctx, job, newStatus).Error(0)
}
func (m *MockJobRepo) IncrementViews(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) FetchByProvider(ctx context.Context, providerUserID, status string, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, providerUserID, status, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Search(ctx context.Context, filter domain.JobSearchFilter, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) FetchForModeration(ctx context.Context, status string, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) SetApproval(ctx context.Context, id string, approved bool, adminID, reason string) error {
	return m.Called(ctx, id, approved, adminID, reason).Error(0)
}
func (m *MockJobRepo) SetFlag(ctx context.Context, id string, flagged bool, reason string) error {
	return m.Called(ctx, id, flagged, reason).Error(0)
}
func (m *MockJobRepo) TopByApplications(ctx context.Context, providerUserID string, limit int) ([]domain.Job, error) {
	args := m.Called(ctx, providerUserID, limit)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) CountByProvider(ctx context.Context, providerUserID string) (int64, int64, error) {
	args := m.Called(ctx, providerUserID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, jobID, seekerID string) (bool, error) {
	args := m.Called(ctx, jobID, seekerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, app *domain.Application, upd domain.StatusUpdate) error {
	return m.Called(ctx, app, upd).Error(0)
}
func (m *MockApplicationRepo) FetchBySeeker(ctx context.Context, seekerID, status string, limit, offset int) ([]domain.Application, int64, error) {
	args := m.Called(ctx, seekerID, status, limit, offset)
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}
func (m *MockApplicationRepo) FetchByJob(ctx context.Context, jobID, status string, limit, offset int) ([]domain.Application, int64, error) {
	args := m.Called(ctx, jobID, status, limit, offset)
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}
func (m *MockApplicationRepo) CountBySeeker(ctx context.Context, seekerID string, statuses []string) (int64, error) {
	args := m.Called(ctx, seekerID, statuses)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockApplicationRepo) CountByProvider(ctx context.Context, providerID string, statuses []string) (int64, error) {
	args := m.Called(ctx, providerID, statuses)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockApplicationRepo) RecentBySeeker(ctx context.Context, seekerID string, limit int) ([]domain.Application, error) {
	args := m.Called(ctx, seekerID, limit)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) RecentByProvider(ctx context.Context, providerID string, limit int) ([]domain.Application, error) {
	args := m.Called(ctx, providerID, limit)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (*domain.FileRef, error) {
	args := m.Called(ctx, folder, filename, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileRef), args.Error(1)
}
func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// Fixtures

func testTokenManager() *auth.Manager {
	return auth.NewManager("test-secret", time.Hour)
}

func verifiedProvider(userID string) *domain.JobProviderProfile {
	return &domain.JobProviderProfile{
		ID:           7,
		UserID:       userID,
		Verification: domain.Verification{IsVerified: true},
		Subscription: domain.Subscription{Plan: domain.PlanFree, JobPostsLimit: 3, JobPostsUsed: 0},
	}
}

func openJob(id, providerID string) *domain.Job {
	future := time.Now().Add(24 * time.Hour)
	return &domain.Job{
		ID:             id,
		ProviderUserID: providerID,
		BasicInfo: domain.JobBasicInfo{
			Title: "Backend Engineer", JobType: "Full-time", WorkMode: "Remote", ExperienceLevel: "Mid Level",
		},
		Description:  domain.JobDescription{Overview: "Build services"},
		Location:     domain.JobLocation{Country: "India"},
		Compensation: domain.Compensation{SalaryRange: domain.SalaryRange{Min: 100, Max: 200}},
		Requirements: domain.JobRequirements{RequiredSkills: []string{"Go"}},
		Status:       domain.JobStatusActive,
		Moderation:   domain.Moderation{IsApproved: true},
		ExpiresAt:    &future,
	}
}

// Auth

func TestRegisterRoleGuard(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo, testTokenManager())

	t.Run("Should reject ADMIN self-registration", func(t *testing.T) {
		_, err := uc.Register(context.Background(), "Eve", "eve@example.com", "longenough", domain.RoleAdmin)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JOB_SEEKER or JOB_PROVIDER")
	})

	t.Run("Should reject unknown roles", func(t *testing.T) {
		_, err := uc.Register(context.Background(), "Eve", "eve@example.com", "longenough", "superuser")
		assert.Error(t, err)
	})

	t.Run("Should reject duplicate email", func(t *testing.T) {
		mockRepo.On("GetByEmail", mock.Anything, "taken@example.com").
			Return(&domain.User{ID: "u1", Email: "taken@example.com"}, nil).Once()

		_, err := uc.Register(context.Background(), "Eve", "taken@example.com", "longenough", domain.RoleJobSeeker)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	user := &domain.User{ID: "u1", Email: "a@example.com", PasswordHash: string(hash), Role: domain.RoleJobSeeker}

	t.Run("Wrong password is rejected without leaking which field failed", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
		uc := usecase.NewAuthUsecase(mockRepo, testTokenManager())

		_, err := uc.Login(context.Background(), "a@example.com", "wrong")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("Unknown email gets the same error", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)
		uc := usecase.NewAuthUsecase(mockRepo, testTokenManager())

		_, err := uc.Login(context.Background(), "nobody@example.com", "whatever")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("Correct credentials return a token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
		uc := usecase.NewAuthUsecase(mockRepo, testTokenManager())

		result, err := uc.Login(context.Background(), "a@example.com", "correct-horse")
		assert.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "u1", result.User.ID)
	})
}

// Seeker profile

func TestSeekerProfileResumeReplacement(t *testing.T) {
	pdf := append([]byte{0x25, 0x50, 0x44, 0x46}, []byte("dummy")...)

	t.Run("Old resume is deleted only after the new row is persisted", func(t *testing.T) {
		mockRepo := new(MockSeekerProfileRepo)
		mockStorage := new(MockFileStorage)
		uc := usecase.NewSeekerProfileUsecase(mockRepo, mockStorage)

		existing := &domain.JobSeekerProfile{
			UserID: "u1",
			Resume: &domain.FileRef{Key: "resumes/old.pdf", URL: "https://cdn/old.pdf"},
		}
		mockRepo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil)

		newRef := &domain.FileRef{Key: "resumes/new.pdf", URL: "https://cdn/new.pdf"}
		mockStorage.On("Upload", mock.Anything, "resumes", "cv.pdf", "application/pdf", pdf).Return(newRef, nil)
		mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		mockStorage.On("Delete", mock.Anything, "resumes/old.pdf").Return(nil)

		profile, err := uc.CreateOrUpdate(context.Background(), "u1", nil,
			&domain.UploadFile{Filename: "cv.pdf", Data: pdf})
		assert.NoError(t, err)
		assert.Equal(t, "resumes/new.pdf", profile.Resume.Key)
		mockStorage.AssertCalled(t, "Delete", mock.Anything, "resumes/old.pdf")
	})

	t.Run("Failed persist cleans up the new upload and keeps the old blob", func(t *testing.T) {
		mockRepo := new(MockSeekerProfileRepo)
		mockStorage := new(MockFileStorage)
		uc := usecase.NewSeekerProfileUsecase(mockRepo, mockStorage)

		existing := &domain.JobSeekerProfile{
			UserID: "u1",
			Resume: &domain.FileRef{Key: "resumes/old.pdf", URL: "https://cdn/old.pdf"},
		}
		mockRepo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil)

		newRef := &domain.FileRef{Key: "resumes/new.pdf", URL: "https://cdn/new.pdf"}
		mockStorage.On("Upload", mock.Anything, "resumes", "cv.pdf", "application/pdf", pdf).Return(newRef, nil)
		mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(assert.AnError)
		mockStorage.On("Delete", mock.Anything, "resumes/new.pdf").Return(nil)

		_, err := uc.CreateOrUpdate(context.Background(), "u1", nil,
			&domain.UploadFile{Filename: "cv.pdf", Data: pdf})
		assert.Error(t, err)
		mockStorage.AssertCalled(t, "Delete", mock.Anything, "resumes/new.pdf")
		mockStorage.AssertNotCalled(t, "Delete", mock.Anything, "resumes/old.pdf")
	})

	t.Run("Spoofed extension is rejected before any upload", func(t *testing.T) {
		mockRepo := new(MockSeekerProfileRepo)
		mockStorage := new(MockFileStorage)
		uc := usecase.NewSeekerProfileUsecase(mockRepo, mockStorage)

		mockRepo.On("GetByUserID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

		_, err := uc.CreateOrUpdate(context.Background(), "u1", nil,
			&domain.UploadFile{Filename: "cv.pdf", Data: []byte("MZplain executable")})
		assert.Error(t, err)
		mockStorage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSeekerProfileMerge(t *testing.T) {
	mockRepo := new(MockSeekerProfileRepo)
	mockStorage := new(MockFileStorage)
	uc := usecase.NewSeekerProfileUsecase(mockRepo, mockStorage)

	existing := &domain.JobSeekerProfile{
		UserID:       "u1",
		PersonalInfo: domain.PersonalInfo{FirstName: "Asha", LastName: "Rao", Phone: "+91"},
		ProfessionalInfo: domain.ProfessionalInfo{
			Skills:         []string{"Go"},
			ExpectedSalary: domain.SalaryExpectation{Min: 1},
		},
	}
	mockRepo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil)
	mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	// only education is supplied; other sections must survive
	input := &domain.SeekerProfileInput{
		Education: []domain.Education{{Institution: "IIT", Degree: "B.Tech"}},
	}
	profile, err := uc.CreateOrUpdate(context.Background(), "u1", input, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Asha", profile.PersonalInfo.FirstName)
	assert.Len(t, profile.Education, 1)
	assert.Equal(t,
		domain.WeightPersonalInfo+domain.WeightProfessionalInfo+domain.WeightEducation,
		profile.ProfileCompleteness)
}

// Jobs

func TestCreateJobGuards(t *testing.T) {
	validate := validator.New()

	t.Run("Unverified provider cannot post", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockProviders := new(MockProviderProfileRepo)
		uc := usecase.NewJobUsecase(mockJobs, mockProviders, new(MockApplicationRepo), validate)

		profile := verifiedProvider("p1")
		profile.Verification.IsVerified = false
		mockProviders.On("GetByUserID", mock.Anything, "p1").Return(profile, nil)

		err := uc.CreateJob(context.Background(), "p1", openJob("", "p1"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not verified")
		mockJobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Exhausted quota fails before any insert", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockProviders := new(MockProviderProfileRepo)
		uc := usecase.NewJobUsecase(mockJobs, mockProviders, new(MockApplicationRepo), validate)

		profile := verifiedProvider("p1")
		profile.Subscription.JobPostsUsed = profile.Subscription.JobPostsLimit
		mockProviders.On("GetByUserID", mock.Anything, "p1").Return(profile, nil)

		err := uc.CreateJob(context.Background(), "p1", openJob("", "p1"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "limit reached")
	})

	t.Run("Quota race lost in the transaction surfaces the same error", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockProviders := new(MockProviderProfileRepo)
		uc := usecase.NewJobUsecase(mockJobs, mockProviders, new(MockApplicationRepo), validate)

		mockProviders.On("GetByUserID", mock.Anything, "p1").Return(verifiedProvider("p1"), nil)
		mockJobs.On("Create", mock.Anything, mock.Anything).Return(false, nil)

		err := uc.CreateJob(context.Background(), "p1", openJob("", "p1"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "limit reached")
	})

	t.Run("New jobs start unapproved with an expiry", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockProviders := new(MockProviderProfileRepo)
		uc := usecase.NewJobUsecase(mockJobs, mockProviders, new(MockApplicationRepo), validate)

		mockProviders.On("GetByUserID", mock.Anything, "p1").Return(verifiedProvider("p1"), nil)
		mockJobs.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
			return !j.Moderation.IsApproved && j.ExpiresAt != nil && j.CompanyID == 7
		})).Return(true, nil)

		job := openJob("", "p1")
		job.Moderation.IsApproved = true // client tries to self-approve
		err := uc.CreateJob(context.Background(), "p1", job)
		assert.NoError(t, err)
		assert.False(t, job.Moderation.IsApproved)
	})
}

func TestChangeJobStatus(t *testing.T) {
	t.Run("Illegal transition is rejected", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockJobs, new(MockProviderProfileRepo), new(MockApplicationRepo), validator.New())

		job := openJob("j1", "p1")
		job.Status = domain.JobStatusClosed
		mockJobs.On("GetByID", mock.Anything, "j1").Return(job, nil)

		err := uc.ChangeJobStatus(context.Background(), "p1", "j1", domain.JobStatusActive)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot change job status")
	})

	t.Run("Another provider's job is off limits", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockJobs, new(MockProviderProfileRepo), new(MockApplicationRepo), validator.New())

		mockJobs.On("GetByID", mock.Anything, "j1").Return(openJob("j1", "p1"), nil)

		err := uc.ChangeJobStatus(context.Background(), "intruder", "j1", domain.JobStatusPaused)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})
}

// Applications

func seekerWithResume(userID string) *domain.JobSeekerProfile {
	return &domain.JobSeekerProfile{
		UserID: userID,
		Resume: &domain.FileRef{Key: "resumes/r.pdf", URL: "https://cdn/r.pdf"},
	}
}

func TestApplyGuards(t *testing.T) {
	t.Run("Paused job rejects applications", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, new(MockSeekerProfileRepo))

		job := openJob("j1", "p1")
		job.Status = domain.JobStatusPaused
		mockJobs.On("GetByID", mock.Anything, "j1").Return(job, nil)

		_, err := uc.Apply(context.Background(), "s1", "j1", "", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not accepting applications")
	})

	t.Run("Missing resume blocks the application", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockSeekers := new(MockSeekerProfileRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, mockSeekers)

		mockJobs.On("GetByID", mock.Anything, "j1").Return(openJob("j1", "p1"), nil)
		mockSeekers.On("GetByUserID", mock.Anything, "s1").Return(&domain.JobSeekerProfile{UserID: "s1"}, nil)

		_, err := uc.Apply(context.Background(), "s1", "j1", "", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "upload a resume")
	})

	t.Run("Duplicate application is rejected", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockSeekers := new(MockSeekerProfileRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, mockSeekers)

		mockJobs.On("GetByID", mock.Anything, "j1").Return(openJob("j1", "p1"), nil)
		mockSeekers.On("GetByUserID", mock.Anything, "s1").Return(seekerWithResume("s1"), nil)
		mockApps.On("Exists", mock.Anything, "j1", "s1").Return(true, nil)

		_, err := uc.Apply(context.Background(), "s1", "j1", "", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Race on the unique index maps to the same error", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockSeekers := new(MockSeekerProfileRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, mockSeekers)

		mockJobs.On("GetByID", mock.Anything, "j1").Return(openJob("j1", "p1"), nil)
		mockSeekers.On("GetByUserID", mock.Anything, "s1").Return(seekerWithResume("s1"), nil)
		mockApps.On("Exists", mock.Anything, "j1", "s1").Return(false, nil)
		mockApps.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateApplication)

		_, err := uc.Apply(context.Background(), "s1", "j1", "", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Required screening question must be answered", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockSeekers := new(MockSeekerProfileRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, mockSeekers)

		job := openJob("j1", "p1")
		job.ScreeningQuestions = []domain.ScreeningQuestion{{Question: "Visa status?", Required: true}}
		mockJobs.On("GetByID", mock.Anything, "j1").Return(job, nil)
		mockSeekers.On("GetByUserID", mock.Anything, "s1").Return(seekerWithResume("s1"), nil)
		mockApps.On("Exists", mock.Anything, "j1", "s1").Return(false, nil)

		_, err := uc.Apply(context.Background(), "s1", "j1", "", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "requires an answer")
	})

	t.Run("Successful application snapshots the resume", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockSeekers := new(MockSeekerProfileRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, mockSeekers)

		mockJobs.On("GetByID", mock.Anything, "j1").Return(openJob("j1", "p1"), nil)
		mockSeekers.On("GetByUserID", mock.Anything, "s1").Return(seekerWithResume("s1"), nil)
		mockApps.On("Exists", mock.Anything, "j1", "s1").Return(false, nil)
		mockApps.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Application) bool {
			return a.Resume.Key == "resumes/r.pdf" &&
				a.CurrentStatus == domain.StatusApplied &&
				a.JobProviderID == "p1" &&
				len(a.StatusHistory) == 1 &&
				a.StatusHistory[0].Status == domain.StatusApplied
		})).Return(nil)

		app, err := uc.Apply(context.Background(), "s1", "j1", "cover", nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusApplied, app.CurrentStatus)
	})
}

func TestWithdrawGuards(t *testing.T) {
	t.Run("Only the owner can withdraw", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo), new(MockSeekerProfileRepo))

		app := &domain.Application{ID: "a1", JobSeekerID: "s1", CurrentStatus: domain.StatusApplied}
		mockApps.On("GetByID", mock.Anything, "a1").Return(app, nil)

		err := uc.Withdraw(context.Background(), "someone-else", "a1")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("Terminal applications cannot be withdrawn", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo), new(MockSeekerProfileRepo))

		app := &domain.Application{ID: "a1", JobSeekerID: "s1", CurrentStatus: domain.StatusRejected}
		mockApps.On("GetByID", mock.Anything, "a1").Return(app, nil)

		err := uc.Withdraw(context.Background(), "s1", "a1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only active applications")
	})
}

func TestProviderStatusUpdates(t *testing.T) {
	t.Run("Illegal pipeline jump is rejected", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo), new(MockSeekerProfileRepo))

		app := &domain.Application{ID: "a1", JobProviderID: "p1", CurrentStatus: domain.StatusApplied}
		mockApps.On("GetByID", mock.Anything, "a1").Return(app, nil)

		_, err := uc.UpdateStatus(context.Background(), "p1", "a1", domain.StatusHired, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot change application status")
	})

	t.Run("Provider cannot set Withdrawn", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo), new(MockSeekerProfileRepo))

		app := &domain.Application{ID: "a1", JobProviderID: "p1", CurrentStatus: domain.StatusApplied}
		mockApps.On("GetByID", mock.Anything, "a1").Return(app, nil)

		_, err := uc.UpdateStatus(context.Background(), "p1", "a1", domain.StatusWithdrawn, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only the applicant")
	})

	t.Run("Scheduling an interview carries the interview payload", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo), new(MockSeekerProfileRepo))

		app := &domain.Application{ID: "a1", JobProviderID: "p1", CurrentStatus: domain.StatusShortlisted}
		mockApps.On("GetByID", mock.Anything, "a1").Return(app, nil)
		mockApps.On("UpdateStatus", mock.Anything, app, mock.MatchedBy(func(upd domain.StatusUpdate) bool {
			return upd.NewStatus == domain.StatusInterviewScheduled && upd.Interview != nil
		})).Return(nil)

		_, err := uc.ScheduleInterview(context.Background(), "p1", "a1",
			&domain.Interview{ScheduledDate: time.Now().Add(48 * time.Hour), Mode: "Video"})
		assert.NoError(t, err)
	})

	t.Run("Another provider's application is off limits", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo), new(MockSeekerProfileRepo))

		app := &domain.Application{ID: "a1", JobProviderID: "p1", CurrentStatus: domain.StatusApplied}
		mockApps.On("GetByID", mock.Anything, "a1").Return(app, nil)

		_, err := uc.UpdateStatus(context.Background(), "p2", "a1", domain.StatusUnderReview, "")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})
}

// Dashboards

func TestSeekerDashboard(t *testing.T) {
	mockUsers := new(MockUserRepo)
	mockSeekers := new(MockSeekerProfileRepo)
	mockJobs := new(MockJobRepo)
	mockApps := new(MockApplicationRepo)
	uc := usecase.NewDashboardUsecase(mockUsers, mockSeekers, mockJobs, mockApps)

	mockApps.On("CountBySeeker", mock.Anything, "s1", []string(nil)).Return(int64(8), nil)
	mockApps.On("CountBySeeker", mock.Anything, "s1", mock.MatchedBy(func(s []string) bool { return len(s) == 6 })).Return(int64(5), nil)
	mockApps.On("CountBySeeker", mock.Anything, "s1", mock.MatchedBy(func(s []string) bool {
		return len(s) == 2 && s[0] == domain.StatusInterviewScheduled
	})).Return(int64(2), nil)
	mockApps.On("CountBySeeker", mock.Anything, "s1", mock.MatchedBy(func(s []string) bool {
		return len(s) == 2 && s[0] == domain.StatusOffered
	})).Return(int64(1), nil)
	mockSeekers.On("GetByUserID", mock.Anything, "s1").Return(&domain.JobSeekerProfile{ProfileCompleteness: 80}, nil)
	mockApps.On("RecentBySeeker", mock.Anything, "s1", 5).Return([]domain.Application{{ID: "a1"}}, nil)

	d, err := uc.SeekerDashboard(context.Background(), "s1")
	assert.NoError(t, err)
	assert.Equal(t, int64(8), d.TotalApplications)
	assert.Equal(t, int64(5), d.ActiveApplications)
	assert.Equal(t, int64(2), d.Interviews)
	assert.Equal(t, int64(1), d.Offers)
	assert.Equal(t, 80, d.ProfileCompleteness)
	assert.Len(t, d.RecentApplications, 1)
}

func TestAdminStats(t *testing.T) {
	mockUsers := new(MockUserRepo)
	mockJobs := new(MockJobRepo)
	mockApps := new(MockApplicationRepo)
	uc := usecase.NewDashboardUsecase(mockUsers, new(MockSeekerProfileRepo), mockJobs, mockApps)

	mockUsers.On("CountByRole", mock.Anything).Return(map[string]int64{
		domain.RoleJobSeeker:   40,
		domain.RoleJobProvider: 9,
		domain.RoleAdmin:       1,
	}, nil)
	mockJobs.On("FetchForModeration", mock.Anything, "", 1, 0).Return([]domain.Job{}, int64(20), nil)
	mockJobs.On("FetchForModeration", mock.Anything, domain.JobStatusActive, 1, 0).Return([]domain.Job{}, int64(12), nil)
	mockApps.On("CountAll", mock.Anything).Return(int64(150), nil)

	s, err := uc.AdminStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(50), s.TotalUsers)
	assert.Equal(t, int64(20), s.TotalJobs)
	assert.Equal(t, int64(12), s.ActiveJobs)
	assert.Equal(t, int64(150), s.TotalApplications)
}

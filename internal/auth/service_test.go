package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/frahmantamala/capacity-tracker/internal"
	userDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/capacity-tracker/pkg/logger"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

const testSecret = "test-secret-that-is-at-least-32-chars"

// Mock user repository for testing
type mockUserRepository struct {
	byEmail       map[string]*userDatamodel.User
	returnError   bool
	errorToReturn error
	createErr     error
	created       int
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	return &mockUserRepository{
		byEmail: map[string]*userDatamodel.User{
			"alice@example.com": {
				ID: "11111111-1111-1111-1111-111111111111", Email: "alice@example.com", Name: "Alice",
				PasswordHash: string(hashedPassword), Role: "engineer", MaxCapacity: 100, Department: "Frontend",
			},
			"manager@example.com": {
				ID: "22222222-2222-2222-2222-222222222222", Email: "manager@example.com", Name: "Manager",
				PasswordHash: string(hashedPassword), Role: "manager", Department: "Backend",
			},
		},
	}
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.byEmail[email], nil
}

func (m *mockUserRepository) ListByRole(_ context.Context, role string) ([]*userDatamodel.User, error) {
	var out []*userDatamodel.User
	for _, u := range m.byEmail {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) Create(_ context.Context, u *userDatamodel.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if u.ID == "" {
		u.ID = "33333333-3333-3333-3333-333333333333"
	}
	m.byEmail[u.Email] = u
	m.created++
	return nil
}

func (m *mockUserRepository) Update(_ context.Context, u *userDatamodel.User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

func intPtr(v int) *int { return &v }

func newTestService(repo *mockUserRepository) (*Service, *JWTTokenGenerator) {
	tokenGen := NewJWTTokenGenerator(testSecret, time.Hour)
	return NewService(repo, tokenGen, NewBcryptHasher(bcrypt.MinCost), logger.Discard(), 0), tokenGen
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		mockRepo = newMockUserRepository()
		service, tokenGen = newTestService(mockRepo)
	})

	ginkgo.Describe("Register", func() {
		validEngineer := func() RegisterDTO {
			return RegisterDTO{
				Name: "Bob", Email: "Bob@Example.com ", Password: "password", Role: "engineer",
				Skills: []string{"MongoDB", "Express"}, Seniority: "senior", MaxCapacity: intPtr(100), Department: "Backend",
			}
		}

		ginkgo.It("should create the user and issue a token", func() {
			resp, err := service.Register(ctx, validEngineer())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.Msg).To(gomega.Equal("User registered successfully"))
			gomega.Expect(resp.User.Email).To(gomega.Equal("bob@example.com"))
			gomega.Expect(resp.User.Skills).To(gomega.Equal([]string{"MongoDB", "Express"}))

			identity, err := service.ValidateAccessToken(resp.Token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(identity.ID).To(gomega.Equal(resp.User.ID))
			gomega.Expect(identity.Role).To(gomega.Equal("engineer"))
		})

		ginkgo.It("should store a bcrypt hash, never the password", func() {
			_, err := service.Register(ctx, validEngineer())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			stored := mockRepo.byEmail["bob@example.com"]
			gomega.Expect(stored.PasswordHash).ToNot(gomega.Equal("password"))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password"))).To(gomega.Succeed())
		})

		ginkgo.It("should reject a duplicate email with a conflict and keep one record", func() {
			dto := validEngineer()
			dto.Email = "alice@example.com"
			_, err := service.Register(ctx, dto)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrEmailTaken))
			gomega.Expect(mockRepo.created).To(gomega.Equal(0))
		})

		ginkgo.It("should map a unique index violation to a conflict", func() {
			mockRepo.createErr = fmt.Errorf("insert user: %w", gorm.ErrDuplicatedKey)
			_, err := service.Register(ctx, validEngineer())
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(409))
		})

		ginkgo.It("should require seniority and capacity for engineers", func() {
			dto := validEngineer()
			dto.Seniority = ""
			dto.MaxCapacity = nil
			_, err := service.Register(ctx, dto)
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
			details := appErr.Details.(internal.ValidationErrors)
			gomega.Expect(details.Errors).To(gomega.HaveLen(2))
		})

		ginkgo.It("should default manager capacity to zero", func() {
			resp, err := service.Register(ctx, RegisterDTO{
				Name: "Lead", Email: "lead@example.com", Password: "password", Role: "manager", Department: "Backend",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.User.MaxCapacity).To(gomega.Equal(0))
		})

		ginkgo.It("should reject values outside the catalog", func() {
			dto := validEngineer()
			dto.Department = "Engineering"
			dto.Role = "admin"
			_, err := service.Register(ctx, dto)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject missing required fields", func() {
			_, err := service.Register(ctx, RegisterDTO{Email: "x@example.com"})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("should hide storage failures behind a generic error", func() {
			mockRepo.setError(errors.New("connection reset"))
			_, err := service.Register(ctx, validEngineer())
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(500))
			gomega.Expect(appErr.Message).ToNot(gomega.ContainSubstring("connection reset"))
		})
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("should return a token carrying id and role", func() {
			resp, err := service.Login(ctx, LoginDTO{Email: "manager@example.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokenGen.ValidateToken(resp.Token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("22222222-2222-2222-2222-222222222222"))
			gomega.Expect(claims.Role).To(gomega.Equal("manager"))
			gomega.Expect(claims.Subject).To(gomega.Equal(claims.UserID))
		})

		ginkgo.It("should give the same error for an unknown email and a wrong password", func() {
			_, errUnknown := service.Login(ctx, LoginDTO{Email: "nobody@example.com", Password: "correct_password"})
			_, errWrong := service.Login(ctx, LoginDTO{Email: "alice@example.com", Password: "wrong"})

			gomega.Expect(errUnknown).To(gomega.MatchError(internal.ErrInvalidCredentials))
			gomega.Expect(errWrong).To(gomega.MatchError(internal.ErrInvalidCredentials))
			gomega.Expect(errUnknown.Error()).To(gomega.Equal(errWrong.Error()))
			gomega.Expect(errUnknown.Error()).To(gomega.Equal("Invalid email or password"))
		})

		ginkgo.It("should answer invalid credentials with 400", func() {
			_, err := service.Login(ctx, LoginDTO{Email: "alice@example.com", Password: "wrong"})
			appErr, _ := internal.IsAppError(err)
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})

		ginkgo.It("should never include the password hash in the user payload", func() {
			resp, err := service.Login(ctx, LoginDTO{Email: "alice@example.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.User.Name).To(gomega.Equal("Alice"))
		})
	})

	ginkgo.Describe("JWTTokenGenerator", func() {
		ginkgo.It("should default the lifetime to seven days", func() {
			gen := NewJWTTokenGenerator(testSecret, 0)
			gomega.Expect(gen.TTL).To(gomega.Equal(7 * 24 * time.Hour))
		})

		ginkgo.It("should reject expired tokens", func() {
			gen := NewJWTTokenGenerator(testSecret, time.Minute)
			gen.now = func() time.Time { return time.Now().Add(-time.Hour) }
			token, err := gen.GenerateToken("u1", "engineer")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gen.now = time.Now
			_, err = gen.ValidateToken(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenExpired))
		})

		ginkgo.It("should reject tokens signed with another secret", func() {
			other := NewJWTTokenGenerator("another-secret-that-is-long-enough!!", time.Hour)
			token, _ := other.GenerateToken("u1", "manager")
			_, err := tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject the none algorithm", func() {
			claims := &Claims{UserID: "u1", Role: "manager", RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}}
			token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject garbage", func() {
			_, err := tokenGen.ValidateToken(strings.Repeat("x", 40))
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject tokens with an unknown role", func() {
			token, _ := tokenGen.GenerateToken("u1", "admin")
			_, err := service.ValidateAccessToken(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})
	})
})

package application

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/testkit"
	"github.com/oksasatya/bootcamp-directory/pkg/geocoder"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
	tpl "github.com/oksasatya/bootcamp-directory/pkg/mailer/templates"
)

const testResetURL = "http://localhost:5000/api/auth/resetpassword"

var (
	boston    = geocoder.Location{Latitude: 42.3601, Longitude: -71.0589}
	cambridge = geocoder.Location{Latitude: 42.3736, Longitude: -71.1097}
	newYork   = geocoder.Location{Latitude: 40.7128, Longitude: -74.0060}
)

type fixture struct {
	store     *testkit.Store
	now       time.Time
	mail      *testkit.Mailbox
	files     *testkit.Files
	index     *testkit.Index
	auth      *AuthService
	users     *UserService
	bootcamps *BootcampService
	courses   *CourseService
	reviews   *ReviewService
	agg       *Aggregator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: testkit.NewStore(),
		now:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		mail:  &testkit.Mailbox{},
		files: &testkit.Files{},
		index: &testkit.Index{},
	}
	logger := helpers.NopLogger()
	geo := testkit.Geocoder{"02118": boston, "02139": cambridge, "10001": newYork}

	f.auth = NewAuthService(f.store.Users(), helpers.NewJWTManager("test-secret", time.Hour), f.mail, logger, testResetURL, tpl.Branding{AppName: "bootcamps"})
	f.auth.Now = func() time.Time { return f.now }
	f.users = NewUserService(f.store.Users(), logger)
	f.agg = NewAggregator(f.store.Bootcamps(), f.store.Reviews(), f.store.Courses(), logger)
	f.bootcamps = NewBootcampService(f.store.Bootcamps(), geo, f.files, f.index, logger, 1000000)
	f.courses = NewCourseService(f.store.Courses(), f.store.Bootcamps(), f.agg, logger)
	f.reviews = NewReviewService(f.store.Reviews(), f.store.Bootcamps(), f.agg, logger)
	return f
}

func (f *fixture) user(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), CreateUserInput{Name: email, Email: email, Password: "secret1", Role: role})
	require.NoError(t, err)
	return u
}

func (f *fixture) bootcamp(t *testing.T, owner *entity.User, name string) *entity.Bootcamp {
	t.Helper()
	b, err := f.bootcamps.Create(context.Background(), owner, CreateBootcampInput{
		Name:        name,
		Description: name + " teaches web development",
		Address:     "233 Bay State Rd Boston MA",
		Zipcode:     "02118",
		Careers:     []string{"Web Development"},
	})
	require.NoError(t, err)
	return b
}

var resetLink = regexp.MustCompile(regexp.QuoteMeta(testResetURL) + `/([0-9a-f]+)`)

func resetTokenFrom(t *testing.T, msg mailer.Message) string {
	t.Helper()
	m := resetLink.FindStringSubmatch(msg.Text)
	require.Len(t, m, 2, "reset link not found in %q", msg.Text)
	return m[1]
}

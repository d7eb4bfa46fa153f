package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/mechanicassist/internal/client/config"
	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
	"github.com/dmitrijs2005/mechanicassist/internal/client/session"
	"github.com/dmitrijs2005/mechanicassist/internal/logging"
)

type fakeAuth struct {
	sess *session.Session

	user       *models.User
	currentErr error
	loginErr   error
	noTokens   bool

	registered []models.RegisterInput
	logins     []string
	updates    []models.ProfileUpdate
	logouts    int
}

func (f *fakeAuth) respond(ctx context.Context) (*models.AuthResponse, error) {
	resp := &models.AuthResponse{User: f.user}
	if f.noTokens {
		return resp, nil
	}
	resp.Tokens = &models.TokenPair{Access: "A1", Refresh: "R1"}
	return resp, f.sess.Save(ctx, *resp.Tokens, f.user)
}

func (f *fakeAuth) Register(ctx context.Context, in models.RegisterInput) (*models.AuthResponse, error) {
	f.registered = append(f.registered, in)
	return f.respond(ctx)
}

func (f *fakeAuth) Login(ctx context.Context, email, _ string) (*models.AuthResponse, error) {
	f.logins = append(f.logins, email)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.respond(ctx)
}

func (f *fakeAuth) CurrentUser(context.Context) (*models.User, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.user, nil
}

func (f *fakeAuth) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (*models.User, error) {
	f.updates = append(f.updates, upd)
	u := *f.user
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	return &u, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	return f.sess.Clear(ctx)
}

func (f *fakeAuth) StoredUser(ctx context.Context) (*models.User, error) {
	return f.sess.User(ctx)
}

type fakeMechanics struct {
	profile *models.MechanicProfile
	updates []models.MechanicProfileUpdate
	nearby  []models.MechanicCandidate
	err     error
}

func (f *fakeMechanics) Profile(context.Context) (*models.MechanicProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeMechanics) UpdateProfile(_ context.Context, upd models.MechanicProfileUpdate) (*models.MechanicProfile, error) {
	f.updates = append(f.updates, upd)
	lat, lng := models.Decimal(upd.Latitude), models.Decimal(upd.Longitude)
	f.profile = &models.MechanicProfile{
		ID: f.profile.ID, SkillType: upd.SkillType, Availability: upd.Availability,
		Latitude: &lat, Longitude: &lng,
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeMechanics) Nearby(context.Context, float64, float64) ([]models.MechanicCandidate, error) {
	return f.nearby, f.err
}

type fakeRequests struct {
	list    []models.ServiceRequest
	created []models.CreateRequestInput
	actions []string
	err     error
}

func (f *fakeRequests) Create(_ context.Context, in models.CreateRequestInput) (*models.ServiceRequest, error) {
	f.created = append(f.created, in)
	if f.err != nil {
		return nil, f.err
	}
	return &models.ServiceRequest{ID: 9, IssueText: in.IssueText, Status: models.StatusRequested}, nil
}

func (f *fakeRequests) ListForCustomer(context.Context) ([]models.ServiceRequest, error) {
	return f.list, f.err
}

func (f *fakeRequests) ListForMechanic(context.Context) ([]models.ServiceRequest, error) {
	return f.list, f.err
}

func (f *fakeRequests) transition(id int64, action string, to models.RequestStatus) (*models.ServiceRequest, error) {
	f.actions = append(f.actions, action)
	if f.err != nil {
		return nil, f.err
	}
	return &models.ServiceRequest{ID: id, Status: to, Mechanic: &models.User{ID: 7, Name: "Ravi"}}, nil
}

func (f *fakeRequests) Accept(_ context.Context, id int64) (*models.ServiceRequest, error) {
	return f.transition(id, "accept", models.StatusAccepted)
}

func (f *fakeRequests) Complete(_ context.Context, id int64) (*models.ServiceRequest, error) {
	return f.transition(id, "complete", models.StatusCompleted)
}

type fakeRatings struct {
	added []models.RatingInput
	list  []models.Rating
}

func (f *fakeRatings) Add(_ context.Context, in models.RatingInput) (*models.Rating, error) {
	f.added = append(f.added, in)
	return &models.Rating{ID: 1, Stars: in.Stars, ReviewText: in.ReviewText}, nil
}

func (f *fakeRatings) ListForMechanic(context.Context, int64) ([]models.Rating, error) {
	return f.list, nil
}

type fakeReporter struct {
	errs []error
	tags []map[string]string
}

func (f *fakeReporter) Capture(err error, tags map[string]string) {
	f.errs = append(f.errs, err)
	f.tags = append(f.tags, tags)
}

type testApp struct {
	*App
	store     *session.MemoryStore
	out       *bytes.Buffer
	auth      *fakeAuth
	mechanics *fakeMechanics
	requests  *fakeRequests
	ratings   *fakeRatings
	reporter  *fakeReporter
}

var (
	customer = &models.User{ID: 1, Email: "asha@example.com", Name: "Asha", Phone: "555", Role: models.RoleCustomer}
	mechanic = &models.User{ID: 7, Email: "ravi@example.com", Name: "Ravi", Phone: "777", Role: models.RoleMechanic}
)

// newTestApp builds an App over fakes; input feeds the interactive prompts.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	st := session.NewMemoryStore()
	sess := session.New(st)
	lat, lng := models.Decimal(12), models.Decimal(77)
	ta := &testApp{
		store:     st,
		out:       &bytes.Buffer{},
		auth:      &fakeAuth{sess: sess, user: customer},
		mechanics: &fakeMechanics{profile: &models.MechanicProfile{ID: 3, SkillType: models.SkillTyres, Availability: true, Latitude: &lat, Longitude: &lng}},
		requests:  &fakeRequests{},
		ratings:   &fakeRatings{},
		reporter:  &fakeReporter{},
	}
	ta.App = newApp(cfg, logging.Nop(), deps{
		session:   sess,
		auth:      ta.auth,
		mechanics: ta.mechanics,
		requests:  ta.requests,
		ratings:   ta.ratings,
		reporter:  ta.reporter,
	}, strings.NewReader(input), ta.out)
	return ta
}

// stubPasswords makes getPassword return pw in order.
func stubPasswords(t *testing.T, pw ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(_ io.Writer, _ string) (string, error) {
		if i >= len(pw) {
			return "", io.EOF
		}
		i++
		return pw[i-1], nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func (ta *testApp) signIn(u *models.User) {
	ta.auth.user = u
	ta.signedIn(u)
}

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bursa-register/internal/auth"
	"github.com/spec-kit/bursa-register/internal/domain"
	"github.com/spec-kit/bursa-register/internal/observability"
	"github.com/spec-kit/bursa-register/internal/wizard"
)

type stubDirectory struct {
	canSubmit bool
	submitted []domain.SubmissionPayload
}

func (s *stubDirectory) CheckStatus(context.Context, string) (*domain.StatusReport, error) {
	return &domain.StatusReport{
		User:           domain.Identity{Email: "ani@example.com"},
		CanSubmitMore:  s.canSubmit,
		RemainingSlots: 1,
	}, nil
}

func (s *stubDirectory) Submit(_ context.Context, _ string, payload domain.SubmissionPayload) (*domain.SubmitResult, error) {
	s.submitted = append(s.submitted, payload)
	return &domain.SubmitResult{Success: true, Business: domain.BusinessRef{ID: "b1", Name: payload.Name, Status: domain.SubmissionPending}}, nil
}

type stubMedia struct{}

func (stubMedia) Upload(_ context.Context, file wizard.MediaFile) (string, error) {
	return "https://cdn.example.com/" + file.Name, nil
}

func newWizardService(dir *stubDirectory) *WizardService {
	return NewWizardService(WizardServiceConfig{
		Registry:    wizard.NewRegistry(time.Hour),
		Sessions:    auth.NewProvider(nil),
		Status:      dir,
		Submissions: dir,
		Media:       stubMedia{},
		Variant:     domain.VariantRich,
		Metrics:     observability.NewMetrics("test"),
	})
}

func as(subject string) context.Context {
	return auth.WithSession(context.Background(), &domain.Session{ID: "j-" + subject, Subject: subject, Token: "tok-" + subject})
}

func strPtr(s string) *string { return &s }

func TestWizardService_FullFlow(t *testing.T) {
	dir := &stubDirectory{canSubmit: true}
	svc := newWizardService(dir)
	ctx := as("u1")

	view, err := svc.Start(ctx)
	require.NoError(t, err)
	id := view.ID

	_, err = svc.Apply(ctx, id, wizard.DraftPatch{
		Name:         strPtr("Kopi Senja"),
		Description:  strPtr("Kopi"),
		OwnerName:    strPtr("Raka"),
		CategorySlug: strPtr("food-beverage"),
	})
	require.NoError(t, err)
	_, err = svc.Next(ctx, id)
	require.NoError(t, err)

	view, err = svc.SetOnlineBusiness(ctx, id, true)
	require.NoError(t, err)
	assert.True(t, view.Draft.IsOnlineBusiness)
	_, err = svc.Next(ctx, id)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, id, wizard.DraftPatch{PhoneNumber: strPtr("0812")})
	require.NoError(t, err)
	view, err = svc.Next(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepMedia, view.Step)

	view, err = svc.UploadPhotos(ctx, id, []wizard.MediaFile{{Name: "a.jpg", ContentType: "image/jpeg", Size: 10}})
	require.NoError(t, err)
	assert.Len(t, view.Draft.Photos, 1)

	result, err := svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "b1", result.Business.ID)
	require.Len(t, dir.submitted, 1)
	assert.Empty(t, dir.submitted[0].City)

	_, err = svc.View(ctx, id)
	assert.ErrorIs(t, err, ErrWizardNotFound)
}

func TestWizardService_OwnershipAndSession(t *testing.T) {
	svc := newWizardService(&stubDirectory{canSubmit: true})

	view, err := svc.Start(as("u1"))
	require.NoError(t, err)

	_, err = svc.View(as("u2"), view.ID)
	assert.ErrorIs(t, err, ErrWizardNotFound)

	_, err = svc.View(context.Background(), view.ID)
	assert.ErrorIs(t, err, domain.ErrNoSession)

	_, err = svc.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestWizardService_NotEligible(t *testing.T) {
	svc := newWizardService(&stubDirectory{canSubmit: false})
	_, err := svc.Start(as("u1"))
	assert.ErrorIs(t, err, wizard.ErrNotEligible)
}

func TestWizardService_DiscardAndSignOutCleanup(t *testing.T) {
	svc := newWizardService(&stubDirectory{canSubmit: true})
	first, err := svc.Start(as("u1"))
	require.NoError(t, err)
	_, err = svc.Start(as("u1"))
	require.NoError(t, err)
	other, err := svc.Start(as("u2"))
	require.NoError(t, err)

	require.NoError(t, svc.Discard(as("u1"), first.ID))
	assert.Equal(t, 1, svc.DiscardOwnedBy("u1"))

	_, err = svc.View(as("u2"), other.ID)
	assert.NoError(t, err)
}

// directoryLoopback sends wizard payloads through the directory-side
// submission service, the same path the HTTP client takes.
type directoryLoopback struct {
	submissions *SubmissionService
}

func (d *directoryLoopback) CheckStatus(ctx context.Context, _ string) (*domain.StatusReport, error) {
	session, _ := auth.SessionFromContext(ctx)
	return d.submissions.Status(ctx, session)
}

func (d *directoryLoopback) Submit(ctx context.Context, _ string, payload domain.SubmissionPayload) (*domain.SubmitResult, error) {
	session, _ := auth.SessionFromContext(ctx)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return d.submissions.Submit(ctx, session, body)
}

func TestWizardService_OperatingHoursAcceptedByDirectory(t *testing.T) {
	submissions, repo, _ := newSubmissionService(t, domain.VariantRich)
	loopback := &directoryLoopback{submissions: submissions}
	svc := NewWizardService(WizardServiceConfig{
		Registry:    wizard.NewRegistry(time.Hour),
		Sessions:    auth.NewProvider(nil),
		Status:      loopback,
		Submissions: loopback,
		Media:       stubMedia{},
		Variant:     domain.VariantRich,
	})
	ctx := as("u1")

	view, err := svc.Start(ctx)
	require.NoError(t, err)
	id := view.ID

	closed := true
	_, err = svc.Apply(ctx, id, wizard.DraftPatch{
		Name:         strPtr("Kopi Senja"),
		Description:  strPtr("Kedai kopi"),
		OwnerName:    strPtr("Raka"),
		CategorySlug: strPtr("food-beverage"),
		OperatingHours: map[domain.Weekday]wizard.DayHoursPatch{
			domain.Monday:  {Closed: &closed},
			domain.Tuesday: {Open: strPtr("07:30")},
		},
	})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, id, wizard.DraftPatch{
		OperatingHours: map[domain.Weekday]wizard.DayHoursPatch{domain.Friday: {Open: strPtr("9:00")}},
	})
	var ferr *wizard.FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "Format jam harus HH:MM", ferr.Reason)

	_, err = svc.Next(ctx, id)
	require.NoError(t, err)
	_, err = svc.SetOnlineBusiness(ctx, id, true)
	require.NoError(t, err)
	_, err = svc.Next(ctx, id)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, id, wizard.DraftPatch{PhoneNumber: strPtr("08123456789")})
	require.NoError(t, err)
	_, err = svc.Next(ctx, id)
	require.NoError(t, err)

	result, err := svc.Submit(ctx, id)
	require.NoError(t, err, "directory rejected the projected payload")
	assert.Equal(t, "Kopi Senja", result.Business.Name)

	require.Len(t, repo.records, 1)
	hours := repo.records[0].Payload.OperatingHours
	require.NotNil(t, hours)
	assert.True(t, hours.Monday.Closed)
	assert.Equal(t, "09:00", hours.Monday.Open)
	assert.Equal(t, "17:00", hours.Monday.Close)
	assert.Equal(t, "07:30", hours.Tuesday.Open)
	assert.Equal(t, "09:00", hours.Friday.Open)
}

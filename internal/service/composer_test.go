package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/location"
	"github.com/Yimmi-urbano/dencia-app-front/internal/mapview"
	"github.com/Yimmi-urbano/dencia-app-front/internal/service"
	mock_service "github.com/Yimmi-urbano/dencia-app-front/internal/service/mocks"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

var plazaMayor = domain.Coordinates{Lat: -12.0464, Lon: -77.0428}

type composerFixture struct {
	svc      service.ComposerService
	drafts   *memStore[domain.Draft]
	reports  *mock_service.MockReportRepository
	resolver *mock_service.MockLocationResolver
}

func newComposer(t *testing.T) *composerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &composerFixture{
		drafts:   newMemStore[domain.Draft](),
		reports:  mock_service.NewMockReportRepository(ctrl),
		resolver: mock_service.NewMockLocationResolver(ctrl),
	}
	f.svc = service.NewComposerService(f.drafts, f.reports, f.resolver, newTestLogger())
	return f
}

func (f *composerFixture) newDraft(t *testing.T) *domain.Draft {
	t.Helper()
	d, err := f.svc.Create(context.Background())
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	return d
}

func TestComposer_Create_EmptyDraft(t *testing.T) {
	t.Parallel()
	f := newComposer(t)

	d := f.newDraft(t)
	if d.ID == uuid.Nil {
		t.Fatalf("expected id")
	}
	if d.IsSubmittable() {
		t.Fatalf("empty draft must not be submittable")
	}
	if d.LocationSource != domain.LocationManualAddress {
		t.Fatalf("source=%q", d.LocationSource)
	}

	got, err := f.svc.Get(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != d.ID {
		t.Fatalf("got id %s want %s", got.ID, d.ID)
	}
}

func TestComposer_Get_Unknown(t *testing.T) {
	t.Parallel()
	f := newComposer(t)

	_, err := f.svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, e.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestComposer_Edit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	robo := mustChoose(domain.CategoryRobbery)
	got, err := f.svc.Edit(ctx, d.ID, domain.DraftEdit{
		Description: strPtr("me robaron el celular"),
		Category:    &robo,
		Address:     strPtr("Av. Abancay 123"),
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.Description != "me robaron el celular" || got.Category != robo || got.Address != "Av. Abancay 123" {
		t.Fatalf("unexpected draft: %+v", got)
	}
	if got.ResolutionToken != d.ResolutionToken {
		t.Fatalf("plain edit must not start a resolution")
	}

	none := domain.NoCategory()
	got, err = f.svc.Edit(ctx, d.ID, domain.DraftEdit{Category: &none})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, ok := got.Category.Get(); ok {
		t.Fatalf("category must be cleared")
	}
	if got.Description != "me robaron el celular" {
		t.Fatalf("untouched fields must be kept")
	}
}

func TestComposer_Edit_InvalidSource(t *testing.T) {
	t.Parallel()
	f := newComposer(t)
	d := f.newDraft(t)

	bad := domain.LocationSource("satellite")
	_, err := f.svc.Edit(context.Background(), d.ID, domain.DraftEdit{LocationSource: &bad})

	var verr *e.ValidationError
	if !errors.As(err, &verr) || verr.Field != "locationSource" {
		t.Fatalf("expected locationSource validation error, got %v", err)
	}
}

func TestComposer_Edit_SourceSwitchKeepsCoordinates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	if _, err := f.svc.Relocate(ctx, d.ID, plazaMayor); err != nil {
		t.Fatalf("relocate: %v", err)
	}
	before, _ := f.svc.Get(ctx, d.ID)

	device := domain.LocationDevice
	got, err := f.svc.Edit(ctx, d.ID, domain.DraftEdit{LocationSource: &device})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.Coordinates == nil || *got.Coordinates != plazaMayor {
		t.Fatalf("coordinates must survive a source switch, got %+v", got.Coordinates)
	}
	if got.ResolutionToken <= before.ResolutionToken {
		t.Fatalf("source switch must invalidate pending resolutions")
	}
}

func TestComposer_ResolveAddress_OK(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	f.resolver.EXPECT().
		ResolveFromAddress(gomock.Any(), "Plaza Mayor, Lima").
		Return(plazaMayor, nil).
		Times(1)

	got, err := f.svc.ResolveAddress(ctx, d.ID, strPtr("Plaza Mayor, Lima"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Coordinates == nil || *got.Coordinates != plazaMayor {
		t.Fatalf("coordinates=%+v", got.Coordinates)
	}
	if got.Address != "Plaza Mayor, Lima" || got.LocationSource != domain.LocationManualAddress {
		t.Fatalf("unexpected draft: %+v", got)
	}
	if got.Preview == nil || got.Preview.Center != plazaMayor || got.Preview.Zoom != mapview.PreviewZoom {
		t.Fatalf("preview=%+v", got.Preview)
	}
}

func TestComposer_ResolveAddress_UsesStoredAddress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	if _, err := f.svc.Edit(ctx, d.ID, domain.DraftEdit{Address: strPtr("Jr. de la Unión 500")}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	f.resolver.EXPECT().
		ResolveFromAddress(gomock.Any(), "Jr. de la Unión 500").
		Return(plazaMayor, nil)

	if _, err := f.svc.ResolveAddress(ctx, d.ID, nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
}

func TestComposer_ResolveAddress_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"no_match", e.Wrap("location.ResolveFromAddress", e.ErrNotFound), e.ErrNotFound},
		{"service_down", e.Wrap("location.ResolveFromAddress", e.ErrService), e.ErrService},
		{"rejected", e.NewValidation("address", "address is empty"), e.ErrValidation},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			f := newComposer(t)
			d := f.newDraft(t)

			if _, err := f.svc.Relocate(ctx, d.ID, plazaMayor); err != nil {
				t.Fatalf("relocate: %v", err)
			}

			f.resolver.EXPECT().
				ResolveFromAddress(gomock.Any(), gomock.Any()).
				Return(domain.Coordinates{}, c.err)

			_, err := f.svc.ResolveAddress(ctx, d.ID, strPtr("somewhere"))
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}

			got, _ := f.svc.Get(ctx, d.ID)
			if got.Coordinates == nil || *got.Coordinates != plazaMayor {
				t.Fatalf("failed resolution must keep coordinates, got %+v", got.Coordinates)
			}
		})
	}
}

func TestComposer_ResolveAddress_SupersededByDrag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	dragged := domain.Coordinates{Lat: -12.05, Lon: -77.03}

	// The user drags the pin while the geocoder is still answering.
	f.resolver.EXPECT().
		ResolveFromAddress(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (domain.Coordinates, error) {
			if _, err := f.svc.Relocate(ctx, d.ID, dragged); err != nil {
				t.Errorf("relocate: %v", err)
			}
			return plazaMayor, nil
		})

	_, err := f.svc.ResolveAddress(ctx, d.ID, strPtr("Plaza Mayor, Lima"))
	if !errors.Is(err, e.ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}

	got, _ := f.svc.Get(ctx, d.ID)
	if got.Coordinates == nil || *got.Coordinates != dragged {
		t.Fatalf("stale geocode overwrote the drag: %+v", got.Coordinates)
	}
}

func TestComposer_ResolveDevice_SupersededByAddress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	devicePos := domain.Coordinates{Lat: -12.1, Lon: -77.0}

	f.resolver.EXPECT().
		ResolveFromDevice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ location.PositionSensor) (domain.Coordinates, error) {
			if _, err := f.svc.ResolveAddress(ctx, d.ID, strPtr("Plaza Mayor, Lima")); err != nil {
				t.Errorf("resolve address: %v", err)
			}
			return devicePos, nil
		})
	f.resolver.EXPECT().
		ResolveFromAddress(gomock.Any(), "Plaza Mayor, Lima").
		Return(plazaMayor, nil)

	sensor := location.ReportedPosition{Position: &devicePos}
	_, err := f.svc.ResolveDevice(ctx, d.ID, sensor)
	if !errors.Is(err, e.ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}

	got, _ := f.svc.Get(ctx, d.ID)
	if got.Coordinates == nil || *got.Coordinates != plazaMayor {
		t.Fatalf("coordinates=%+v", got.Coordinates)
	}
	if got.LocationSource != domain.LocationManualAddress {
		t.Fatalf("source=%q", got.LocationSource)
	}
}

func TestComposer_ResolveAddress_BlankKeepsPendingDeviceRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	devicePos := domain.Coordinates{Lat: -12.1, Lon: -77.0}

	f.resolver.EXPECT().ResolveFromAddress(gomock.Any(), gomock.Any()).Times(0)
	f.resolver.EXPECT().
		ResolveFromDevice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ location.PositionSensor) (domain.Coordinates, error) {
			for _, addr := range []*string{strPtr("   "), strPtr(""), nil} {
				_, err := f.svc.ResolveAddress(ctx, d.ID, addr)
				var verr *e.ValidationError
				if !errors.As(err, &verr) || verr.Field != "address" {
					t.Errorf("expected address validation error, got %v", err)
				}
			}
			return devicePos, nil
		})

	got, err := f.svc.ResolveDevice(ctx, d.ID, location.ReportedPosition{Position: &devicePos})
	if err != nil {
		t.Fatalf("device read must not be superseded by a rejected address: %v", err)
	}
	if got.Coordinates == nil || *got.Coordinates != devicePos {
		t.Fatalf("coordinates=%+v", got.Coordinates)
	}
	if got.LocationSource != domain.LocationDevice || got.Address != "" {
		t.Fatalf("draft changed by rejected address: source=%q address=%q", got.LocationSource, got.Address)
	}
}

func TestComposer_ResolveDevice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	pos := domain.Coordinates{Lat: -12.1, Lon: -77.0}
	f.resolver.EXPECT().
		ResolveFromDevice(gomock.Any(), gomock.Any()).
		Return(pos, nil)

	got, err := f.svc.ResolveDevice(ctx, d.ID, location.ReportedPosition{Position: &pos})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.LocationSource != domain.LocationDevice || got.Coordinates == nil || *got.Coordinates != pos {
		t.Fatalf("unexpected draft: %+v", got)
	}

	denied := &e.LocationError{Reason: e.ReasonPermissionDenied}
	f.resolver.EXPECT().
		ResolveFromDevice(gomock.Any(), gomock.Any()).
		Return(domain.Coordinates{}, denied)

	_, err = f.svc.ResolveDevice(ctx, d.ID, location.ReportedPosition{Failure: "PERMISSION_DENIED"})
	var lerr *e.LocationError
	if !errors.As(err, &lerr) || lerr.Reason != e.ReasonPermissionDenied {
		t.Fatalf("expected permission denied, got %v", err)
	}

	after, _ := f.svc.Get(ctx, d.ID)
	if after.Coordinates == nil || *after.Coordinates != pos {
		t.Fatalf("device failure must keep coordinates, got %+v", after.Coordinates)
	}
}

func TestComposer_Relocate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	got, err := f.svc.Relocate(ctx, d.ID, plazaMayor)
	if err != nil {
		t.Fatalf("relocate: %v", err)
	}
	if got.Preview == nil || got.Preview.Center != plazaMayor || got.Preview.Zoom != mapview.PreviewZoom {
		t.Fatalf("preview=%+v", got.Preview)
	}

	// Releasing the pin on the same spot does not move the view.
	custom := domain.View{Center: domain.Coordinates{Lat: -12, Lon: -77}, Zoom: 11}
	f.drafts.Update(ctx, d.ID, func(d *domain.Draft) error {
		d.Preview = &custom
		return nil
	})
	got, err = f.svc.Relocate(ctx, d.ID, plazaMayor)
	if err != nil {
		t.Fatalf("relocate: %v", err)
	}
	if *got.Preview != custom {
		t.Fatalf("same target must not recenter, preview=%+v", got.Preview)
	}

	_, err = f.svc.Relocate(ctx, d.ID, domain.Coordinates{Lat: 91, Lon: 0})
	if !errors.Is(err, e.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestComposer_Submit_NotSubmittable_NoNetwork(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		prepare   func(t *testing.T, f *composerFixture, id uuid.UUID)
		wantField string
	}{
		{
			name:      "empty",
			prepare:   func(*testing.T, *composerFixture, uuid.UUID) {},
			wantField: "coordinates",
		},
		{
			name: "category_only",
			prepare: func(t *testing.T, f *composerFixture, id uuid.UUID) {
				c := mustChoose(domain.CategoryExtortion)
				if _, err := f.svc.Edit(context.Background(), id, domain.DraftEdit{Category: &c}); err != nil {
					t.Fatalf("edit: %v", err)
				}
			},
			wantField: "coordinates",
		},
		{
			name: "coordinates_only",
			prepare: func(t *testing.T, f *composerFixture, id uuid.UUID) {
				if _, err := f.svc.Relocate(context.Background(), id, plazaMayor); err != nil {
					t.Fatalf("relocate: %v", err)
				}
			},
			wantField: "incidentType",
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			f := newComposer(t)
			d := f.newDraft(t)
			c.prepare(t, f, d.ID)

			f.reports.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

			err := f.svc.Submit(context.Background(), d.ID)
			var verr *e.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != c.wantField {
				t.Fatalf("field=%q want %q", verr.Field, c.wantField)
			}
			if f.drafts.len() != 1 {
				t.Fatalf("draft must be kept")
			}
		})
	}
}

func TestComposer_Submit_OK(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	robo := mustChoose(domain.CategoryRobbery)
	if _, err := f.svc.Edit(ctx, d.ID, domain.DraftEdit{
		Description: strPtr("asalto"),
		Category:    &robo,
		Address:     strPtr("Av. X"),
	}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := f.svc.Relocate(ctx, d.ID, plazaMayor); err != nil {
		t.Fatalf("relocate: %v", err)
	}

	f.reports.EXPECT().
		Create(gomock.Any(), domain.NewIncident{
			Description:  "asalto",
			IncidentType: domain.CategoryRobbery,
			Address:      "Av. X",
			Coordinates:  plazaMayor,
		}).
		Return(nil).
		Times(1)

	if err := f.svc.Submit(ctx, d.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.svc.Get(ctx, d.ID); !errors.Is(err, e.ErrSessionNotFound) {
		t.Fatalf("submitted draft must be deleted, got %v", err)
	}
}

func TestComposer_Submit_ServiceError_KeepsDraft(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	c := mustChoose(domain.CategoryExtortion)
	f.svc.Edit(ctx, d.ID, domain.DraftEdit{Category: &c, Description: strPtr("cobro de cupos")})
	f.svc.Relocate(ctx, d.ID, plazaMayor)
	before, _ := f.svc.Get(ctx, d.ID)

	f.reports.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(e.Wrap("remote.Create", e.ErrService)).
		Times(1)

	err := f.svc.Submit(ctx, d.ID)
	if !errors.Is(err, e.ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}

	after, err := f.svc.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("draft must be kept: %v", err)
	}
	if after.Description != before.Description || after.Category != before.Category || *after.Coordinates != *before.Coordinates {
		t.Fatalf("draft changed: before=%+v after=%+v", before, after)
	}
}

func TestComposer_Discard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newComposer(t)
	d := f.newDraft(t)

	if err := f.svc.Discard(ctx, d.ID); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if err := f.svc.Discard(ctx, d.ID); !errors.Is(err, e.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestComposer_Create_StoreError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	drafts := mock_service.NewMockDraftStore(ctrl)
	drafts.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("redis down"))

	svc := service.NewComposerService(drafts, nil, nil, newTestLogger())
	if _, err := svc.Create(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

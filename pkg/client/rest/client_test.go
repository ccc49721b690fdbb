package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	http_controller "github.com/hospitalops/pulse/pkg/controller/http"
	"github.com/hospitalops/pulse/pkg/client/rest"
	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/auth"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/repository/memory"
	"github.com/hospitalops/pulse/pkg/usecase"
)

var testSecret = []byte("test-secret-for-rest-client")

func newClient(t *testing.T) *rest.Client {
	t.Helper()

	uc := usecase.New(memory.New())
	srv := httptest.NewServer(http_controller.New(uc,
		http_controller.WithAuthSecret(testSecret),
	))
	t.Cleanup(srv.Close)

	token := gt.R1(auth.IssueToken("nurse-1", "Test Nurse", testSecret, time.Now())).NoError(t)
	return rest.New(srv.URL+"/api", rest.WithToken(token))
}

func testInput() alert.CreateInput {
	return alert.CreateInput{
		Title:       "MRI scanner offline",
		Description: "Radiology MRI reports a coil fault",
		Priority:    types.AlertPriorityHigh,
		Category:    types.AlertCategoryEquipment,
	}
}

func TestAlertRoundTrip(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	created := gt.R1(client.Create(ctx, testInput())).NoError(t)
	gt.Equal(t, created.Status, types.AlertStatusActive)
	gt.False(t, created.Read)

	fetched := gt.R1(client.Get(ctx, created.ID)).NoError(t)
	gt.Equal(t, fetched.Title, created.Title)

	alerts := gt.R1(client.List(ctx, alert.Filter{Status: types.AlertStatusActive})).NoError(t)
	gt.Array(t, alerts).Length(1)

	acked := gt.R1(client.Acknowledge(ctx, created.ID)).NoError(t)
	gt.Equal(t, acked.Status, types.AlertStatusAcknowledged)
	gt.Equal(t, acked.AcknowledgedBy, types.UserID("nurse-1"))

	// Idempotent: second acknowledge succeeds and keeps the first state.
	ackedAgain := gt.R1(client.Acknowledge(ctx, created.ID)).NoError(t)
	gt.Equal(t, ackedAgain.AcknowledgedAt, acked.AcknowledgedAt)

	resolved := gt.R1(client.Resolve(ctx, created.ID, "replaced coil")).NoError(t)
	gt.Equal(t, resolved.Status, types.AlertStatusResolved)
	gt.Equal(t, resolved.Resolution, "replaced coil")

	read := gt.R1(client.MarkRead(ctx, created.ID)).NoError(t)
	gt.True(t, read.Read)

	gt.NoError(t, client.Delete(ctx, created.ID))
	_, err := client.Get(ctx, created.ID)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagNotFound))
}

func TestMarkAllReadAndStats(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	for range 3 {
		gt.R1(client.Create(ctx, testInput())).NoError(t)
	}

	stats := gt.R1(client.Stats(ctx)).NoError(t)
	gt.Equal(t, stats.Total, 3)
	gt.Equal(t, stats.Unread, 3)

	gt.NoError(t, client.MarkAllRead(ctx))

	stats = gt.R1(client.Stats(ctx)).NoError(t)
	gt.Equal(t, stats.Unread, 0)
}

func TestNetworkError(t *testing.T) {
	// Nothing listens on this port.
	client := rest.New("http://127.0.0.1:1/api")

	_, err := client.List(context.Background(), alert.Filter{})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagNetwork))
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := rest.New(srv.URL)

	_, err := client.List(context.Background(), alert.Filter{})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagServer))
}

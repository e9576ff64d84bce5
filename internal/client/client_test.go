package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/session"
)

type staticCreds session.Credentials

func (s staticCreds) Credentials() session.Credentials { return session.Credentials(s) }

func TestClientSendsCredentials(t *testing.T) {
	var gotAuth, gotCSRF, gotMethod, gotPath string
	var gotBody dto.StatusUpdateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCSRF = r.Header.Get(csrfHeader)
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(dto.StatusUpdateResponse{Message: "ok", Status: "paused"})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", staticCreds{Token: "jwt", CSRF: "csrf"})
	resp, err := c.UpdateStatus(context.Background(), 12, "paused")
	require.NoError(t, err)

	assert.Equal(t, "paused", resp.Status)
	assert.Equal(t, "Bearer jwt", gotAuth)
	assert.Equal(t, "csrf", gotCSRF)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/subscriptions/12/status", gotPath)
	assert.Equal(t, "paused", gotBody.Status)
}

func TestClientOmitsCSRFOnReads(t *testing.T) {
	var gotCSRF string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCSRF = r.Header.Get(csrfHeader)
		_, _ = w.Write([]byte(`[{"id":1,"planName":"Diet Plan","mealTypes":["Lunch"],"deliveryDays":["Monday"],"totalPrice":129000,"status":"pending"}]`))
	}))
	defer srv.Close()

	list, err := New(srv.URL, staticCreds{Token: "jwt", CSRF: "csrf"}).ListSubscriptions(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "pending", list[0].Status)
	assert.Empty(t, gotCSRF)
}

func TestClientDecodesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"CONFLICT","message":"subscription is not awaiting payment"}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).CreatePayment(context.Background(), 3)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	assert.Equal(t, "subscription is not awaiting payment", err.Error())
	assert.False(t, errors.Is(err, ErrUnauthenticated))
}

func TestClientMapsRejectedCredential(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := New(srv.URL, staticCreds{Token: "stale"}).Me(context.Background())
		srv.Close()

		assert.True(t, errors.Is(err, ErrUnauthenticated), "status %d", status)
		assert.Equal(t, http.StatusText(status), err.Error())
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "boom", MessageOf(&APIError{Status: 500, Message: "boom"}, "generic"))
	assert.Equal(t, "generic", MessageOf(errors.New("dial tcp: refused"), "generic"))
}

func TestDashboardStatsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"newSubscriptions":2,"monthlyRecurringRevenue":2408000,"activeSubscriptions":1,"reactivations":0}`))
	}))
	defer srv.Close()

	stats, err := New(srv.URL, staticCreds{Token: "jwt"}).DashboardStats(context.Background(), "2025-01-01", "")
	require.NoError(t, err)
	assert.Equal(t, "from=2025-01-01", gotQuery)
	assert.EqualValues(t, 2408000, stats.MonthlyRecurringRevenue)
}

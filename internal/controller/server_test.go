package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/auth"
	"github.com/dreamedu/studio-portal/internal/repository"
	"github.com/dreamedu/studio-portal/internal/service"
	"github.com/dreamedu/studio-portal/internal/store"
)

const (
	testAdminEmail    = "admin@dreamedu.com"
	testAdminPassword = "admin123"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	st := store.NewMemStore()

	teacherRepo := repository.NewTeacherRepository(st, logger)
	bookingRepo := repository.NewBookingRepository(st, logger)
	packageRepo := repository.NewPackageRepository(st, logger)
	txRepo := repository.NewTransactionRepository(st, logger)
	cmsRepo := repository.NewCMSRepository(st, logger)

	_, err := teacherRepo.Load(ctx)
	require.NoError(t, err)
	bookingRepo.Load(ctx)
	packageRepo.Load(ctx)
	txRepo.Load(ctx)
	cmsRepo.Load(ctx)

	gate := auth.NewGate(st, logger)
	server := NewServer(
		service.NewAuthService(teacherRepo, cmsRepo, gate, testAdminEmail, testAdminPassword, logger),
		service.NewTeacherService(teacherRepo, logger),
		service.NewBookingService(teacherRepo, bookingRepo, cmsRepo, nil, logger),
		service.NewPaymentService(teacherRepo, packageRepo, txRepo, logger),
		service.NewCatalogService(packageRepo, logger),
		service.NewCMSService(cmsRepo, logger),
		auth.NewTokens("test-secret"),
		time.Hour,
		logger,
	)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func login(t *testing.T, ts *httptest.Server, email, password string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &out)
	return out.Token
}

func TestLandingIsAnonymous(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/landing")
	require.NoError(t, err)

	var out struct {
		CMS struct {
			HeroTitle string `json:"heroTitle"`
		} `json:"cms"`
		Packages []struct {
			ID string `json:"id"`
		} `json:"packages"`
	}
	decodeBody(t, resp, &out)

	assert.Equal(t, "Dream Education Studio", out.CMS.HeroTitle)
	assert.Len(t, out.Packages, 3)
}

func TestRegisterLoginApprovalFlow(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]any{
		"name":     "A",
		"email":    "a@x.com",
		"password": "pw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)

	// Повторная регистрация того же email
	resp = doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]any{
		"name":     "B",
		"email":    "a@x.com",
		"password": "pw",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Вход до одобрения
	resp = doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]any{
		"email":    "a@x.com",
		"password": "pw",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	adminToken := login(t, ts, testAdminEmail, testAdminPassword)
	resp = doJSON(t, http.MethodPost, ts.URL+"/admin/teachers/"+created.ID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	teacherToken := login(t, ts, "a@x.com", "pw")
	resp = doJSON(t, http.MethodGet, ts.URL+"/auth/me", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		Role string `json:"role"`
		ID   string `json:"id"`
	}
	decodeBody(t, resp, &me)
	assert.Equal(t, "teacher", me.Role)
	assert.Equal(t, created.ID, me.ID)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	// Демо-учитель засеян с пятью часами
	teacherToken := login(t, ts, "teacher@dreamedu.com", "teacher123")

	resp := doJSON(t, http.MethodPost, ts.URL+"/teacher/bookings", teacherToken, map[string]any{
		"date":      "2030-05-10",
		"startTime": 10,
		"duration":  2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Booking struct {
			ID     string  `json:"id"`
			Status string  `json:"status"`
			Cost   float64 `json:"cost"`
		} `json:"booking"`
		WhatsAppLink string `json:"whatsappLink"`
	}
	decodeBody(t, resp, &out)

	assert.Equal(t, "Pending", out.Booking.Status)
	assert.Equal(t, 1500.0, out.Booking.Cost)
	assert.Contains(t, out.WhatsAppLink, "https://wa.me/94")

	// Пересекающийся слот занят
	resp = doJSON(t, http.MethodPost, ts.URL+"/teacher/bookings", teacherToken, map[string]any{
		"date":      "2030-05-10",
		"startTime": 11,
		"duration":  1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Админ подтверждает бронирование
	adminToken := login(t, ts, testAdminEmail, testAdminPassword)
	resp = doJSON(t, http.MethodPatch, ts.URL+"/admin/bookings/"+out.Booking.ID+"/status", adminToken, map[string]any{
		"status": "Confirmed",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Недопустимый переход отклоняется
	resp = doJSON(t, http.MethodPatch, ts.URL+"/admin/bookings/"+out.Booking.ID+"/status", adminToken, map[string]any{
		"status": "Pending",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestRoleGating(t *testing.T) {
	ts := newTestServer(t)

	// Аноним не проходит
	resp := doJSON(t, http.MethodGet, ts.URL+"/teacher/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Учитель не попадает в админку
	teacherToken := login(t, ts, "teacher@dreamedu.com", "teacher123")
	resp = doJSON(t, http.MethodGet, ts.URL+"/admin/bookings", teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Админ не ходит в кабинет учителя
	adminToken := login(t, ts, testAdminEmail, testAdminPassword)
	resp = doJSON(t, http.MethodGet, ts.URL+"/teacher/dashboard", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestPurchaseVerifyTopUpOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]any{
		"name": "A", "email": "a@x.com", "password": "pw",
	})
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)

	adminToken := login(t, ts, testAdminEmail, testAdminPassword)
	resp = doJSON(t, http.MethodPost, ts.URL+"/admin/teachers/"+created.ID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	teacherToken := login(t, ts, "a@x.com", "pw")

	resp = doJSON(t, http.MethodPost, ts.URL+"/teacher/purchases", teacherToken, map[string]any{
		"packageId": "pkg-pro",
		"method":    "Online",
		"slipImage": "slip",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tx struct {
		ID       string `json:"id"`
		Verified bool   `json:"verified"`
	}
	decodeBody(t, resp, &tx)
	assert.False(t, tx.Verified)

	resp = doJSON(t, http.MethodPost, ts.URL+"/admin/transactions/"+tx.ID+"/verify", adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// После подтверждения у учителя пять часов плана
	resp = doJSON(t, http.MethodGet, ts.URL+"/teacher/dashboard", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash struct {
		Teacher struct {
			Credits float64 `json:"credits"`
		} `json:"teacher"`
	}
	decodeBody(t, resp, &dash)
	assert.Equal(t, 5.0, dash.Teacher.Credits)

	// Ручное пополнение
	resp = doJSON(t, http.MethodPost, ts.URL+"/admin/teachers/"+created.ID+"/topup", adminToken, map[string]any{
		"amount": 1000,
		"hours":  2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.URL+"/admin/finance/summary", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary struct {
		TotalRevenue  float64 `json:"totalRevenue"`
		VerifiedCount int     `json:"verifiedCount"`
	}
	decodeBody(t, resp, &summary)
	assert.Equal(t, 5500.0, summary.TotalRevenue)
	assert.Equal(t, 2, summary.VerifiedCount)
}

// Хэш пароля не должен утекать ни в одном ответе API: наружу уходит
// teacherView, а не model.Teacher
func TestResponsesOmitPasswordHash(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]any{
		"name": "A", "email": "a@x.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	decodeBody(t, resp, &created)
	assert.NotContains(t, created, "password")

	// Демо-учитель в базе имеет непустой хэш
	teacherToken := login(t, ts, "teacher@dreamedu.com", "teacher123")
	resp = doJSON(t, http.MethodGet, ts.URL+"/teacher/dashboard", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash struct {
		Teacher map[string]any `json:"teacher"`
	}
	decodeBody(t, resp, &dash)
	assert.NotContains(t, dash.Teacher, "password")

	adminToken := login(t, ts, testAdminEmail, testAdminPassword)
	resp = doJSON(t, http.MethodGet, ts.URL+"/admin/teachers", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var teachers []map[string]any
	decodeBody(t, resp, &teachers)
	require.NotEmpty(t, teachers)
	for _, item := range teachers {
		assert.NotContains(t, item, "password")
	}
}

func TestCMSUpdateAffectsLanding(t *testing.T) {
	ts := newTestServer(t)
	adminToken := login(t, ts, testAdminEmail, testAdminPassword)

	resp := doJSON(t, http.MethodGet, ts.URL+"/admin/cms", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cms map[string]any
	decodeBody(t, resp, &cms)
	cms["heroTitle"] = "New Title"

	resp = doJSON(t, http.MethodPut, ts.URL+"/admin/cms", adminToken, cms)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	landing, err := http.Get(ts.URL + "/landing")
	require.NoError(t, err)

	var out struct {
		CMS struct {
			HeroTitle string `json:"heroTitle"`
		} `json:"cms"`
	}
	decodeBody(t, landing, &out)
	assert.Equal(t, "New Title", out.CMS.HeroTitle)
}

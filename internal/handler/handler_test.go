package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Meenakshi-1306/Tutedude/internal/middleware"
	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/internal/notify"
	"github.com/Meenakshi-1306/Tutedude/internal/store"
	"github.com/Meenakshi-1306/Tutedude/pkg/config"
	"github.com/Meenakshi-1306/Tutedude/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1705312345678).UTC()

type fakeMailer struct {
	sent []notify.Notice
	err  error
}

func (m *fakeMailer) Send(_ context.Context, n notify.Notice) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, n)
	return "msg_1", nil
}

type publishedEvent struct {
	topic string
	key   string
	event any
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{topic, key, event})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type testEnv struct {
	h         *Handler
	store     *store.MemoryStore
	mailer    *fakeMailer
	publisher *fakePublisher
	e         *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s := store.NewMemoryStore()
	_, err := store.Seed(context.Background(), s)
	require.NoError(t, err)

	cfg := &config.Config{
		JWT:         config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1},
		Mail:        config.MailConfig{FSSAIRecipient: "fssai@gov.in"},
		Kafka:       config.KafkaConfig{OrderTopic: "marketplace.orders", ReportTopic: "marketplace.fssai-reports"},
		Marketplace: config.DefaultMarketplace(),
	}

	env := &testEnv{store: s, mailer: &fakeMailer{}, publisher: &fakePublisher{}, e: echo.New()}
	env.h = New(s, jwtutil.NewJWTUtil(&cfg.JWT), env.mailer, env.publisher, cfg)
	env.h.now = func() time.Time { return fixedNow }
	return env
}

// request describes one handler invocation
type request struct {
	method string
	path   string
	body   any
	params map[string]string
	userID string
	role   model.Role
}

func (env *testEnv) call(t *testing.T, fn echo.HandlerFunc, r request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body *bytes.Reader
	switch b := r.body.(type) {
	case nil:
		body = bytes.NewReader(nil)
	case string:
		body = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	method := r.method
	if method == "" {
		method = http.MethodGet
	}
	path := r.path
	if path == "" {
		path = "/"
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if len(r.params) > 0 {
		names := make([]string, 0, len(r.params))
		values := make([]string, 0, len(r.params))
		for name, value := range r.params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if r.userID != "" {
		c.Set(middleware.UserIDKey, r.userID)
		c.Set(middleware.RoleKey, r.role)
	}

	require.NoError(t, fn(c))

	var decoded map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

// asVendor and asSupplier authenticate a request as a seeded account
func asVendor(id string, r request) request {
	r.userID, r.role = id, model.RoleVendor
	return r
}

func asSupplier(id string, r request) request {
	r.userID, r.role = id, model.RoleSupplier
	return r
}

var errBoom = errors.New("boom")

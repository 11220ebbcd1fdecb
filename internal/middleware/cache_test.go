package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
)

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		TTL:          30 * time.Second,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func browseContext(e *echo.Echo) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/v1/restaurants", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/restaurants")
	return c, rec
}

func TestRedisCache_ServesHitWithoutHandler(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	cfg := cacheConfig()
	e := echo.New()
	c, rec := browseContext(e)

	hdr := http.Header{"Content-Type": []string{"application/json"}}
	payload, err := encodePayload(http.StatusOK, hdr, []byte(`{"restaurants":[]}`))
	require.NoError(t, err)
	mock.ExpectGet(cacheKey(cfg, c)).SetVal(string(payload))

	reached := false
	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	assert.False(t, reached, "handler must not run on a cache hit")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"restaurants":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_StoresMissAndServesResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	cfg := cacheConfig()
	e := echo.New()
	c, rec := browseContext(e)

	mock.ExpectGet(cacheKey(cfg, c)).RedisNil()
	mock.Regexp().ExpectSetEx(cacheKey(cfg, c), `(?s).*`, cfg.TTL).SetVal("OK")

	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"restaurants": []string{}})
	})
	require.NoError(t, h(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"restaurants":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_SkipsNonGetAndErrors(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	cfg := cacheConfig()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/quote", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/quote")

	// No Redis expectations: a POST must bypass the cache entirely.
	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_DoesNotStoreNon200(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	cfg := cacheConfig()
	e := echo.New()
	c, rec := browseContext(e)

	// Lookup misses; the 404 response must not be written back.
	mock.ExpectGet(cacheKey(cfg, c)).RedisNil()

	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayloadCodecRoundTrip(t *testing.T) {
	hdr := http.Header{
		"Content-Type": []string{"application/json"},
		"X-Custom":     []string{"a", "b"},
	}
	body := []byte(`{"ok":true}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, body, gotBody)

	// Truncated or garbage input is rejected, never panics.
	_, _, _, ok = decodePayload(nil)
	assert.False(t, ok)
	_, _, _, ok = decodePayload([]byte{0, 0})
	assert.False(t, ok)
	_, _, _, ok = decodePayload(bs[:10])
	assert.False(t, ok)
}

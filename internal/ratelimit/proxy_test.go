package ratelimit_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/greenhollow/gh-game-core/internal/config"
	"github.com/greenhollow/gh-game-core/internal/logger"
	"github.com/greenhollow/gh-game-core/internal/mocks"
	"github.com/greenhollow/gh-game-core/internal/ratelimit"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testProxyMocks contains all the mocks needed for testing the proxy
type testProxyMocks struct {
	ctrl             *gomock.Controller
	redisClient      *mocks.MockRedisClient
	redisRateLimiter *mocks.MockRedisRateLimiter
	clock            *mocks.MockClock
}

// setupTestProxy creates all the mocks for testing
func setupTestProxy(t *testing.T) *testProxyMocks {
	ctrl := gomock.NewController(t)

	tm := &testProxyMocks{
		ctrl:             ctrl,
		redisClient:      mocks.NewMockRedisClient(ctrl),
		redisRateLimiter: mocks.NewMockRedisRateLimiter(ctrl),
		clock:            mocks.NewMockClock(ctrl),
	}

	// The health monitor goroutine parks on the clock; returning a channel
	// that never fires keeps it quiet for the duration of the test.
	tm.clock.EXPECT().After(gomock.Any()).DoAndReturn(func(time.Duration) <-chan time.Time {
		return make(chan time.Time)
	}).AnyTimes()

	return tm
}

// tearDownTestProxy cleans up the test mocks
func tearDownTestProxy(tm *testProxyMocks) {
	tm.ctrl.Finish()
}

func testLimiterConfig() config.RateLimiterConfig {
	return config.RateLimiterConfig{
		RedisAddr:               "localhost:6379",
		RedisKeyPrefix:          "test:limiter:",
		MaxWorkers:              10,
		MaxQueueSize:            100,
		EnableLocalFallback:     true,
		Providers: map[string]config.RateLimitConfig{
			"assets": {
				RequestsPerSecond: 10,
				Burst:             20,
				MaxQueueTime:      5 * time.Minute,
			},
		},
	}
}

// setupProxyWithMocks creates a proxy with common mock expectations
func setupProxyWithMocks(t *testing.T, tm *testProxyMocks, cfg config.RateLimiterConfig, redisAvailable bool) ratelimit.Proxy {
	// Mock Redis ping
	statusCmd := redis.NewStatusCmd(context.Background())
	if redisAvailable {
		statusCmd.SetVal("PONG")
	} else {
		statusCmd.SetErr(errors.New("connection refused"))
	}
	tm.redisClient.EXPECT().
		Ping(gomock.Any()).
		Return(statusCmd)

	// Mock rate limiter creation
	tm.redisClient.EXPECT().
		NewRateLimiter().
		Return(tm.redisRateLimiter)

	proxy, err := ratelimit.NewProxy(cfg, tm.redisClient, tm.clock)
	assert.NoError(t, err)

	return proxy
}

func closeProxy(tm *testProxyMocks, p ratelimit.Proxy) {
	tm.redisClient.EXPECT().Close().Return(nil).AnyTimes()
	_ = p.Close()
}

func TestNewProxy_Success(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	proxy := setupProxyWithMocks(t, tm, testLimiterConfig(), true)
	assert.NotNil(t, proxy)

	closeProxy(tm, proxy)
}

func TestNewProxy_RedisUnavailable_FallbackEnabled(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	proxy := setupProxyWithMocks(t, tm, testLimiterConfig(), false)

	// Should succeed with fallback enabled
	assert.NotNil(t, proxy)

	closeProxy(tm, proxy)
}

func TestNewProxy_RedisUnavailable_FallbackDisabled(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	cfg := testLimiterConfig()
	cfg.EnableLocalFallback = false

	// Mock Redis ping failure
	statusCmd := redis.NewStatusCmd(context.Background())
	statusCmd.SetErr(errors.New("connection refused"))
	tm.redisClient.EXPECT().
		Ping(gomock.Any()).
		Return(statusCmd)

	proxy, err := ratelimit.NewProxy(cfg, tm.redisClient, tm.clock)

	// Should fail without fallback
	assert.Error(t, err)
	assert.Nil(t, proxy)
	assert.Contains(t, err.Error(), "redis unavailable and fallback disabled")
}

func TestNewProxy_InvalidConfig_NoRedisAddr(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	cfg := testLimiterConfig()
	cfg.RedisAddr = ""

	proxy, err := ratelimit.NewProxy(cfg, tm.redisClient, tm.clock)

	assert.Error(t, err)
	assert.Nil(t, proxy)
	assert.Contains(t, err.Error(), "redis_addr is required")
}

func TestNewProxy_InvalidConfig_NoProviders(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	cfg := testLimiterConfig()
	cfg.Providers = map[string]config.RateLimitConfig{}

	proxy, err := ratelimit.NewProxy(cfg, tm.redisClient, tm.clock)

	assert.Error(t, err)
	assert.Nil(t, proxy)
	assert.Contains(t, err.Error(), "at least one provider must be configured")
}

func TestNewProxy_InvalidConfig_InvalidRPS(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	cfg := testLimiterConfig()
	cfg.Providers = map[string]config.RateLimitConfig{
		"assets": {RequestsPerSecond: 0},
	}

	proxy, err := ratelimit.NewProxy(cfg, tm.redisClient, tm.clock)

	assert.Error(t, err)
	assert.Nil(t, proxy)
	assert.Contains(t, err.Error(), "requests_per_second must be positive")
}

func TestProxy_Request_Success(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	proxy := setupProxyWithMocks(t, tm, testLimiterConfig(), true)

	// Mock distributed limiter allowing request
	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), "test:limiter:assets", gomock.Any()).
		Return(&redis_rate.Result{
			Allowed:   1,
			Remaining: 9,
		}, nil)

	// Execute request
	ctx := context.Background()
	expectedResult := "success"
	result, err := proxy.Request(ctx, "assets", func(ctx context.Context) (interface{}, error) {
		return expectedResult, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, expectedResult, result)

	closeProxy(tm, proxy)
}

func TestProxy_Request_UnknownProvider(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	proxy := setupProxyWithMocks(t, tm, testLimiterConfig(), true)

	ctx := context.Background()
	result, err := proxy.Request(ctx, "unknown-provider", func(ctx context.Context) (interface{}, error) {
		return "success", nil
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "provider 'unknown-provider' not configured")

	closeProxy(tm, proxy)
}

func TestProxy_Request_LocalFallback(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	// Redis down from the start; local limiter carries the request.
	proxy := setupProxyWithMocks(t, tm, testLimiterConfig(), false)

	ctx := context.Background()
	result, err := proxy.Request(ctx, "assets", func(ctx context.Context) (interface{}, error) {
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, result)

	closeProxy(tm, proxy)
}

func TestProxy_Request_FunctionError(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	proxy := setupProxyWithMocks(t, tm, testLimiterConfig(), true)

	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), "test:limiter:assets", gomock.Any()).
		Return(&redis_rate.Result{Allowed: 1}, nil)

	ctx := context.Background()
	result, err := proxy.Request(ctx, "assets", func(ctx context.Context) (interface{}, error) {
		return nil, assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, result)

	closeProxy(tm, proxy)
}

func TestProxy_Request_AfterClose(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	proxy := setupProxyWithMocks(t, tm, testLimiterConfig(), true)
	closeProxy(tm, proxy)

	ctx := context.Background()
	result, err := proxy.Request(ctx, "assets", func(ctx context.Context) (interface{}, error) {
		return "success", nil
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "proxy is closed")
}

func TestRequest_Generic(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	proxy := setupProxyWithMocks(t, tm, testLimiterConfig(), true)

	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), "test:limiter:assets", gomock.Any()).
		Return(&redis_rate.Result{Allowed: 1}, nil)

	ctx := context.Background()
	value, err := ratelimit.Request(ctx, proxy, "assets", func(ctx context.Context) ([]byte, error) {
		return []byte("payload"), nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)

	closeProxy(tm, proxy)
}

func TestRequest_Generic_NilProxy(t *testing.T) {
	// A nil proxy executes the function directly
	ctx := context.Background()
	value, err := ratelimit.Request(ctx, nil, "assets", func(ctx context.Context) (string, error) {
		return "direct", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "direct", value)
}

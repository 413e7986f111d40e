package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_BruteForceDefaults(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!!")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Auth.LoginFailureThreshold != 5 {
		t.Errorf("LoginFailureThreshold: got %d, want 5", cfg.Auth.LoginFailureThreshold)
	}
	if cfg.Auth.LockoutDuration != 15*time.Minute {
		t.Errorf("LockoutDuration: got %v, want 15m", cfg.Auth.LockoutDuration)
	}
	if cfg.Auth.AttemptCacheTTL != 15*time.Minute {
		t.Errorf("AttemptCacheTTL: got %v, want 15m", cfg.Auth.AttemptCacheTTL)
	}
	if cfg.Auth.AttemptCacheMaxSize != 10000 {
		t.Errorf("AttemptCacheMaxSize: got %d, want 10000", cfg.Auth.AttemptCacheMaxSize)
	}
	if cfg.Auth.TokenTTL != 1*time.Hour {
		t.Errorf("TokenTTL: got %v, want 1h", cfg.Auth.TokenTTL)
	}
}

func TestLoad_BruteForceCustomValues(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("LOGIN_FAILURE_THRESHOLD", "3")
	os.Setenv("LOCKOUT_DURATION", "5m")
	os.Setenv("ATTEMPT_CACHE_TTL", "10m")
	os.Setenv("ATTEMPT_CACHE_MAX_ENTRIES", "100")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Auth.LoginFailureThreshold != 3 {
		t.Errorf("LoginFailureThreshold: got %d, want 3", cfg.Auth.LoginFailureThreshold)
	}
	if cfg.Auth.LockoutDuration != 5*time.Minute {
		t.Errorf("LockoutDuration: got %v, want 5m", cfg.Auth.LockoutDuration)
	}
	if cfg.Auth.AttemptCacheTTL != 10*time.Minute {
		t.Errorf("AttemptCacheTTL: got %v, want 10m", cfg.Auth.AttemptCacheTTL)
	}
	if cfg.Auth.AttemptCacheMaxSize != 100 {
		t.Errorf("AttemptCacheMaxSize: got %d, want 100", cfg.Auth.AttemptCacheMaxSize)
	}
}

func TestLoad_ShortJWTSecretFails(t *testing.T) {
	os.Setenv("JWT_SECRET", "0123456789abcdef") // 16 bytes
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() with 16-byte secret: got nil error, want key configuration error")
	}
}

func TestLoad_MissingJWTSecretFails(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() without JWT_SECRET: got nil error, want error")
	}
}

func TestLoad_ZeroThresholdFails(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("LOGIN_FAILURE_THRESHOLD", "0")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() with zero threshold: got nil error, want error")
	}
}

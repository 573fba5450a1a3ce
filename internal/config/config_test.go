package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Interview.QuestionLimit != 10 {
		t.Errorf("Interview.QuestionLimit = %d, want 10", cfg.Interview.QuestionLimit)
	}
	if len(cfg.Interview.Concepts) == 0 {
		t.Error("Interview.Concepts default must not be empty")
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		t.Error("Server.AllowedOrigins default must not be empty")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/such/config.yaml"); err == nil {
		t.Error("Load() with a missing file should fail")
	}
}

func TestGetPolicyTimeout(t *testing.T) {
	c := &InterviewConfig{PolicyTimeout: 30}
	if got := c.GetPolicyTimeout(); got != 30*time.Second {
		t.Errorf("GetPolicyTimeout() = %v, want 30s", got)
	}

	c.PolicyTimeout = 0
	if got := c.GetPolicyTimeout(); got != 60*time.Second {
		t.Errorf("GetPolicyTimeout() zero value = %v, want 60s fallback", got)
	}
}

func TestGetDSN(t *testing.T) {
	c := &DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", DBName: "skillsense", SSLMode: "disable",
	}
	want := "host=localhost port=5432 user=postgres password=secret dbname=skillsense sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}

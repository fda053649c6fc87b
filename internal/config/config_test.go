package config_test

import (
	"encoding/json"
	"testing"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/jmallard/manifest/internal/config"
)

func TestServerConfigDefaults(t *testing.T) {
	cfg := &config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q, want 0.0.0.0:8080", cfg.Addr())
	}
	if cfg.ReadTimeoutDuration() != time.Minute {
		t.Errorf("ReadTimeoutDuration = %v, want 1m", cfg.ReadTimeoutDuration())
	}
	if cfg.WriteTimeoutDuration() != 5*time.Minute {
		t.Errorf("WriteTimeoutDuration = %v, want 5m", cfg.WriteTimeoutDuration())
	}
}

func TestServerConfigEnvOverride(t *testing.T) {
	t.Setenv(config.EnvServerHost, "127.0.0.1")
	t.Setenv(config.EnvServerPort, "9090")

	cfg := &config.ServerConfig{Host: "0.0.0.0", Port: 8080}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr = %q, want 127.0.0.1:9090", cfg.Addr())
	}
}

func TestServerConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ServerConfig
	}{
		{"port out of range", config.ServerConfig{Port: 70000}},
		{"bad read timeout", config.ServerConfig{ReadTimeout: "fast"}},
		{"bad write timeout", config.ServerConfig{WriteTimeout: "never"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize should fail")
			}
		})
	}
}

func TestServerConfigMerge(t *testing.T) {
	cfg := &config.ServerConfig{Host: "0.0.0.0", Port: 8080, ReadTimeout: "1m"}
	cfg.Merge(&config.ServerConfig{Port: 9000})

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("Host = %q, merge should not clear it", cfg.Host)
	}
	if cfg.ReadTimeout != "1m" {
		t.Errorf("ReadTimeout = %q, merge should not clear it", cfg.ReadTimeout)
	}
}

func TestPipelineConfigDefaults(t *testing.T) {
	cfg := &config.PipelineConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.Workers != 4 || cfg.SubmitWorkers != 4 {
		t.Errorf("workers = %d/%d, want 4/4", cfg.Workers, cfg.SubmitWorkers)
	}
	if cfg.CallTimeoutDuration() != time.Minute {
		t.Errorf("CallTimeoutDuration = %v, want 1m", cfg.CallTimeoutDuration())
	}
}

func TestPipelineConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.PipelineConfig
	}{
		{"negative workers", config.PipelineConfig{Workers: -1}},
		{"negative submit workers", config.PipelineConfig{SubmitWorkers: -2}},
		{"bad timeout", config.PipelineConfig{CallTimeout: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize should fail")
			}
		})
	}
}

func TestRemoteConfigFinalize(t *testing.T) {
	cfg := &config.RemoteConfig{URL: "https://api.example.com/graphql"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.TimeoutDuration() != 30*time.Second {
		t.Errorf("TimeoutDuration = %v, want default 30s", cfg.TimeoutDuration())
	}
	if !cfg.Tenant.Active {
		t.Error("tenant should default to active")
	}
}

func TestRemoteConfigRequiresURL(t *testing.T) {
	cfg := &config.RemoteConfig{}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize should fail without a url")
	}
}

func TestRemoteConfigEnvOverride(t *testing.T) {
	t.Setenv(config.EnvRemoteURL, "https://env.example.com/graphql")
	t.Setenv(config.EnvRemoteTenantID, "tenant-env")

	cfg := &config.RemoteConfig{URL: "https://file.example.com/graphql"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.URL != "https://env.example.com/graphql" {
		t.Errorf("URL = %q, environment should win", cfg.URL)
	}
	if cfg.Tenant.ID != "tenant-env" {
		t.Errorf("Tenant.ID = %q, want tenant-env", cfg.Tenant.ID)
	}
}

func TestTenantHeader(t *testing.T) {
	cfg := &config.RemoteConfig{
		URL: "https://api.example.com/graphql",
		Tenant: config.TenantConfig{
			ID:        "tenant-1",
			Name:      "Tenant One",
			Subdomain: "one",
			Code:      "T1",
		},
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	var decoded config.TenantConfig
	if err := json.Unmarshal([]byte(cfg.TenantHeader()), &decoded); err != nil {
		t.Fatalf("header not valid JSON: %v", err)
	}
	if decoded != cfg.Tenant {
		t.Errorf("decoded header = %+v, want %+v", decoded, cfg.Tenant)
	}
}

func TestAPIConfigDefaults(t *testing.T) {
	cfg := &config.APIConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.BasePath != "/api" {
		t.Errorf("BasePath = %q, want /api", cfg.BasePath)
	}
	if cfg.MaxUploadSizeBytes() != 10*1024*1024 {
		t.Errorf("MaxUploadSizeBytes = %d, want 10MB", cfg.MaxUploadSizeBytes())
	}
}

func TestAPIConfigUploadSize(t *testing.T) {
	cfg := &config.APIConfig{MaxUploadSize: "2MB"}
	if got := cfg.MaxUploadSizeBytes(); got != 2*1024*1024 {
		t.Errorf("MaxUploadSizeBytes = %d, want 2MB", got)
	}

	cfg = &config.APIConfig{MaxUploadSize: "a lot"}
	if got := cfg.MaxUploadSizeBytes(); got != 10*1024*1024 {
		t.Errorf("MaxUploadSizeBytes = %d, want 10MB fallback", got)
	}
}

func TestFinalizeAgentEnvOverride(t *testing.T) {
	t.Setenv(config.EnvAgentProviderName, "ollama")
	t.Setenv(config.EnvAgentBaseURL, "http://localhost:11434")
	t.Setenv(config.EnvAgentModelName, "llama3.1:8b")
	t.Setenv(config.EnvAgentToken, "tok-abc")

	cfg := gaconfig.AgentConfig{}
	if err := config.FinalizeAgent(&cfg); err != nil {
		t.Fatalf("FinalizeAgent error: %v", err)
	}

	if cfg.Client == nil || cfg.Client.Provider == nil {
		t.Fatal("client provider not populated")
	}

	provider := cfg.Client.Provider
	if provider.Name != "ollama" {
		t.Errorf("provider name = %q, want ollama", provider.Name)
	}
	if provider.BaseURL != "http://localhost:11434" {
		t.Errorf("provider base URL = %q, want http://localhost:11434", provider.BaseURL)
	}
	if provider.Model == nil || provider.Model.Name != "llama3.1:8b" {
		t.Errorf("model = %+v, want name llama3.1:8b", provider.Model)
	}
	if provider.Options["token"] != "tok-abc" {
		t.Errorf("token option = %v, want tok-abc", provider.Options["token"])
	}
}

func TestFinalizeAgentMerged(t *testing.T) {
	cfg := gaconfig.AgentConfig{
		Client: &gaconfig.ClientConfig{
			Provider: &gaconfig.ProviderConfig{
				Name:    "azure",
				BaseURL: "https://example.openai.azure.com",
				Model:   &gaconfig.ModelConfig{Name: "gpt-4o"},
			},
		},
	}
	if err := config.FinalizeAgent(&cfg); err != nil {
		t.Fatalf("FinalizeAgent error: %v", err)
	}

	if cfg.Client == nil || cfg.Client.Provider == nil {
		t.Fatal("client provider not preserved")
	}
	if cfg.Client.Provider.Name != "azure" {
		t.Errorf("provider name = %q, want azure", cfg.Client.Provider.Name)
	}
	if cfg.Client.Provider.Model == nil || cfg.Client.Provider.Model.Name != "gpt-4o" {
		t.Errorf("model = %+v, want name gpt-4o", cfg.Client.Provider.Model)
	}
}

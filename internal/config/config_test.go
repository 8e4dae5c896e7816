package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrsinham/diagassist/internal/lexicon"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if time.Duration(cfg.SymptomDelay) != 2*time.Second {
		t.Errorf("SymptomDelay = %v, want 2s", time.Duration(cfg.SymptomDelay))
	}
	if time.Duration(cfg.ImageDelay) != 1500*time.Millisecond {
		t.Errorf("ImageDelay = %v, want 1.5s", time.Duration(cfg.ImageDelay))
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want none", time.Duration(cfg.Timeout))
	}
	if cfg.DefaultCategory != lexicon.Chest {
		t.Errorf("DefaultCategory = %q, want chest", cfg.DefaultCategory)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
symptom_delay: 250ms
image_delay: 1s
timeout: 10s
default_category: Brain
log_level: DEBUG
log_file: /tmp/diagassist.log
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if time.Duration(cfg.SymptomDelay) != 250*time.Millisecond {
		t.Errorf("SymptomDelay = %v, want 250ms", time.Duration(cfg.SymptomDelay))
	}
	if time.Duration(cfg.Timeout) != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", time.Duration(cfg.Timeout))
	}
	if cfg.DefaultCategory != lexicon.Brain {
		t.Errorf("DefaultCategory = %q, want brain", cfg.DefaultCategory)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFile != "/tmp/diagassist.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}

	delays := cfg.Delays()
	if delays.Symptoms != 250*time.Millisecond || delays.Image != time.Second {
		t.Errorf("Delays() = %+v", delays)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "timeout: 3s\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if time.Duration(cfg.SymptomDelay) != 2*time.Second {
		t.Errorf("SymptomDelay = %v, want default", time.Duration(cfg.SymptomDelay))
	}
	if cfg.DefaultCategory != lexicon.Chest {
		t.Errorf("DefaultCategory = %q, want default", cfg.DefaultCategory)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DIAGASSIST_SYMPTOM_DELAY", "0s")
	t.Setenv("DIAGASSIST_IMAGE_DELAY", "10ms")
	t.Setenv("DIAGASSIST_DEFAULT_CATEGORY", "brain")
	t.Setenv("DIAGASSIST_LOG_LEVEL", "warn")

	cfg, err := Load(writeFile(t, "symptom_delay: 5s\ndefault_category: chest\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SymptomDelay != 0 {
		t.Errorf("SymptomDelay = %v, env should win", time.Duration(cfg.SymptomDelay))
	}
	if time.Duration(cfg.ImageDelay) != 10*time.Millisecond {
		t.Errorf("ImageDelay = %v, want 10ms", time.Duration(cfg.ImageDelay))
	}
	if cfg.DefaultCategory != lexicon.Brain {
		t.Errorf("DefaultCategory = %q, want brain", cfg.DefaultCategory)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{"invalid yaml", "symptom_delay: [", nil},
		{"bad duration", "timeout: soon\n", nil},
		{"negative duration", "image_delay: -1s\n", nil},
		{"unknown category", "default_category: knee\n", nil},
		{"unknown log level", "log_level: verbose\n", nil},
		{"bad env duration", "", map[string]string{"DIAGASSIST_TIMEOUT": "forever"}},
		{"bad env category", "", map[string]string{"DIAGASSIST_DEFAULT_CATEGORY": "spine"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(writeFile(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad_UnknownCategoryIsTyped(t *testing.T) {
	_, err := Load(writeFile(t, "default_category: knee\n"))
	var unknown *lexicon.UnknownCategoryError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCategoryError, got %v", err)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestSave_AndLoadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := Default()
	want.Timeout = Duration(30 * time.Second)
	want.DefaultCategory = lexicon.Brain
	want.LogFile = "diag.log"

	if err := Save(want, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *want {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestTables(t *testing.T) {
	cfg := Default()
	tables, err := cfg.Tables()
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	if got := len(tables.Symptoms.Records()); got != 4 {
		t.Errorf("default lexicon has %d records, want 4", got)
	}

	cfg.TablesFile = writeFile(t, `
symptoms:
  - keyword: rash
    conditions: [Dermatitis]
    confidence: 0.6
    urgency: Low
`)
	tables, err = cfg.Tables()
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	analysis := tables.Symptoms.Lookup("itchy rash")
	if len(analysis.Conditions) != 1 || analysis.Conditions[0] != "Dermatitis" {
		t.Errorf("custom lexicon not used: %+v", analysis)
	}
}

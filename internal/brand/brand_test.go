package brand

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGet(t *testing.T) {
	b := Get()
	if b.Name == "" {
		t.Error("Brand name should not be empty")
	}
	if Version == "" {
		t.Error("Global Version should be initialized (to dev default)")
	}
	if BinaryName == "" || ConfigFileName == "" {
		t.Error("BinaryName and ConfigFileName should be initialized")
	}
	if ConfigEnvPrefix != "SPAGEN" {
		t.Errorf("ConfigEnvPrefix = %q, want SPAGEN", ConfigEnvPrefix)
	}
}

func TestUserAgent(t *testing.T) {
	if ua := UserAgent("1.0.0"); ua != Name+"/1.0.0" {
		t.Errorf("UserAgent = %q", ua)
	}
	if ua := UserAgent(""); ua != Name+"/dev" {
		t.Errorf("UserAgent default = %q", ua)
	}
}

func TestGetConfigDir(t *testing.T) {
	cleanEnv := func() {
		os.Unsetenv(ConfigEnvPrefix + "_PREFIX")
		os.Unsetenv(ConfigEnvPrefix + "_CONFIG_DIR")
	}
	cleanEnv()
	defer cleanEnv()

	if GetConfigDir() != DefaultConfigDir {
		t.Errorf("Expected default config dir %s, got %s", DefaultConfigDir, GetConfigDir())
	}

	os.Setenv(ConfigEnvPrefix+"_PREFIX", "/tmp/spagen")
	if GetConfigDir() != "/tmp/spagen/config" {
		t.Errorf("Expected prefix config dir, got %s", GetConfigDir())
	}

	os.Setenv(ConfigEnvPrefix+"_CONFIG_DIR", "/custom/config")
	if GetConfigDir() != "/custom/config" {
		t.Errorf("Expected custom config dir, got %s", GetConfigDir())
	}
	if DefaultConfigPath() != filepath.Join("/custom/config", ConfigFileName) {
		t.Errorf("unexpected default config path %s", DefaultConfigPath())
	}
}

package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"vcpass/internal/config"
	"vcpass/internal/keystream"
	"vcpass/internal/params"
)

func TestLoad(t *testing.T) {
	cfg, err := config.Load("testdata/config.yaml")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Grid.X != 3 || cfg.Display.X != 240 {
		t.Errorf("Grid.X, Display.X = %d, %d, want 3, 240", cfg.Grid.X, cfg.Display.X)
	}
	if cfg.PixelRatio.X != 2 {
		t.Errorf("PixelRatio.X = %d, want default 2", cfg.PixelRatio.X)
	}
	if cfg.Render.Scale != 3 {
		t.Errorf("Render.Scale = %d, want 3", cfg.Render.Scale)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params() error: %v", err)
	}
	if p.CRVPix() != 40 || p.Cells() != 9 {
		t.Errorf("Params() = %+v, want 3×3 cells of 40 VC pixels", p)
	}

	pol, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy() error: %v", err)
	}
	if pol.KDF != keystream.KDFPBKDF2 || pol.Cipher != keystream.CipherChaCha20 || pol.Iterations != 2000 {
		t.Errorf("Policy() = %+v", pol)
	}
	if !bytes.Equal(pol.Salt, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("Policy().Salt = %x, want deadbeef", pol.Salt)
	}

	if _, err := cfg.Palette(); err != nil {
		t.Errorf("Palette() error: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	f, _ := os.CreateTemp(t.TempDir(), "*.yaml")
	f.Close()

	cfg, err := config.Load(f.Name())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params() error: %v", err)
	}
	if p != params.Default() {
		t.Errorf("default Params() = %+v, want %+v", p, params.Default())
	}
	pol, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy() error: %v", err)
	}
	if !bytes.Equal(pol.Salt, keystream.DefaultSalt) || pol.Iterations != 1024 {
		t.Errorf("default Policy() = %+v", pol)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("Load(absent) error = %v, want not-exist", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Defaults()
	cfg.Keystream.KDF = keystream.KDFArgon2id
	cfg.Challenge.MinDistinguished = 5
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Keystream.KDF != keystream.KDFArgon2id || got.Challenge.MinDistinguished != 5 {
		t.Errorf("Load(Save(cfg)) = %+v", got)
	}
}

func TestInvalidGeometry(t *testing.T) {
	cfg := config.Defaults()
	cfg.PixelRatio.Y = 4
	if _, err := cfg.Params(); err == nil {
		t.Error("Params() with non-square cells = nil error, want error")
	}
	cfg = config.Defaults()
	cfg.Keystream.Salt = "xyz"
	if _, err := cfg.Policy(); err == nil {
		t.Error("Policy() with bad salt = nil error, want error")
	}
}

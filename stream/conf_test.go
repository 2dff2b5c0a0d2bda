package stream

import (
	"log/slog"
	"testing"
)

func TestDefaultUserConfig(t *testing.T) {
	conf, err := DefaultUserConfig().Config(slog.Default())
	if err != nil {
		t.Fatalf("default user config rejected: %v", err)
	}
	if conf.Generator == nil {
		t.Fatalf("no generator built from default user config")
	}
	if conf.ChunkSize != 16 || conf.TileSize != 16 {
		t.Errorf("unexpected grid sizes: chunk %v, tile %v", conf.ChunkSize, conf.TileSize)
	}
}

func TestUserConfigRejectsInvalidNoise(t *testing.T) {
	uc := DefaultUserConfig()
	uc.Noise.Lacunarity = -1
	if _, err := uc.Config(slog.Default()); err == nil {
		t.Errorf("negative lacunarity accepted")
	}
}

func TestConfigDefaults(t *testing.T) {
	conf := Config{}.withDefaults()
	if conf.Workers < 1 {
		t.Errorf("Workers = %v, want at least 1", conf.Workers)
	}
	if conf.QueueSize < conf.Workers {
		t.Errorf("QueueSize = %v, want at least the worker count %v", conf.QueueSize, conf.Workers)
	}
	if conf.ApplyPerTick != 4 || conf.MaxRetries != 3 {
		t.Errorf("ApplyPerTick = %v, MaxRetries = %v", conf.ApplyPerTick, conf.MaxRetries)
	}
	if conf.Viewport == nil || conf.Renderer == nil || conf.Generator == nil || conf.Log == nil {
		t.Errorf("nil dependency left after defaulting: %+v", conf)
	}
}

// Command tilestream runs the chunk streaming scheduler headlessly: it
// loads a TOML configuration, walks a viewport through the world at a
// fixed cadence and logs streaming progress. It is the reference host for
// the stream package; a real game would replace the renderer and viewport
// with its own.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml"
	"github.com/tidemill/tilestream/stream"
	"github.com/tidemill/tilestream/stream/chunk"
	"github.com/tidemill/tilestream/stream/terrain"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	uc, err := readConfig()
	if err != nil {
		log.Error("read config: " + err.Error())
		os.Exit(1)
	}
	conf, err := uc.Config(log)
	if err != nil {
		log.Error("load config: " + err.Error())
		os.Exit(1)
	}

	vp := &scrollingViewport{
		centre: mgl64.Vec2{0, 0},
		size:   mgl64.Vec2{1280, 720},
		zoom:   1,
		// Roughly one chunk per second at a 50ms tick.
		speed: mgl64.Vec2{12.8, 0},
	}
	conf.Viewport = vp
	conf.Renderer = &loggingRenderer{log: log, palette: terrain.DefaultPalette()}

	s := conf.New()
	defer s.Close()

	c := make(chan os.Signal, 2)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	t := time.NewTicker(time.Millisecond * 50)
	defer t.Stop()
	status := time.NewTicker(time.Second * 5)
	defer status.Stop()

	for {
		select {
		case <-t.C:
			vp.advance()
			s.Tick()
		case <-status.C:
			m := s.Metrics()
			log.Info("Streaming.",
				"generated", s.GeneratedCount(),
				"pending", s.PendingCount(),
				"generating", s.GeneratingCount(),
				"retried", m.Retried,
			)
		case <-c:
			log.Info("Shutting down.", "generated", s.GeneratedCount())
			return
		}
	}
}

// readConfig reads the configuration from config.toml, creating the file
// with default values if it does not yet exist.
func readConfig() (stream.UserConfig, error) {
	c := stream.DefaultUserConfig()
	if _, err := os.Stat("config.toml"); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile("config.toml", data, 0644); err != nil {
			return c, fmt.Errorf("create default config: %w", err)
		}
		return c, nil
	}
	data, err := os.ReadFile("config.toml")
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// scrollingViewport pans the camera at a constant speed per tick. It is
// only touched from the tick loop goroutine.
type scrollingViewport struct {
	centre, size mgl64.Vec2
	speed        mgl64.Vec2
	zoom         float64
}

func (v *scrollingViewport) advance() {
	v.centre = v.centre.Add(v.speed)
}

func (v *scrollingViewport) Viewport() (mgl64.Vec2, mgl64.Vec2, float64) {
	return v.centre, v.size, v.zoom
}

// loggingRenderer stands in for a real renderer: it tallies solid tiles,
// the collision work a presentation layer would register.
type loggingRenderer struct {
	log     *slog.Logger
	palette *terrain.Palette
	chunks  int
}

func (r *loggingRenderer) RenderChunk(d *chunk.Data) {
	solid := 0
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if r.palette.Class(d.At(x, y).Class).Solid {
				solid++
			}
		}
	}
	r.chunks++
	r.log.Debug("Rendered chunk.", "pos", d.Pos, "solid_tiles", solid, "total", r.chunks)
}

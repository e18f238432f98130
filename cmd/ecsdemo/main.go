// ecsdemo is the shipped test driver: it builds a world of moving
// entities, runs a movement system for a number of frames, and reports
// timings. Configuration comes from the environment (optionally via a
// .env file):
//
//	ECSDEMO_ENTITIES  number of entities to simulate (default 10000)
//	ECSDEMO_FRAMES    number of frames to run (default 600)
package main

import (
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/edwinsyarief/miniecs"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

type position struct {
	miniecs.Meta
	X, Y float64
}

type velocity struct {
	miniecs.Meta
	VX, VY float64
}

type lifetime struct {
	miniecs.Meta
	Remaining float64
}

type config struct {
	entities int
	frames   int
}

func loadConfig() (config, error) {
	cfg := config{entities: 10000, frames: 600}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, eris.Wrap(err, "loading .env")
	}
	var err error
	if cfg.entities, err = positiveEnv("ECSDEMO_ENTITIES", cfg.entities); err != nil {
		return cfg, err
	}
	if cfg.frames, err = positiveEnv("ECSDEMO_FRAMES", cfg.frames); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func positiveEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s %q", key, v)
	}
	if n <= 0 {
		return 0, eris.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

type movementSystem struct {
	sig miniecs.Signature
}

func (s *movementSystem) Signature() miniecs.Signature { return s.sig }

func (s *movementSystem) Update(dt float64, matches [][]*miniecs.Meta) {
	for _, row := range matches {
		pos := miniecs.As[position](row[0])
		vel := miniecs.As[velocity](row[1])
		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt
	}
}

// expirySystem collects entities whose lifetime ran out; the main loop
// removes them between frames, since systems must not mutate the world
// while iterating.
type expirySystem struct {
	sig     miniecs.Signature
	expired []miniecs.EntityHandle
}

func (s *expirySystem) Signature() miniecs.Signature { return s.sig }

func (s *expirySystem) Update(dt float64, matches [][]*miniecs.Meta) {
	for _, row := range matches {
		life := miniecs.As[lifetime](row[0])
		life.Remaining -= dt
		if life.Remaining <= 0 {
			s.expired = append(s.expired, life.Owner)
		}
	}
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %s", eris.ToString(err, true))
	}

	posID := miniecs.RegisterComponent[position]()
	velID := miniecs.RegisterComponent[velocity]()
	lifeID := miniecs.RegisterComponent[lifetime]()

	w := miniecs.NewWorld()
	bus := &miniecs.EventBus{}
	w.SetEvents(bus)
	removedEntities := 0
	miniecs.Subscribe(bus, func(miniecs.EntityRemoved) { removedEntities++ })

	rng := rand.New(rand.NewPCG(42, 1))
	start := time.Now()
	for i := 0; i < cfg.entities; i++ {
		w.MakeEntity(
			&position{X: rng.Float64() * 100, Y: rng.Float64() * 100},
			&velocity{VX: rng.Float64()*2 - 1, VY: rng.Float64()*2 - 1},
			&lifetime{Remaining: 1 + rng.Float64()*9},
		)
	}
	log.WithFields(logrus.Fields{
		"entities": cfg.entities,
		"elapsed":  time.Since(start),
	}).Info("world populated")

	movement := &movementSystem{sig: miniecs.Signature{
		{ID: posID, Flag: miniecs.Required},
		{ID: velID, Flag: miniecs.Required},
	}}
	expiry := &expirySystem{sig: miniecs.Signature{
		{ID: lifeID, Flag: miniecs.Required},
	}}

	var systems miniecs.SystemList
	if !systems.Add(movement) || !systems.Add(expiry) {
		log.Fatal("system rejected at insertion")
	}

	const dt = 1.0 / 60.0
	start = time.Now()
	for frame := 0; frame < cfg.frames; frame++ {
		w.UpdateSystems(&systems, dt)
		for _, h := range expiry.expired {
			w.RemoveEntity(h)
		}
		expiry.expired = expiry.expired[:0]
	}
	log.WithFields(logrus.Fields{
		"frames":    cfg.frames,
		"elapsed":   time.Since(start),
		"perFrame":  time.Since(start) / time.Duration(cfg.frames),
		"remaining": w.Count(),
		"removed":   removedEntities,
	}).Info("simulation finished")
}

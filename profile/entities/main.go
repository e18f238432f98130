// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/edwinsyarief/miniecs"
	"github.com/pkg/profile"
)

type comp1 struct {
	miniecs.Meta
	V int64
	W int64
}

type comp2 struct {
	miniecs.Meta
	V int64
	W int64
}

func main() {
	rounds := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	miniecs.RegisterComponent[comp1]()
	miniecs.RegisterComponent[comp2]()
	tpl1 := &comp1{V: 1, W: 2}
	tpl2 := &comp2{V: 3, W: 4}
	for range rounds {
		w := miniecs.NewWorld()
		for range iters {
			handles := make([]miniecs.EntityHandle, 0, numEntities)
			for range numEntities {
				handles = append(handles, w.MakeEntity(tpl1, tpl2))
			}
			for _, h := range handles {
				w.RemoveEntity(h)
			}
		}
	}
}

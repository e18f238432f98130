// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

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
	iters := 10000
	entities := 1000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(iters, entities)
	p.Stop()
}

func run(iters, numEntities int) {
	id1 := miniecs.RegisterComponent[comp1]()
	id2 := miniecs.RegisterComponent[comp2]()
	w := miniecs.NewWorld()
	for i := range numEntities {
		if i%3 == 0 {
			w.MakeEntity(&comp1{V: int64(i)})
		} else {
			w.MakeEntity(&comp1{V: int64(i)}, &comp2{V: int64(i)})
		}
	}

	sig := miniecs.Signature{
		{ID: id1, Flag: miniecs.Required},
		{ID: id2, Flag: miniecs.Optional},
	}
	for range iters {
		for _, row := range w.GetRelevant(sig) {
			c1 := miniecs.As[comp1](row[0])
			if row[1] != nil {
				c2 := miniecs.As[comp2](row[1])
				c1.V += c2.V
				c1.W += c2.W
			}
		}
	}
}

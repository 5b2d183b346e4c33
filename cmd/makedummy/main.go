package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/iamaray/fixturegen/pkg/fixture/generator"
)

/*writes the small dummy table fixture to test_data/dummy.csv*/

var Seed = flag.Int64("seed", 0, "RNG seed, 0 picks a random seed")

func main() {
	flag.Parse()

	g := &generator.DummyTableGenerator{}
	path := filepath.Join(generator.DummyTableDir, generator.DummyTableFile)

	if err := generator.WriteFile(g, generator.NewRand(*Seed), g.DefaultRows(), path); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akorchagin/mobd/internal/bestiary"
)

func main() {
	path := flag.String("bestiary", "", "path to a bestiary YAML file (empty checks the embedded default)")
	flag.Parse()

	var (
		catalog *bestiary.Catalog
		err     error
	)
	if *path == "" {
		catalog, err = bestiary.LoadDefault()
	} else {
		catalog, err = bestiary.Load(*path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "bestiarycheck: %v\n", err)
		os.Exit(1)
	}

	for _, name := range catalog.Names() {
		arch, lookupErr := catalog.Lookup(name)
		if lookupErr != nil {
			fmt.Fprintf(os.Stderr, "bestiarycheck: %v\n", lookupErr)
			os.Exit(1)
		}
		fmt.Printf("%s: hostility=%s health=%.0f attacks=%d weapons=%v\n",
			arch.Name(), arch.Hostility(), arch.Health(), len(arch.Attacks()), arch.CanUseWeapons())
	}
	fmt.Printf("%d archetypes ok, fingerprint %s\n", catalog.Count(), catalog.Fingerprint())
}

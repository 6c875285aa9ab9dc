package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/loomlang/loom/audio"
)

func main() {
	var (
		cps    = flag.Float64("cps", audio.DefaultCPS, "tempo in cycles per second")
		sounds = flag.String("sounds", "*.wav", "glob of sample files to load")
		run    = flag.String("run", "", "file with lines to evaluate at startup")
	)
	flag.Parse()

	lib, err := audio.LoadLibrary(*sounds)
	if err != nil {
		log.Fatal(err)
	}

	synth := audio.NewSynth(audio.NewProps())
	sampler := audio.NewSampler(audio.NewProps(), lib)
	player := audio.NewPlayer(audio.NewProps(), synth, sampler)
	if err := player.Set(audio.PropCPS, *cps); err != nil {
		log.Fatal(err)
	}

	sink, err := audio.NewSink()
	if err != nil {
		log.Fatal(err)
	}
	defer sink.Stop()
	sink.AddTicker(player)
	sink.AddSources(synth, sampler)
	if err := sink.Start(); err != nil {
		log.Fatal(err)
	}

	env := &env{player: player, library: lib, out: os.Stdout}

	if *run != "" {
		f, err := os.Open(*run)
		if err != nil {
			log.Fatal(err)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if err := env.eval(line); err != nil {
				log.Fatal(err)
			}
		}
		f.Close()
		if err := scanner.Err(); err != nil {
			log.Fatal(err)
		}
	}

	if err := repl(env); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

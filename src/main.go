package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"bitlife/src/config"
	"bitlife/src/simulation"
	"bitlife/src/universe"
	"bitlife/src/view"
)

var templates = []simulation.Template{
	{
		Name:  "testSample1",
		Descr: "the test sample with 3 stable patterns",
		Coordinates: []universe.Coord{
			{Row: 1, Col: 1}, {Row: 2, Col: 1},
			{Row: 1, Col: 2}, {Row: 2, Col: 2},
			{Row: 3, Col: 3},
			{Row: 2, Col: 4},
			{Row: 3, Col: 4},
			{Row: 3, Col: 5},
		},
	},
	{
		Name:        "blinker",
		Descr:       "period 2 oscillator",
		Coordinates: []universe.Coord{{Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 2, Col: 3}},
	},
	{
		Name:        "glider",
		Descr:       "travels one cell diagonally every 4 generations",
		Coordinates: []universe.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	},
}

func main() {
	cfg := initConfig()

	var stateCh chan simulation.Status

	if !cfg.Interactive && !cfg.Window {
		stateCh = make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	}

	s, err := simulation.New(cfg.SimulationOptions(), stateCh)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	defer s.Close()

	for _, tmpl := range templates {
		s.AddTemplate(tmpl)
	}

	switch {
	case cfg.RandomData:
		s.SettleWithRandomData(cfg.Seed)
	case cfg.Template != "":
		s.Clear()
		if err := s.SettleTemplate(cfg.Template); err != nil {
			log.Fatalf("%+v", err)
		}
	}

	switch {
	case cfg.Window:
		w := view.NewWindow(cfg.Scale, cfg.Seed)
		s.RegisterViewer(w)
		w.Start()
	case cfg.Interactive:
		v := view.NewViewTerminal(cfg.Seed)
		s.RegisterViewer(v)
		v.Start()
	default:
		if err := runConsole(s, stateCh); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

//runConsole runs the simulation until it finishes or the process is interrupted
func runConsole(s *simulation.Simulation, stateCh chan simulation.Status) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := view.NewConsoleOut(os.Stdout, true)
	s.RegisterViewer(out)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case st := <-stateCh:
				if st.RunningMode == simulation.RunningStateFinished {
					return nil
				}
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "simulation interrupted")
			}
		}
	})

	out.Start()
	s.Run()
	if err := g.Wait(); err != nil {
		return err
	}
	//the summary is printed by the step that finished the simulation
	s.Flush()
	return nil
}

func initConfig() config.Config {
	cfg, p, err := config.FromArgs(os.Args[1:], templateNames())
	if err != nil {
		p.ShowHelpAndExit(err.Error())
	}
	if cfg.Window && !view.WindowSupported {
		p.ShowHelpAndExit("the window requires building with the ebiten tag")
	}
	return cfg
}

func templateNames() (names []string) {
	for _, tmpl := range templates {
		names = append(names, tmpl.Name)
	}
	return
}

package simulation

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/pkg/errors"

	"bitlife/src/universe"
)

//Options represents the simulation's configurable options
type Options struct {
	Width           uint32
	Height          uint32
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Advanced        map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Details       map[string]interface{} //advanced details (engine specific)
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(e Engine)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string           //template name
	Descr       string           //template descr
	Coordinates []universe.Coord //cells to make alive
}

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrClosed          = errors.New("simulation is closed")
)

var DefaultOptions = Options{
	Width:           universe.DefWidth,
	Height:          universe.DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

/*
	Simulation drives a Universe for a host
	All commands are executed one at a time by the main loop goroutine,
	so the universe itself never sees concurrent calls
*/
type Simulation struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		u *universe.Universe
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan bool
	doneCh    chan struct{}
	closeOnce sync.Once
	runGen    uint64 //the current run loop, guarded by the state lock
}

//New creates the Simulation instance
//the universe starts with its default seeded pattern when the options keep the default dimensions,
//otherwise it is resized and starts empty
func New(o *Options, stateCh chan Status) (*Simulation, error) {
	if o == nil {
		d := DefaultOptions
		o = &d
	}
	s := Simulation{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		doneCh:    make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	s.options.Advanced = map[string]interface{}{"engine": "packed"}
	s.state.Details = map[string]interface{}{}

	u := universe.New()
	if o.Width != u.Width() {
		if err := u.SetWidth(o.Width); err != nil {
			return nil, err
		}
	}
	if o.Height != u.Height() {
		if err := u.SetHeight(o.Height); err != nil {
			return nil, err
		}
	}
	s.area.u = u
	s.state.LiveCells = int(u.LiveCells())

	go s.mainLoop()
	return &s, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (s *Simulation) AddTemplate(tmpl Template) {
	_ = s.exec(func() error {
		s.templates[tmpl.Name] = tmpl
		return nil
	})
}

//Templates returns the names of the registered templates
func (s *Simulation) Templates() (names []string) {
	_ = s.exec(func() error {
		for name := range s.templates {
			names = append(names, name)
		}
		return nil
	})
	slices.Sort(names)
	return
}

//Settle makes the cells at the given coordinates alive
func (s *Simulation) Settle(vc []universe.Coord) error {
	err := s.exec(func() error {
		return s.settle(vc)
	})
	if err == nil {
		s.refreshView()
	}
	return err
}

//SettleTemplate populates the universe with the seeding template
func (s *Simulation) SettleTemplate(name string) error {
	err := s.exec(func() error {
		tmpl, ok := s.templates[name]
		if !ok {
			return errors.Wrapf(ErrUnknownTemplate, "template %q", name)
		}
		return s.settle(tmpl.Coordinates)
	})
	if err == nil {
		s.refreshView()
	}
	return err
}

//SettleWithRandomData clears the universe and populates it with random data
//it does nothing while the simulation is running
func (s *Simulation) SettleWithRandomData(seed int64) {
	mode := s.Status().RunningMode
	if mode != RunningStateManual && mode != RunningStateFinished {
		return
	}
	s.post(s.clear)
	s.post(func() {
		rng := rand.New(rand.NewPCG(uint64(seed), 0))
		s.area.Lock()
		w, h := s.area.u.Width(), s.area.u.Height()
		vc := make([]universe.Coord, 0, int(w)*int(h))
		for i := 0; i < int(w)*int(h); i++ {
			vc = append(vc, universe.Coord{Row: rng.Uint32N(h), Col: rng.Uint32N(w)})
		}
		s.area.Unlock()
		_ = s.settle(vc)
		s.refreshView()
	})
}

//InverseCell inverses the cell state at row, col
func (s *Simulation) InverseCell(row uint32, col uint32) error {
	err := s.exec(func() error {
		s.area.Lock()
		err := s.area.u.Toggle(row, col)
		s.area.Unlock()
		if err == nil {
			s.updateLiveCells()
		}
		return err
	})
	if err == nil {
		s.refreshView()
	}
	return err
}

//Resize changes the universe dimensions, all cells die and the counters are reset
func (s *Simulation) Resize(width uint32, height uint32) error {
	err := s.exec(func() error {
		if width == 0 || height == 0 {
			return errors.Wrapf(universe.ErrInvalidDimension, "%v x %v", width, height)
		}
		s.area.Lock()
		err := s.area.u.SetWidth(width)
		if err == nil {
			err = s.area.u.SetHeight(height)
		}
		s.area.Unlock()
		if err != nil {
			return err
		}
		s.state.Lock()
		s.options.Width, s.options.Height = width, height
		s.state.IterationNum = 0
		s.state.LiveCells = 0
		s.state.Unlock()
		return nil
	})
	if err == nil {
		s.refreshView()
	}
	return err
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.state.Lock()
	s.views = append(s.views, v)
	s.state.Unlock()
	v.Register(s)
}

//StateCh returns the channel with the simulation's status updates
func (s *Simulation) StateCh() chan Status {
	return s.stateCh
}

//Status returns current simulation status represented by Status struct
func (s *Simulation) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

//Options returns current simulation configuration represented by Options struct
func (s *Simulation) Options() Options {
	s.state.Lock()
	defer s.state.Unlock()
	return s.options
}

//Frame returns a copy of the current cells
func (s *Simulation) Frame() universe.Frame {
	s.area.Lock()
	defer s.area.Unlock()
	return s.area.u.Frame()
}

//Flush waits until every command queued before it has been executed
func (s *Simulation) Flush() {
	_ = s.exec(func() error { return nil })
}

//Run starts the simulation, returns immediately
func (s *Simulation) Run() {
	s.post(s.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (s *Simulation) Stop() {
	s.post(s.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (s *Simulation) Step() {
	s.post(s.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (s *Simulation) Clear() {
	s.post(s.clear)
}

//Close stops the main loop, returns immediately
//commands sent after Close are dropped
func (s *Simulation) Close() {
	s.closeOnce.Do(func() {
		s.closeCh <- true
	})
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (s *Simulation) mainLoop() {
	defer close(s.doneCh)
	for {
		select {
		case cmd := <-s.controlCh:
			cmd()
		case <-s.closeCh:
			return
		}
	}
}

//post queues the command for the main loop
func (s *Simulation) post(cmd func()) {
	select {
	case s.controlCh <- cmd:
	case <-s.doneCh:
	}
}

//exec runs the command on the main loop and waits for its result
func (s *Simulation) exec(cmd func() error) error {
	errCh := make(chan error, 1)
	s.post(func() {
		errCh <- cmd()
	})
	select {
	case err := <-errCh:
		return err
	case <-s.doneCh:
		return ErrClosed
	}
}

//settle places live cells at the given coordinates
func (s *Simulation) settle(vc []universe.Coord) error {
	s.area.Lock()
	err := s.area.u.SetCells(vc)
	s.area.Unlock()
	s.updateLiveCells()
	return err
}

//updateLiveCells refreshes the live cells counter
func (s *Simulation) updateLiveCells() {
	s.area.Lock()
	n := int(s.area.u.LiveCells())
	s.area.Unlock()
	s.state.Lock()
	s.state.LiveCells = n
	s.state.Unlock()
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (s *Simulation) switchRunningState(to RunningState) {
	s.state.Lock()
	s.state.RunningMode = to
	st := s.state.Status
	s.state.Unlock()
	if s.stateCh != nil {
		s.stateCh <- st
	}
}

//run starts the simulation, it is executed by the main loop
//simulation will stop on Stop() calling or when the boundary conditions are reached
//a run while already running does nothing
func (s *Simulation) run() {
	s.state.Lock()
	mode := s.state.RunningMode
	if mode == RunningStateRun || mode == RunningStateStep {
		s.state.Unlock()
		return
	}
	s.runGen++
	gen := s.runGen
	o := s.options
	s.state.Unlock()
	s.switchRunningState(RunningStateRun)

	go func() {
		skipped := 0
		next := make(chan bool, 1)
		for {
			mode, ok := s.runningMode(gen)
			if !ok {
				return
			}
			if skipped > o.MaxSkippedTicks {
				s.switchRunningState(RunningStateFinished)
				return
			}
			//skip the tick if the simulation is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				s.post(func() {
					//Stop or a newer Run may have been executed since the step was queued
					if _, ok := s.runningMode(gen); !ok {
						next <- false
						return
					}
					s.step()
					next <- true
				})
				select {
				case ok := <-next:
					if !ok {
						return
					}
				case <-s.doneCh:
					return
				}
			} else {
				skipped++
			}
			if o.Interval > 0 {
				time.Sleep(o.Interval)
			}
		}
	}()
}

//runningMode returns the running mode and whether the run loop gen is still the current one
func (s *Simulation) runningMode(gen uint64) (RunningState, bool) {
	s.state.Lock()
	defer s.state.Unlock()
	mode := s.state.RunningMode
	return mode, gen == s.runGen && (mode == RunningStateRun || mode == RunningStateStep)
}

//stop stops the simulation running cycle
func (s *Simulation) stop() {
	if s.Status().RunningMode == RunningStateRun {
		s.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
//the simulation finishes when the step limit is reached, all cells are dead or nothing changed
func (s *Simulation) step() {
	s.state.Lock()
	rm := s.state.RunningMode
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	s.state.IterationNum++
	iter := s.state.IterationNum
	maxIter := s.options.MaxSteps
	s.state.Unlock()

	s.switchRunningState(RunningStateStep)
	isAlive, changed := s.nextIteration()
	finished := !isAlive || !changed || (maxIter != 0 && iter >= maxIter)
	if finished {
		s.switchRunningState(RunningStateFinished)
	} else {
		s.switchRunningState(rm)
	}
	s.refreshView()
}

//clear kills all cells, reset all counters
func (s *Simulation) clear() {
	s.state.Lock()
	s.area.Lock()
	s.area.u.Clear()
	s.state.IterationNum = 0
	s.state.LiveCells = 0
	s.state.IterationTime = 0
	s.area.Unlock()
	s.state.Unlock()
	s.switchRunningState(RunningStateManual)
	s.refreshView()
}

//nextIteration advances the universe by one generation and updates the counters
func (s *Simulation) nextIteration() (hasLiveEntities bool, changed bool) {
	s.area.Lock()
	start := time.Now()
	prev := s.area.u.Snapshot()
	s.area.u.Tick()
	changed = !slices.Equal(prev.Bytes(), s.area.u.Cells())
	liveCells := int(s.area.u.LiveCells())
	s.area.Unlock()

	s.state.Lock()
	s.state.LiveCells = liveCells
	s.state.IterationTime = time.Since(start)
	s.state.Unlock()
	return liveCells > 0, changed
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView() {
	s.state.Lock()
	views := slices.Clone(s.views)
	s.state.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}

package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"bitlife/src/simulation"
)

//ConsoleOut is the non-interactive host: it prints the configuration, the progress and the summary
type ConsoleOut struct {
	e         simulation.Engine
	out       io.Writer
	au        aurora.Aurora
	startTime time.Time
	every     int
}

//NewConsoleOut creates the printer, colors are used only when colors is true
func NewConsoleOut(out io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{out: out, au: aurora.NewAurora(colors), every: 10}
}

func (c *ConsoleOut) Refresh() {
	st := c.e.Status()
	if st.RunningMode == simulation.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.out, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	} else if st.RunningMode == simulation.RunningStateRun {
		if st.IterationNum%c.every == 0 {
			_, _ = fmt.Fprintf(c.out, "  Iterations done: %v, live cells: %v\n", st.IterationNum, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(e simulation.Engine) {
	c.e = e
	o := c.e.Options()
	_, _ = fmt.Fprintln(c.out, c.au.Green("Running configuration:"))
	_, _ = fmt.Fprintf(c.out, "  Dimension: %v x %v\n", o.Width, o.Height)
	_, _ = fmt.Fprintf(c.out, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.out, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.out, c.au.Cyan("\nSimulation started..."))
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.out, "  %s: %v\n", propName, d[propName])
	}
}

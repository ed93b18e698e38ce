package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"bitlife/src/simulation"
	"bitlife/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal host
type ConsoleUI struct {
	e          simulation.Engine
	g          *gocui.Gui
	k          []keyBindings
	seed       int64
	liveFiller string
	deadFiller string
}

//modeText colours the running mode for the side pane
func modeText(m simulation.RunningState) string {
	switch m {
	case simulation.RunningStateRun:
		return aurora.Cyan("running").String()
	case simulation.RunningStateStep:
		return "stepping"
	case simulation.RunningStateFinished:
		return aurora.Red("finished").String()
	}
	return aurora.Blue("waiting").String()
}

//NewViewTerminal creates the terminal UI, seed is used for the random settle command
func NewViewTerminal(seed int64) *ConsoleUI {

	var err error
	t := ConsoleUI{
		seed:       seed,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{key: gocui.KeyCtrlC, name: "^C", descr: "quit", handler: t.cmdQuit},
		{key: 'n', name: "n", descr: "step", handler: t.cmdNextRound},
		{key: 'r', name: "r", descr: "run", handler: t.cmdRun},
		{key: 's', name: "s", descr: "stop", handler: t.cmdStop},
		{key: 'c', name: "c", descr: "clear", handler: t.cmdClear},
		{key: 'w', name: "w", descr: "random", handler: t.cmdSettleWithRandom},
		{key: 't', name: "t", descr: "templates", handler: t.cmdSettleTemplates},
		{key: gocui.MouseLeft, name: "click", descr: "toggle cell", handler: t.cmdMouseClick, viewName: fieldView},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(e simulation.Engine) {
	t.e = e
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

//Refresh is called from the simulation goroutines, the drawing is queued to the gui loop
func (t *ConsoleUI) Refresh() {
	t.g.Update(t.draw)
}

//draw redraws the field and the side pane, it must run on the gui loop
func (t *ConsoleUI) draw(g *gocui.Gui) error {
	if v, err := g.View(fieldView); err == nil {
		v.Clear()
		w, h := v.Size()
		_, _ = fmt.Fprint(v, fieldText(t.e.Frame(), w, h, t.liveFiller, t.deadFiller))
	}
	if v, err := g.View(sideView); err == nil {
		v.Clear()
		_, _ = fmt.Fprint(v, sideText(t.e.Options(), t.e.Status()))
	}
	return nil
}

//sideText lists the field options and the simulation status, one property per line
func sideText(o simulation.Options, st simulation.Status) string {
	var b strings.Builder
	prop := func(name string, format string, a ...interface{}) {
		b.WriteString(aurora.Green(name).String())
		b.WriteString(": ")
		fmt.Fprintf(&b, format, a...)
		b.WriteByte('\n')
	}
	prop("size", "%vx%v", o.Width, o.Height)
	prop("interval", "%v", o.Interval)
	prop("limit", "%v", o.MaxSteps)
	b.WriteByte('\n')
	prop("generation", "%v", st.IterationNum)
	prop("alive", "%v", st.LiveCells)
	prop("tick", "%v", st.IterationTime.Round(time.Microsecond))
	prop("mode", "%v", modeText(st.RunningMode))
	return b.String()
}

const (
	fieldView = "field"
	sideView  = "side"
	helpView  = "help"
	sideWidth = 24
)

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView(sideView, 0, 0, sideWidth, maxY-2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "bitlife"
	}

	if v, err := g.SetView(fieldView, sideWidth+1, 0, maxX-1, maxY-2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "torus"
	}

	if v, err := g.SetView(helpView, -1, maxY-2, maxX, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		keys := make([]string, 0, len(t.k))
		for _, k := range t.k {
			keys = append(keys, aurora.Green(k.name).String()+" "+k.descr)
		}
		_, _ = fmt.Fprint(v, strings.Join(keys, "  "))
	}

	return t.draw(g)
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.e.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.e.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.e.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.e.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.seed++
	t.e.SettleWithRandomData(t.seed)
	return nil
}

//cmdSettleTemplates settles every registered template on top of the current cells
//templates that do not fit the field are skipped
func (t *ConsoleUI) cmdSettleTemplates(_ *gocui.View) error {
	for _, name := range t.e.Templates() {
		_ = t.e.SettleTemplate(name)
	}
	return nil
}

//cmdMouseClick inverses the clicked cell, clicks outside the field are ignored
func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	_ = t.e.InverseCell(uint32(cy), uint32(cx))
	return nil
}

//fieldText renders the frame into a maxW x maxH text area
//the last line is replaced by a warning when the frame does not fit
func fieldText(f universe.Frame, maxW int, maxH int, liveFiller string, deadFiller string) string {
	crop := int(f.Width) > maxW || int(f.Height) > maxH

	var b bytes.Buffer

	for row := 0; row < int(f.Height); row++ {
		//discard the data outside the view area
		if row >= maxH {
			break
		}
		//line feed char
		if row != 0 {
			b.WriteByte(10)
		}
		if crop && row == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for col := 0; col < int(f.Width) && col < maxW; col++ {
			if f.Alive(uint32(row), uint32(col)) {
				b.WriteString(liveFiller)
			} else {
				b.WriteString(deadFiller)
			}
		}
	}
	return b.String()
}

// Command keyboard draws a piano keyboard in the terminal and lights up the
// keys held on the selected MIDI input.
package main

import (
	"flag"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/leandrodaf/chordie/internal/bus"
	"github.com/leandrodaf/chordie/internal/logger"
	"github.com/leandrodaf/chordie/sdk/contracts"
	"github.com/leandrodaf/chordie/sdk/midi"
)

func main() {
	port := flag.Int("port", 0, "MIDI port to listen to")
	logFile := flag.String("log", "keyboard.log", "log file; the terminal is busy drawing")
	flag.Parse()

	log := logger.NewZapLogger()
	if err := run(log, *port, *logFile); err != nil {
		log.Fatal("Keyboard stopped", log.Field().Error("error", err))
	}
}

// run returns instead of exiting so the terminal is restored and the MIDI
// connection closed before main reports a failure.
func run(log contracts.Logger, port int, logFile string) error {
	events := bus.NewChannel(64)

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogFilePath(logFile),
		contracts.WithEmitter(events),
	)
	if err != nil {
		return fmt.Errorf("initialize MIDI client: %w", err)
	}
	if err := client.Listen(port); err != nil {
		return fmt.Errorf("listen to MIDI device %d: %w", port, err)
	}
	defer client.Stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	defer screen.Fini()

	quit := make(chan struct{})
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					close(quit)
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return
			}
		}
	}()

	var held contracts.HeldNotes
	draw(screen, held)
	for {
		select {
		case ev := <-events.Events():
			held = ev.Notes
			draw(screen, held)
		case <-quit:
			return nil
		}
	}
}

func draw(screen tcell.Screen, held contracts.HeldNotes) {
	screen.Clear()

	lit := make(map[int]bool, len(held))
	for _, k := range held {
		lit[k] = true
	}

	for i, cell := range Layout(lowKey, highKey) {
		style := tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
		if cell.Black {
			style = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
		}
		if lit[cell.Key] {
			style = style.Background(tcell.ColorDodgerBlue)
		}
		for y := 1; y <= 3; y++ {
			screen.SetContent(i+1, y, ' ', nil, style)
		}
	}

	for row, line := range Labels(held) {
		for i, r := range line {
			screen.SetContent(1+i, 5+row, r, nil, tcell.StyleDefault)
		}
	}
	screen.Show()
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/leandrodaf/chordie/internal/bus"
	"github.com/leandrodaf/chordie/internal/logger"
	"github.com/leandrodaf/chordie/internal/notes"
	"github.com/leandrodaf/chordie/sdk/contracts"
	"github.com/leandrodaf/chordie/sdk/midi"
)

func main() {
	log := logger.NewStandardLogger()
	events := bus.NewChannel(100)

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithEmitter(events),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		return
	}

	devices, err := client.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	for _, d := range devices {
		fmt.Printf("%d: %s\n", d.Index, d.Name)
	}

	port := 0
	if len(os.Args) > 1 {
		if port, err = strconv.Atoi(os.Args[1]); err != nil {
			log.Error("Port index must be a number", log.Field().String("arg", os.Args[1]))
			return
		}
	}

	if err = client.Listen(port); err != nil {
		log.Error("Failed to listen to MIDI device", log.Field().Error("error", err))
		return
	}
	defer client.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	fmt.Println("Capturing held notes... Press Ctrl+C to exit.")
	for {
		select {
		case ev := <-events.Events():
			fmt.Println("Held:", notes.Names(ev.Notes), "Chord:", notes.DetectChord(ev.Notes, false))
		case <-interrupt:
			return
		}
	}
}

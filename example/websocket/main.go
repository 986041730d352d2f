// Command websocket serves held-note snapshots to browser UIs over /ws and
// message counters over /metrics.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/leandrodaf/chordie/internal/bus"
	"github.com/leandrodaf/chordie/internal/logger"
	"github.com/leandrodaf/chordie/internal/metrics"
	"github.com/leandrodaf/chordie/sdk/contracts"
	"github.com/leandrodaf/chordie/sdk/midi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	addr := flag.String("addr", ":8090", "listen address")
	port := flag.Int("port", -1, "MIDI port to listen to at startup")
	flag.Parse()

	log := logger.NewZapLogger()
	if err := run(log, *addr, *port); err != nil {
		log.Fatal("Server stopped", log.Field().Error("error", err))
	}
}

// run owns every resource the server opens, so they are released before main
// reports a failure.
func run(log contracts.Logger, addr string, port int) error {
	reg := prometheus.NewRegistry()
	collector, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	hub := bus.NewHub(log)
	defer hub.Close()

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithEmitter(hub),
		contracts.WithObserver(collector),
	)
	if err != nil {
		return fmt.Errorf("initialize MIDI client: %w", err)
	}
	defer client.Stop()

	if port >= 0 {
		if err := client.Listen(port); err != nil {
			log.Error("Failed to listen to MIDI device", log.Field().Error("error", err))
		}
	}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Handle("/ws", hub)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/devices", devicesHandler(client)).Methods(http.MethodGet)
	api.HandleFunc("/devices/{index:[0-9]+}/listen", listenHandler(client)).Methods(http.MethodPost)
	api.HandleFunc("/listen", stopHandler(client)).Methods(http.MethodDelete)

	log.Info("Serving held notes", log.Field().String("addr", addr))
	return http.ListenAndServe(addr, r)
}

func devicesHandler(client contracts.ClientMIDI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		devices, err := client.ListDevices()
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(devices)
	}
}

func listenHandler(client contracts.ClientMIDI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, _ := strconv.Atoi(mux.Vars(r)["index"])
		if err := client.Listen(index); err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func stopHandler(client contracts.ClientMIDI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := client.Stop(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

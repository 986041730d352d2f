package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/leandrodaf/chordie/internal/logger"
	"github.com/leandrodaf/chordie/sdk/contracts"
	"go.uber.org/zap"
)

type stubClient struct {
	devices   []contracts.DeviceInfo
	listenErr error
	listened  []int
	stopped   int
}

func (s *stubClient) ListDevices() ([]contracts.DeviceInfo, error) { return s.devices, nil }
func (s *stubClient) Listen(i int) error {
	s.listened = append(s.listened, i)
	return s.listenErr
}
func (s *stubClient) Stop() error     { s.stopped++; return nil }
func (s *stubClient) Listening() bool { return len(s.listened) > 0 }

func router(c contracts.ClientMIDI) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/devices", devicesHandler(c)).Methods(http.MethodGet)
	r.HandleFunc("/api/devices/{index:[0-9]+}/listen", listenHandler(c)).Methods(http.MethodPost)
	r.HandleFunc("/api/listen", stopHandler(c)).Methods(http.MethodDelete)
	return r
}

func TestDevicesHandler(t *testing.T) {
	c := &stubClient{devices: []contracts.DeviceInfo{{Index: 0, Name: "Keystation"}}}
	rec := httptest.NewRecorder()
	router(c).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/devices", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []contracts.DeviceInfo
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Keystation" {
		t.Errorf("devices = %+v", got)
	}
}

func TestListenHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusNoContent},
		{"range", &contracts.PortRangeError{Index: 3, Available: 1}, http.StatusNotFound},
		{"connect", fmt.Errorf("%w: busy", contracts.ErrConnect), http.StatusConflict},
		{"init", fmt.Errorf("%w: no driver", contracts.ErrTransportInit), http.StatusServiceUnavailable},
		{"other", errors.New("?"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &stubClient{listenErr: tt.err}
			rec := httptest.NewRecorder()
			router(c).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/devices/3/listen", nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if len(c.listened) != 1 || c.listened[0] != 3 {
				t.Errorf("listened = %v", c.listened)
			}
		})
	}
}

func TestStopHandler(t *testing.T) {
	c := &stubClient{}
	rec := httptest.NewRecorder()
	router(c).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/listen", nil))

	if rec.Code != http.StatusNoContent || c.stopped != 1 {
		t.Errorf("status = %d, stopped = %d", rec.Code, c.stopped)
	}
}

func TestRunReturnsServerError(t *testing.T) {
	// An unusable address makes the server fail at once; run must hand the
	// error back rather than exit, so its deferred cleanup still runs.
	err := run(logger.NewFromZap(zap.NewNop()), "127.0.0.1:-1", -1)
	if err == nil {
		t.Fatal("expected an error")
	}
}

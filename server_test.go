package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"i4.energy/across/hc08ctl/at"
	"i4.energy/across/hc08ctl/hc08"
)

type stubDevice struct {
	mode       hc08.Mode
	moduleMode hc08.Mode
	version    string
	params     at.Parameters
	err        error
	name       string
}

func (d *stubDevice) Mode() hc08.Mode { return d.mode }

func (d *stubDevice) QueryMode() (hc08.Mode, error) { return d.moduleMode, d.err }

func (d *stubDevice) Version() (string, error) { return d.version, d.err }

func (d *stubDevice) Parameters() (at.Parameters, error) { return d.params, d.err }

func (d *stubDevice) SetName(name string) error {
	if d.err != nil {
		return d.err
	}
	d.name = name
	return nil
}

func newTestServer(d Device) *Server {
	return &Server{
		Logger: slog.New(slog.DiscardHandler),
		Device: d,
	}
}

func TestServer_Status(t *testing.T) {
	t.Run("Reports handle and module mode", func(t *testing.T) {
		d := &stubDevice{
			mode:       hc08.ModePeripheral,
			moduleMode: hc08.ModeCentral,
			version:    "HC-08V3.1,2017-07-07\n",
		}
		w := httptest.NewRecorder()
		newTestServer(d).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var status Status
		if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		expected := Status{Mode: "peripheral", ModuleMode: "central", Version: d.version}
		if status != expected {
			t.Errorf("expected %+v, got %+v", expected, status)
		}
	})

	t.Run("Module errors are 500", func(t *testing.T) {
		d := &stubDevice{err: hc08.ErrReadTimeout}
		w := httptest.NewRecorder()
		newTestServer(d).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), hc08.ErrReadTimeout.Error()) {
			t.Errorf("expected error message in body, got %q", w.Body.String())
		}
	})
}

func TestServer_Parameters(t *testing.T) {
	d := &stubDevice{
		params: at.Parameters{
			Role:     at.Slave,
			BaudRate: at.Baud9600,
			Addr:     at.Address{0xA4, 0xC1, 0x38, 0x00, 0x11, 0x22},
		},
	}
	w := httptest.NewRecorder()
	newTestServer(d).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/parameters", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	expected := `{"role":"Slave","baud_rate":9600,"addr":"A4:C1:38:00:11:22"}`
	if got := strings.TrimSpace(w.Body.String()); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestServer_Name(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		err        error
		wantStatus int
		wantName   string
	}{
		{
			name:       "Name is set",
			method:     http.MethodPut,
			body:       `{"name":"beacon"}`,
			wantStatus: http.StatusOK,
			wantName:   "beacon",
		},
		{
			name:       "Empty name is rejected",
			method:     http.MethodPut,
			body:       `{"name":""}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Malformed body is rejected",
			method:     http.MethodPut,
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Module errors are 500",
			method:     http.MethodPut,
			body:       `{"name":"beacon"}`,
			err:        errors.New("wrong response"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "Other methods are not allowed",
			method:     http.MethodPost,
			body:       `{"name":"beacon"}`,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &stubDevice{err: tt.err}
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, "/name", strings.NewReader(tt.body))
			newTestServer(d).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if d.name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, d.name)
			}
		})
	}
}

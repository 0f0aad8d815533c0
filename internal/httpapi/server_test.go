package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/coating"
	"github.com/solarlab/rowland-optics/instrument"
	"github.com/solarlab/rowland-optics/internal/logging"
)

const testConfig = `{
  "rowland_radius_mm": 1000,
  "solar_disk": {},
  "front_aperture": {"translation_mm": {"z": 2000}},
  "grating": {
    "sag_radius_mm": -2000,
    "width_clear_mm": {"x": 100, "y": 20},
    "width_mech_mm": {"x": 110, "y": 30},
    "groove_density_per_mm": 3600,
    "diffraction_order": 1,
    "azimuth_deg": 175,
    "coating": "al_mgf2"
  }
}`

func testServer(t *testing.T) *Server {
	t.Helper()
	ins, _, err := instrument.Load(strings.NewReader(testConfig))
	if err != nil {
		t.Fatalf("load test instrument: %v", err)
	}
	return New(ins, logging.Noop(), nil)
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("/healthz status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("/healthz body = %q, want status ok", rr.Body.String())
	}
}

func TestComponentsListsIDsInOrder(t *testing.T) {
	srv := testServer(t)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/components", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("/v1/components status = %d, want 200", rr.Code)
	}
	var resp struct {
		ComponentIDs []string `json:"component_ids"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []string{"solar_disk", "front_aperture", "grating"}
	if len(resp.ComponentIDs) != len(want) {
		t.Fatalf("component_ids = %v, want %v", resp.ComponentIDs, want)
	}
	for i, id := range want {
		if resp.ComponentIDs[i] != id {
			t.Errorf("component_ids[%d] = %q, want %q", i, resp.ComponentIDs[i], id)
		}
	}
}

func TestSurfacesCarryHomogeneousTransforms(t *testing.T) {
	srv := testServer(t)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/surfaces", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("/v1/surfaces status = %d, want 200", rr.Code)
	}
	var resp struct {
		Surfaces []surfaceDTO `json:"surfaces"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Surfaces) != 3 {
		t.Fatalf("got %d surfaces, want 3", len(resp.Surfaces))
	}
	for _, s := range resp.Surfaces {
		if len(s.Transform) != 16 {
			t.Errorf("surface %q transform has %d entries, want 16", s.Name, len(s.Transform))
		}
	}

	grating := resp.Surfaces[2]
	if grating.Rulings == nil || grating.Rulings.DiffractionOrder != 1 {
		t.Errorf("grating surface missing rulings: %+v", grating.Rulings)
	}
	if !grating.HasMaterial {
		t.Errorf("grating surface should carry a coating material")
	}
}

func TestCoatingFitEndpoint(t *testing.T) {
	srv := testServer(t)

	// Synthesize a measurement directly from the nominal design so the
	// fit converges quickly and cleanly.
	design := coating.Design()
	wavelengthNm := []float64{120, 160, 200, 250, 304, 400, 500, 600}
	wavelength := make([]unit.Length, len(wavelengthNm))
	for i, nm := range wavelengthNm {
		wavelength[i] = unit.Length(nm * unit.Nano)
	}
	reflectance, err := design.Efficiency(wavelength, 0)
	if err != nil {
		t.Fatalf("synthesize measurement: %v", err)
	}

	body, _ := json.Marshal(fitRequest{
		IncidenceDeg: 0,
		WavelengthNm: wavelengthNm,
		Reflectance:  reflectance,
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/coating/fit", strings.NewReader(string(body)))
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/v1/coating/fit status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var resp fitResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RMS > 1e-4 {
		t.Errorf("fit RMS = %v, want near zero for a perfect measurement", resp.RMS)
	}
	if len(resp.Layers) != 2 {
		t.Fatalf("fit returned %d layers, want 2", len(resp.Layers))
	}
	if resp.Layers[0].Chemical != "MgF2" || resp.Layers[1].Chemical != "Al" {
		t.Errorf("fit layer order = %q/%q, want MgF2/Al",
			resp.Layers[0].Chemical, resp.Layers[1].Chemical)
	}
}

func TestCoatingFitRejectsMismatchedColumns(t *testing.T) {
	srv := testServer(t)

	body := `{"incidence_deg": 0, "wavelength_nm": [120, 200], "reflectance": [0.8]}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/coating/fit", strings.NewReader(body))
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("/v1/coating/fit status = %d, want 400", rr.Code)
	}
}

func TestCoatingFitRejectsUnknownFields(t *testing.T) {
	srv := testServer(t)

	body := `{"wavelengths": [120]}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/coating/fit", strings.NewReader(body))
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("/v1/coating/fit status = %d, want 400", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := testServer(t)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/surfaces", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /v1/surfaces status = %d, want 405", rr.Code)
	}
}

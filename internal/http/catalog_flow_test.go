package handlers_test

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func getWithSID(t *testing.T, app *fiber.App, path, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req, testTimeoutMs)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestMaterialsPage_ShowsSeededCatalog(t *testing.T) {
	app := newTestApp(t)
	sid, _ := register(t, app, "seeded@printshop.test")

	resp := getWithSID(t, app, "/materials", sid)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	page := body(t, resp)
	for _, name := range []string{"LONA 440G", "ADESIVO FOSCO", "TECIDO DRY FIT"} {
		if !strings.Contains(page, name) {
			t.Fatalf("seeded material %q missing from page", name)
		}
	}
}

func TestMaterialSaveAndDeleteOverHTTP(t *testing.T) {
	app := newTestApp(t)
	sid, csrfTok := register(t, app, "crud@printshop.test")

	resp := postForm(t, app, "/materials", csrfTok, sid, url.Values{
		"name":     {"VINIL TRANSPARENTE"},
		"category": {"vinyl"},
		"cost":     {"6.40"},
		"supplier": {"Imprimax"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("save: want 302, got %d", resp.StatusCode)
	}
	page := body(t, getWithSID(t, app, "/materials", sid))
	if !strings.Contains(page, "VINIL TRANSPARENTE") {
		t.Fatal("saved material missing from list")
	}

	// Bad cost is rejected with the list re-rendered.
	bad := postForm(t, app, "/materials", csrfTok, sid, url.Values{
		"name": {"X"}, "category": {"vinyl"}, "cost": {"-3"},
	})
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("negative cost: want 400, got %d", bad.StatusCode)
	}

	// Find the generated id from the page and delete the row.
	id := extractFieldValue(page, "VINIL TRANSPARENTE")
	if id == "" {
		t.Fatal("could not find id for saved material")
	}
	del := postForm(t, app, "/materials/delete", csrfTok, sid, url.Values{"id": {id}})
	if del.StatusCode != http.StatusFound {
		t.Fatalf("delete: want 302, got %d", del.StatusCode)
	}
	after := body(t, getWithSID(t, app, "/materials", sid))
	if strings.Contains(after, "VINIL TRANSPARENTE") {
		t.Fatal("deleted material still listed")
	}
}

// extractFieldValue pulls the hidden id input rendered just before the row
// that carries the given name.
func extractFieldValue(page, name string) string {
	idx := strings.Index(page, name)
	if idx < 0 {
		return ""
	}
	// the delete form with the id follows the name cell
	rest := page[idx:]
	marker := `name="id" value="`
	j := strings.Index(rest, marker)
	if j < 0 {
		return ""
	}
	rest = rest[j+len(marker):]
	k := strings.Index(rest, `"`)
	if k < 0 {
		return ""
	}
	return rest[:k]
}

// optionValue pulls the value attribute of the select option whose text
// carries the given name.
func optionValue(page, name string) string {
	idx := strings.Index(page, name)
	if idx < 0 {
		return ""
	}
	marker := `<option value="`
	j := strings.LastIndex(page[:idx], marker)
	if j < 0 {
		return ""
	}
	rest := page[j+len(marker):]
	k := strings.Index(rest, `"`)
	if k < 0 {
		return ""
	}
	return rest[:k]
}

// Each registered account gets its own default catalog; a second signup on
// the same store must not be left with an empty one.
func TestSecondAccountGetsDefaultCatalog(t *testing.T) {
	app := newTestApp(t)
	sidA, _ := register(t, app, "first@printshop.test")
	sidB, _ := register(t, app, "second@printshop.test")

	for _, sid := range []string{sidA, sidB} {
		page := body(t, getWithSID(t, app, "/materials", sid))
		for _, name := range []string{"LONA 440G", "ADESIVO FOSCO", "TECIDO DRY FIT"} {
			if !strings.Contains(page, name) {
				t.Fatalf("seeded material %q missing for a registered account", name)
			}
		}
	}
}

func TestServiceRecordAndExportOverHTTP(t *testing.T) {
	app := newTestApp(t)
	sid, csrfTok := register(t, app, "ledger@printshop.test")

	// Pick seeded catalog ids straight from the form page.
	form := body(t, getWithSID(t, app, "/services/new", sid))
	materialID := optionValue(form, "LONA 440G")
	inkID := optionValue(form, "TINTA JETBEST NOVA ECO PREMIUM")
	if materialID == "" || inkID == "" {
		t.Fatalf("service form missing seeded catalog options:\n%s", form)
	}

	// Live quote with the default LONA (12.50) and ECO PREMIUM (0.48) seeds.
	quote := postForm(t, app, "/services/quote", csrfTok, sid, url.Values{
		"material_id":  {materialID},
		"material_qty": {"2"},
		"ink_id":       {inkID},
		"ink_qty":      {"10"},
		"sale_price":   {"50"},
	})
	if quote.StatusCode != http.StatusOK {
		t.Fatalf("quote: want 200, got %d", quote.StatusCode)
	}
	var q struct {
		TotalCost float64 `json:"totalCost"`
		Profit    float64 `json:"profit"`
		Margin    float64 `json:"margin"`
	}
	if err := json.Unmarshal([]byte(body(t, quote)), &q); err != nil {
		t.Fatal(err)
	}
	if math.Abs(q.TotalCost-29.80) > 1e-9 || math.Abs(q.Profit-20.20) > 1e-9 {
		t.Fatalf("quote numbers off: %+v", q)
	}

	created := postForm(t, app, "/services", csrfTok, sid, url.Values{
		"name":         {"Banner 2x1"},
		"material_id":  {materialID},
		"material_qty": {"2"},
		"ink_id":       {inkID},
		"ink_qty":      {"10"},
		"other_desc":   {"acabamento"},
		"other_value":  {"5"},
		"sale_price":   {"50"},
	})
	if created.StatusCode != http.StatusFound {
		t.Fatalf("create: want 302, got %d", created.StatusCode)
	}

	// A service without a material selection is rejected.
	rejected := postForm(t, app, "/services", csrfTok, sid, url.Values{
		"name": {"No material"}, "ink_id": {inkID}, "sale_price": {"10"},
	})
	if rejected.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing material: want 400, got %d", rejected.StatusCode)
	}

	csv := getWithSID(t, app, "/reports/export.csv", sid)
	if csv.StatusCode != http.StatusOK {
		t.Fatalf("export: want 200, got %d", csv.StatusCode)
	}
	if cd := csv.Header.Get("Content-Disposition"); !strings.Contains(cd, "print-report-") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	out := body(t, csv)
	if !strings.Contains(out, `"Banner 2x1","LONA 440G"`) || !strings.Contains(out, "34.80,50.00,15.20,30.40") {
		t.Fatalf("csv missing recorded row:\n%s", out)
	}
}

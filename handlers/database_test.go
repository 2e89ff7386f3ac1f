package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"costestimation/services"
	"costestimation/testhelpers"
)

const testSecret = "Proseen2025"

func accessCookie() *http.Cookie {
	return &http.Cookie{
		Name:  databaseAccessCookie,
		Value: services.DatabaseAccessToken(testSecret),
	}
}

func TestHandleDatabaseUnlock(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("password", testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/database/unlock", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleDatabaseUnlock(testSecret)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == databaseAccessCookie {
			found = true
			if c.Value != services.DatabaseAccessToken(testSecret) {
				t.Error("cookie does not hold the access token")
			}
			if c.Value == testSecret {
				t.Error("cookie must not expose the raw password")
			}
		}
	}
	if !found {
		t.Error("access cookie was not set")
	}
}

func TestHandleDatabaseUnlockWrongPassword(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("password", "wrong")

	req := httptest.NewRequest(http.MethodPost, "/api/database/unlock", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleDatabaseUnlock(testSecret)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no cookie should be set on failure")
	}
}

func TestHandleTemplateListRequiresUnlock(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/database/templates/materiel_electrique", nil)
	req.SetPathValue("category", "materiel_electrique")
	rec := httptest.NewRecorder()

	if err := HandleTemplateList(app, testSecret)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHandleTemplateCRUD(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Add through the handler.
	form := url.Values{}
	form.Set("description", "Vanne papillon DN100")
	form.Set("unit_price", "285000")

	req := httptest.NewRequest(http.MethodPost, "/api/database/templates/materiel_tuyauterie", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("category", "materiel_tuyauterie")
	req.AddCookie(accessCookie())
	rec := httptest.NewRecorder()

	if err := HandleTemplateAdd(app, testSecret)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode add response: %v", err)
	}

	// List it back.
	req = httptest.NewRequest(http.MethodGet, "/api/database/templates/materiel_tuyauterie", nil)
	req.SetPathValue("category", "materiel_tuyauterie")
	req.AddCookie(accessCookie())
	rec = httptest.NewRecorder()

	if err := HandleTemplateList(app, testSecret)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var listed struct {
		Templates []templateEntry `json:"templates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed.Templates) != 1 || listed.Templates[0].UnitPrice != 285000 {
		t.Fatalf("unexpected templates: %+v", listed.Templates)
	}

	// Delete it.
	req = httptest.NewRequest(http.MethodDelete, "/api/database/templates/materiel_tuyauterie/"+created.ID, nil)
	req.SetPathValue("category", "materiel_tuyauterie")
	req.SetPathValue("itemId", created.ID)
	req.AddCookie(accessCookie())
	rec = httptest.NewRecorder()

	if err := HandleTemplateDelete(app, testSecret)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}

	items, err := services.ListTemplateItems(app, "materiel_tuyauterie")
	if err != nil {
		t.Fatalf("ListTemplateItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list, got %+v", items)
	}
}

func TestHandleTemplateImport(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "prix.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("description,unit_price\nCiment CPA 42.5,95000\n,bad\n"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/database/templates/materiel_genie_civil/import", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.SetPathValue("category", "materiel_genie_civil")
	req.AddCookie(accessCookie())
	rec := httptest.NewRecorder()

	if err := HandleTemplateImport(app, testSecret)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var result services.ImportResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.ImportedRows != 1 || result.ErrorRows != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	items, err := services.ListTemplateItems(app, "materiel_genie_civil")
	if err != nil {
		t.Fatalf("ListTemplateItems: %v", err)
	}
	if len(items) != 1 || items[0].Description != "Ciment CPA 42.5" {
		t.Errorf("unexpected items: %+v", items)
	}
}

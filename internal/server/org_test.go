package server

import (
	"net/http"
	"testing"

	"triton-system/internal/database/models"
)

func TestCompanyCascadeDelete(t *testing.T) {
	db, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	companyID, locationID, _ := createOrgTriple(t, r, token, "Acme", "HQ", "Main")

	// Second location with its own shop, plus a role anchored on the tree.
	w := doRequest(t, r, http.MethodPost, "/locations/", token, map[string]interface{}{
		"name":    "Branch",
		"company": companyID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create second location: %d", w.Code)
	}
	var branch struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, w, &branch)

	w = doRequest(t, r, http.MethodPost, "/shops/", token, map[string]interface{}{
		"name":     "Outlet",
		"location": branch.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create second shop: %d", w.Code)
	}

	w = doRequest(t, r, http.MethodDelete, detailPath("companies", companyID), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete company: status %d body %s", w.Code, w.Body.String())
	}

	var locations, shops int64
	db.Model(&models.Location{}).Count(&locations)
	db.Model(&models.Shop{}).Count(&shops)
	if locations != 0 || shops != 0 {
		t.Fatalf("cascade left %d locations, %d shops", locations, shops)
	}

	w = doRequest(t, r, http.MethodGet, detailPath("locations", locationID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted location still retrievable: %d", w.Code)
	}
}

func TestLocationCascadeDeletesShops(t *testing.T) {
	db, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	companyID, locationID, _ := createOrgTriple(t, r, token, "Acme", "HQ", "Main")

	w := doRequest(t, r, http.MethodDelete, detailPath("locations", locationID), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete location: status %d", w.Code)
	}

	var shops int64
	db.Model(&models.Shop{}).Count(&shops)
	if shops != 0 {
		t.Fatalf("cascade left %d shops", shops)
	}

	// The parent company survives.
	w = doRequest(t, r, http.MethodGet, detailPath("companies", companyID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("company should survive location delete: %d", w.Code)
	}
}

func TestLocationListParentFilter(t *testing.T) {
	_, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	acmeID, _, _ := createOrgTriple(t, r, token, "Acme", "HQ", "Main")
	createOrgTriple(t, r, token, "Globex", "Downtown", "Kiosk")

	w := doRequest(t, r, http.MethodGet, "/locations/?company="+itoa(acmeID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("filtered list: status %d", w.Code)
	}

	var locations []struct {
		Name    string `json:"name"`
		Company int64  `json:"company"`
	}
	decodeJSON(t, w, &locations)
	if len(locations) != 1 || locations[0].Name != "HQ" {
		t.Fatalf("expected only HQ, got %+v", locations)
	}
}

func TestShopListParentFilter(t *testing.T) {
	_, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	_, hqID, _ := createOrgTriple(t, r, token, "Acme", "HQ", "Main")
	createOrgTriple(t, r, token, "Globex", "Downtown", "Kiosk")

	w := doRequest(t, r, http.MethodGet, "/shops/?location="+itoa(hqID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("filtered list: status %d", w.Code)
	}

	var shops []struct {
		Name        string `json:"name"`
		CompanyName string `json:"company_name"`
	}
	decodeJSON(t, w, &shops)
	if len(shops) != 1 || shops[0].Name != "Main" {
		t.Fatalf("expected only Main, got %+v", shops)
	}
	if shops[0].CompanyName != "Acme" {
		t.Fatalf("expected derived company name Acme, got %q", shops[0].CompanyName)
	}
}

func TestListFilterRejectsNonNumericParent(t *testing.T) {
	_, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")
	createOrgTriple(t, r, token, "Acme", "HQ", "Main")

	w := doRequest(t, r, http.MethodGet, "/locations/?company=abc", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("locations filter: expected 400, got %d body %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, "/shops/?location=abc", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("shops filter: expected 400, got %d body %s", w.Code, w.Body.String())
	}
}

func TestCompanyListSurfacesCountFailure(t *testing.T) {
	db, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	w := doRequest(t, r, http.MethodPost, "/companies/", token, map[string]interface{}{"name": "Acme"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create company: status %d", w.Code)
	}

	// A broken locations table must surface as an error, not a zero count.
	if err := db.Migrator().DropTable(&models.Location{}); err != nil {
		t.Fatalf("drop locations table: %v", err)
	}

	w = doRequest(t, r, http.MethodGet, "/companies/", token, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body %s", w.Code, w.Body.String())
	}
}

func TestDuplicateSiblingNamesAllowed(t *testing.T) {
	_, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	for i := 0; i < 2; i++ {
		w := doRequest(t, r, http.MethodPost, "/companies/", token, map[string]interface{}{"name": "Twin"})
		if w.Code != http.StatusCreated {
			t.Fatalf("create %d: status %d", i, w.Code)
		}
	}
}

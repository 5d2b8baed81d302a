package server

import (
	"net/http"
	"testing"

	"triton-system/internal/database/models"
)

func TestJewelleryBusinessKeyUnique(t *testing.T) {
	_, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	body := map[string]interface{}{"jewellery_id": "JW-00042"}
	w := doRequest(t, r, http.MethodPost, "/jewellery/", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: status %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/jewellery/", token, body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate jewellery_id: expected 409, got %d", w.Code)
	}
}

func TestRFIDTagUnique(t *testing.T) {
	_, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	body := map[string]interface{}{"tag": "RFID-000001"}
	w := doRequest(t, r, http.MethodPost, "/rfid/", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: status %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/rfid/", token, body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate tag: expected 409, got %d", w.Code)
	}
}

func TestMappingDuplicatePairConflict(t *testing.T) {
	db, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	w := doRequest(t, r, http.MethodPost, "/jewellery/", token, map[string]interface{}{"jewellery_id": "JW-1"})
	var jewellery struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, w, &jewellery)

	w = doRequest(t, r, http.MethodPost, "/rfid/", token, map[string]interface{}{"tag": "TAG-1"})
	var tag struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, w, &tag)

	body := map[string]interface{}{"jewellery": jewellery.ID, "rfid": tag.ID}
	w = doRequest(t, r, http.MethodPost, "/rfid-map/", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("first mapping: status %d body %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/rfid-map/", token, body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate mapping: expected 409, got %d body %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.RFIDJewelleryMap{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 mapping row, found %d", count)
	}
}

func TestMappingRequiresExistingEndpoints(t *testing.T) {
	_, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	w := doRequest(t, r, http.MethodPost, "/rfid-map/", token, map[string]interface{}{
		"jewellery": 123,
		"rfid":      456,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", w.Code, w.Body.String())
	}
}

func TestDeletingJewelleryRemovesMappings(t *testing.T) {
	db, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	w := doRequest(t, r, http.MethodPost, "/jewellery/", token, map[string]interface{}{"jewellery_id": "JW-2"})
	var jewellery struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, w, &jewellery)

	w = doRequest(t, r, http.MethodPost, "/rfid/", token, map[string]interface{}{"tag": "TAG-2"})
	var tag struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, w, &tag)

	w = doRequest(t, r, http.MethodPost, "/rfid-map/", token, map[string]interface{}{
		"jewellery": jewellery.ID,
		"rfid":      tag.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create mapping: status %d", w.Code)
	}

	w = doRequest(t, r, http.MethodDelete, detailPath("jewellery", jewellery.ID), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete jewellery: status %d", w.Code)
	}

	var count int64
	db.Model(&models.RFIDJewelleryMap{}).Count(&count)
	if count != 0 {
		t.Fatalf("mapping survived jewellery deletion: %d rows", count)
	}

	// The RFID tag itself is untouched.
	w = doRequest(t, r, http.MethodGet, detailPath("rfid", tag.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rfid should survive: status %d", w.Code)
	}
}

func TestJewelleryStatusValidation(t *testing.T) {
	_, r := setupTest(t)
	token, _ := registerAndLogin(t, r, "admin")

	w := doRequest(t, r, http.MethodPost, "/jewellery/", token, map[string]interface{}{
		"jewellery_id": "JW-3",
		"status":       "melted",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: expected 400, got %d", w.Code)
	}
}

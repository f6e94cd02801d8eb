package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestAuthLogging(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	h.act("/nav/admin", nil)

	entries := captureLogs(t, func() {
		h.act("/admin/login", url.Values{"password": {"nope"}})
	})
	e, ok := findAction(entries, "auth.login.fail")
	if !ok {
		t.Fatalf("auth.login.fail not logged: %+v", entries)
	}
	if e.Level != "warn" || e.Path != "/admin/login" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	entries = captureLogs(t, func() {
		h.act("/admin/login", url.Values{"password": {"kiln-and-loom"}})
	})
	if e, ok := findAction(entries, "auth.login.success"); !ok || e.Level != "audit" {
		t.Fatalf("auth.login.success not audited: %+v", entries)
	}
	for _, e := range entries {
		for k, v := range e.Fields {
			if s, _ := v.(string); strings.Contains(s, "kiln-and-loom") {
				t.Fatalf("secret leaked in log field %s", k)
			}
		}
	}

	entries = captureLogs(t, func() { h.act("/admin/logout", nil) })
	if _, ok := findAction(entries, "auth.logout"); !ok {
		t.Fatalf("auth.logout not logged: %+v", entries)
	}
}

func TestAdminMutationLogging(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	h.login()

	entries := captureLogs(t, func() {
		h.act("/admin/products", url.Values{"name": {"Stoneware Mug"}, "category": {"Pottery"}, "price": {"22"}})
	})
	e, ok := findAction(entries, "admin.product.add")
	if !ok {
		t.Fatalf("admin.product.add not logged: %+v", entries)
	}
	if e.Fields["name"] != "Stoneware Mug" {
		t.Fatalf("missing name field: %+v", e.Fields)
	}
	if _, ok := findAction(entries, "sync.refresh"); !ok {
		t.Fatal("add should be followed by a refresh")
	}

	entries = captureLogs(t, func() {
		h.act("/admin/products/clay-bowl/delete", nil)
		h.act("/admin/products/clay-bowl/delete", url.Values{"confirm": {"yes"}})
	})
	if e, ok := findAction(entries, "admin.product.delete"); !ok || e.Fields["product_id"] != "clay-bowl" {
		t.Fatalf("admin.product.delete not logged: %+v", entries)
	}
}

func TestInquiryLogging(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	entries := captureLogs(t, func() {
		h.act("/inquiries", url.Values{"product_id": {"bud-vase"}, "customer": {"Asha"}, "contact": {"555-0100"}})
	})
	if e, ok := findAction(entries, "inquiry.submit"); !ok || e.Fields["product"] != "Bud Vase" {
		t.Fatalf("inquiry.submit not logged: %+v", entries)
	}
	if _, ok := findAction(entries, "sync.refresh"); ok {
		t.Fatal("inquiry submit should not refresh")
	}
}

func TestCSRFFailureLogged(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	h.page()

	entries := captureLogs(t, func() {
		resp := h.do(http.MethodPost, "/nav/catalog", url.Values{"csrf": {"forged"}})
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("want 403, got %d", resp.StatusCode)
		}
	})
	if _, ok := findAction(entries, "csrf.fail"); !ok {
		t.Fatalf("csrf.fail not logged: %+v", entries)
	}
	mustContain(t, h.page(), `data-view="home"`)
}

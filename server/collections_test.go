package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestToSQLValue(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		v, err := toSQLValue("hello", colText)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "hello" {
			t.Errorf("got %v", v)
		}
	})

	t.Run("text rejects non-string", func(t *testing.T) {
		if _, err := toSQLValue(42.0, colText); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("bool", func(t *testing.T) {
		v, err := toSQLValue(true, colBool)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != true {
			t.Errorf("got %v", v)
		}
	})

	t.Run("json marshals arrays", func(t *testing.T) {
		v, err := toSQLValue([]interface{}{"monday", "thursday"}, colJSON)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != `["monday","thursday"]` {
			t.Errorf("got %v", v)
		}
	})

	t.Run("time parses RFC3339", func(t *testing.T) {
		v, err := toSQLValue("2026-08-25T10:00:00Z", colTime)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ts, ok := v.(time.Time)
		if !ok || ts.Year() != 2026 {
			t.Errorf("got %v", v)
		}
	})

	t.Run("time rejects garbage", func(t *testing.T) {
		if _, err := toSQLValue("yesterday-ish", colTime); err == nil {
			t.Error("expected error")
		}
	})
}

func TestCollectionRegistry(t *testing.T) {
	t.Run("columns are unique per collection", func(t *testing.T) {
		for name, col := range collections {
			seen := map[string]bool{}
			for _, cc := range col.columns {
				if seen[cc.name] {
					t.Errorf("%s: duplicate column %s", name, cc.name)
				}
				seen[cc.name] = true
			}
		}
	})

	t.Run("tasks carry updated_at", func(t *testing.T) {
		col := collections["tasks"]
		if !col.hasUpdated {
			t.Error("tasks should have hasUpdated set")
		}
		if _, ok := col.find("updated_at"); !ok {
			t.Error("tasks should expose updated_at")
		}
	})

	t.Run("completion logs order by occurrence", func(t *testing.T) {
		col := collections["completion_logs"]
		if _, ok := col.find("occurred_at"); !ok {
			t.Error("completion_logs should expose occurred_at")
		}
		if _, ok := col.find("created_at"); ok {
			t.Error("completion_logs should not have created_at")
		}
	})

	t.Run("every user collection is registered", func(t *testing.T) {
		for _, name := range []string{"tasks", "identities", "archetypes", "completion_logs", "day_logs", "categories"} {
			if _, ok := collections[name]; !ok {
				t.Errorf("missing collection %s", name)
			}
		}
	})
}

func TestUnknownCollection(t *testing.T) {
	e := echo.New()
	s := &Server{}

	for _, h := range []struct {
		name string
		fn   echo.HandlerFunc
	}{
		{"list", s.handleList},
		{"insert", s.handleInsert},
		{"patch", s.handlePatch},
		{"delete", s.handleDelete},
	} {
		t.Run(h.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", strings.NewReader("{}"))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("collection")
			c.SetParamValues("nope")

			if err := h.fn(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusNotFound {
				t.Errorf("got status %d, want 404", rec.Code)
			}
		})
	}
}

func TestPatchRejectsUnknownColumn(t *testing.T) {
	e := echo.New()
	s := &Server{}

	req := httptest.NewRequest(http.MethodPatch, "/",
		strings.NewReader(`{"titel":"Morning skincare"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.SetParamNames("collection", "id")
	c.SetParamValues("tasks", "t1")

	if err := s.handlePatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown column") {
		t.Errorf("body = %s, want unknown column error", rec.Body.String())
	}
}

package clone_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"asset-cloner/feature/clone"
	"asset-cloner/feature/history"
	"asset-cloner/internal/fixtures"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, ledger clone.Ledger) *fiber.App {
	t.Helper()
	app, _ := newAppFs(t, ledger)
	return app
}

func newAppFs(t *testing.T, ledger clone.Ledger) (*fiber.App, afero.Fs) {
	t.Helper()
	svc, afs := newService(t, testConfig(), ledger)
	app := fiber.New()
	require.NoError(t, clone.NewFeature(svc).Load(app))
	return app, afs
}

func decode(t *testing.T, body io.Reader, v interface{}) {
	t.Helper()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v), string(data))
}

func TestHandleGetRecord(t *testing.T) {
	app := newApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/records/weapon/"+fixtures.Weapon, nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view clone.RecordView
	decode(t, resp.Body, &view)
	assert.Equal(t, fixtures.Weapon, view.Name)
	assert.Equal(t, "weapons.xtbl", view.Source)
	assert.NotEmpty(t, view.Fields)

	resp, err = app.Test(httptest.NewRequest("GET", "/records/weapon/nope", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/records/hat/x", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetClosure(t *testing.T) {
	app := newApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/closures/weapon/"+fixtures.Costume, nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary map[string]interface{}
	decode(t, resp.Body, &summary)
	assert.Equal(t, fixtures.Weapon, summary["weapon"])
	assert.Len(t, summary["items"], 3)
	assert.Equal(t, []interface{}{fixtures.MissingProp}, summary["missing_props"])

	resp, err = app.Test(httptest.NewRequest("GET", "/closures/skin/nope", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleCreateClone(t *testing.T) {
	app := newApp(t, nil)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/clones", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, 5000)
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		rec.Code = resp.StatusCode
		_, err = io.Copy(rec.Body, resp.Body)
		require.NoError(t, err)
		return rec
	}

	t.Run("created", func(t *testing.T) {
		rec := post(`{"source":"` + fixtures.Costume + `","name":"zapgun","kind":"Weapon"}`)
		assert.Equal(t, fiber.StatusCreated, rec.Code)

		var report clone.Report
		decode(t, rec.Body, &report)
		assert.Equal(t, clone.KindWeapon, report.Kind)
		assert.Equal(t, 9, report.RecordsEmitted)
		assert.True(t, report.BaseArchiveFound)
	})
	t.Run("dlc", func(t *testing.T) {
		rec := post(`{"source":"` + fixtures.CostumeDLC + `","name":"x","kind":"weapon"}`)
		assert.Equal(t, fiber.StatusUnprocessableEntity, rec.Code)
	})
	t.Run("missing source", func(t *testing.T) {
		rec := post(`{"source":"nope","name":"x","kind":"costume"}`)
		assert.Equal(t, fiber.StatusNotFound, rec.Code)
	})
	t.Run("unknown kind", func(t *testing.T) {
		rec := post(`{"source":"` + fixtures.Costume + `","name":"x","kind":"hat"}`)
		assert.Equal(t, fiber.StatusBadRequest, rec.Code)
	})
	t.Run("empty name", func(t *testing.T) {
		rec := post(`{"source":"` + fixtures.Costume + `","name":"","kind":"weapon"}`)
		assert.Equal(t, fiber.StatusBadRequest, rec.Code)
	})
	t.Run("bad body", func(t *testing.T) {
		rec := post(`{`)
		assert.Equal(t, fiber.StatusBadRequest, rec.Code)
	})
}

func TestHandleCreateClone_StaysUnderOutputRoot(t *testing.T) {
	app, afs := newAppFs(t, nil)

	post := func(body string) int {
		req := httptest.NewRequest("POST", "/clones", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, 5000)
		require.NoError(t, err)
		return resp.StatusCode
	}

	t.Run("output ignored", func(t *testing.T) {
		for name, output := range map[string]string{"abs": "/etc/evil", "rel": "../../escaped"} {
			code := post(`{"source":"` + fixtures.Costume + `","name":"` + name + `","kind":"weapon","output":"` + output + `"}`)
			assert.Equal(t, fiber.StatusCreated, code)

			ok, err := afero.Exists(afs, filepath.Join("out", name, "weapons.xtbl"))
			require.NoError(t, err)
			assert.True(t, ok, name)
		}
		for _, path := range []string{"/etc/evil/weapons.xtbl", "../escaped/weapons.xtbl", "escaped/weapons.xtbl"} {
			ok, err := afero.Exists(afs, path)
			require.NoError(t, err)
			assert.False(t, ok, path)
		}
	})

	t.Run("name with path elements", func(t *testing.T) {
		for _, name := range []string{"../escaped", "..", "mods/zapgun", `mods\\zapgun`, "/etc/evil"} {
			code := post(`{"source":"` + fixtures.Costume + `","name":"` + name + `","kind":"weapon"}`)
			assert.Equal(t, fiber.StatusBadRequest, code, name)
		}
		for _, path := range []string{"escaped", "out/../escaped", "/etc/evil", "out/mods"} {
			ok, err := afero.Exists(afs, path)
			require.NoError(t, err)
			assert.False(t, ok, path)
		}
	})
}

func TestHandleListClones(t *testing.T) {
	resp, err := newApp(t, nil).Test(httptest.NewRequest("GET", "/clones", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	ledger := new(mockLedger)
	ledger.On("List", mock.Anything, 5).Return([]history.CloneRun{{RunID: "r1", Status: history.StatusCompleted}}, nil)

	resp, err = newApp(t, ledger).Test(httptest.NewRequest("GET", "/clones?limit=5", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var runs []history.CloneRun
	decode(t, resp.Body, &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, "r1", runs[0].RunID)
	ledger.AssertExpectations(t)
}

func TestHandleReloadDataset(t *testing.T) {
	app := newApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/dataset/reload", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp.Body, &body)
	assert.Equal(t, "reloaded", body["status"])
	assert.EqualValues(t, 2, body["languages"])
}

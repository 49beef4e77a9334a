package inspect_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-injector/framework/injector"
	"github.com/km-arc/go-injector/framework/inspect"
)

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return rr, body
}

func TestSummary(t *testing.T) {
	root := injector.New()
	child := root.CreateChildInjector()
	child.Map("greeting").ToValue("hi")

	rr, body := get(t, inspect.New(child, nil), "/injector")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Cache-Control"), "no-cache")

	data := body["data"].(map[string]any)
	assert.Equal(t, child.ID(), data["id"])
	assert.Equal(t, root.ID(), data["parent"])
	assert.Equal(t, float64(1), data["depth"])
	// self-mapping plus greeting
	assert.Equal(t, float64(2), data["bindings"])
}

func TestSummary_RootHasNoParent(t *testing.T) {
	_, body := get(t, inspect.New(injector.New(), nil), "/injector")
	data := body["data"].(map[string]any)
	assert.NotContains(t, data, "parent")
	assert.Equal(t, float64(0), data["depth"])
}

func TestBindings_ListsLocalRulesInOrder(t *testing.T) {
	inj := injector.New()
	inj.Map("db", "primary").ToSingleton(func() any { return "conn" })
	inj.Map("db").ToType(func() any { return "conn" })
	inj.Map("cfg").ToValue(1)

	_, body := get(t, inspect.New(inj, nil), "/injector/bindings")
	list := body["data"].([]any)
	require.Len(t, list, 4)

	var got []string
	for _, item := range list {
		b := item.(map[string]any)
		got = append(got, b["type"].(string)+"/"+b["kind"].(string))
	}
	assert.Equal(t, []string{"cfg/value", "db/type", "db/singleton", "injector/value"}, got)

	named := list[2].(map[string]any)
	assert.Equal(t, "primary", named["name"])
	assert.Equal(t, true, named["named"])
	assert.NotContains(t, named, "built")
}

func TestBinding_ReportsOwner(t *testing.T) {
	root := injector.New()
	child := root.CreateChildInjector()
	root.Map("db").ToSingleton(func() any { return "conn" })
	root.MustGetInstance("db")

	rr, body := get(t, inspect.New(child, nil), "/injector/bindings/db")
	require.Equal(t, http.StatusOK, rr.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, root.ID(), data["owner"])
	assert.Equal(t, false, data["local"])
	assert.Equal(t, "singleton", data["kind"])
	assert.Equal(t, true, data["built"])
}

func TestBinding_NameQuery(t *testing.T) {
	inj := injector.New()
	inj.Map("someValue", "").ToValue("empty")

	rr, _ := get(t, inspect.New(inj, nil), "/injector/bindings/someValue?name=")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, body := get(t, inspect.New(inj, nil), "/injector/bindings/someValue")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, `Cannot return instance "someValue" because no mapping has been found`, body["message"])
}

func TestBinding_NamedMissMessage(t *testing.T) {
	rr, body := get(t, inspect.New(injector.New(), nil), "/injector/bindings/db?name=replica")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, `Cannot return instance "db by name replica" because no mapping has been found`, body["message"])
}

func TestChain(t *testing.T) {
	root := injector.New()
	mid := root.CreateChildInjector()
	leaf := mid.CreateChildInjector()

	_, body := get(t, inspect.New(leaf, nil), "/injector/chain")
	list := body["data"].([]any)
	require.Len(t, list, 3)

	var ids []string
	for _, item := range list {
		ids = append(ids, item.(map[string]any)["id"].(string))
	}
	assert.Equal(t, []string{leaf.ID(), mid.ID(), root.ID()}, ids)
}

func TestInspect_DoesNotBuildSingletons(t *testing.T) {
	inj := injector.New()
	built := false
	inj.Map("db").ToSingleton(func() any { built = true; return "conn" })

	h := inspect.New(inj, nil)
	get(t, h, "/injector/bindings")
	get(t, h, "/injector/bindings/db")

	assert.False(t, built)
}

package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Haval-Sadun/mealmaster-m/internal/api"
	"github.com/Haval-Sadun/mealmaster-m/internal/logger"
	"github.com/Haval-Sadun/mealmaster-m/internal/router"
	"github.com/Haval-Sadun/mealmaster-m/internal/service"
	"github.com/Haval-Sadun/mealmaster-m/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	log := logger.NewNop()

	recipes := service.NewRecipeService(db)
	images := service.NewImageService(db, log)
	plans := service.NewMealPlanService(db)

	engine := router.SetupRouter(
		log,
		api.NewRecipeHandler(recipes, images),
		api.NewIngredientHandler(recipes),
		api.NewImageHandler(images),
		api.NewMealPlanHandler(plans),
		nil,
	)
	return engine, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// successData asserts the success envelope and returns its data element.
func successData(t *testing.T, w *httptest.ResponseRecorder) interface{} {
	t.Helper()
	body := decodeBody(t, w)
	require.Equal(t, "success", body["status"], w.Body.String())
	require.Contains(t, body, "data")
	return body["data"]
}

// errorEnvelope asserts the error envelope shape and returns it.
func errorEnvelope(t *testing.T, w *httptest.ResponseRecorder, wantCode int) map[string]interface{} {
	t.Helper()
	require.Equal(t, wantCode, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, float64(wantCode), body["code"])
	return body
}

func recipePayload(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":             name,
		"description":      "a test dish",
		"instructions":     "combine and cook",
		"diet_type":        2,
		"meal_type":        3,
		"meal_category":    2,
		"preparation_time": 10,
		"cooking_time":     30,
		"difficulty_level": 1,
		"ingredients": []map[string]interface{}{
			{"name": "Onion", "category": "Vegetables", "quantity": 2, "measurement_unit": 5},
		},
	}
}

func createRecipe(t *testing.T, engine *gin.Engine, name string) uint {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes", recipePayload(name))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := successData(t, w).(map[string]interface{})
	return uint(data["id"].(float64))
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestHealth(t *testing.T) {
	engine, _ := newTestServer(t)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
}

func TestListEnums(t *testing.T) {
	engine, _ := newTestServer(t)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/enums", nil))
	require.Equal(t, http.StatusOK, w.Code)
	data := successData(t, w).(map[string]interface{})
	for _, key := range []string{"diet_type", "meal_type", "meal_category", "difficulty_level", "measurement_unit"} {
		assert.Contains(t, data, key)
	}
	mealTypes := data["meal_type"].([]interface{})
	assert.Len(t, mealTypes, 4)
}

func TestCreateAndGetRecipe(t *testing.T) {
	engine, _ := newTestServer(t)
	id := createRecipe(t, engine, "Biryani")

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := successData(t, w).(map[string]interface{})
	assert.Equal(t, "Biryani", data["name"])
	assert.Equal(t, float64(1), data["number_of_servings"])
	ingredients := data["ingredients"].([]interface{})
	require.Len(t, ingredients, 1)
	first := ingredients[0].(map[string]interface{})
	assert.Equal(t, "Onion", first["name"])
	assert.Equal(t, float64(id), first["recipe_id"])
	assert.Equal(t, []interface{}{}, data["images"])
}

func TestCreateRecipeWithInlineImage(t *testing.T) {
	engine, _ := newTestServer(t)

	payload := recipePayload("Pancakes")
	payload["images"] = []map[string]interface{}{
		{"filename": "stack.png", "content_type": "image/png", "data": pngBytes(t, 600, 600)},
	}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := successData(t, w).(map[string]interface{})
	images := data["images"].([]interface{})
	require.Len(t, images, 1)
	img := images[0].(map[string]interface{})
	assert.Equal(t, "stack.png", img["filename"])
	require.NotNil(t, img["url"])
	require.NotNil(t, img["thumbnail_url"])
	assert.Contains(t, img["url"].(string), "/api/v1/images/")
	assert.Contains(t, img["thumbnail_url"].(string), "/thumb")
}

func TestCreateRecipeValidation(t *testing.T) {
	engine, _ := newTestServer(t)

	payload := recipePayload("Bad")
	payload["diet_type"] = 99
	w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes", payload)
	body := errorEnvelope(t, w, http.StatusBadRequest)
	assert.Equal(t, "diet_type out of range", body["message"])

	payload = recipePayload("Bad")
	delete(payload, "name")
	w = doJSON(t, engine, http.MethodPost, "/api/v1/recipes", payload)
	errorEnvelope(t, w, http.StatusBadRequest)
}

func TestGetRecipeNotFound(t *testing.T) {
	engine, _ := newTestServer(t)
	w := doJSON(t, engine, http.MethodGet, "/api/v1/recipes/999", nil)
	errorEnvelope(t, w, http.StatusNotFound)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/recipes/abc", nil)
	errorEnvelope(t, w, http.StatusBadRequest)
}

func TestUpdateAndDeleteRecipe(t *testing.T) {
	engine, _ := newTestServer(t)
	id := createRecipe(t, engine, "Original")

	payload := recipePayload("Renamed")
	payload["number_of_servings"] = 6
	w := doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/recipes/%d", id), payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := successData(t, w).(map[string]interface{})
	assert.Equal(t, "Renamed", data["name"])
	assert.Equal(t, float64(6), data["number_of_servings"])
	// The update endpoint never touches nested rows.
	assert.Len(t, data["ingredients"].([]interface{}), 1)

	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/v1/recipes/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", id), nil)
	errorEnvelope(t, w, http.StatusNotFound)
}

func TestListRecipesPagination(t *testing.T) {
	engine, _ := newTestServer(t)
	for i := 1; i <= 12; i++ {
		createRecipe(t, engine, fmt.Sprintf("Recipe %02d", i))
	}

	w := doJSON(t, engine, http.MethodGet, "/api/v1/recipes?page=1&page_size=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := successData(t, w).(map[string]interface{})
	assert.Equal(t, float64(12), data["total"])
	assert.Equal(t, float64(3), data["total_pages"])
	items := data["items"].([]interface{})
	require.Len(t, items, 5)
	assert.Equal(t, "Recipe 01", items[0].(map[string]interface{})["name"])

	w = doJSON(t, engine, http.MethodGet, "/api/v1/recipes?page=3&page_size=5", nil)
	data = successData(t, w).(map[string]interface{})
	items = data["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "Recipe 11", items[0].(map[string]interface{})["name"])

	// Past the last window: empty items, same totals.
	w = doJSON(t, engine, http.MethodGet, "/api/v1/recipes?page=4&page_size=5", nil)
	data = successData(t, w).(map[string]interface{})
	assert.Empty(t, data["items"])
	assert.Equal(t, float64(12), data["total"])

	w = doJSON(t, engine, http.MethodGet, "/api/v1/recipes?page=0&page_size=5", nil)
	errorEnvelope(t, w, http.StatusBadRequest)
}

func uploadImage(t *testing.T, engine *gin.Engine, recipeID uint, filename string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%d/images", recipeID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestUploadAndRetrieveImage(t *testing.T) {
	engine, _ := newTestServer(t)
	recipeID := createRecipe(t, engine, "Photogenic")

	raw := pngBytes(t, 800, 500)
	w := uploadImage(t, engine, recipeID, "dish.png", raw)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := successData(t, w).(map[string]interface{})
	imgID := uint(data["id"].(float64))
	require.NotNil(t, data["url"])
	require.NotNil(t, data["thumbnail_url"])

	// Raw round-trips byte for byte.
	get := httptest.NewRecorder()
	engine.ServeHTTP(get, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/images/%d/raw", imgID), nil))
	require.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, raw, get.Body.Bytes())

	// Thumbnail decodes as a JPEG inside the 400 box.
	get = httptest.NewRecorder()
	engine.ServeHTTP(get, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/images/%d/thumb", imgID), nil))
	require.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, "image/jpeg", get.Header().Get("Content-Type"))
	thumb, _, err := image.Decode(bytes.NewReader(get.Body.Bytes()))
	require.NoError(t, err)
	assert.LessOrEqual(t, thumb.Bounds().Dx(), 400)
	assert.LessOrEqual(t, thumb.Bounds().Dy(), 400)
}

func TestUploadOversizeImageRejected(t *testing.T) {
	engine, _ := newTestServer(t)
	recipeID := createRecipe(t, engine, "Bloated")

	w := uploadImage(t, engine, recipeID, "huge.bin", make([]byte, service.MaxUploadBytes+1))
	errorEnvelope(t, w, http.StatusBadRequest)
}

func TestUploadUndecodableImageDegrades(t *testing.T) {
	engine, _ := newTestServer(t)
	recipeID := createRecipe(t, engine, "Degraded")

	w := uploadImage(t, engine, recipeID, "noise.bin", []byte("definitely not an image"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := successData(t, w).(map[string]interface{})
	imgID := uint(data["id"].(float64))
	require.NotNil(t, data["url"])
	assert.Nil(t, data["thumbnail_url"])

	get := httptest.NewRecorder()
	engine.ServeHTTP(get, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/images/%d/thumb", imgID), nil))
	errorEnvelope(t, get, http.StatusNotFound)
}

func TestImageNotFound(t *testing.T) {
	engine, _ := newTestServer(t)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/images/404/raw", nil))
	errorEnvelope(t, w, http.StatusNotFound)
}

func TestIngredientEndpoints(t *testing.T) {
	engine, _ := newTestServer(t)
	recipeID := createRecipe(t, engine, "Salad")

	w := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/recipes/%d/ingredients", recipeID), map[string]interface{}{
		"name": "Cucumber", "category": "Vegetables", "quantity": 1, "measurement_unit": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := successData(t, w).(map[string]interface{})
	ingID := uint(created["id"].(float64))

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/ingredients?recipe_id=%d", recipeID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := successData(t, w).([]interface{})
	assert.Len(t, listed, 2)

	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/ingredients/%d", ingID), map[string]interface{}{
		"name": "Pickled cucumber", "category": "Vegetables", "quantity": 3, "measurement_unit": 5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := successData(t, w).(map[string]interface{})
	assert.Equal(t, "Pickled cucumber", updated["name"])

	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/ingredients/%d", ingID), map[string]interface{}{
		"name": "x", "quantity": 1, "measurement_unit": 42,
	})
	errorEnvelope(t, w, http.StatusBadRequest)

	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/v1/ingredients/%d", ingID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/ingredients/%d", ingID), nil)
	errorEnvelope(t, w, http.StatusNotFound)
}

func TestMealPlanFlow(t *testing.T) {
	engine, _ := newTestServer(t)
	recipeID := createRecipe(t, engine, "Stew")

	// No plan yet.
	w := doJSON(t, engine, http.MethodGet, "/api/v1/mealplans/active", nil)
	errorEnvelope(t, w, http.StatusNotFound)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/mealplans", map[string]interface{}{
		"start_date": "2026-09-01",
		"end_date":   "2026-09-07",
		"entries": []map[string]interface{}{
			{"recipe_id": recipeID, "date": "2026-09-01", "meal_type": 3, "number_of_people": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	plan := successData(t, w).(map[string]interface{})
	planID := uint(plan["id"].(float64))
	assert.Equal(t, true, plan["active"])
	assert.Equal(t, "2026-09-01", plan["start_date"])
	entries := plan["entries"].([]interface{})
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-09-01", entries[0].(map[string]interface{})["date"])

	w = doJSON(t, engine, http.MethodGet, "/api/v1/mealplans/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	active := successData(t, w).(map[string]interface{})
	assert.Equal(t, float64(planID), active["id"])

	// Append an entry while active.
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/mealplans/%d/entries", planID), map[string]interface{}{
		"recipe_id": recipeID, "date": "2026-09-02", "meal_type": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entry := successData(t, w).(map[string]interface{})
	assert.Equal(t, float64(1), entry["number_of_people"])
	entryID := uint(entry["id"].(float64))

	// Unknown recipe in an entry.
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/mealplans/%d/entries", planID), map[string]interface{}{
		"recipe_id": recipeID + 99, "date": "2026-09-03", "meal_type": 2,
	})
	errorEnvelope(t, w, http.StatusBadRequest)

	// Deactivate, then further appends conflict.
	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/mealplans/%d", planID), map[string]interface{}{
		"start_date": "2026-09-01", "end_date": "2026-09-07", "active": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/mealplans/%d/entries", planID), map[string]interface{}{
		"recipe_id": recipeID, "date": "2026-09-04", "meal_type": 1,
	})
	errorEnvelope(t, w, http.StatusConflict)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/mealplans/active", nil)
	errorEnvelope(t, w, http.StatusNotFound)

	// Entry endpoints.
	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/entries/%d", entryID), map[string]interface{}{
		"recipe_id": recipeID, "date": "2026-09-05", "meal_type": 4, "number_of_people": 3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := successData(t, w).(map[string]interface{})
	assert.Equal(t, "2026-09-05", updated["date"])
	assert.Equal(t, float64(3), updated["number_of_people"])

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/entries/%d", entryID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Cascade delete.
	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/v1/mealplans/%d", planID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/entries/%d", entryID), nil)
	errorEnvelope(t, w, http.StatusNotFound)
}

func TestMealPlanDateValidation(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/mealplans", map[string]interface{}{
		"start_date": "2026-09-07", "end_date": "2026-09-01",
	})
	body := errorEnvelope(t, w, http.StatusBadRequest)
	assert.Equal(t, "end_date before start_date", body["message"])

	w = doJSON(t, engine, http.MethodPost, "/api/v1/mealplans", map[string]interface{}{
		"start_date": "01/09/2026", "end_date": "2026-09-07",
	})
	errorEnvelope(t, w, http.StatusBadRequest)
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Haval-Sadun/mealmaster-m/internal/models"
	"github.com/Haval-Sadun/mealmaster-m/internal/service"
	"github.com/Haval-Sadun/mealmaster-m/internal/types"
)

// MealPlanHandler exposes the MealPlan aggregate and its entries.
type MealPlanHandler struct {
	plans *service.MealPlanService
}

// NewMealPlanHandler creates a new meal plan handler.
func NewMealPlanHandler(plans *service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{plans: plans}
}

// RegisterRoutes registers the meal plan and entry routes.
func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/mealplans")
	{
		plans.POST("", h.CreateMealPlan)
		plans.GET("", h.ListMealPlans)
		plans.GET("/active", h.GetActiveMealPlan)
		plans.GET("/:id", h.GetMealPlan)
		plans.PUT("/:id", h.UpdateMealPlan)
		plans.DELETE("/:id", h.DeleteMealPlan)
		plans.POST("/:id/entries", h.AddEntry)
		plans.GET("/:id/entries", h.ListEntries)
	}
	entries := router.Group("/entries")
	{
		entries.GET("/:id", h.GetEntry)
		entries.PUT("/:id", h.UpdateEntry)
	}
}

const dateLayout = "2006-01-02"

// EntryRequest is the payload for creating or replacing a plan entry.
type EntryRequest struct {
	RecipeID       uint   `json:"recipe_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	MealType       int    `json:"meal_type" binding:"required"`
	NumberOfPeople *uint  `json:"number_of_people"`
}

func (r *EntryRequest) toModel(c *gin.Context) (*models.MealPlanEntry, bool) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD", r.Date)
		return nil, false
	}
	if !models.MealType(r.MealType).Valid() {
		respondError(c, http.StatusBadRequest, "meal_type out of range", nil)
		return nil, false
	}
	people := uint(1)
	if r.NumberOfPeople != nil {
		if *r.NumberOfPeople == 0 {
			respondError(c, http.StatusBadRequest, "number_of_people must be positive", nil)
			return nil, false
		}
		people = *r.NumberOfPeople
	}
	return &models.MealPlanEntry{
		RecipeID:       r.RecipeID,
		Date:           date,
		MealType:       models.MealType(r.MealType),
		NumberOfPeople: people,
	}, true
}

// MealPlanRequest is the payload for creating a plan (with optional initial
// entries) or replacing its scalar fields.
type MealPlanRequest struct {
	StartDate string         `json:"start_date" binding:"required"`
	EndDate   string         `json:"end_date" binding:"required"`
	Active    *bool          `json:"active"`
	Entries   []EntryRequest `json:"entries"`
}

func (r *MealPlanRequest) dates(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid start_date, want YYYY-MM-DD", r.StartDate)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid end_date, want YYYY-MM-DD", r.EndDate)
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		respondError(c, http.StatusBadRequest, "end_date before start_date", nil)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// CreateMealPlan persists the plan together with any initial entries.
func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	var req MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	start, end, ok := req.dates(c)
	if !ok {
		return
	}

	plan := models.MealPlan{StartDate: start, EndDate: end, Active: true}
	if req.Active != nil {
		plan.Active = *req.Active
	}
	for i := range req.Entries {
		entry, ok := req.Entries[i].toModel(c)
		if !ok {
			return
		}
		plan.Entries = append(plan.Entries, *entry)
	}

	created, err := h.plans.CreateMealPlan(c.Request.Context(), &plan)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, types.NewMealPlanView(created))
}

// GetMealPlan returns the full read view of one plan.
func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	plan, err := h.plans.GetMealPlan(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, types.NewMealPlanView(plan))
}

// GetActiveMealPlan returns the first active plan.
func (h *MealPlanHandler) GetActiveMealPlan(c *gin.Context) {
	plan, err := h.plans.GetActiveMealPlan(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, types.NewMealPlanView(plan))
}

// ListMealPlans lists every plan with entries.
func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	plans, err := h.plans.ListMealPlans(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]types.MealPlanView, 0, len(plans))
	for i := range plans {
		views = append(views, types.NewMealPlanView(&plans[i]))
	}
	respondSuccess(c, http.StatusOK, views)
}

// UpdateMealPlan replaces the plan's scalar fields; entries are untouched.
func (h *MealPlanHandler) UpdateMealPlan(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	start, end, ok := req.dates(c)
	if !ok {
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	plan, err := h.plans.UpdateMealPlan(c.Request.Context(), id, service.MealPlanUpdate{
		StartDate: start,
		EndDate:   end,
		Active:    active,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, types.NewMealPlanView(plan))
}

// DeleteMealPlan cascades to the plan's entries.
func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.plans.DeleteMealPlan(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// AddEntry appends an entry to an active plan.
func (h *MealPlanHandler) AddEntry(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	entry, ok := req.toModel(c)
	if !ok {
		return
	}

	created, err := h.plans.AddEntry(c.Request.Context(), id, entry)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, types.NewMealPlanEntryView(created))
}

// ListEntries lists the entries of one plan.
func (h *MealPlanHandler) ListEntries(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	entries, err := h.plans.ListEntries(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]types.MealPlanEntryView, 0, len(entries))
	for i := range entries {
		views = append(views, types.NewMealPlanEntryView(&entries[i]))
	}
	respondSuccess(c, http.StatusOK, views)
}

// GetEntry retrieves one entry.
func (h *MealPlanHandler) GetEntry(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	entry, err := h.plans.GetEntry(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, types.NewMealPlanEntryView(entry))
}

// UpdateEntry replaces an entry's fields.
func (h *MealPlanHandler) UpdateEntry(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	entry, ok := req.toModel(c)
	if !ok {
		return
	}

	updated, err := h.plans.UpdateEntry(c.Request.Context(), id, service.EntryUpdate{
		RecipeID:       entry.RecipeID,
		Date:           entry.Date,
		MealType:       entry.MealType,
		NumberOfPeople: entry.NumberOfPeople,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, types.NewMealPlanEntryView(updated))
}

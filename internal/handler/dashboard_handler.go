package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"github.com/jengzang/health-insights-go/internal/models"
	"github.com/jengzang/health-insights-go/internal/service"
	"github.com/jengzang/health-insights-go/pkg/response"
)

// DashboardHandler handles the stateless fixture queries
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetOptions handles GET /api/v1/options
func (h *DashboardHandler) GetOptions(c *gin.Context) {
	response.Success(c, h.service.Options())
}

// ListDistricts handles GET /api/v1/districts
func (h *DashboardHandler) ListDistricts(c *gin.Context) {
	districts := h.service.Districts()
	response.Success(c, gin.H{
		"data":  districts,
		"count": len(districts),
	})
}

// GetDistrict handles GET /api/v1/districts/:name
func (h *DashboardHandler) GetDistrict(c *gin.Context) {
	d, err := h.service.District(c.Param("name"))
	if err != nil {
		notFoundOr500(c, "District not found", err)
		return
	}
	response.Success(c, d)
}

// LocateDistrict handles GET /api/v1/districts/locate?lat=&lng=
func (h *DashboardHandler) LocateDistrict(c *gin.Context) {
	var q models.PointQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	d, err := h.service.Locate(*q.Lat, *q.Lng)
	if err != nil {
		notFoundOr500(c, "No district at this location", err)
		return
	}
	response.Success(c, d)
}

// ListFacilities handles GET /api/v1/facilities
func (h *DashboardHandler) ListFacilities(c *gin.Context) {
	var f models.FacilityFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	facilities := h.service.Facilities(f)
	response.Success(c, gin.H{
		"data":  facilities,
		"count": len(facilities),
	})
}

// ListEligible handles GET /api/v1/screening/eligible
func (h *DashboardHandler) ListEligible(c *gin.Context) {
	var f models.EligibleFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	response.Success(c, h.service.Eligible(f))
}

// ListParticipation handles GET /api/v1/screening/participation
func (h *DashboardHandler) ListParticipation(c *gin.Context) {
	var f models.DistrictFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	rows := h.service.Participation(f.District)
	response.Success(c, gin.H{
		"data":  rows,
		"count": len(rows),
	})
}

// ListHotspots handles GET /api/v1/hotspots
func (h *DashboardHandler) ListHotspots(c *gin.Context) {
	var f models.HotspotFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	hotspots := h.service.Hotspots(f)
	response.Success(c, gin.H{
		"data":  hotspots,
		"count": len(hotspots),
	})
}

// GetHotspot handles GET /api/v1/hotspots/:id
func (h *DashboardHandler) GetHotspot(c *gin.Context) {
	hotspot, nearby, err := h.service.HotspotDetail(c.Param("id"))
	if err != nil {
		notFoundOr500(c, "Hotspot not found", err)
		return
	}
	response.Success(c, gin.H{
		"hotspot":    hotspot,
		"facilities": nearby,
	})
}

// GetDemographics handles GET /api/v1/demographics
func (h *DashboardHandler) GetDemographics(c *gin.Context) {
	var f models.DistrictFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	response.Success(c, h.service.Demographics(f.District))
}

// ListCampaigns handles GET /api/v1/campaigns
func (h *DashboardHandler) ListCampaigns(c *gin.Context) {
	var f models.DistrictFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	campaigns := h.service.Campaigns(f.District)
	response.Success(c, gin.H{
		"data":  campaigns,
		"count": len(campaigns),
	})
}

// GetHeatmap handles GET /api/v1/bmi/heatmap
func (h *DashboardHandler) GetHeatmap(c *gin.Context) {
	var f models.HeatmapFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	response.Success(c, h.service.Heatmap(f))
}

func notFoundOr500(c *gin.Context, message string, err error) {
	if eris.Is(err, service.ErrNotFound) {
		response.NotFound(c, message, err)
		return
	}
	response.InternalError(c, "Internal server error", err)
}

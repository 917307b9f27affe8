// file: controllers/event_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"FrostCTF/database"
	"FrostCTF/dto"
	"FrostCTF/models"
	"FrostCTF/utils"
)

// EventController 赛事相关接口；status 不落库，按当前时间实时计算
type EventController struct{}

func NewEventController() *EventController {
	return &EventController{}
}

type eventItemResp struct {
	ID         uint32 `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	CoverImage string `json:"cover_image,omitempty"`
	EventType  string `json:"event_type"`
	HostedBy   string `json:"hosted_by,omitempty"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Status     string `json:"status"`
}

func mapEventItem(e models.Event, now time.Time) eventItemResp {
	return eventItemResp{
		ID:         e.ID,
		Slug:       e.Slug,
		Title:      e.Title,
		Subtitle:   e.Subtitle,
		CoverImage: e.CoverImage,
		EventType:  string(e.EventType),
		HostedBy:   e.HostedBy,
		StartTime:  e.StartTime.Format(time.RFC3339),
		EndTime:    e.EndTime.Format(time.RFC3339),
		Status:     string(e.StatusAt(now)),
	}
}

// ListEvents —— 所有用户可见；支持按计算出的状态过滤
func (ec *EventController) ListEvents(c *gin.Context) {
	var events []models.Event
	if err := database.DB.Order("start_time DESC").Find(&events).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败")
		return
	}

	now := time.Now()
	wantStatus := c.Query("status") // upcoming/ongoing/ended，空表示全部
	items := make([]eventItemResp, 0, len(events))
	for _, e := range events {
		item := mapEventItem(e, now)
		if wantStatus != "" && item.Status != wantStatus {
			continue
		}
		items = append(items, item)
	}

	utils.Success(c, "success", gin.H{
		"total":  len(items),
		"events": items,
	})
}

// GetEventDetail —— 按 slug 查询赛事详情，带赞助商列表
func (ec *EventController) GetEventDetail(c *gin.Context) {
	slug := c.Param("slug")

	var event models.Event
	if err := database.DB.Where("slug = ?", slug).First(&event).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "赛事不存在")
		return
	}

	var sponsors []models.EventSponsor
	database.DB.Where("event_id = ?", event.ID).Find(&sponsors)

	type sponsorResp struct {
		ID          uint32 `json:"id"`
		SponsorName string `json:"sponsor_name"`
		LogoURL     string `json:"logo_url,omitempty"`
		Link        string `json:"link,omitempty"`
	}
	sponsorItems := make([]sponsorResp, 0, len(sponsors))
	for _, s := range sponsors {
		sponsorItems = append(sponsorItems, sponsorResp{
			ID:          s.ID,
			SponsorName: s.SponsorName,
			LogoURL:     s.LogoURL,
			Link:        s.Link,
		})
	}

	item := mapEventItem(event, time.Now())
	utils.Success(c, "success", gin.H{
		"event":       item,
		"description": event.Description,
		"sponsors":    sponsorItems,
	})
}

// --- 仅管理员可访问的接口 ---

// CreateEvent
func (ec *EventController) CreateEvent(c *gin.Context) {
	var req dto.UpsertEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}
	if !req.EndTime.After(req.StartTime) {
		utils.Fail(c, http.StatusBadRequest, 1002, "结束时间必须晚于开始时间")
		return
	}

	eventType := models.EventTypeSingle
	if req.EventType == string(models.EventTypeSeries) {
		eventType = models.EventTypeSeries
	}

	event := models.Event{
		Slug:        req.Slug,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		EventType:   eventType,
		HostedBy:    req.HostedBy,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "创建赛事失败: "+err.Error())
		return
	}
	utils.Success(c, "Event created successfully", gin.H{"id": event.ID})
}

// UpdateEvent
func (ec *EventController) UpdateEvent(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var event models.Event
	if err := database.DB.First(&event, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "赛事不存在")
		return
	}

	var req dto.UpsertEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}
	if !req.EndTime.After(req.StartTime) {
		utils.Fail(c, http.StatusBadRequest, 1002, "结束时间必须晚于开始时间")
		return
	}

	event.Slug = req.Slug
	event.Title = req.Title
	event.Subtitle = req.Subtitle
	event.Description = req.Description
	event.CoverImage = req.CoverImage
	if req.EventType == string(models.EventTypeSeries) {
		event.EventType = models.EventTypeSeries
	} else {
		event.EventType = models.EventTypeSingle
	}
	event.HostedBy = req.HostedBy
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime

	if err := database.DB.Save(&event).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "更新失败: "+err.Error())
		return
	}
	utils.Success(c, "Event updated successfully", nil)
}

// DeleteEvent —— 赛事下还挂着题目时不允许删除
func (ec *EventController) DeleteEvent(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var event models.Event
	if err := database.DB.First(&event, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "赛事不存在")
		return
	}

	var count int64
	database.DB.Model(&models.Challenge{}).Where("event_id = ?", event.ID).Count(&count)
	if count > 0 {
		utils.Fail(c, http.StatusBadRequest, 1006, "赛事下仍有题目，无法删除")
		return
	}

	database.DB.Where("event_id = ?", event.ID).Delete(&models.EventSponsor{})
	if err := database.DB.Delete(&event).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "删除失败: "+err.Error())
		return
	}
	utils.Success(c, "Event deleted successfully", nil)
}

// AddEventSponsor
func (ec *EventController) AddEventSponsor(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var event models.Event
	if err := database.DB.First(&event, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "赛事不存在")
		return
	}

	var req struct {
		SponsorName string `json:"sponsor_name" binding:"required"`
		LogoURL     string `json:"logo_url"`
		Link        string `json:"link"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	sponsor := models.EventSponsor{
		EventID:     event.ID,
		SponsorName: req.SponsorName,
		LogoURL:     req.LogoURL,
		Link:        req.Link,
	}
	if err := database.DB.Create(&sponsor).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "添加赞助商失败: "+err.Error())
		return
	}
	utils.Success(c, "Sponsor added successfully", gin.H{"id": sponsor.ID})
}

// DeleteEventSponsor
func (ec *EventController) DeleteEventSponsor(c *gin.Context) {
	sponsorID, _ := strconv.Atoi(c.Param("sponsorId"))

	result := database.DB.Delete(&models.EventSponsor{}, sponsorID)
	if result.Error != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "删除失败: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Fail(c, http.StatusNotFound, 4004, "赞助商不存在")
		return
	}
	utils.Success(c, "Sponsor deleted successfully", nil)
}

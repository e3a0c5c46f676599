package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/services"
	"github.com/SabinGhost19/RoomBooking/utils"
)

type RoomCreateReq struct {
	Name        string             `json:"name" binding:"required,max=100"`
	Description *string            `json:"description"`
	Capacity    int                `json:"capacity" binding:"required,gt=0"`
	Price       float64            `json:"price" binding:"gte=0"`
	Amenities   []string           `json:"amenities"`
	Image       *string            `json:"image" binding:"omitempty,max=500"`
	SvgID       *string            `json:"svg_id" binding:"omitempty,max=50"`
	Coordinates map[string]float64 `json:"coordinates"`
	IsAvailable *bool              `json:"is_available"`
}

type RoomUpdateReq struct {
	Name        *string             `json:"name" binding:"omitempty,max=100"`
	Description *string             `json:"description"`
	Capacity    *int                `json:"capacity" binding:"omitempty,gt=0"`
	Price       *float64            `json:"price" binding:"omitempty,gte=0"`
	Amenities   *[]string           `json:"amenities"`
	Image       *string             `json:"image" binding:"omitempty,max=500"`
	SvgID       *string             `json:"svg_id" binding:"omitempty,max=50"`
	Coordinates *map[string]float64 `json:"coordinates"`
	IsAvailable *bool               `json:"is_available"`
}

// applyRoomFilters applies the shared list/count filter set from the query
// string.
func applyRoomFilters(query *gorm.DB, c *gin.Context) *gorm.DB {
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if v := c.Query("min_capacity"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			query = query.Where("capacity >= ?", n)
		}
	}
	if v := c.Query("max_capacity"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			query = query.Where("capacity <= ?", n)
		}
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			query = query.Where("price >= ?", f)
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			query = query.Where("price <= ?", f)
		}
	}
	if v := c.Query("is_available"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			query = query.Where("is_available = ?", b)
		}
	}
	return query
}

// ListRooms is public so the booking page can render without a session.
func ListRooms(c *gin.Context) {
	query := applyRoomFilters(config.DB.Model(&models.Room{}), c)

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var total int64
	query.Count(&total)

	sortBy := c.DefaultQuery("sort_by", "name") // name | capacity | price | id
	sortOrder := strings.ToLower(c.DefaultQuery("sort_order", "asc"))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}
	switch sortBy {
	case "name", "capacity", "price", "id":
	default:
		sortBy = "name"
	}

	rooms := make([]models.Room, 0)
	if err := query.Offset(skip).Limit(limit).Order(sortBy + " " + sortOrder).Find(&rooms).Error; err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  rooms,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func CountRooms(c *gin.Context) {
	query := applyRoomFilters(config.DB.Model(&models.Room{}), c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total})
}

func GetRoomDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid room id"))
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrNotFound("room not found"))
			return
		}
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": room})
}

func CreateRoom(c *gin.Context) {
	var req RoomCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var count int64
	config.DB.Model(&models.Room{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		respondError(c, services.ErrConflict("room with this name already exists"))
		return
	}

	room := models.Room{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Image:       req.Image,
		SvgID:       req.SvgID,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	if req.Amenities != nil {
		room.Amenities = mustJSON(req.Amenities)
	}
	if req.Coordinates != nil {
		room.Coordinates = mustJSON(req.Coordinates)
	}

	if err := config.DB.Create(&room).Error; err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "room created successfully",
		"data":    room,
	})
}

func UpdateRoom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid room id"))
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrNotFound("room not found"))
			return
		}
		respondError(c, services.ErrInternal(err))
		return
	}

	var req RoomUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if req.Name != nil && *req.Name != room.Name {
		var count int64
		config.DB.Model(&models.Room{}).Where("name = ? AND id <> ?", *req.Name, room.ID).Count(&count)
		if count > 0 {
			respondError(c, services.ErrConflict("room with this name already exists"))
			return
		}
		room.Name = *req.Name
	}
	if req.Description != nil {
		room.Description = req.Description
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Amenities != nil {
		room.Amenities = mustJSON(*req.Amenities)
	}
	if req.Image != nil {
		room.Image = req.Image
	}
	if req.SvgID != nil {
		room.SvgID = req.SvgID
	}
	if req.Coordinates != nil {
		room.Coordinates = mustJSON(*req.Coordinates)
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := config.DB.Save(&room).Error; err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "room updated successfully",
		"data":    room,
	})
}

func DeleteRoom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid room id"))
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrNotFound("room not found"))
			return
		}
		respondError(c, services.ErrInternal(err))
		return
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM booking_invitations WHERE booking_id IN (SELECT id FROM bookings WHERE room_id = ?)", room.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM booking_participants WHERE booking_id IN (SELECT id FROM bookings WHERE room_id = ?)", room.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", room.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&room).Error
	})
	if txErr != nil {
		respondError(c, services.ErrInternal(txErr))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "room deleted successfully"})
}

// UploadRoomImage stores a room photo and points the room at its public URL.
func UploadRoomImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid room id"))
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrNotFound("room not found"))
			return
		}
		respondError(c, services.ErrInternal(err))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, services.ErrValidation("missing file"))
		return
	}
	if err := validateImage(fileHeader); err != nil {
		respondError(c, services.ErrValidation(err.Error()))
		return
	}

	url, err := utils.UploadRoomImage(fileHeader, room.ID)
	if err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	room.Image = &url
	if err := config.DB.Save(&room).Error; err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "image uploaded successfully",
		"data":    room,
	})
}

func validateImage(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > 5<<20 {
		return fmt.Errorf("image exceeds the 5MB limit")
	}

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	// sniff the first 512 bytes only
	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil {
		return err
	}

	contentType := http.DetectContentType(buffer)
	if !allowedTypes[contentType] {
		return fmt.Errorf("unsupported image type %s", contentType)
	}
	return nil
}

func mustJSON(v interface{}) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/savoria/savoria-api/initializers"
	"github.com/savoria/savoria-api/models"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// GetMenu returns the menu for the ordering page, ordered by category.
// Customers only see available items; the admin dashboard passes
// ?includeUnavailable=true to manage the full list.
func GetMenu(ctx *gin.Context) {
	var items []models.MenuItem

	query := initializers.DB.Order("category asc, name asc")

	if category := ctx.Query("category"); category != "" {
		if !models.ValidCategory(category) {
			respondWithError(ctx, http.StatusBadRequest, "Unknown menu category", nil)
			return
		}
		query = query.Where("category = ?", category)
	}

	if ctx.Query("includeUnavailable") != "true" {
		query = query.Where("available = ?", true)
	}

	if result := query.Find(&items); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch menu", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"menuItems": items})
}

func GetMenuItem(ctx *gin.Context) {
	itemId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menu item ID", err)
		return
	}

	var item models.MenuItem
	result := initializers.DB.First(&item, itemId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Menu item not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve menu item", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func CreateMenuItem(ctx *gin.Context) {
	var item models.MenuItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if !models.ValidCategory(item.Category) {
		respondWithError(ctx, http.StatusBadRequest, "Unknown menu category", nil)
		return
	}
	if item.Price.IsNegative() {
		respondWithError(ctx, http.StatusBadRequest, "Price must not be negative", nil)
		return
	}

	if err := initializers.DB.Create(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create menu item", err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func UpdateMenuItem(ctx *gin.Context) {
	itemId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menu item ID", err)
		return
	}

	var existing models.MenuItem
	if result := initializers.DB.First(&existing, itemId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Menu item not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve menu item", result.Error)
		}
		return
	}

	var updated models.MenuItem
	if err := ctx.ShouldBindJSON(&updated); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !models.ValidCategory(updated.Category) {
		respondWithError(ctx, http.StatusBadRequest, "Unknown menu category", nil)
		return
	}
	if updated.Price.IsNegative() {
		respondWithError(ctx, http.StatusBadRequest, "Price must not be negative", nil)
		return
	}

	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.Price = updated.Price
	existing.ImageURL = updated.ImageURL
	existing.Category = updated.Category
	existing.Available = updated.Available

	if err := initializers.DB.Save(&existing).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update menu item", err)
		return
	}

	ctx.JSON(http.StatusOK, existing)
}

func DeleteMenuItem(ctx *gin.Context) {
	itemId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menu item ID", err)
		return
	}

	if result := initializers.DB.Delete(&models.MenuItem{}, itemId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete menu item", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully."})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadMenuItemImage uploads a dish photo to S3 and stores the public
// URL on the menu item.
func UploadMenuItemImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No image uploaded", err)
		return
	}

	itemIdStr := ctx.PostForm("menuItemId")
	if itemIdStr == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing menuItemId", nil)
		return
	}
	itemId, err := strconv.Atoi(itemIdStr)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menuItemId", err)
		return
	}

	var item models.MenuItem
	if result := initializers.DB.First(&item, itemId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Menu item not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate menu item", result.Error)
		}
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}
	defer f.Close()

	// Unique key to prevent overwrites
	uniqueFilename := fmt.Sprintf("menu/%d-%s-%s", itemId, time.Now().Format("20060102150405"), file.Filename)

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(uniqueFilename),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	item.ImageURL = result.Location
	if err := initializers.DB.Save(&item).Error; err != nil {
		log.Printf("Image uploaded but not saved on menu item %d: %v", itemId, err)
		respondWithError(ctx, http.StatusInternalServerError, "Image uploaded but could not be saved", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded",
		"url":     result.Location,
	})
}

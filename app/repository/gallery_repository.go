package repository

import (
	"github.com/LenaVoss/lenavoss-web/app/models"
	"gorm.io/gorm"
)

// galleryRepository implements the GalleryRepository interface
type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new gallery repository instance
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(image *models.GalleryImage) error {
	return r.db.Create(image).Error
}

func (r *galleryRepository) GetByID(id uint) (*models.GalleryImage, error) {
	var image models.GalleryImage
	err := r.db.First(&image, id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *galleryRepository) Update(image *models.GalleryImage) error {
	return r.db.Save(image).Error
}

func (r *galleryRepository) Delete(id uint) error {
	return r.db.Delete(&models.GalleryImage{}, id).Error
}

func (r *galleryRepository) List() ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	err := r.db.Order("sort_order ASC, created_at DESC").Find(&images).Error
	return images, err
}

func (r *galleryRepository) ListPressKit() ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	err := r.db.Where("is_press_kit = ?", true).Order("sort_order ASC").Find(&images).Error
	return images, err
}

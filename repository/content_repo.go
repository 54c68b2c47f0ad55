package repository

import (
	"context"

	"bizdesk-backend/models"

	"gorm.io/gorm"
)

// The content repositories are deliberately uniform: list (optionally
// published-only), create, partial update, delete. Updates and deletes
// report whether a row was matched so callers can map false to not-found.

type BlogRepository interface {
	FindAll(ctx context.Context, publishedOnly bool, skip, limit int) ([]models.Blog, error)
	FindByID(ctx context.Context, id string) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	Create(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
}

type FAQRepository interface {
	FindAll(ctx context.Context, publishedOnly bool) ([]models.FAQ, error)
	Create(ctx context.Context, faq *models.FAQ) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type TestimonialRepository interface {
	FindAll(ctx context.Context, publishedOnly bool) ([]models.Testimonial, error)
	Create(ctx context.Context, testimonial *models.Testimonial) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PackageRepository interface {
	FindAll(ctx context.Context, publishedOnly bool) ([]models.ServicePackage, error)
	Create(ctx context.Context, pkg *models.ServicePackage) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type TemplateRepository interface {
	FindAll(ctx context.Context) ([]models.EmailTemplate, error)
	FindByType(ctx context.Context, templateType string) (*models.EmailTemplate, error)
	Create(ctx context.Context, template *models.EmailTemplate) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Upsert(ctx context.Context, updates map[string]interface{}) error
}

// --- blogs ---

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) FindAll(ctx context.Context, publishedOnly bool, skip, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	q := r.db.WithContext(ctx)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Blog{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *blogRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Blog{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *blogRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// --- faqs ---

type faqRepository struct {
	db *gorm.DB
}

func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) FindAll(ctx context.Context, publishedOnly bool) ([]models.FAQ, error) {
	var faqs []models.FAQ
	q := r.db.WithContext(ctx)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	err := q.Order("sort_order ASC").Find(&faqs).Error
	return faqs, err
}

func (r *faqRepository) Create(ctx context.Context, faq *models.FAQ) error {
	return r.db.WithContext(ctx).Create(faq).Error
}

func (r *faqRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.FAQ{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *faqRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.FAQ{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// --- testimonials ---

type testimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) FindAll(ctx context.Context, publishedOnly bool) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	q := r.db.WithContext(ctx)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	err := q.Order("created_at DESC").Find(&testimonials).Error
	return testimonials, err
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	return r.db.WithContext(ctx).Create(testimonial).Error
}

func (r *testimonialRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Testimonial{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *testimonialRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Testimonial{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// --- packages ---

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) FindAll(ctx context.Context, publishedOnly bool) ([]models.ServicePackage, error) {
	var packages []models.ServicePackage
	q := r.db.WithContext(ctx)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	err := q.Order("created_at DESC").Find(&packages).Error
	return packages, err
}

func (r *packageRepository) Create(ctx context.Context, pkg *models.ServicePackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *packageRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ServicePackage{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *packageRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.ServicePackage{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// --- email templates ---

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) FindAll(ctx context.Context) ([]models.EmailTemplate, error) {
	var templates []models.EmailTemplate
	err := r.db.WithContext(ctx).Order("template_type ASC").Find(&templates).Error
	return templates, err
}

func (r *templateRepository) FindByType(ctx context.Context, templateType string) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	if err := r.db.WithContext(ctx).First(&template, "template_type = ?", templateType).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) Create(ctx context.Context, template *models.EmailTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.EmailTemplate{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *templateRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.EmailTemplate{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// --- settings ---

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	if err := r.db.WithContext(ctx).First(&settings, "id = ?", models.SettingsID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert applies updates to the single settings row, creating it from the
// defaults first when missing. Existence is checked with a count rather
// than inferred from affected rows; MySQL reports rows changed, so saving
// unchanged values affects zero rows even when the row exists.
func (r *settingsRepository) Upsert(ctx context.Context, updates map[string]interface{}) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SiteSettings{}).
		Where("id = ?", models.SettingsID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		defaults := models.DefaultSettings()
		if err := r.db.WithContext(ctx).Create(&defaults).Error; err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Model(&models.SiteSettings{}).
		Where("id = ?", models.SettingsID).
		Updates(updates).Error
}

package controllers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"bizdesk-backend/models"
	"bizdesk-backend/repository"
	"bizdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentController is the admin side of the marketing content: blogs,
// FAQs, testimonials, packages, email templates, site settings and the
// analytics summary.
type ContentController struct {
	blogs        repository.BlogRepository
	faqs         repository.FAQRepository
	testimonials repository.TestimonialRepository
	packages     repository.PackageRepository
	templates    repository.TemplateRepository
	settings     repository.SettingsRepository
	analytics    repository.AnalyticsRepository
}

func NewContentController(
	blogs repository.BlogRepository,
	faqs repository.FAQRepository,
	testimonials repository.TestimonialRepository,
	packages repository.PackageRepository,
	templates repository.TemplateRepository,
	settings repository.SettingsRepository,
	analytics repository.AnalyticsRepository,
) *ContentController {
	return &ContentController{
		blogs:        blogs,
		faqs:         faqs,
		testimonials: testimonials,
		packages:     packages,
		templates:    templates,
		settings:     settings,
		analytics:    analytics,
	}
}

// --- blogs ---

type blogRequest struct {
	Title         string   `json:"title" binding:"required"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content" binding:"required"`
	Author        string   `json:"author"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featured_image"`
	Published     bool     `json:"published"`
}

// GET /api/admin/blogs lists every blog, drafts included.
func (ctl *ContentController) ListBlogs(c *gin.Context) {
	skip, limit := pagination(c, 50)
	blogs, err := ctl.blogs.FindAll(c.Request.Context(), false, skip, limit)
	if err != nil {
		log.Printf("list blogs: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, blogs)
}

// POST /api/admin/blogs
func (ctl *ContentController) CreateBlog(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "title and content are required")
		return
	}
	if req.Slug == "" {
		req.Slug = slugify(req.Title)
	}
	blog := &models.Blog{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Slug:          req.Slug,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		Author:        req.Author,
		Category:      req.Category,
		Tags:          toJSON(req.Tags),
		FeaturedImage: req.FeaturedImage,
		Published:     req.Published,
	}
	if err := ctl.blogs.Create(c.Request.Context(), blog); err != nil {
		log.Printf("create blog: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, blog)
}

// PUT /api/admin/blogs/:id
func (ctl *ContentController) UpdateBlog(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	delete(updates, "views")
	jsonifyFields(updates, "tags")
	found, err := ctl.blogs.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		log.Printf("update blog %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Blog not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Blog updated")
}

// DELETE /api/admin/blogs/:id
func (ctl *ContentController) DeleteBlog(c *gin.Context) {
	found, err := ctl.blogs.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("delete blog %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Blog not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Blog deleted")
}

// --- faqs ---

type faqRequest struct {
	Question  string `json:"question" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
	Category  string `json:"category"`
	Order     int    `json:"order"`
	Published *bool  `json:"published"`
}

// GET /api/admin/faqs
func (ctl *ContentController) ListFAQs(c *gin.Context) {
	faqs, err := ctl.faqs.FindAll(c.Request.Context(), false)
	if err != nil {
		log.Printf("list faqs: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, faqs)
}

// POST /api/admin/faqs
func (ctl *ContentController) CreateFAQ(c *gin.Context) {
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "question and answer are required")
		return
	}
	faq := &models.FAQ{
		ID:        uuid.NewString(),
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		Order:     req.Order,
		Published: req.Published == nil || *req.Published,
	}
	if err := ctl.faqs.Create(c.Request.Context(), faq); err != nil {
		log.Printf("create faq: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, faq)
}

// PUT /api/admin/faqs/:id
func (ctl *ContentController) UpdateFAQ(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	if order, present := updates["order"]; present {
		delete(updates, "order")
		updates["sort_order"] = order
	}
	found, err := ctl.faqs.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		log.Printf("update faq %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "FAQ not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "FAQ updated")
}

// DELETE /api/admin/faqs/:id
func (ctl *ContentController) DeleteFAQ(c *gin.Context) {
	found, err := ctl.faqs.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("delete faq %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "FAQ not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "FAQ deleted")
}

// --- testimonials ---

type testimonialRequest struct {
	Name        string `json:"name" binding:"required"`
	Company     string `json:"company"`
	Designation string `json:"designation"`
	Text        string `json:"text" binding:"required"`
	Rating      int    `json:"rating"`
	Image       string `json:"image"`
	Published   *bool  `json:"published"`
}

// GET /api/admin/testimonials
func (ctl *ContentController) ListTestimonials(c *gin.Context) {
	testimonials, err := ctl.testimonials.FindAll(c.Request.Context(), false)
	if err != nil {
		log.Printf("list testimonials: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, testimonials)
}

// POST /api/admin/testimonials
func (ctl *ContentController) CreateTestimonial(c *gin.Context) {
	var req testimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name and text are required")
		return
	}
	rating := req.Rating
	if rating < 1 || rating > 5 {
		rating = 5
	}
	testimonial := &models.Testimonial{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Company:     req.Company,
		Designation: req.Designation,
		Text:        req.Text,
		Rating:      rating,
		Image:       req.Image,
		Published:   req.Published == nil || *req.Published,
	}
	if err := ctl.testimonials.Create(c.Request.Context(), testimonial); err != nil {
		log.Printf("create testimonial: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, testimonial)
}

// PUT /api/admin/testimonials/:id
func (ctl *ContentController) UpdateTestimonial(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	found, err := ctl.testimonials.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		log.Printf("update testimonial %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Testimonial not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Testimonial updated")
}

// DELETE /api/admin/testimonials/:id
func (ctl *ContentController) DeleteTestimonial(c *gin.Context) {
	found, err := ctl.testimonials.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("delete testimonial %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Testimonial not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Testimonial deleted")
}

// --- packages ---

type packageRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Services    []string `json:"services"`
	Price       float64  `json:"price"`
	Duration    string   `json:"duration"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
	Published   *bool    `json:"published"`
}

// GET /api/admin/packages
func (ctl *ContentController) ListPackages(c *gin.Context) {
	packages, err := ctl.packages.FindAll(c.Request.Context(), false)
	if err != nil {
		log.Printf("list packages: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, packages)
}

// POST /api/admin/packages
func (ctl *ContentController) CreatePackage(c *gin.Context) {
	var req packageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name is required")
		return
	}
	pkg := &models.ServicePackage{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Services:    toJSON(req.Services),
		Price:       req.Price,
		Duration:    req.Duration,
		Features:    toJSON(req.Features),
		Popular:     req.Popular,
		Published:   req.Published == nil || *req.Published,
	}
	if err := ctl.packages.Create(c.Request.Context(), pkg); err != nil {
		log.Printf("create package: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, pkg)
}

// PUT /api/admin/packages/:id
func (ctl *ContentController) UpdatePackage(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	jsonifyFields(updates, "services", "features")
	found, err := ctl.packages.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		log.Printf("update package %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Package not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Package updated")
}

// DELETE /api/admin/packages/:id
func (ctl *ContentController) DeletePackage(c *gin.Context) {
	found, err := ctl.packages.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("delete package %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Package not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Package deleted")
}

// --- email templates ---

type templateRequest struct {
	Name         string   `json:"name" binding:"required"`
	Subject      string   `json:"subject" binding:"required"`
	HTMLContent  string   `json:"html_content" binding:"required"`
	TemplateType string   `json:"template_type" binding:"required"`
	Variables    []string `json:"variables"`
}

// GET /api/admin/templates
func (ctl *ContentController) ListTemplates(c *gin.Context) {
	templates, err := ctl.templates.FindAll(c.Request.Context())
	if err != nil {
		log.Printf("list templates: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, templates)
}

// POST /api/admin/templates
func (ctl *ContentController) CreateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name, subject, html_content and template_type are required")
		return
	}
	template := &models.EmailTemplate{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Subject:      req.Subject,
		HTMLContent:  req.HTMLContent,
		TemplateType: req.TemplateType,
		Variables:    toJSON(req.Variables),
	}
	if err := ctl.templates.Create(c.Request.Context(), template); err != nil {
		log.Printf("create template: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, template)
}

// GET /api/admin/templates/type/:template_type resolves the template the
// mail flow of that type would use, e.g. booking_confirmation.
func (ctl *ContentController) GetTemplateByType(c *gin.Context) {
	template, err := ctl.templates.FindByType(c.Request.Context(), c.Param("template_type"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Template not found")
			return
		}
		log.Printf("get template by type %s: %v", c.Param("template_type"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, template)
}

// PUT /api/admin/templates/:id
func (ctl *ContentController) UpdateTemplate(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	jsonifyFields(updates, "variables")
	found, err := ctl.templates.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		log.Printf("update template %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Template not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Template updated")
}

// DELETE /api/admin/templates/:id
func (ctl *ContentController) DeleteTemplate(c *gin.Context) {
	found, err := ctl.templates.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("delete template %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Template not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Template deleted")
}

// --- settings ---

// GET /api/admin/settings
func (ctl *ContentController) GetSettings(c *gin.Context) {
	settings, err := ctl.settings.Get(c.Request.Context())
	if err != nil {
		defaults := models.DefaultSettings()
		utils.JSONSuccess(c, http.StatusOK, defaults)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

// PUT /api/admin/settings
func (ctl *ContentController) UpdateSettings(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	jsonifyFields(updates, "social_links")
	if err := ctl.settings.Upsert(c.Request.Context(), updates); err != nil {
		log.Printf("update settings: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Settings updated")
}

// --- analytics ---

// GET /api/admin/analytics?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (ctl *ContentController) AnalyticsSummary(c *gin.Context) {
	var start, end *time.Time
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid start_date")
			return
		}
		start = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid end_date")
			return
		}
		// end_date is inclusive of the whole day
		t = t.Add(24*time.Hour - time.Second)
		end = &t
	}
	summary, err := ctl.analytics.Summary(c.Request.Context(), start, end)
	if err != nil {
		log.Printf("analytics summary: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// jsonifyFields re-marshals list/map update values so gorm writes them as
// JSON columns instead of failing on []interface{}.
func jsonifyFields(updates map[string]interface{}, keys ...string) {
	for _, key := range keys {
		if v, present := updates[key]; present {
			updates[key] = toJSON(v)
		}
	}
}

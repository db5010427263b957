package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pageSize is the fixed number of posts per listing page.
const pageSize = 8

type PostHandler struct {
	postUseCase usecase.PostUseCase
}

func NewPostHandler(postUseCase usecase.PostUseCase) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
	}
}

type CreatePostRequest struct {
	Title         string `json:"title" binding:"required,min=1,max=255"`
	Slug          string `json:"slug"`
	Content       string `json:"content" binding:"required"`
	FeaturedImage string `json:"featured_image"`
	Status        string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type UpdatePostRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=255"`
	Content       *string `json:"content"`
	FeaturedImage *string `json:"featured_image"`
	Status        *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type PostListResponse struct {
	Posts      []*entity.Post `json:"posts"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

// CreatePost godoc
// @Summary      Publish a post
// @Description  Create a post. The slug defaults to a slugified title and doubles as the post's public ID.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post data"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(usecase.CreatePostInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		AuthorID:      userID,
		Status:        entity.PostStatus(req.Status),
	})
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListPosts godoc
// @Summary      List active posts
// @Description  Returns active posts newest first, optionally filtered by a case-insensitive title search, in pages of 8.
// @Tags         posts
// @Produce      json
// @Param        search query string false "Title substring filter"
// @Param        page   query int    false "Page number, 1-based"
// @Param        author query string false "Only posts by this author"
// @Success      200  {object}  PostListResponse
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	search := c.Query("search")

	posts, err := h.postUseCase.ListPosts(persistent.PostFilters{
		AuthorID: c.Query("author"),
	})
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := make([]*entity.Post, 0, len(posts))
		for _, p := range posts {
			if strings.Contains(strings.ToLower(p.Title), needle) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}

	total := len(posts)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, PostListResponse{
		Posts:      posts[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	})
}

// GetPost godoc
// @Summary      Read a single post
// @Description  Resolves the post by its slug, which doubles as the public ID. Inactive posts resolve only for their author.
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post slug"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPostBySlug(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Only the author can update. Absent fields are left untouched.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body UpdatePostRequest true "Fields to change"
// @Success      200  {object}  entity.Post
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.UpdatePostInput{
		Title:         req.Title,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
	}
	if req.Status != nil {
		status := entity.PostStatus(*req.Status)
		input.Status = &status
	}

	post, err := h.postUseCase.UpdatePost(c.Param("id"), userID, input)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Only the author can delete. The featured image is removed from storage as well.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.postUseCase.DeletePost(c.Param("id"), userID); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// UploadFile godoc
// @Summary      Upload an image to object storage
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Image file"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /files [post]
func (h *PostHandler) UploadFile(c *gin.Context) {
	userID := c.GetString("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" && ext != ".webp" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image format. Only jpg, jpeg, png, gif, webp are allowed"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}
	defer src.Close()

	fileKey := fmt.Sprintf("posts/%s/%s%s", userID, uuid.New().String(), ext)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := h.postUseCase.UploadFile(src, fileKey, contentType)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"file_id": key})
}

// FileView godoc
// @Summary      Resolve a file ID to its full-size URL
// @Tags         files
// @Produce      json
// @Param        file_id query string true "File ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /files/view [get]
func (h *PostHandler) FileView(c *gin.Context) {
	fileID := c.Query("file_id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id is required"})
		return
	}

	url, err := h.postUseCase.FileViewURL(fileID)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// FilePreview godoc
// @Summary      Resolve a file ID to its scaled-down preview URL
// @Tags         files
// @Produce      json
// @Param        file_id query string true "File ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /files/preview [get]
func (h *PostHandler) FilePreview(c *gin.Context) {
	fileID := c.Query("file_id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id is required"})
		return
	}

	url, err := h.postUseCase.FilePreviewURL(fileID)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo-api/internal/config"
	"todo-api/internal/middleware"
	"todo-api/internal/models"
	"todo-api/internal/todos"
)

func (h *Handler) ListTodos(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		renderError(c, todos.ErrInvalidPage)
		return
	}

	res, err := h.todos.List(c.Request.Context(), middleware.Caller(c), page)
	if err != nil {
		renderError(c, err)
		return
	}

	body := models.TodoPage{Count: res.Count, Results: res.Todos}
	if res.HasNext {
		body.Next = pageURL(c, page.Number+1)
	}
	if page.Number > 1 {
		body.Previous = pageURL(c, page.Number-1)
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) page(c *gin.Context) (todos.Page, bool) {
	page := todos.Page{Number: 1, Size: h.pageSize}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, false
		}
		page.Number = n
	}
	// A bad page_size falls back to the default rather than failing.
	if v := c.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page.Size = min(n, config.MaxPageSize)
		}
	}
	return page, true
}

func pageURL(c *gin.Context, number int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch proto := c.GetHeader("X-Forwarded-Proto"); proto {
	case "http", "https":
		scheme = proto
	}

	q := c.Request.URL.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: q.Encode(),
	}
	s := u.String()
	return &s
}

// bindTodo decodes the body. An empty body is an empty request.
func bindTodo(c *gin.Context) (models.TodoRequest, bool) {
	request := models.TodoRequest{}
	err := c.ShouldBindJSON(&request)
	if err != nil && !errors.Is(err, io.EOF) {
		bindError(c, err)
		return request, false
	}
	return request, true
}

const nullMessage = "This field may not be null."

// patchFrom rejects explicit nulls, which would otherwise look like
// absent fields.
func patchFrom(request models.TodoRequest) (todos.Patch, error) {
	if request.Title.Null {
		return todos.Patch{}, &todos.ValidationError{Field: "title", Message: nullMessage}
	}
	if request.Completed.Null {
		return todos.Patch{}, &todos.ValidationError{Field: "completed", Message: nullMessage}
	}
	return todos.Patch{
		Title:     request.Title.Ptr(),
		Completed: request.Completed.Ptr(),
	}, nil
}

func (h *Handler) CreateTodo(c *gin.Context) {
	request, ok := bindTodo(c)
	if !ok {
		return
	}

	if request.Title.Null {
		renderError(c, &todos.ValidationError{Field: "title", Message: nullMessage})
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), middleware.Caller(c), request.Title.Ptr())
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, todo)
}

func (h *Handler) GetTodo(c *gin.Context) {
	todoId, ok := parseId(c.Param("id"))
	if !ok {
		renderError(c, todos.ErrNotFound)
		return
	}

	todo, err := h.todos.Retrieve(c.Request.Context(), middleware.Caller(c), todoId)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// UpdateTodo serves PUT and PATCH. PUT must carry a title; PATCH may carry
// any subset of the writable fields.
func (h *Handler) UpdateTodo(c *gin.Context) {
	todoId, ok := parseId(c.Param("id"))
	if !ok {
		renderError(c, todos.ErrNotFound)
		return
	}

	request, ok := bindTodo(c)
	if !ok {
		return
	}
	if c.Request.Method == http.MethodPut && !request.Title.Set {
		renderError(c, &todos.ValidationError{Field: "title", Message: "This field is required."})
		return
	}
	patch, err := patchFrom(request)
	if err != nil {
		renderError(c, err)
		return
	}

	todo, err := h.todos.Update(c.Request.Context(), middleware.Caller(c), todoId, patch)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	todoId, ok := parseId(c.Param("id"))
	if !ok {
		renderError(c, todos.ErrNotFound)
		return
	}

	if err := h.todos.Delete(c.Request.Context(), middleware.Caller(c), todoId); err != nil {
		renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ToggleTodo(c *gin.Context) {
	todoId, ok := parseId(c.Param("id"))
	if !ok {
		renderError(c, todos.ErrNotFound)
		return
	}

	todo, err := h.todos.Toggle(c.Request.Context(), middleware.Caller(c), todoId)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

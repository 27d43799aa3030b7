package handlers

import (
	"io"
	"net/http"
	"net/url"

	"wulf-order-services/internal/admin"
	"wulf-order-services/internal/middleware"
	"wulf-order-services/internal/session"
	"wulf-order-services/pkg/response"
)

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type activeCategoryRequest struct {
	Category string `json:"category"`
}

type categoriesView struct {
	Categories []string `json:"categories"`
	Active     string   `json:"active"`
}

type adminRowsView struct {
	Tab    admin.TabInfo  `json:"tab"`
	Search string         `json:"search"`
	Rows   []admin.Entity `json:"rows"`
	Total  int            `json:"total"`
}

func newCategoriesView(m *admin.CategoryManager) categoriesView {
	return categoriesView{Categories: m.Categories(), Active: m.Active()}
}

func (h *Handler) AdminSummary(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.Admin.Summary())
}

func (h *Handler) AdminTabs(w http.ResponseWriter, r *http.Request) {
	response.Success(w, admin.Tabs())
}

func (h *Handler) AdminCategories(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return newCategoriesView(c.Categories), nil
	})
}

func (h *Handler) AdminCategoryAdd(w http.ResponseWriter, r *http.Request) {
	var body categoryRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, ok := h.client(w, r)
	if !ok {
		return
	}
	if _, err := c.Categories.Add(body.Name); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]any{"success": true, "data": newCategoriesView(c.Categories)})
}

func (h *Handler) AdminCategoryDelete(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(readPathString(r, "name"))
	if err != nil {
		h.writeError(w, r, errMissingParam)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		c.Categories.Delete(name)
		return newCategoriesView(c.Categories), nil
	})
}

func (h *Handler) AdminCategorySetActive(w http.ResponseWriter, r *http.Request) {
	var body activeCategoryRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		if err := c.Categories.SetActive(body.Category); err != nil {
			return nil, err
		}
		return newCategoriesView(c.Categories), nil
	})
}

// AdminList filters a tab. The menu tab falls back to the caller's active
// category when none is given in the query.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	info, err := admin.LookupTab(readPathString(r, "tab"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	search := readQuery(r, "search")
	h.respond(w, r, func(c *session.Client) (any, error) {
		category := readQuery(r, "category")
		if category == "" && info.Key == admin.TabMenu {
			category = c.Categories.Active()
		}
		rows, err := h.Admin.Filter(info.Key, search, category)
		if err != nil {
			return nil, err
		}
		return adminRowsView{Tab: info, Search: search, Rows: rows, Total: len(rows)}, nil
	})
}

func (h *Handler) readEntity(r *http.Request, tab admin.Tab) (admin.Entity, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, &validationError{message: "invalid request body", details: map[string]string{"error": err.Error()}}
	}
	entity, err := admin.DecodeEntity(tab, body)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	info, err := admin.LookupTab(readPathString(r, "tab"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	entity, err := h.readEntity(r, info.Key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	clientID, _ := middleware.GetClientID(r.Context())
	result, err := h.Admin.Create(r.Context(), clientID, entity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.SuccessMessage(w, http.StatusAccepted, result, result.Message)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	info, err := admin.LookupTab(readPathString(r, "tab"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	entity, err := h.readEntity(r, info.Key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	clientID, _ := middleware.GetClientID(r.Context())
	result, err := h.Admin.Update(r.Context(), clientID, readPathString(r, "id"), entity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.SuccessMessage(w, http.StatusAccepted, result, result.Message)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	info, err := admin.LookupTab(readPathString(r, "tab"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	clientID, _ := middleware.GetClientID(r.Context())
	result, err := h.Admin.Delete(r.Context(), clientID, info.Key, readPathString(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.SuccessMessage(w, http.StatusAccepted, result, result.Message)
}

// Package ctx provides the request context used by controllers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helpers for params, binding, the caller's
// token claims and the response envelope:
//
//	func (ctl *OwnerController) Show(c *ctx.Context) {
//	    id, ok := c.ParamUint("id")
//	    if !ok {
//	        return // response already sent
//	    }
//	    store, err := ctl.owner.GetStore(c.Context(), c.UserID(), id)
//	    if err != nil {
//	        c.Fail(err)
//	        return
//	    }
//	    c.Success(response.Map{"store": store})
//	}
//
//	// Register with ctx.Wrap:
//	g.Get("/stores/{id}", "owner.stores.show", ctx.Wrap(ctl.Show))
package ctx

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/storerating/pkg/auth"
	"github.com/shashiranjanraj/storerating/pkg/bind"
	"github.com/shashiranjanraj/storerating/pkg/response"
	"github.com/shashiranjanraj/storerating/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/users/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a positive integer path parameter. On failure it sends a
// 400 and returns false.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		response.ValidationError(c.W, map[string]string{key: "The " + key + " must be a positive integer."})
		return 0, false
	}
	return uint(n), true
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Claims returns the authenticated caller's token claims, or nil on a
// public route.
func (c *Context) Claims() *auth.Claims {
	claims, _ := auth.FromContext(c.R.Context())
	return claims
}

// UserID returns the authenticated caller's id, or 0 on a public route.
func (c *Context) UserID() uint {
	if claims := c.Claims(); claims != nil {
		return claims.UserID
	}
	return 0
}

// ─── Binding ──────────────────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation. A malformed
// body or a validation failure sends a 400 and returns false.
//
//	var input services.LoginInput
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		response.ValidationError(c.W, errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes v with the given status code, without the envelope.
func (c *Context) JSON(code int, v any) {
	response.JSON(c.W, code, v)
}

// Success sends a 200 envelope with data merged in.
func (c *Context) Success(data response.Map) {
	response.Success(c.W, data)
}

// Created sends a 201 envelope with data merged in.
func (c *Context) Created(data response.Map) {
	response.Created(c.W, data)
}

// Error sends a failure envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	response.Error(c.W, code, message)
}

// Fail maps a service error onto its status and writes it.
func (c *Context) Fail(err error) {
	response.Fail(c.W, c.R, err)
}

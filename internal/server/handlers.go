package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartymode/folio/pkg/core"
)

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// list handles GET /api/:collection[?category=].
func (s *Server) list(c echo.Context) error {
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var docs []core.Document
	if category := c.QueryParam("category"); category != "" {
		docs, err = s.reader.ByCategory(ctx, collection, category)
	} else {
		docs, err = s.reader.ListAllDocuments(ctx, collection)
	}
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, docs)
}

// categories handles GET /api/:collection/categories.
func (s *Server) categories(c echo.Context) error {
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}
	cats, err := s.reader.Categories(c.Request().Context(), collection)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

// get handles GET /api/:collection/:slug.
func (s *Server) get(c echo.Context) error {
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}
	doc, err := s.reader.GetDocument(c.Request().Context(), collection, c.Param("slug"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func collectionParam(c echo.Context) (core.Collection, error) {
	collection, err := core.ParseCollection(c.Param("collection"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return collection, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrUnknownCollection):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

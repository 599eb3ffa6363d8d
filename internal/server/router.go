package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/vector-bench/internal/bench/report"
)

// ReportsRouter exposes persisted benchmark reports for inspection.
type ReportsRouter struct {
	e   *echo.Echo
	dir string
}

func NewReportsRouter(e *echo.Echo, dir string) *ReportsRouter {
	return &ReportsRouter{
		e:   e,
		dir: dir,
	}
}

func (r *ReportsRouter) Bind() {
	r.e.GET("/reports", r.listHandler)
	r.e.GET("/reports/:name", r.getHandler)
}

type reportListing struct {
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
	Backends  int    `json:"backends"`
}

func (r *ReportsRouter) listHandler(c echo.Context) error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusOK, []reportListing{})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}

	listings := make([]reportListing, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		rep, err := report.ReadJSON(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			// skip unparseable files rather than failing the listing
			continue
		}

		listings = append(listings, reportListing{
			Name:      strings.TrimSuffix(entry.Name(), ".json"),
			Timestamp: rep.Meta.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			Backends:  len(rep.Backends),
		})
	}

	sort.Slice(listings, func(i, j int) bool { return listings[i].Timestamp > listings[j].Timestamp })

	return c.JSON(http.StatusOK, listings)
}

func (r *ReportsRouter) getHandler(c echo.Context) error {
	name := c.Param("name")
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid report name"})
	}

	rep, err := report.ReadJSON(filepath.Join(r.dir, name+".json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "report not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}

	return c.JSON(http.StatusOK, rep)
}

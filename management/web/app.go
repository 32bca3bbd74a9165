package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sync/atomic"

	"taller/internal/log"
	"taller/management/vo"
	"taller/pkg/loop"
	"taller/pkg/terrors"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Route names, also rendered as data-route on every page.
const (
	RouteSpinner    = "spinner"
	RouteStorefront = "storefront"
	RouteSponsors   = "sponsors"
	RouteScooter    = "scooter"
	RouteBudget     = "budget"
	RouteAdmin      = "admin"

	SectionShop = "tienda"

	AdminLoadingBanner = "CARGANDO PANEL..."
)

type OrderFinder interface {
	ListByPlate(ctx context.Context, plate string) ([]*vo.OrderVo, error)
}

type BudgetFinder interface {
	Get(ctx context.Context, id string) (*vo.BudgetVo, error)
}

type Options struct {
	Orders  OrderFinder
	Budgets BudgetFinder
	// Admin builds the admin subtree on its first visit.
	Admin Loader[http.Handler]
	// Loop runs the admin load. A private loop is created when nil.
	Loop *loop.TaskLoop
}

// Page is the data every page template receives.
type Page struct {
	Route   string
	Title   string
	Section string
	Nav     Nav

	Products []Product
	Sponsors []Sponsor

	Plate  string
	Orders []*vo.OrderVo

	BudgetID string
	Budget   *vo.BudgetVo

	Message string
}

// App serves the public pages. It starts booting and renders only a
// spinner until Mount flips it to ready.
type App struct {
	log     *log.Logger
	orders  OrderFinder
	budgets BudgetFinder
	admin   *Lazy[http.Handler]
	tmpl    *template.Template
	ready   atomic.Bool
}

func NewApp(opts *Options) (*App, error) {
	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"money": vo.Money,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	l := opts.Loop
	if l == nil {
		l = loop.NewTaskLoop(1)
	}
	adminLoader := opts.Admin
	if adminLoader == nil {
		adminLoader = func(context.Context) (http.Handler, error) {
			return nil, errors.New("admin panel not configured")
		}
	}

	return &App{
		log:     log.GetLogger("web"),
		orders:  opts.Orders,
		budgets: opts.Budgets,
		admin:   NewLazy(l, adminLoader),
		tmpl:    tmpl,
	}, nil
}

// Mount performs the one-time booting to ready transition.
func (a *App) Mount() {
	if a.ready.CompareAndSwap(false, true) {
		a.log.Info("pages ready")
	}
}

func (a *App) Ready() bool {
	return a.ready.Load()
}

// AdminStarted reports whether the admin load has been triggered.
func (a *App) AdminStarted() bool {
	return a.admin.Started()
}

// AdminDone is closed once the admin load finished.
func (a *App) AdminDone() <-chan struct{} {
	return a.admin.Done()
}

// Register mounts the page routes on engine and installs the templates.
func (a *App) Register(engine *gin.Engine) {
	engine.SetHTMLTemplate(a.tmpl)

	engine.GET("/", a.guard(a.storefront("")))
	engine.GET("/tienda", a.guard(a.storefront(SectionShop)))
	engine.GET("/sponsors", a.guard(a.sponsors))
	engine.GET("/scooter", a.guard(a.scooter))
	engine.GET("/presupuesto/:id", a.guard(a.budget))
	engine.GET("/admin", a.guard(a.adminPanel))
	engine.GET("/admin/*path", a.guard(a.adminPanel))
}

// guard shows the spinner, and nothing else, while booting.
func (a *App) guard(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Ready() {
			c.HTML(http.StatusOK, RouteSpinner, &Page{Route: RouteSpinner, Title: "Cargando"})
			return
		}
		h(c)
	}
}

func (a *App) storefront(section string) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := "Taller"
		if section == SectionShop {
			title = "Tienda"
		}
		c.HTML(http.StatusOK, RouteStorefront, &Page{
			Route:    RouteStorefront,
			Title:    title,
			Section:  section,
			Products: defaultCatalog,
		})
	}
}

func (a *App) sponsors(c *gin.Context) {
	c.HTML(http.StatusOK, RouteSponsors, &Page{
		Route:    RouteSponsors,
		Title:    "Sponsors",
		Sponsors: defaultSponsors,
	})
}

// scooter shows the repair status for ?plate=, passed on unchanged.
func (a *App) scooter(c *gin.Context) {
	page := &Page{Route: RouteScooter, Title: "Scooter", Plate: c.Query("plate")}
	status := http.StatusOK

	if page.Plate != "" && a.orders != nil {
		orders, err := a.orders.ListByPlate(c.Request.Context(), page.Plate)
		switch {
		case err == nil:
			page.Orders = orders
		case errors.Is(err, terrors.ErrOrderNotFound):
			page.Message = "No hay reparaciones para esa matrícula."
			status = http.StatusNotFound
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
	}
	c.HTML(status, RouteScooter, page)
}

func (a *App) budget(c *gin.Context) {
	id := c.Param("id")
	page := &Page{Route: RouteBudget, Title: "Presupuesto", BudgetID: id}

	if a.budgets == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("budgets not configured"))
		return
	}
	b, err := a.budgets.Get(c.Request.Context(), id)
	switch {
	case err == nil:
		page.Budget = b
		c.HTML(http.StatusOK, RouteBudget, page)
	case errors.Is(err, terrors.ErrBudgetNotFound):
		page.Message = "Presupuesto no encontrado."
		c.HTML(http.StatusNotFound, RouteBudget, page)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err)
	}
}

// adminPanel hands the request to the admin subtree, loading it on the
// first visit. A failed load is left to gin's default error handling.
func (a *App) adminPanel(c *gin.Context) {
	h, status, err := a.admin.Get()
	switch status {
	case StatusLoaded:
		h.ServeHTTP(c.Writer, c.Request)
	case StatusFailed:
		a.log.Error("admin panel unavailable", err)
		_ = c.AbortWithError(http.StatusInternalServerError, err)
	default:
		c.HTML(http.StatusOK, "admin_loading", &Page{
			Route:   RouteAdmin,
			Title:   "Admin",
			Message: AdminLoadingBanner,
		})
	}
}

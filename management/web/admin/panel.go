// Package admin is the back-office subtree mounted under /admin. It is
// built on demand the first time an admin path is visited.
package admin

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"taller/internal/log"
	"taller/management/dto"
	"taller/management/vo"
	"taller/pkg/terrors"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type OrderStore interface {
	List(ctx context.Context, req *dto.PageRequest) (*dto.PageResult[*vo.OrderVo], error)
	Get(ctx context.Context, id string) (*vo.OrderVo, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type BudgetStore interface {
	List(ctx context.Context, req *dto.PageRequest) (*dto.PageResult[*vo.BudgetVo], error)
	Get(ctx context.Context, id string) (*vo.BudgetVo, error)
}

type Deps struct {
	Orders  OrderStore
	Budgets BudgetStore
}

type Panel struct {
	log    *log.Logger
	deps   *Deps
	engine *gin.Engine
}

type view struct {
	Route   string
	Title   string
	Counts  map[string]int64
	Orders  *dto.PageResult[*vo.OrderVo]
	Order   *vo.OrderVo
	Budgets *dto.PageResult[*vo.BudgetVo]
	Budget  *vo.BudgetVo
	Search  string
	Status  string
	Message string
}

// NewLoader returns the function that builds the panel. It matches
// web.Loader[http.Handler].
func NewLoader(deps *Deps) func(ctx context.Context) (http.Handler, error) {
	return func(ctx context.Context) (http.Handler, error) {
		return Load(ctx, deps)
	}
}

// Load parses the panel templates and wires its routes.
func Load(ctx context.Context, deps *Deps) (*Panel, error) {
	tmpl, err := template.New("admin").Funcs(template.FuncMap{
		"money": vo.Money,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	p := &Panel{
		log:    log.GetLogger("admin"),
		deps:   deps,
		engine: gin.New(),
	}
	p.engine.SetHTMLTemplate(tmpl)

	r := p.engine.Group("/admin")
	{
		r.GET("", p.dashboard)
		r.GET("/orders", p.listOrders)
		r.GET("/orders/:id", p.getOrder)
		r.GET("/budgets", p.listBudgets)
		r.GET("/budgets/:id", p.getBudget)
	}
	p.engine.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not_found", &view{Route: "admin-not-found", Title: "No encontrado"})
	})

	p.log.Info("admin panel loaded")
	return p, nil
}

func (p *Panel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.engine.ServeHTTP(w, r)
}

func (p *Panel) dashboard(c *gin.Context) {
	counts, err := p.deps.Orders.CountByStatus(c.Request.Context())
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	latest, err := p.deps.Orders.List(c.Request.Context(), &dto.PageRequest{Page: 1, PageSize: 5})
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "dashboard", &view{Route: "admin-dashboard", Title: "Panel", Counts: counts, Orders: latest})
}

func (p *Panel) listOrders(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.HTML(http.StatusBadRequest, "orders", &view{Route: "admin-orders", Title: "Órdenes", Message: err.Error()})
		return
	}
	page, err := p.deps.Orders.List(c.Request.Context(), &req)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "orders", &view{Route: "admin-orders", Title: "Órdenes", Orders: page, Search: req.Search, Status: req.Status})
}

func (p *Panel) getOrder(c *gin.Context) {
	o, err := p.deps.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		p.detailError(c, err)
		return
	}
	c.HTML(http.StatusOK, "order", &view{Route: "admin-order", Title: "Orden " + o.Plate, Order: o})
}

func (p *Panel) listBudgets(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.HTML(http.StatusBadRequest, "budgets", &view{Route: "admin-budgets", Title: "Presupuestos", Message: err.Error()})
		return
	}
	page, err := p.deps.Budgets.List(c.Request.Context(), &req)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "budgets", &view{Route: "admin-budgets", Title: "Presupuestos", Budgets: page, Search: req.Search, Status: req.Status})
}

func (p *Panel) getBudget(c *gin.Context) {
	b, err := p.deps.Budgets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		p.detailError(c, err)
		return
	}
	c.HTML(http.StatusOK, "budget", &view{Route: "admin-budget", Title: "Presupuesto", Budget: b})
}

func (p *Panel) detailError(c *gin.Context, err error) {
	if terrors.IsNotFound(err) {
		c.HTML(http.StatusNotFound, "not_found", &view{Route: "admin-not-found", Title: "No encontrado", Message: err.Error()})
		return
	}
	_ = c.AbortWithError(http.StatusInternalServerError, err)
}
